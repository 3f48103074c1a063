// Package temple is the small component rendering layer the travel journal
// is built on. It sits on top of html/template.
//
// A Component names the template files it needs. A Component can pull in
// other Components through UseComponents, and everything it pulls in is
// parsed alongside it: templates, template functions, and stylesheet links.
// A Renderable is a Component that can be the root of an output document,
// either a whole page or a standalone fragment.
//
// A Site holds the fs.FS the templates live in and is available to every
// template as .Site, while the Renderable itself is available as .Page.
// CachedSite can be embedded in a Site to keep parsed templates in memory
// between renders.
//
// Render writes a Renderable to an io.Writer and falls back to a server
// error page when something goes wrong. Execute does the same work but hands
// the error back to the caller instead.
package temple
