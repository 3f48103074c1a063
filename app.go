package traveljournal

import (
	"context"
	"slices"

	"impractical.co/traveljournal/internal/temple"
)

var _ temple.Renderable = App{}
var _ temple.Renderable = Entry{}
var _ temple.Renderable = Header{}
var _ temple.Renderable = ErrorPage{}

// Layout is the document skeleton every page is rendered into. It owns the
// <head>, including the links to the page's stylesheets.
type Layout struct {
	Stylesheets []string
}

// Templates returns the layout template.
func (Layout) Templates(_ context.Context) []string {
	return []string{"templates/base.html.tmpl"}
}

// BaseTemplate is the template pages using the Layout execute.
func (Layout) BaseTemplate() string {
	return "templates/base.html.tmpl"
}

// LinkCSS returns the stylesheets the Layout links to.
func (l Layout) LinkCSS(_ context.Context) []string {
	return l.Stylesheets
}

// App is the journal page: the Header, followed by a container holding one
// Entry per JournalEntry, in collection order.
//
// Entries sharing an id are all rendered, in order; their data-key
// attributes repeat. LoadEntries never produces such a collection.
type App struct {
	Layout  Layout
	Header  Header
	Entries []Entry
}

// NewApp builds the page for entries. The stylesheets are linked from the
// page's <head>. The App keeps its own copy of entries.
func NewApp(entries []JournalEntry, stylesheets ...string) App {
	app := App{
		Layout:  Layout{Stylesheets: slices.Clone(stylesheets)},
		Entries: make([]Entry, 0, len(entries)),
	}
	for _, entry := range entries {
		app.Entries = append(app.Entries, Entry{Record: entry})
	}
	return app
}

// Templates returns the template filling in the Layout's body.
func (App) Templates(_ context.Context) []string {
	return []string{"templates/app.html.tmpl"}
}

// UseComponents returns the Layout, the Header, and Entry.
func (a App) UseComponents(_ context.Context) []temple.Component {
	// Entry is always included so the "entry" template exists even when
	// there are no entries to render.
	return []temple.Component{a.Layout, a.Header, Entry{}}
}

// Key returns the template cache key for an App.
func (App) Key(_ context.Context) string {
	return "app"
}

// ExecutedTemplate returns the Layout's base template.
func (a App) ExecutedTemplate(_ context.Context) string {
	return a.Layout.BaseTemplate()
}

// ErrorPage is rendered in place of a page that failed to render.
type ErrorPage struct {
	Layout Layout
}

// Templates returns the template filling in the Layout's body.
func (ErrorPage) Templates(_ context.Context) []string {
	return []string{"templates/error.html.tmpl"}
}

// UseComponents returns the Layout.
func (e ErrorPage) UseComponents(_ context.Context) []temple.Component {
	return []temple.Component{e.Layout}
}

// Key returns the template cache key for an ErrorPage.
func (ErrorPage) Key(_ context.Context) string {
	return "error"
}

// ExecutedTemplate returns the Layout's base template.
func (e ErrorPage) ExecutedTemplate(_ context.Context) string {
	return e.Layout.BaseTemplate()
}
