package temple

import (
	"context"
	"html/template"
	"io/fs"
	"sync"
)

// Site is the singleton a server renders its pages with. It surfaces the
// templates every Component relies on as an fs.FS, and is handed to each
// template as .Site so it can carry configuration shared by all pages.
type Site interface {
	// TemplateDir returns an fs.FS containing all the templates needed to
	// render every Renderable on the Site.
	//
	// The paths returned by a Component's Templates method are resolved
	// against this fs.FS.
	TemplateDir(ctx context.Context) fs.FS
}

// TemplateCacher is an optional interface for Sites. Sites fulfilling it get
// to skip parsing templates for a Renderable whose Key they've already seen.
// Only the parsed templates are cached; the data they're executed with can
// differ between renders.
type TemplateCacher interface {
	// GetCachedTemplate returns the *template.Template stored under key,
	// or nil if nothing has been stored yet.
	GetCachedTemplate(ctx context.Context, key string) *template.Template

	// SetCachedTemplate stores tmpl under key for later retrieval with
	// GetCachedTemplate. It's best-effort and doesn't report failures.
	SetCachedTemplate(ctx context.Context, key string, tmpl *template.Template)
}

// ServerErrorPager is an optional interface for Sites. When Render fails and
// the Site implements ServerErrorPager, the Renderable it returns is rendered
// in place of the failed one.
type ServerErrorPager interface {
	ServerErrorPage(ctx context.Context) Renderable
}

var _ Site = &CachedSite{}
var _ TemplateCacher = &CachedSite{}

// CachedSite fulfills Site and TemplateCacher, keeping parsed templates in
// memory. It's meant to be embedded in the Site a consumer actually renders
// with. A CachedSite must be created with NewCachedSite; its zero value is
// not usable.
type CachedSite struct {
	templateCache   map[string]*template.Template
	templateCacheMu sync.RWMutex

	templateDir fs.FS
}

// NewCachedSite returns a CachedSite that reads its templates from templates.
func NewCachedSite(templates fs.FS) *CachedSite {
	return &CachedSite{
		templateCache: map[string]*template.Template{},
		templateDir:   templates,
	}
}

// GetCachedTemplate returns the template cached under key, or nil.
//
// It can safely be used by multiple goroutines.
func (s *CachedSite) GetCachedTemplate(_ context.Context, key string) *template.Template {
	s.templateCacheMu.RLock()
	defer s.templateCacheMu.RUnlock()
	return s.templateCache[key]
}

// SetCachedTemplate caches tmpl under key.
//
// It can safely be used by multiple goroutines.
func (s *CachedSite) SetCachedTemplate(_ context.Context, key string, tmpl *template.Template) {
	s.templateCacheMu.Lock()
	defer s.templateCacheMu.Unlock()
	s.templateCache[key] = tmpl
}

// TemplateDir returns the fs.FS passed to NewCachedSite.
func (s *CachedSite) TemplateDir(_ context.Context) fs.FS {
	return s.templateDir
}
