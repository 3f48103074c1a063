package traveljournal

import (
	"context"
	"embed"
	"html/template"
	"strings"

	"impractical.co/traveljournal/internal/temple"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// DefaultTitle is the page title used when a Site isn't given one.
const DefaultTitle = "my travel journal."

var _ temple.Site = Site{}
var _ temple.FuncMapExtender = Site{}
var _ temple.ServerErrorPager = Site{}

// Site is the temple.Site the journal renders with. It's safe to share
// between goroutines.
type Site struct {
	*temple.CachedSite

	// Title is the document title, shown in the browser's tab.
	Title string

	// AssetBase is prepended to the journal's own image paths (the logo
	// and the map marker). When it's empty the paths are left relative.
	AssetBase string
}

// NewSite returns a Site using the templates embedded in the binary.
func NewSite(title, assetBase string) Site {
	if title == "" {
		title = DefaultTitle
	}
	return Site{
		CachedSite: temple.NewCachedSite(templateFS),
		Title:      title,
		AssetBase:  assetBase,
	}
}

// FuncMap makes asset available to every template. asset resolves one of
// the journal's fixed image paths against AssetBase.
func (s Site) FuncMap(_ context.Context) template.FuncMap {
	return template.FuncMap{
		"asset": s.asset,
	}
}

func (s Site) asset(path string) string {
	if s.AssetBase == "" {
		return path
	}
	return strings.TrimSuffix(s.AssetBase, "/") + "/" + strings.TrimPrefix(path, "/")
}

// ServerErrorPage returns the page rendered when another page fails.
func (Site) ServerErrorPage(_ context.Context) temple.Renderable {
	return ErrorPage{}
}
