package temple

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"maps"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrNoTemplatePath is returned when a template path is needed, but
	// none are supplied.
	ErrNoTemplatePath = errors.New("need at least one template path")

	// ErrTemplatePatternMatchesNoFiles is returned when a template path is
	// a pattern, but that pattern doesn't match any files.
	ErrTemplatePatternMatchesNoFiles = errors.New("pattern matches no files")
)

const tracerName = "impractical.co/traveljournal/internal/temple"

// Component is a piece of an HTML document that can be rendered.
type Component interface {
	// Templates returns the paths, or glob patterns, of the html/template
	// files that need to be parsed before the Component can be rendered.
	Templates(context.Context) []string
}

// ComponentUser is an interface that a Component can optionally implement to
// list the Components it relies on. Their templates, funcs, and stylesheet
// links are all included whenever the using Component is rendered.
type ComponentUser interface {
	// UseComponents returns the Components that this Component relies on.
	UseComponents(context.Context) []Component
}

// FuncMapExtender is an interface that Sites and Components can fulfill to
// add to the functions available to templates.
type FuncMapExtender interface {
	// FuncMap returns the functions being added.
	FuncMap(context.Context) template.FuncMap
}

// Renderable is a Component that can be the root of a rendered document.
type Renderable interface {
	Component

	// Key identifies the set of parsed templates this Renderable needs,
	// for caching. Two Renderables with the same Key must need the same
	// templates.
	Key(context.Context) string

	// ExecutedTemplate is the name of the template that gets executed.
	// It's usually a layout the Renderable's own templates fill blocks
	// in, not one of the Renderable's own files.
	ExecutedTemplate(context.Context) string
}

// RenderData is what a Renderable's executed template receives as its dot.
type RenderData[SiteType Site, PageType Renderable] struct {
	// Site is the Site the Renderable is being rendered with.
	Site SiteType

	// Page is the Renderable being rendered.
	Page PageType

	// LinkedCSS holds the stylesheet URLs of the Renderable and every
	// Component it uses, in first-seen order.
	LinkedCSS []string
}

// Render renders page to out. If that fails, the error is logged and a server
// error page is written instead: the Site's ServerErrorPage if it implements
// ServerErrorPager, a plain "Server error." message if not. Nothing from a
// failed render reaches out.
//
// If out implements io.Closer, it's closed once Render is done with it.
func Render[SiteType Site, PageType Renderable](ctx context.Context, out io.Writer, site SiteType, page PageType) {
	defer func() {
		if closer, ok := out.(io.Closer); ok {
			err := closer.Close()
			if err != nil {
				Logger(ctx).ErrorContext(ctx, "error closing output", "error", err)
			}
		}
	}()

	err := Execute(ctx, out, site, page)
	if err == nil {
		return
	}
	Logger(ctx).ErrorContext(ctx, "error rendering page", "error", err, "page", fmt.Sprintf("%T", page))
	RenderServerError(ctx, out, site)
}

// RenderServerError writes the server error page for site to out, using the
// Site's ServerErrorPage if it has one.
func RenderServerError[SiteType Site](ctx context.Context, out io.Writer, site SiteType) {
	if pager, ok := Site(site).(ServerErrorPager); ok {
		err := Execute(ctx, out, site, pager.ServerErrorPage(ctx))
		if err != nil {
			// nothing left to fall back on
			Logger(ctx).ErrorContext(ctx, "error rendering server error page", "error", err)
		}
		return
	}
	_, err := out.Write([]byte("Server error."))
	if err != nil {
		Logger(ctx).ErrorContext(ctx, "error writing server error message", "error", err)
	}
}

// Execute renders page to out and returns any error encountered. The output
// is buffered, so on error nothing is written to out.
func Execute[SiteType Site, PageType Renderable](ctx context.Context, out io.Writer, site SiteType, page PageType) (err error) {
	key := page.Key(ctx)
	executed := page.ExecutedTemplate(ctx)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "temple.Execute", trace.WithAttributes(
		attribute.String("temple.key", key),
		attribute.String("temple.executed_template", executed),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tmpl, err := getTemplate(ctx, site, page)
	if err != nil {
		return err
	}

	data := RenderData[SiteType, PageType]{
		Site:      site,
		Page:      page,
		LinkedCSS: getComponentCSSLinks(ctx, page),
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, executed, data)
	if err != nil {
		return fmt.Errorf("error executing template %q for %T: %w", executed, page, err)
	}
	_, err = buf.WriteTo(out)
	if err != nil {
		return fmt.Errorf("error writing %T: %w", page, err)
	}
	Logger(ctx).DebugContext(ctx, "rendered page", "key", key, "template", executed)
	return nil
}

func getTemplate(ctx context.Context, site Site, page Renderable) (*template.Template, error) {
	key := page.Key(ctx)
	cache, canCache := site.(TemplateCacher)
	if canCache {
		if cached := cache.GetCachedTemplate(ctx, key); cached != nil {
			return cached, nil
		}
	}
	tmplPaths := getComponentTemplatePaths(ctx, page)
	if len(tmplPaths) < 1 {
		return nil, fmt.Errorf("error rendering %T: %w", page, ErrNoTemplatePath)
	}
	funcMap := getComponentFuncMap(ctx, site, page)
	parsed, err := parseTemplates(site.TemplateDir(ctx), funcMap, tmplPaths...)
	if err != nil {
		return nil, fmt.Errorf("error parsing templates %v for page %T: %w", tmplPaths, page, err)
	}
	if canCache {
		cache.SetCachedTemplate(ctx, key, parsed)
	}
	return parsed, nil
}

// getRecursiveComponents returns component followed by every Component it
// uses, depth first.
func getRecursiveComponents(ctx context.Context, component Component) []Component {
	results := []Component{component}

	if uses, ok := component.(ComponentUser); ok {
		for _, child := range uses.UseComponents(ctx) {
			results = append(results, getRecursiveComponents(ctx, child)...)
		}
	}
	return results
}

func getComponentTemplatePaths(ctx context.Context, component Component) []string {
	var results []string
	seen := map[string]struct{}{}
	for _, comp := range getRecursiveComponents(ctx, component) {
		for _, path := range comp.Templates(ctx) {
			if _, ok := seen[path]; ok {
				continue
			}
			results = append(results, path)
			seen[path] = struct{}{}
		}
	}
	return results
}

// getComponentFuncMap merges the Site's funcs with those of every Component.
// Later Components win on name clashes.
func getComponentFuncMap(ctx context.Context, site Site, component Component) template.FuncMap {
	results := template.FuncMap{}
	if fm, ok := site.(FuncMapExtender); ok {
		maps.Copy(results, fm.FuncMap(ctx))
	}
	for _, comp := range getRecursiveComponents(ctx, component) {
		fm, ok := comp.(FuncMapExtender)
		if !ok {
			continue
		}
		maps.Copy(results, fm.FuncMap(ctx))
	}
	return results
}

func parseTemplates(fsys fs.FS, funcs template.FuncMap, patterns ...string) (*template.Template, error) {
	var files []string
	for _, pattern := range patterns {
		list, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("error listing files for %q: %w", pattern, err)
		}
		if len(list) < 1 {
			return nil, fmt.Errorf("error parsing %q: %w", pattern, ErrTemplatePatternMatchesNoFiles)
		}
		files = append(files, list...)
	}
	if len(files) < 1 {
		return nil, ErrNoTemplatePath
	}
	tmpl := template.New("").Funcs(funcs)
	for _, file := range files {
		contents, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("error reading %q: %w", file, err)
		}
		_, err = tmpl.New(file).Parse(string(contents))
		if err != nil {
			return nil, fmt.Errorf("error parsing %q: %w", file, err)
		}
	}
	return tmpl, nil
}
