package temple

import "context"

// CSSLinker is an interface that Components can fulfill to have stylesheets
// linked from the rendered document. The URLs are made available to the
// template as .LinkedCSS.
type CSSLinker interface {
	// LinkCSS returns the URLs of stylesheets the Component needs.
	LinkCSS(context.Context) []string
}

// getComponentCSSLinks collects the stylesheet URLs of component and every
// Component it uses, in the order they're first seen. Repeats are dropped.
func getComponentCSSLinks(ctx context.Context, component Component) []string {
	var results []string
	seen := map[string]struct{}{}
	for _, comp := range getRecursiveComponents(ctx, component) {
		link, ok := comp.(CSSLinker)
		if !ok {
			continue
		}
		for _, href := range link.LinkCSS(ctx) {
			if _, ok := seen[href]; ok {
				continue
			}
			results = append(results, href)
			seen[href] = struct{}{}
		}
	}
	return results
}
