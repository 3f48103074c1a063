package traveljournal

import "context"

// Header is the Component for the fixed banner at the top of the journal:
// the logo and the journal's title. It takes no input.
type Header struct{}

// Templates returns the templates that make up a Header.
func (Header) Templates(_ context.Context) []string {
	return []string{"templates/header.html.tmpl"}
}

// Key returns the template cache key for a Header rendered as a fragment.
func (Header) Key(_ context.Context) string {
	return "header"
}

// ExecutedTemplate returns the template that renders a Header as a
// fragment.
func (Header) ExecutedTemplate(_ context.Context) string {
	return "header_fragment"
}
