package traveljournal

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidEntry is returned when a JournalEntry is missing a field
	// it needs to be displayed.
	ErrInvalidEntry = errors.New("invalid journal entry")

	// ErrDuplicateID is returned when two entries in a collection share
	// an id.
	ErrDuplicateID = errors.New("duplicate journal entry id")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by the names they have in the data file
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Image is a picture attached to a JournalEntry.
type Image struct {
	Src string `yaml:"src" json:"src" validate:"required"`
	Alt string `yaml:"alt" json:"alt" validate:"required"`
}

// JournalEntry is one post in the travel journal.
type JournalEntry struct {
	// ID identifies the entry within its collection. It must be unique,
	// and non-zero.
	ID    int   `yaml:"id" json:"id" validate:"required"`
	Image Image `yaml:"img" json:"img"`

	Country string `yaml:"country" json:"country" validate:"required"`

	// GoogleMapsLink is used as-is as the target of the entry's map
	// link. It must be an absolute http or https URL; html/template
	// replaces any other scheme with a placeholder.
	GoogleMapsLink string `yaml:"googleMapsLink" json:"googleMapsLink" validate:"required,http_url"`

	Title string `yaml:"title" json:"title" validate:"required"`

	// Dates is displayed as written; it's never parsed.
	Dates string `yaml:"dates" json:"dates" validate:"required"`
	Text  string `yaml:"text" json:"text" validate:"required"`
}

// Validate returns an error wrapping ErrInvalidEntry if any of the entry's
// fields are missing, or if GoogleMapsLink isn't an http or https URL.
func (e JournalEntry) Validate() error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	var missing, malformed []string
	for _, fieldErr := range fieldErrs {
		field := strings.TrimPrefix(fieldErr.Namespace(), "JournalEntry.")
		if fieldErr.Tag() == "required" {
			missing = append(missing, field)
			continue
		}
		malformed = append(malformed, fmt.Sprintf("%s (want %s)", field, fieldErr.Tag()))
	}
	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "missing "+strings.Join(missing, ", "))
	}
	if len(malformed) > 0 {
		problems = append(problems, "malformed "+strings.Join(malformed, ", "))
	}
	return fmt.Errorf("%w: id %d: %s", ErrInvalidEntry, e.ID, strings.Join(problems, "; "))
}

// Entry is the Component that renders a single JournalEntry as an article.
// It can be rendered on its own, as a fragment, or as part of an App.
type Entry struct {
	Record JournalEntry
}

// Templates returns the templates that make up an Entry.
func (Entry) Templates(_ context.Context) []string {
	return []string{"templates/entry.html.tmpl"}
}

// Key returns the template cache key for an Entry rendered as a fragment.
func (Entry) Key(_ context.Context) string {
	return "entry"
}

// ExecutedTemplate returns the template that renders an Entry as a
// fragment.
func (Entry) ExecutedTemplate(_ context.Context) string {
	return "entry_fragment"
}
