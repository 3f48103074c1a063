package traveljournal

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed data/entries.yaml
var dataFS embed.FS

const defaultDataPath = "data/entries.yaml"

// entriesDocument is the shape of the YAML document entries are stored in.
type entriesDocument struct {
	Entries []JournalEntry `yaml:"entries"`
}

// DefaultEntries returns the journal entries embedded in the binary.
func DefaultEntries() ([]JournalEntry, error) {
	return LoadEntries(dataFS, defaultDataPath)
}

// LoadEntries reads and validates the entries stored in the YAML document
// at name in fsys.
func LoadEntries(fsys fs.FS, name string) ([]JournalEntry, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("error opening %q: %w", name, err)
	}
	defer file.Close()
	entries, err := DecodeEntries(file)
	if err != nil {
		return nil, fmt.Errorf("error loading %q: %w", name, err)
	}
	return entries, nil
}

// DecodeEntries decodes a YAML document of the form
//
//	entries:
//	  - id: 1
//	    img: {src: ..., alt: ...}
//	    country: ...
//	    googleMapsLink: ...
//	    title: ...
//	    dates: ...
//	    text: ...
//
// and validates every entry in it. Entries are returned in document order.
// An empty document holds no entries and is not an error.
//
// Unknown keys are rejected, as are entries that are missing a field
// (ErrInvalidEntry) or that reuse an earlier entry's id (ErrDuplicateID).
func DecodeEntries(r io.Reader) ([]JournalEntry, error) {
	var doc entriesDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding entries: %w", err)
	}
	err = ValidateEntries(doc.Entries)
	if err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

// ValidateEntries checks every entry with JournalEntry.Validate and makes
// sure no two entries share an id. All problems are reported, joined.
func ValidateEntries(entries []JournalEntry) error {
	var errs []error
	seen := make(map[int]int, len(entries))
	for pos, entry := range entries {
		if err := entry.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", pos, err))
		}
		if first, ok := seen[entry.ID]; ok {
			errs = append(errs, fmt.Errorf("entry %d: %w %d, first used by entry %d", pos, ErrDuplicateID, entry.ID, first))
			continue
		}
		seen[entry.ID] = pos
	}
	return errors.Join(errs...)
}
