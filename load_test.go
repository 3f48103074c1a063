package traveljournal_test

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impractical.co/traveljournal"
)

const validEntry = `
  - id: 1
    img: {src: a.jpg, alt: A}
    country: Japan
    googleMapsLink: https://maps/x
    title: Tokyo
    dates: Jan 2024
    text: Great trip`

func TestDefaultEntries(t *testing.T) {
	t.Parallel()

	entries, err := traveljournal.DefaultEntries()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	var ids []int
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	assert.Equal(t, []int{1, 2, 3}, ids)
	assert.Equal(t, "Japan", entries[0].Country)
	assert.Equal(t, "Mount Fuji", entries[0].Title)
}

func TestDecodeEntries(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		doc      string
		wantErr  error
		contains string
		count    int
	}{
		"valid": {
			doc:   "entries:" + validEntry,
			count: 1,
		},
		"empty-document": {
			doc: "",
		},
		"empty-list": {
			doc: "entries: []",
		},
		"missing-image-src": {
			doc:      "entries:" + strings.Replace(validEntry, "src: a.jpg, ", "", 1),
			wantErr:  traveljournal.ErrInvalidEntry,
			contains: "img.src",
		},
		"missing-title": {
			doc:      "entries:" + strings.Replace(validEntry, "title: Tokyo", "title: ''", 1),
			wantErr:  traveljournal.ErrInvalidEntry,
			contains: "title",
		},
		"missing-id": {
			doc:      "entries:" + strings.Replace(validEntry, "id: 1", "id: 0", 1),
			wantErr:  traveljournal.ErrInvalidEntry,
			contains: "id",
		},
		"non-http-link": {
			doc:      "entries:" + strings.Replace(validEntry, "https://maps/x", "'geo:35.36,138.72'", 1),
			wantErr:  traveljournal.ErrInvalidEntry,
			contains: "malformed googleMapsLink (want http_url)",
		},
		"script-link": {
			doc:      "entries:" + strings.Replace(validEntry, "https://maps/x", "'javascript:alert(1)'", 1),
			wantErr:  traveljournal.ErrInvalidEntry,
			contains: "googleMapsLink",
		},
		"relative-link": {
			doc:      "entries:" + strings.Replace(validEntry, "https://maps/x", "/maps/x", 1),
			wantErr:  traveljournal.ErrInvalidEntry,
			contains: "googleMapsLink",
		},
		"http-link": {
			doc:   "entries:" + strings.Replace(validEntry, "https://maps/x", "http://maps.example.com/?q=fuji", 1),
			count: 1,
		},
		"duplicate-id": {
			doc:      "entries:" + validEntry + validEntry,
			wantErr:  traveljournal.ErrDuplicateID,
			contains: "first used by entry 0",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			entries, err := traveljournal.DecodeEntries(strings.NewReader(test.doc))
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				assert.Contains(t, err.Error(), test.contains)
				assert.Nil(t, entries)
				return
			}
			require.NoError(t, err)
			assert.Len(t, entries, test.count)
		})
	}
}

func TestDecodeEntriesUnknownField(t *testing.T) {
	t.Parallel()

	_, err := traveljournal.DecodeEntries(strings.NewReader("entries:" + validEntry + "\n    weather: sunny"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weather")
}

func TestDecodeEntriesKeepsOrder(t *testing.T) {
	t.Parallel()

	doc := "entries:" + strings.Replace(validEntry, "id: 1", "id: 9", 1) + strings.Replace(validEntry, "id: 1", "id: 4", 1)
	entries, err := traveljournal.DecodeEntries(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 9, entries[0].ID)
	assert.Equal(t, 4, entries[1].ID)
}

func TestLoadEntries(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"journal.yaml": {Data: []byte("entries:" + validEntry)},
	}
	entries, err := traveljournal.LoadEntries(fsys, "journal.yaml")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, traveljournal.JournalEntry{
		ID:             1,
		Image:          traveljournal.Image{Src: "a.jpg", Alt: "A"},
		Country:        "Japan",
		GoogleMapsLink: "https://maps/x",
		Title:          "Tokyo",
		Dates:          "Jan 2024",
		Text:           "Great trip",
	}, entries[0])

	_, err = traveljournal.LoadEntries(fsys, "missing.yaml")
	require.ErrorIs(t, err, fs.ErrNotExist)
}
