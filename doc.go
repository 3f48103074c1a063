// Package traveljournal renders a static collection of travel journal
// entries as an HTML page.
//
// The page is built from three temple Components. Header is the fixed logo
// and title. Entry renders one JournalEntry as an article. App is the page
// itself: it maps every JournalEntry to an Entry, in collection order, and
// puts them in a container below the Header.
//
// Entries come from a YAML document, either the one embedded in the binary
// (DefaultEntries) or one supplied by the caller (LoadEntries,
// DecodeEntries). Every record is validated when it's loaded, so a page is
// only ever built from complete records with unique ids.
//
// To render, build a Site with NewSite and hand it, along with an App, to
// temple.Render or temple.Execute.
package traveljournal
