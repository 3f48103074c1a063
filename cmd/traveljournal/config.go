package main

import (
	"os"
	"strings"
)

// Config holds the settings shared by every command. Values come from the
// environment, optionally seeded from a .env file, and flags override them.
type Config struct {
	// Title is the document title of the rendered page.
	Title string

	// AssetBase is the URL the journal's logo and marker images are
	// served from.
	AssetBase string

	// Stylesheets are linked from the page's <head>, in order.
	Stylesheets []string

	// DataFile is a YAML file of entries to render instead of the
	// embedded ones.
	DataFile string

	// Addr is the address serve listens on.
	Addr string
}

func loadConfig() Config {
	return Config{
		Title:       getEnv("TRAVELJOURNAL_TITLE", ""),
		AssetBase:   getEnv("TRAVELJOURNAL_ASSET_BASE", ""),
		Stylesheets: parseList(getEnv("TRAVELJOURNAL_STYLESHEETS", "")),
		DataFile:    getEnv("TRAVELJOURNAL_DATA", ""),
		Addr:        getEnv("TRAVELJOURNAL_ADDR", ":8080"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

// parseList splits a comma-separated list, dropping empty items.
func parseList(s string) []string {
	var results []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			results = append(results, item)
		}
	}
	return results
}
