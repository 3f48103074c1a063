package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"impractical.co/traveljournal"
	"impractical.co/traveljournal/internal/temple"
)

func testContext() context.Context {
	return temple.LoggingContext(context.Background(), slog.New(slog.DiscardHandler))
}

// runCommand runs a fresh command tree with args, returning what it wrote to
// stdout and the options it resolved.
func runCommand(t *testing.T, ctx context.Context, args ...string) (string, *options, error) {
	t.Helper()

	opts := &options{}
	cmd := newRootCmd(opts)
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), opts, err
}

func TestRenderUsesEnv(t *testing.T) {
	t.Setenv("TRAVELJOURNAL_TITLE", "Env title")
	t.Setenv("TRAVELJOURNAL_STYLESHEETS", "/env.css")

	out, opts, err := runCommand(t, context.Background(), "render")
	require.NoError(t, err)
	assert.Contains(t, out, "<title>Env title</title>")
	assert.Contains(t, out, `<link rel="stylesheet" href="/env.css">`)
	assert.Contains(t, out, `data-key="1"`)
	assert.Equal(t, "Env title", opts.cfg.Title)
}

func TestRenderFlagsOverrideEnv(t *testing.T) {
	t.Setenv("TRAVELJOURNAL_TITLE", "Env title")
	t.Setenv("TRAVELJOURNAL_ASSET_BASE", "https://env.example.com")
	t.Setenv("TRAVELJOURNAL_STYLESHEETS", "/env.css")

	path := filepath.Join(t.TempDir(), "page.html")
	out, _, err := runCommand(t, context.Background(), "render",
		"--out", path,
		"--title", "X",
		"--asset-base", "https://cdn.example.com",
		"--stylesheet", "/a.css", "--stylesheet", "/b.css",
	)
	require.NoError(t, err)
	assert.Empty(t, out)

	page, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>X</title>")
	assert.NotContains(t, string(page), "Env title")
	assert.Contains(t, string(page), `src="https://cdn.example.com/images/globe.png"`)
	assert.Contains(t, string(page), `<link rel="stylesheet" href="/a.css">`)
	assert.Contains(t, string(page), `<link rel="stylesheet" href="/b.css">`)
	assert.NotContains(t, string(page), "/env.css")
}

func TestRenderDataFlag(t *testing.T) {
	t.Setenv("TRAVELJOURNAL_DATA", filepath.Join(t.TempDir(), "missing.yaml"))

	path := filepath.Join(t.TempDir(), "trips.yaml")
	doc := `entries:
  - id: 42
    img: {src: cusco.jpg, alt: Streets of Cusco}
    country: Peru
    googleMapsLink: https://maps.example.com/cusco
    title: Cusco
    dates: Jul 2023
    text: Altitude.`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out, _, err := runCommand(t, context.Background(), "render", "--data", path)
	require.NoError(t, err)
	assert.Contains(t, out, `data-key="42"`)
	assert.NotContains(t, out, `data-key="1"`)

	_, _, err = runCommand(t, context.Background(), "render")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestServeAddrOverridesEnv(t *testing.T) {
	t.Setenv("TRAVELJOURNAL_ADDR", "127.0.0.1:1")

	// an already cancelled context makes serve shut down straight away
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, opts, err := runCommand(t, ctx, "serve", "--addr", "127.0.0.1:0", "--title", "Served")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", opts.cfg.Addr)
	assert.Equal(t, "Served", opts.cfg.Title)
}

func TestServeAddrFromEnv(t *testing.T) {
	t.Setenv("TRAVELJOURNAL_ADDR", "127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, opts, err := runCommand(t, ctx, "serve")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", opts.cfg.Addr)
}

func TestRenderFileRemovedOnError(t *testing.T) {
	t.Parallel()

	// no templates, so rendering fails after the file is created
	site := traveljournal.Site{CachedSite: temple.NewCachedSite(fstest.MapFS{})}
	path := filepath.Join(t.TempDir(), "page.html")

	err := renderFile(testContext(), path, site, traveljournal.NewApp(nil))
	require.ErrorIs(t, err, temple.ErrTemplatePatternMatchesNoFiles)
	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestRenderFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "page.html")
	err := renderFile(testContext(), path, traveljournal.NewSite("File", ""), traveljournal.NewApp(nil))
	require.NoError(t, err)

	page, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>File</title>")
}
