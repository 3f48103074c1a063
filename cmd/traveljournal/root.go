package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"impractical.co/traveljournal"
	"impractical.co/traveljournal/internal/temple"
)

// options holds the flag values for one command tree, and the Config they
// resolve to once the flags are parsed.
type options struct {
	verbose     bool
	title       string
	assetBase   string
	stylesheets []string
	data        string
	addr        string
	out         string

	cfg Config
}

// newRootCmd builds the base command with all its subcommands, binding their
// flags to opts.
func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "traveljournal",
		Short: "Render a travel journal as an HTML page",
		Long: `traveljournal renders a static list of travel journal entries into a
single HTML page: a header, followed by one article per entry.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)

			if err := godotenv.Load(); err != nil {
				logger.Debug("no .env file loaded", "error", err)
			}
			opts.cfg = opts.resolve(cmd, loadConfig())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&opts.title, "title", "", "Document title (env TRAVELJOURNAL_TITLE)")
	flags.StringVar(&opts.assetBase, "asset-base", "", "Base URL for the journal's images (env TRAVELJOURNAL_ASSET_BASE)")
	flags.StringSliceVar(&opts.stylesheets, "stylesheet", nil, "Stylesheet URL to link, repeatable (env TRAVELJOURNAL_STYLESHEETS)")
	flags.StringVar(&opts.data, "data", "", "YAML file of entries, instead of the built-in ones (env TRAVELJOURNAL_DATA)")

	rootCmd.AddCommand(newRenderCmd(opts), newServeCmd(opts))
	return rootCmd
}

// resolve overrides cfg with every flag set on cmd's command line.
func (opts *options) resolve(cmd *cobra.Command, cfg Config) Config {
	flags := cmd.Flags()
	if flags.Changed("title") {
		cfg.Title = opts.title
	}
	if flags.Changed("asset-base") {
		cfg.AssetBase = opts.assetBase
	}
	if flags.Changed("stylesheet") {
		cfg.Stylesheets = opts.stylesheets
	}
	if flags.Changed("data") {
		cfg.DataFile = opts.data
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Addr = opts.addr
	}
	return cfg
}

// Execute builds the command tree and runs it against os.Args.
// This is called by main.main().
func Execute() {
	if err := newRootCmd(&options{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commandContext returns the command's context with the default logger
// attached, so temple logs through it.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return temple.LoggingContext(ctx, slog.Default())
}

// buildPage loads the entries cfg points at and returns the Site and App to
// render them with.
func buildPage(cfg Config) (traveljournal.Site, traveljournal.App, error) {
	site := traveljournal.NewSite(cfg.Title, cfg.AssetBase)
	entries, err := loadEntries(cfg.DataFile)
	if err != nil {
		return site, traveljournal.App{}, err
	}
	return site, traveljournal.NewApp(entries, cfg.Stylesheets...), nil
}

func loadEntries(path string) ([]traveljournal.JournalEntry, error) {
	if path == "" {
		return traveljournal.DefaultEntries()
	}
	return traveljournal.LoadEntries(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}
