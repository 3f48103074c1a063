package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"impractical.co/traveljournal"
	"impractical.co/traveljournal/internal/temple"
)

func newRenderCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the journal page once",
		Long:  `Render the journal page and write it to stdout, or to the file named by --out.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			site, app, err := buildPage(opts.cfg)
			if err != nil {
				return err
			}

			if opts.out != "" {
				err = renderFile(ctx, opts.out, site, app)
			} else {
				err = temple.Execute(ctx, cmd.OutOrStdout(), site, app)
			}
			if err != nil {
				return fmt.Errorf("error rendering journal: %w", err)
			}
			temple.Logger(ctx).DebugContext(ctx, "rendered journal", "entries", len(app.Entries), "out", opts.out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "File to write the page to, instead of stdout")
	return cmd
}

// renderFile writes the page to path. If rendering or closing the file
// fails, the file is removed.
func renderFile(ctx context.Context, path string, site traveljournal.Site, app traveljournal.App) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %q: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("error closing %q: %w", path, closeErr))
		}
		if err == nil {
			return
		}
		if removeErr := os.Remove(path); removeErr != nil {
			temple.Logger(ctx).ErrorContext(ctx, "error removing partial output", "path", path, "error", removeErr)
		}
	}()
	return temple.Execute(ctx, file, site, app)
}
