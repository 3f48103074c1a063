package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"impractical.co/traveljournal"
	"impractical.co/traveljournal/internal/temple"
)

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the journal page over HTTP",
		Long:  `Serve the journal page at / until interrupted. /healthz reports whether the server is up.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, app, err := buildPage(opts.cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger := temple.Logger(ctx)

			server := &http.Server{
				Addr:              opts.cfg.Addr,
				Handler:           newRouter(site, app, logger),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errs := make(chan error, 1)
			go func() {
				logger.InfoContext(ctx, "serving journal", "addr", server.Addr, "entries", len(app.Entries))
				errs <- server.ListenAndServe()
			}()

			select {
			case err := <-errs:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("error serving journal: %w", err)
			case <-ctx.Done():
			}

			logger.InfoContext(ctx, "shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "Address to listen on (env TRAVELJOURNAL_ADDR)")
	return cmd
}

func newRouter(site traveljournal.Site, app traveljournal.App, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", pageHandler(site, app))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// requestLogger attaches a request-scoped logger to each request's context
// and logs the request once it's been served.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.With("request_id", middleware.GetReqID(r.Context()))
			ctx := temple.LoggingContext(r.Context(), reqLogger)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.InfoContext(ctx, "served request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

func pageHandler(site traveljournal.Site, app traveljournal.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		var page bytes.Buffer
		err := temple.Execute(ctx, &page, site, app)
		if err != nil {
			temple.Logger(ctx).ErrorContext(ctx, "error rendering journal", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			temple.RenderServerError(ctx, w, site)
			return
		}
		_, err = page.WriteTo(w)
		if err != nil {
			temple.Logger(ctx).ErrorContext(ctx, "error writing journal", "error", err)
		}
	}
}
