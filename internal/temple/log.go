package temple

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var (
	slogCtxKey = ctxKey{}
)

// Logger returns the *slog.Logger stored in ctx by LoggingContext. If there
// isn't one, the returned logger discards everything.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(slogCtxKey).(*slog.Logger)
	if !ok || logger == nil {
		return slog.New(noopHandler{})
	}
	return logger
}

// LoggingContext returns a copy of ctx that carries logger. Render and
// Execute log through it.
func LoggingContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, slogCtxKey, logger)
}

type noopHandler struct{}

func (noopHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (noopHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (n noopHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return n
}

func (n noopHandler) WithGroup(_ string) slog.Handler {
	return n
}
