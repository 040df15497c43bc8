// Package ctxlog carries a request-scoped slog.Logger through context so
// handlers and services log with the request's attributes attached.
package ctxlog

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// FromContext returns the logger stored in ctx, or slog.Default() when
// the request never passed through the logging middleware.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}
