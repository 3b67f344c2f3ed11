package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/masq"
)

var (
	mu            sync.Mutex
	defaultLogger = newConsoleLogger(os.Stderr, slog.LevelInfo)
)

type ctxKey struct{}

func newConsoleLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := clog.New(
		clog.WithWriter(w),
		clog.WithLevel(level),
		clog.WithReplaceAttr(masq.New(
			masq.WithTag("secret"),
			masq.WithFieldName("Token"),
		)),
	)
	return slog.New(handler)
}

// Default returns the process-wide logger.
func Default() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}

// Configure replaces the default logger. All diagnostic output goes to w,
// which should be stderr so it never mixes with rendered command output.
func Configure(w io.Writer, level slog.Level) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = newConsoleLogger(w, level)
	return defaultLogger
}

// With returns a context carrying the given logger.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From extracts the logger from ctx, falling back to the default.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}
