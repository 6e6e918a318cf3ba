package molstruct

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with molstruct-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithModel adds a model label field to the logger.
func (l *Logger) WithModel(label string) *Logger {
	return &Logger{
		Logger: l.Logger.With("model", label),
	}
}

// LogDecompose logs the result of decomposing one model into units. Attach
// the model label with WithModel before calling.
func (l *Logger) LogDecompose(ctx context.Context, chains, units int) {
	l.DebugContext(ctx, "model decomposed",
		"chains", chains,
		"units", units,
	)
}
