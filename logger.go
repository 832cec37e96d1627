package slotvec

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with slotvec-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithName adds a snapshot name field to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// LogSave logs a snapshot save. Use WithName to attach the snapshot name.
func (l *Logger) LogSave(ctx context.Context, slots, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot save failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"slots", slots,
			"bytes", bytes,
		)
	}
}

// LogLoad logs a snapshot load.
func (l *Logger) LogLoad(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot load failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot loaded",
			"count", count,
		)
	}
}

// LogPrune logs removal of old snapshots.
func (l *Logger) LogPrune(ctx context.Context, deleted int, err error) {
	if err != nil {
		l.WarnContext(ctx, "snapshot prune failed",
			"deleted", deleted,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "snapshot prune completed",
			"deleted", deleted,
		)
	}
}
