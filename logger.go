package vecsift

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vecsift-specific context.
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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCollection adds a collection name field to the logger.
func (l *Logger) WithCollection(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("collection", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogProfile logs a profiling run.
func (l *Logger) LogProfile(ctx context.Context, records int, duplicates int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "profile failed",
			"records", records,
			"error", err,
		)
	} else if duplicates > 0 {
		l.WarnContext(ctx, "profile completed with duplicate ids",
			"records", records,
			"duplicates", duplicates,
		)
	} else {
		l.InfoContext(ctx, "profile completed",
			"records", records,
		)
	}
}

// LogCurate logs a curation run.
func (l *Logger) LogCurate(ctx context.Context, in, out, cap int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "curation failed",
			"records", in,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "curation completed",
			"records", in,
			"exported", out,
			"cap", cap,
		)
	}
}

// LogArtifact logs an artifact write.
func (l *Logger) LogArtifact(ctx context.Context, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "artifact write failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "artifact written",
			"path", path,
		)
	}
}
