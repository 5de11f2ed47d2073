package langclust

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with pipeline-specific context.
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

// LogParse logs the outcome of the dump parsing stage.
func (l *Logger) LogParse(ctx context.Context, lines int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "parse failed",
			"lines", lines,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "parse completed",
			"lines", lines,
		)
	}
}

// LogAssociate logs the outcome of the question/answer association stage.
func (l *Logger) LogAssociate(ctx context.Context, err error) {
	if err != nil {
		l.ErrorContext(ctx, "associate failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "associate completed")
	}
}

// LogSeed logs the outcome of the center seeding stage.
func (l *Logger) LogSeed(ctx context.Context, k int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "seeding failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "seeding completed",
			"k", k,
		)
	}
}

// LogIteration logs a completed refinement iteration.
func (l *Logger) LogIteration(ctx context.Context, iteration int, shift int64) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"shift", shift,
	)
}

// LogEmptyCluster logs a center that received no points in an iteration.
func (l *Logger) LogEmptyCluster(ctx context.Context, iteration, center int) {
	l.WarnContext(ctx, "empty cluster",
		"iteration", iteration,
		"center", center,
	)
}

// LogRefine logs the outcome of the refinement loop.
func (l *Logger) LogRefine(ctx context.Context, iterations int, converged bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "refinement failed",
			"iterations", iterations,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "refinement completed",
			"iterations", iterations,
			"converged", converged,
		)
	}
}

// LogSummary logs the outcome of the summary stage.
func (l *Logger) LogSummary(ctx context.Context, clusters int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "summary failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "summary completed",
			"clusters", clusters,
		)
	}
}
