package lloyd

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clustering-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithK adds a k (centroid count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithStrategy adds the update strategy and its worker count.
func (l *Logger) WithStrategy(strategy Strategy, workers int) *Logger {
	return &Logger{
		Logger: l.Logger.With("strategy", strategy.String(), "workers", workers),
	}
}

// LogLoad logs reading the point source.
func (l *Logger) LogLoad(ctx context.Context, points, dimension int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"points", points,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "points loaded",
		"points", points,
		"dimension", dimension,
		"elapsed", elapsed,
	)
}

// LogSeed logs the initial centroid selection.
func (l *Logger) LogSeed(ctx context.Context, k, fallbacks int, elapsed time.Duration) {
	if fallbacks > 0 {
		l.WarnContext(ctx, "seeding fell back to uniform sampling",
			"k", k,
			"fallbacks", fallbacks,
		)
	}
	l.InfoContext(ctx, "centroids seeded",
		"k", k,
		"elapsed", elapsed,
	)
}

// LogGeneration logs one completed generation.
func (l *Logger) LogGeneration(ctx context.Context, generation int, objective float64, empty, reseeded int, elapsed time.Duration) {
	if empty > 0 {
		l.WarnContext(ctx, "generation left clusters empty",
			"generation", generation,
			"empty", empty,
			"reseeded", reseeded,
		)
	}
	l.DebugContext(ctx, "generation completed",
		"generation", generation,
		"objective", objective,
		"elapsed", elapsed,
	)
}

// LogRun logs a Run call.
func (l *Logger) LogRun(ctx context.Context, generations int, objective float64, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"generations", generations,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "run completed",
		"generations", generations,
		"objective", objective,
		"elapsed", elapsed,
	)
}

// LogExport logs writing assignments to a sink.
func (l *Logger) LogExport(ctx context.Context, points int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "export failed",
			"points", points,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "assignments exported",
		"points", points,
	)
}
