package logger

import "context"

type contextKey string

const (
	loggerKey contextKey = "shardmap.logger"
	runIDKey  contextKey = "shardmap.run_id"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithRunID tags the context with a workload run identifier.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run identifier from context.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// L returns the context logger enriched with the run identifier.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)
	if runID := RunIDFromContext(ctx); runID != "" {
		l = l.With("run_id", runID)
	}
	return l
}
