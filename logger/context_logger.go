package logger

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

// ContextKey is the type for context keys used in logging
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	UserIDKey    ContextKey = "user_id"
	OperationKey ContextKey = "operation"

	SearchWordsKey ContextKey = "search.words"
	EventIDKey     ContextKey = "stream.event_id"
)

// GlobalContext is the global ContextLogger instance
var GlobalContext *ContextLogger

// ContextLogger wraps a slog.Logger to add context-aware logging
type ContextLogger struct {
	logger *slog.Logger
}

func NewContextLogger(logger *slog.Logger) *ContextLogger {
	return &ContextLogger{logger: logger}
}

// WithContext returns a logger carrying the request values found in ctx.
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	args := make([]any, 0, 10)

	for _, key := range []ContextKey{RequestIDKey, UserIDKey, OperationKey, SearchWordsKey, EventIDKey} {
		if v, ok := ctx.Value(key).(string); ok {
			args = append(args, string(key), v)
		}
	}

	return cl.logger.With(args...)
}

// LogDuration logs an operation completion with duration in milliseconds
func (cl *ContextLogger) LogDuration(ctx context.Context, operation string, durationMs int64) {
	cl.WithContext(ctx).Info("operation completed",
		"operation", operation,
		"duration_ms", durationMs,
	)
}

func (cl *ContextLogger) LogDurationTime(ctx context.Context, operation string, duration time.Duration) {
	cl.LogDuration(ctx, operation, duration.Milliseconds())
}

// LogError logs an operation failure with error details
func (cl *ContextLogger) LogError(ctx context.Context, operation string, err error) {
	cl.WithContext(ctx).Error("operation failed",
		"operation", operation,
		"error", err,
	)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, strconv.FormatInt(userID, 10))
}

func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, OperationKey, operation)
}

func WithSearchWords(ctx context.Context, words string) context.Context {
	return context.WithValue(ctx, SearchWordsKey, words)
}

func WithEventID(ctx context.Context, eventID string) context.Context {
	return context.WithValue(ctx, EventIDKey, eventID)
}

// FromContext returns the context logger, falling back to slog.Default before
// Init has run.
func FromContext(ctx context.Context) *slog.Logger {
	if GlobalContext == nil {
		return NewContextLogger(slog.Default()).WithContext(ctx)
	}
	return GlobalContext.WithContext(ctx)
}
