package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	storeCodeKey contextKey = "store_code"
	userKey      contextKey = "user"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from context, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID records the request id in ctx
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithStoreCode records the merchant store serving the request
func WithStoreCode(ctx context.Context, storeCode string) context.Context {
	return context.WithValue(ctx, storeCodeKey, storeCode)
}

// WithUser records the authenticated principal name
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// GetStoreCode retrieves the store code from context
func GetStoreCode(ctx context.Context) string {
	v, _ := ctx.Value(storeCodeKey).(string)
	return v
}

// GetUser retrieves the principal name from context
func GetUser(ctx context.Context) string {
	v, _ := ctx.Value(userKey).(string)
	return v
}

// L returns the context logger enriched with the trace, request, store and
// user recorded in ctx. Empty values are omitted.
func L(ctx context.Context) *zap.Logger {
	return Enrich(ctx, FromContext(ctx))
}

// Enrich adds the fields recorded in ctx to l
func Enrich(ctx context.Context, l *zap.Logger) *zap.Logger {
	fields := make([]zap.Field, 0, 5)
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		fields = append(fields,
			zap.String("trace_id", spanCtx.TraceID().String()),
			zap.String("span_id", spanCtx.SpanID().String()),
		)
	}
	if v := GetRequestID(ctx); v != "" {
		fields = append(fields, zap.String("request_id", v))
	}
	if v := GetStoreCode(ctx); v != "" {
		fields = append(fields, zap.String("store_code", v))
	}
	if v := GetUser(ctx); v != "" {
		fields = append(fields, zap.String("user", v))
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}
