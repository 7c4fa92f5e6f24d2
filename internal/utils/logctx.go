package utils

import (
	"context"

	"go.uber.org/zap"
)

// RequestIDField is the field name carrying the correlation id on request-scoped loggers.
const RequestIDField = "request_id"

type ctxKey int

const ctxKeyLogger ctxKey = iota

// BindRequestID derives a logger stamped with requestID and stores it in the returned context.
// The parent logger is left untouched, so concurrent invocations never see each other's ids.
func BindRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	bound := logger.With(String(RequestIDField, requestID))
	return context.WithValue(ctx, ctxKeyLogger, bound), bound
}

// LoggerFromContext returns the request-scoped logger, or the global logger outside a request.
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKeyLogger).(*zap.Logger); ok {
		return l
	}
	return GetLogger()
}
