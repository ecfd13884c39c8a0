package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	userKey
)

func (a *Adapter) WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func (a *Adapter) WithUser(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userKey, email)
}

func (a *Adapter) GenerateRequestID() string {
	return uuid.NewString()
}

// contextFields returns the request scoped fields found in ctx.
func contextFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}

	var fields []zap.Field
	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if user, ok := ctx.Value(userKey).(string); ok && user != "" {
		fields = append(fields, zap.String("user", user))
	}
	return fields
}

func (a *Adapter) fromContext(ctx context.Context) *zap.Logger {
	fields := contextFields(ctx)
	if len(fields) == 0 {
		return a.zap
	}
	return a.zap.With(fields...)
}
