package auth

import (
	"context"

	"clinicbook/backend/internal/domain"
)

type contextKey string

const callerKey contextKey = "caller"

func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	return caller, ok && caller.ID != ""
}
