package middleware

import (
	"context"

	"github.com/excavacionesmoreno/quote-backend/internal/cart"
)

type contextKey string

const (
	ctxRequestID contextKey = "request_id"
	ctxSessionID contextKey = "session_id"
	ctxCart      contextKey = "cart"
)

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRequestID).(string); ok {
		return v
	}
	return ""
}

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// CartFromContext returns the cart store bound to the request's session.
func CartFromContext(ctx context.Context) (*cart.Store, bool) {
	if ctx == nil {
		return nil, false
	}
	store, ok := ctx.Value(ctxCart).(*cart.Store)
	return store, ok && store != nil
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRequestID, requestID)
}

// WithSession injects the session id and its cart store for downstream handlers.
func WithSession(ctx context.Context, sessionID string, store *cart.Store) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxSessionID, sessionID)
	return context.WithValue(ctx, ctxCart, store)
}
