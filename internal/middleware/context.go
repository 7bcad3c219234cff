package middleware

import (
	"context"

	"finitefield.org/stays-web/internal/kvstore"
)

// context keys are unexported to avoid collisions
type ctxKey string

const (
	ctxKeyRequestID ctxKey = "req_id"
	ctxKeyIsHTMX    ctxKey = "is_htmx"
	ctxKeySession   ctxKey = "session"
	ctxKeyStore     ctxKey = "visitor_store"
)

// WithRequestID stores request id in context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// RequestID gets request id from context
func RequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyRequestID).(string)
	return v, ok
}

// WithHTMX marks request as HTMX
func WithHTMX(ctx context.Context, is bool) context.Context {
	return context.WithValue(ctx, ctxKeyIsHTMX, is)
}

// IsHTMX returns whether this is an htmx request
func IsHTMX(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyIsHTMX).(bool)
	return v
}

// WithStore attaches the visitor's key-value cache.
func WithStore(ctx context.Context, s kvstore.Store) context.Context {
	return context.WithValue(ctx, ctxKeyStore, s)
}

// StoreFromContext returns the visitor's key-value cache, or nil outside VisitorStore.
func StoreFromContext(ctx context.Context) kvstore.Store {
	s, _ := ctx.Value(ctxKeyStore).(kvstore.Store)
	return s
}
