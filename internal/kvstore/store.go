// Package kvstore holds the small per-visitor key-value cache the storefront persists
// favorites and preferences in.
package kvstore

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyKey is returned when a caller passes a blank key.
var ErrEmptyKey = errors.New("kvstore: empty key")

// Store is a string key-value cache. A missing key reports ok=false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Prefixed scopes every key of an underlying store under prefix.
type Prefixed struct {
	prefix string
	next   Store
}

// WithPrefix returns a Store that namespaces keys as prefix+key.
func WithPrefix(next Store, prefix string) *Prefixed {
	return &Prefixed{prefix: prefix, next: next}
}

// VisitorPrefix builds the namespace used for one visitor session.
func VisitorPrefix(base, sessionID string) string {
	return base + "visitor:" + sessionID + ":"
}

func (p *Prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, ErrEmptyKey
	}
	return p.next.Get(ctx, p.prefix+key)
}

func (p *Prefixed) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return p.next.Set(ctx, p.prefix+key, value)
}
