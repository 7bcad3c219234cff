// Package favorites keeps the set of listings a visitor has marked, persisted in the
// visitor's key-value cache.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"finitefield.org/stays-web/internal/kvstore"
	"finitefield.org/stays-web/internal/observability"
)

// StorageKey is the cache key holding the serialized set.
const StorageKey = "favorites"

// ErrUnavailable is returned when the stored set could not be read. Nothing is written
// while the ledger is in that state.
var ErrUnavailable = errors.New("favorites: stored set unavailable")

// Ledger is a visitor's favorites set. It is owned by a single request and not safe for
// concurrent use.
type Ledger struct {
	store  kvstore.Store
	order  []int
	set    map[int]struct{}
	loaded bool
}

// Open loads the ledger from store. Absent or malformed content yields an empty ledger.
// A failing store read returns a usable, empty ledger together with an error wrapping
// ErrUnavailable; such a ledger retries the read before its first write.
func Open(ctx context.Context, store kvstore.Store) (*Ledger, error) {
	l := &Ledger{store: store, set: make(map[int]struct{})}
	return l, l.load(ctx)
}

// Loaded reports whether the stored set was read.
func (l *Ledger) Loaded() bool { return l.loaded }

func (l *Ledger) load(ctx context.Context) error {
	raw, ok, err := l.store.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	l.order = nil
	l.set = make(map[int]struct{})
	l.loaded = true
	if !ok || raw == "" {
		return nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		observability.FromContext(ctx).Warn("favorites: discarding malformed stored set",
			zap.String("key", StorageKey), zap.Error(err))
		return nil
	}
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		l.add(id)
	}
	return nil
}

// IsFavorited reports whether id is in the set.
func (l *Ledger) IsFavorited(id int) bool {
	_, ok := l.set[id]
	return ok
}

// Toggle flips membership of id and persists the whole set. It returns the new membership
// state; a non-nil error reports a failed write, the in-memory flip stands regardless.
// When the stored set cannot be read, Toggle changes nothing and returns ErrUnavailable.
func (l *Ledger) Toggle(ctx context.Context, id int) (bool, error) {
	if !l.loaded {
		if err := l.load(ctx); err != nil {
			return false, err
		}
	}
	var added bool
	if l.IsFavorited(id) {
		l.remove(id)
	} else {
		l.add(id)
		added = true
	}
	return added, l.save(ctx)
}

// IDs returns the favorited ids in insertion order.
func (l *Ledger) IDs() []int {
	out := make([]int, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of favorited ids.
func (l *Ledger) Len() int { return len(l.order) }

func (l *Ledger) add(id int) {
	if _, ok := l.set[id]; ok {
		return
	}
	l.set[id] = struct{}{}
	l.order = append(l.order, id)
}

func (l *Ledger) remove(id int) {
	delete(l.set, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			return
		}
	}
}

func (l *Ledger) save(ctx context.Context) error {
	ids := l.order
	if ids == nil {
		ids = []int{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("favorites: encode: %w", err)
	}
	if err := l.store.Set(ctx, StorageKey, string(b)); err != nil {
		return fmt.Errorf("favorites: save: %w", err)
	}
	return nil
}
