package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"finitefield.org/stays-web/internal/kvstore"
	"finitefield.org/stays-web/internal/observability"
)

func TestOpenEmpty(t *testing.T) {
	t.Parallel()

	l, err := Open(context.Background(), kvstore.NewMemory())
	require.NoError(t, err)
	require.Equal(t, 0, l.Len())
	require.False(t, l.IsFavorited(1))
}

func TestTogglePersistsInInsertionOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemory()
	l, err := Open(ctx, store)
	require.NoError(t, err)

	added, err := l.Toggle(ctx, 3)
	require.NoError(t, err)
	require.True(t, added)
	_, err = l.Toggle(ctx, 1)
	require.NoError(t, err)

	raw, ok, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[3,1]", raw)

	added, err = l.Toggle(ctx, 3)
	require.NoError(t, err)
	require.False(t, added)
	raw, _, _ = store.Get(ctx, StorageKey)
	require.Equal(t, "[1]", raw)

	_, err = l.Toggle(ctx, 1)
	require.NoError(t, err)
	raw, _, _ = store.Get(ctx, StorageKey)
	require.Equal(t, "[]", raw)

	reopened, err := Open(ctx, store)
	require.NoError(t, err)
	require.Equal(t, 0, reopened.Len())
}

func TestOpenRestoresStoredSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(ctx, StorageKey, "[5,2,5,-1,0,99]"))

	l, err := Open(ctx, store)
	require.NoError(t, err)
	// duplicates and non-positive ids are dropped, stale ids are kept
	require.Equal(t, []int{5, 2, 99}, l.IDs())
	require.True(t, l.IsFavorited(99))
}

func TestOpenMalformedDegradesToEmpty(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"{not json", `"1,2"`, `{"ids":[1]}`, `["a"]`} {
		raw := raw
		t.Run(raw, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			core, logs := observer.New(zapcore.WarnLevel)
			ctx = observability.WithLogger(ctx, zap.New(core))

			store := kvstore.NewMemory()
			require.NoError(t, store.Set(ctx, StorageKey, raw))

			l, err := Open(ctx, store)
			require.NoError(t, err)
			require.Equal(t, 0, l.Len())
			require.Equal(t, 1, logs.Len())
		})
	}
}

type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingStore) Set(context.Context, string, string) error        { return f.err }

func TestToggleReportsWriteFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	l := &Ledger{store: failingStore{err: boom}, set: map[int]struct{}{}, loaded: true}
	added, err := l.Toggle(context.Background(), 4)
	require.ErrorIs(t, err, boom)
	require.True(t, added)
	require.True(t, l.IsFavorited(4))

	_, err = Open(context.Background(), failingStore{err: boom})
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, ErrUnavailable)
}

// flakyStore fails the first n reads and then serves the wrapped store.
type flakyStore struct {
	kvstore.Store
	failures int
	writes   int
}

func (f *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failures > 0 {
		f.failures--
		return "", false, errors.New("read timeout")
	}
	return f.Store.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	f.writes++
	return f.Store.Set(ctx, key, value)
}

func TestToggleAfterFailedReadKeepsStoredSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mem := kvstore.NewMemory()
	require.NoError(t, mem.Set(ctx, StorageKey, "[1,2,3]"))
	store := &flakyStore{Store: mem, failures: 2}

	l, err := Open(ctx, store)
	require.ErrorIs(t, err, ErrUnavailable)
	require.False(t, l.Loaded())
	require.Zero(t, l.Len())

	added, err := l.Toggle(ctx, 5)
	require.ErrorIs(t, err, ErrUnavailable)
	require.False(t, added)
	require.Zero(t, store.writes)
	raw, _, _ := mem.Get(ctx, StorageKey)
	require.Equal(t, "[1,2,3]", raw)

	added, err = l.Toggle(ctx, 5)
	require.NoError(t, err)
	require.True(t, added)
	require.True(t, l.Loaded())
	require.Equal(t, []int{1, 2, 3, 5}, l.IDs())
	raw, _, _ = mem.Get(ctx, StorageKey)
	require.Equal(t, "[1,2,3,5]", raw)
}

func TestToggleIsAnInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		store := kvstore.NewMemory()
		l, err := Open(ctx, store)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		seed := rapid.SliceOfDistinct(rapid.IntRange(1, 20), rapid.ID[int]).Draw(t, "seed")
		for _, id := range seed {
			if _, err := l.Toggle(ctx, id); err != nil {
				t.Fatalf("toggle: %v", err)
			}
		}
		before, ok, _ := store.Get(ctx, StorageKey)
		if !ok {
			before = "[]"
		}
		id := rapid.IntRange(1, 20).Draw(t, "id")

		first, _ := l.Toggle(ctx, id)
		second, _ := l.Toggle(ctx, id)
		if first == second {
			t.Fatalf("toggle twice returned the same state %v", first)
		}
		if l.IsFavorited(id) != !first {
			t.Fatalf("membership of %d not restored", id)
		}
		reopened, err := Open(ctx, store)
		if err != nil {
			t.Fatalf("reopen: %v", err)
		}
		if reopened.IsFavorited(id) != l.IsFavorited(id) {
			t.Fatalf("persisted membership of %d diverged", id)
		}
		// add-then-remove restores the stored form exactly; remove-then-add moves id last
		if got, _, _ := store.Get(ctx, StorageKey); first && got != before {
			t.Fatalf("stored set changed: %s -> %s", before, got)
		}
		if len(reopened.IDs()) != len(seed) {
			t.Fatalf("expected %d ids, got %d", len(seed), len(reopened.IDs()))
		}
	})
}
