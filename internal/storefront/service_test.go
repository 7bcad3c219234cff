package storefront

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/stays-web/internal/booking"
	"finitefield.org/stays-web/internal/catalog"
	"finitefield.org/stays-web/internal/favorites"
	"finitefield.org/stays-web/internal/kvstore"
	"finitefield.org/stays-web/internal/notify"
	"finitefield.org/stays-web/internal/prefs"
)

func newService(t *testing.T, opts Options) *Service {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return New(c, opts, nil)
}

func newVisitor(t *testing.T, store kvstore.Store) (*Visitor, *notify.Collector) {
	t.Helper()
	if store == nil {
		store = kvstore.NewMemory()
	}
	var c notify.Collector
	return OpenVisitor(context.Background(), store, &c), &c
}

func cardIDs(view ListingsView) []int {
	out := make([]int, 0, len(view.Grid.Cards))
	for _, c := range view.Grid.Cards {
		out = append(out, c.ID)
	}
	return out
}

func lastNote(t *testing.T, c *notify.Collector) notify.Notification {
	t.Helper()
	n, ok := c.Last()
	require.True(t, ok, "expected a notification")
	return n
}

func TestListingsByCategory(t *testing.T) {
	t.Parallel()

	svc := newService(t, Options{})
	view := svc.Listings(DefaultState(), nil)
	require.Equal(t, 12, view.Grid.Count)
	require.Equal(t, 12, view.Total)

	view = svc.SelectCategory(DefaultState(), "cabin", nil)
	require.Equal(t, []int{3, 9}, cardIDs(view))
	require.Equal(t, "/favorites/3?category=cabin", view.Grid.Cards[0].FavoriteHref)

	view = svc.SelectCategory(DefaultState(), "castle", nil)
	require.True(t, view.Grid.Empty)
}

func TestListingsRefinedByFilters(t *testing.T) {
	t.Parallel()

	svc := newService(t, Options{})
	state := StateFromQuery(url.Values{"category": {"cabin"}, "type": {"cabin"}, "max_price": {"400"}})
	require.Equal(t, []int{9}, cardIDs(svc.Listings(state, nil)))

	state = StateFromQuery(url.Values{"max_price": {"300"}})
	require.Equal(t, []int{2, 11}, cardIDs(svc.Listings(state, nil)))
}

func TestToggleFavorite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemory()
	svc := newService(t, Options{})
	v, notes := newVisitor(t, store)

	view, added, err := svc.ToggleFavorite(ctx, v, 6, DefaultState().WithCategory(catalog.CategoryCity))
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, []int{2, 6}, cardIDs(view))
	require.True(t, view.Grid.Cards[1].Favorited)
	require.Equal(t, notify.Notification{Message: "Added to favorites", Kind: notify.KindSuccess}, lastNote(t, notes))

	raw, _, _ := store.Get(ctx, favorites.StorageKey)
	require.Equal(t, "[6]", raw)

	_, added, err = svc.ToggleFavorite(ctx, v, 6, DefaultState())
	require.NoError(t, err)
	require.False(t, added)
	require.Equal(t, notify.Notification{Message: "Removed from favorites", Kind: notify.KindInfo}, lastNote(t, notes))

	_, _, err = svc.ToggleFavorite(ctx, v, 404, DefaultState())
	require.ErrorIs(t, err, ErrPropertyNotFound)
	require.Equal(t, 2, notes.Len(), "unknown ids raise nothing")
}

// slowStore fails its first read, as a timed out backend would.
type slowStore struct {
	kvstore.Store
	failed bool
}

func (s *slowStore) Get(ctx context.Context, key string) (string, bool, error) {
	if !s.failed {
		s.failed = true
		return "", false, errors.New("i/o timeout")
	}
	return s.Store.Get(ctx, key)
}

func TestToggleFavoriteAfterFailedLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mem := kvstore.NewMemory()
	require.NoError(t, mem.Set(ctx, favorites.StorageKey, "[1,2,3]"))
	svc := newService(t, Options{})
	v, notes := newVisitor(t, &slowStore{Store: mem})
	require.False(t, v.Favorites.Loaded())

	// the retry inside Toggle reaches the store, so the stored set survives
	_, added, err := svc.ToggleFavorite(ctx, v, 5, DefaultState())
	require.NoError(t, err)
	require.True(t, added)
	raw, _, _ := mem.Get(ctx, favorites.StorageKey)
	require.Equal(t, "[1,2,3,5]", raw)
	require.Equal(t, "Added to favorites", lastNote(t, notes).Message)

	v, notes = newVisitor(t, failingReads{})
	_, _, err = svc.ToggleFavorite(ctx, v, 5, DefaultState())
	require.ErrorIs(t, err, favorites.ErrUnavailable)
	require.Equal(t, notify.Notification{
		Message: "Favorites are unavailable right now. Please try again.",
		Kind:    notify.KindError,
	}, lastNote(t, notes))
	require.Equal(t, 1, notes.Len())
}

// failingReads never answers a read and panics on a write.
type failingReads struct{ kvstore.Store }

func (failingReads) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func (failingReads) Set(context.Context, string, string) error {
	panic("unexpected write")
}

func TestOpenProperty(t *testing.T) {
	t.Parallel()

	svc := newService(t, Options{})
	d, err := svc.OpenProperty(1)
	require.NoError(t, err)
	require.Equal(t, 4810, d.Breakdown.Total)

	_, err = svc.OpenProperty(0)
	require.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestReserve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	svc := newService(t, Options{Now: func() time.Time { return now }})
	v, notes := newVisitor(t, nil)

	_, err := svc.Reserve(ctx, v, 2, booking.ReservationRequest{CheckIn: "2026-11-01", Guests: 1})
	require.ErrorIs(t, err, booking.ErrMissingDates)
	require.Equal(t, notify.Notification{Message: "Please select check-in and check-out dates", Kind: notify.KindError}, lastNote(t, notes))

	res, err := svc.Reserve(ctx, v, 2, booking.ReservationRequest{CheckIn: "2026-11-01", CheckOut: "2026-11-06", Guests: 2})
	require.NoError(t, err)
	require.NotEmpty(t, res.Code)
	require.Equal(t, now, res.CreatedAt)
	require.Equal(t, notify.Notification{Message: "Reservation confirmed for Modern Downtown Apartment!", Kind: notify.KindSuccess}, lastNote(t, notes))

	_, err = svc.Reserve(ctx, v, 2, booking.ReservationRequest{CheckIn: "2026-11-01", CheckOut: "2026-11-06", Guests: 9})
	require.ErrorIs(t, err, booking.ErrGuestsOutOfRange)
	require.Equal(t, "Please select between 1 and 4 guests", lastNote(t, notes).Message)

	_, err = svc.Reserve(ctx, v, 99, booking.ReservationRequest{})
	require.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestSubmitSearch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newService(t, Options{})
	v, notes := newVisitor(t, nil)
	state := DefaultState().WithCategory(catalog.CategoryPool)

	_, err := svc.SubmitSearch(ctx, v, booking.SearchRequest{CheckIn: "2026-11-01", CheckOut: "2026-11-06"}, state)
	require.ErrorIs(t, err, booking.ErrIncompleteSearch)
	require.Equal(t, notify.Notification{Message: "Please fill in all search fields", Kind: notify.KindError}, lastNote(t, notes))

	view, err := svc.SubmitSearch(ctx, v, booking.SearchRequest{Destination: " Aspen ", CheckIn: "2026-11-01", CheckOut: "2026-11-06"}, state)
	require.NoError(t, err)
	require.Equal(t, []int{4, 8}, cardIDs(view))
	require.Equal(t, notify.Notification{Message: "Searching for stays in Aspen...", Kind: notify.KindSuccess}, lastNote(t, notes))

	require.Equal(t, booking.SearchRequest{}, svc.ClearSearch(v))
	require.Equal(t, notify.Notification{Message: "Search cleared", Kind: notify.KindInfo}, lastNote(t, notes))
}

func TestLoadMore(t *testing.T) {
	t.Parallel()

	svc := newService(t, Options{LoadMoreDelay: 5 * time.Millisecond})
	v, notes := newVisitor(t, nil)

	view, err := svc.LoadMore(context.Background(), v)
	require.NoError(t, err)
	require.Equal(t, 12, view.Grid.Count)
	require.Equal(t, []notify.Notification{
		{Message: "Loading more properties...", Kind: notify.KindInfo},
		{Message: "More properties loaded", Kind: notify.KindSuccess},
	}, notes.Items())
}

func TestLoadMoreHonoursCancellation(t *testing.T) {
	t.Parallel()

	svc := newService(t, Options{LoadMoreDelay: time.Hour})
	v, notes := newVisitor(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.LoadMore(ctx, v)
	require.True(t, errors.Is(err, context.Canceled))
	require.Equal(t, 1, notes.Len())
}

func TestFiltersCommands(t *testing.T) {
	t.Parallel()

	svc := newService(t, Options{})
	v, notes := newVisitor(t, nil)
	state := StateFromQuery(url.Values{"bedrooms": {"5"}})

	view := svc.ApplyFilters(v, state)
	require.Equal(t, []int{5, 12}, cardIDs(view))
	require.Equal(t, "Filters applied", lastNote(t, notes).Message)

	cleared := svc.ClearFilters(v, state)
	require.True(t, cleared.Filters.IsDefault())
	require.Equal(t, state.Category, cleared.Category)
	require.Equal(t, notify.Notification{Message: "Filters cleared", Kind: notify.KindInfo}, lastNote(t, notes))
}

func TestToggleTheme(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kvstore.NewMemory()
	svc := newService(t, Options{})
	v, notes := newVisitor(t, store)

	theme, err := svc.ToggleTheme(ctx, v)
	require.NoError(t, err)
	require.Equal(t, prefs.ThemeDark, theme)
	require.Equal(t, "Theme updated", lastNote(t, notes).Message)

	stored, err := prefs.LoadTheme(ctx, store)
	require.NoError(t, err)
	require.Equal(t, prefs.ThemeDark, stored)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	svc := newService(t, Options{})
	v, notes := newVisitor(t, nil)

	require.NoError(t, svc.Authenticate(v, booking.AuthSignup, booking.Credentials{Email: "guest@example.com", Password: "x"}))
	require.Equal(t, "Sign up successful! Welcome, guest@example.com", lastNote(t, notes).Message)

	err := svc.Authenticate(v, booking.AuthLogin, booking.Credentials{Email: "nope"})
	require.ErrorIs(t, err, booking.ErrInvalidEmail)
	require.Equal(t, notify.KindError, lastNote(t, notes).Kind)

	require.NoError(t, svc.SocialAuth(v, "google"))
	require.Equal(t, notify.Notification{Message: "Google authentication initiated", Kind: notify.KindInfo}, lastNote(t, notes))
	require.ErrorIs(t, svc.SocialAuth(v, "myspace"), ErrUnknownProvider)
}

func TestAnnounceAndWelcome(t *testing.T) {
	t.Parallel()

	svc := newService(t, Options{Brand: "Stays"})
	v, notes := newVisitor(t, nil)

	require.NoError(t, svc.Announce(v, "help"))
	require.Equal(t, "Help center would open here", lastNote(t, notes).Message)
	require.NoError(t, svc.Announce(v, "privacy"))
	require.Equal(t, "Opening Privacy Policy...", lastNote(t, notes).Message)
	require.ErrorIs(t, svc.Announce(v, "nowhere"), ErrUnknownTopic)

	svc.Welcome(v)
	require.Equal(t, notify.Notification{Message: "Welcome to Stays! Find your perfect stay.", Kind: notify.KindSuccess}, lastNote(t, notes))
}

func TestViewStateQuery(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", DefaultState().Query())

	state := StateFromQuery(url.Values{"category": {"City"}, "view": {"list"}, "min_price": {"100"}})
	require.Equal(t, catalog.CategoryCity, state.Category)
	require.Equal(t, LayoutList, state.Layout)
	require.Equal(t, state, StateFromQuery(state.Values()))
	require.Equal(t, "category=city&min_price=100&view=list", state.Query())
}

func TestTopics(t *testing.T) {
	t.Parallel()

	require.Len(t, Topics(GroupSocial), 3)
	require.Equal(t, len(topics), len(Topics("")))
	seen := map[string]bool{}
	for _, tp := range Topics("") {
		require.False(t, seen[tp.Slug], "duplicate slug %s", tp.Slug)
		seen[tp.Slug] = true
	}
}
