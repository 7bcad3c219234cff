// Package storefront coordinates the visitor-facing commands: it owns the view state,
// runs the catalog filter, updates the favorites ledger and raises notifications.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"finitefield.org/stays-web/internal/booking"
	"finitefield.org/stays-web/internal/catalog"
	"finitefield.org/stays-web/internal/favorites"
	"finitefield.org/stays-web/internal/kvstore"
	"finitefield.org/stays-web/internal/listing"
	"finitefield.org/stays-web/internal/notify"
	"finitefield.org/stays-web/internal/observability"
	"finitefield.org/stays-web/internal/prefs"
)

var (
	// ErrPropertyNotFound is returned for ids absent from the catalog.
	ErrPropertyNotFound = errors.New("storefront: property not found")
	// ErrUnknownTopic is returned for informational links that do not exist.
	ErrUnknownTopic = errors.New("storefront: unknown topic")
	// ErrUnknownProvider is returned for unsupported social sign-in buttons.
	ErrUnknownProvider = errors.New("storefront: unknown auth provider")
)

// DefaultLoadMoreDelay simulates the network wait before more listings appear.
const DefaultLoadMoreDelay = 800 * time.Millisecond

// Options configures a Service.
type Options struct {
	Brand         string
	LoadMoreDelay time.Duration
	Now           func() time.Time
}

// Service is stateless apart from its immutable catalog and is safe for concurrent use.
type Service struct {
	catalog *catalog.Catalog
	opts    Options
	logger  *zap.Logger
}

// New builds a Service. A nil logger discards output.
func New(c *catalog.Catalog, opts Options, logger *zap.Logger) *Service {
	if strings.TrimSpace(opts.Brand) == "" {
		opts.Brand = "Stays"
	}
	if opts.LoadMoreDelay < 0 {
		opts.LoadMoreDelay = 0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: c, opts: opts, logger: logger.Named("storefront")}
}

// Brand is the storefront name shown to visitors.
func (s *Service) Brand() string { return s.opts.Brand }

// Catalog exposes the listings backing the service.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Visitor bundles the per-request state of one browser session.
type Visitor struct {
	Store     kvstore.Store
	Favorites *favorites.Ledger
	Notifier  notify.Notifier
}

// OpenVisitor loads the visitor's ledger from store. A failing store still yields a visitor
// that can browse; the error is logged and favorites stay read-only until the store answers.
func OpenVisitor(ctx context.Context, store kvstore.Store, n notify.Notifier) *Visitor {
	ledger, err := favorites.Open(ctx, store)
	if err != nil {
		observability.FromContext(ctx).Warn("storefront: favorites unavailable", zap.Error(err))
	}
	if n == nil {
		n = notify.NotifierFunc(func(string, notify.Kind) {})
	}
	return &Visitor{Store: store, Favorites: ledger, Notifier: n}
}

func (v *Visitor) notify(message string, kind notify.Kind) {
	v.Notifier.Notify(message, kind)
}

// ListingsView is the listings container content for a view state.
type ListingsView struct {
	State ViewState
	Grid  listing.Grid
	// Total is the size of the whole catalog.
	Total int
}

// Listings filters the catalog by the state's category, refines it with the state's
// filters and renders the cards. favs may be nil.
func (s *Service) Listings(state ViewState, favs listing.FavoriteChecker) ListingsView {
	props := catalog.Filter(s.catalog.All(), state.Category)
	if crit := state.Criteria(); !crit.IsZero() {
		props = catalog.Refine(props, crit)
	}
	return ListingsView{
		State: state,
		Grid:  listing.Render(props, favs).WithStateQuery(state.Query()),
		Total: s.catalog.Len(),
	}
}

// SelectCategory shows the listings of category raw, keeping the rest of the state.
func (s *Service) SelectCategory(state ViewState, raw string, favs listing.FavoriteChecker) ListingsView {
	return s.Listings(state.WithCategory(catalog.ParseCategory(raw)), favs)
}

// ToggleFavorite flips id in the visitor's ledger and re-renders the listings. A failed
// write is logged and does not fail the command. An unreadable stored set raises an error
// notification and returns favorites.ErrUnavailable without touching the store.
func (s *Service) ToggleFavorite(ctx context.Context, v *Visitor, id int, state ViewState) (ListingsView, bool, error) {
	if _, ok := s.catalog.Get(id); !ok {
		return ListingsView{}, false, fmt.Errorf("%w: %d", ErrPropertyNotFound, id)
	}
	added, err := v.Favorites.Toggle(ctx, id)
	if errors.Is(err, favorites.ErrUnavailable) {
		observability.FromContext(ctx).Error("storefront: favorites unavailable", zap.Int("propertyId", id), zap.Error(err))
		v.notify("Favorites are unavailable right now. Please try again.", notify.KindError)
		return ListingsView{}, false, err
	}
	if err != nil {
		observability.FromContext(ctx).Error("storefront: persist favorites", zap.Int("propertyId", id), zap.Error(err))
	}
	if added {
		v.notify("Added to favorites", notify.KindSuccess)
	} else {
		v.notify("Removed from favorites", notify.KindInfo)
	}
	return s.Listings(state, v.Favorites), added, nil
}

// OpenProperty renders the detail view of id.
func (s *Service) OpenProperty(id int) (listing.Detail, error) {
	p, ok := s.catalog.Get(id)
	if !ok {
		return listing.Detail{}, fmt.Errorf("%w: %d", ErrPropertyNotFound, id)
	}
	return listing.RenderDetails(p), nil
}

// Reserve confirms a simulated booking. Invalid input raises an error notification and
// returns the *booking.Problem; nothing changes.
func (s *Service) Reserve(ctx context.Context, v *Visitor, id int, req booking.ReservationRequest) (booking.Reservation, error) {
	p, ok := s.catalog.Get(id)
	if !ok {
		return booking.Reservation{}, fmt.Errorf("%w: %d", ErrPropertyNotFound, id)
	}
	res, err := booking.Confirm(p, req, s.opts.Now())
	if err != nil {
		s.reject(v, err)
		return booking.Reservation{}, err
	}
	observability.FromContext(ctx).Info("storefront: reservation confirmed",
		zap.String("code", res.Code), zap.Int("propertyId", res.PropertyID), zap.Int("guests", res.Guests))
	v.notify(fmt.Sprintf("Reservation confirmed for %s!", p.Title), notify.KindSuccess)
	return res, nil
}

// SubmitSearch accepts a search when destination and both dates are present and
// re-renders the listings for the current state. The destination does not narrow results.
func (s *Service) SubmitSearch(ctx context.Context, v *Visitor, req booking.SearchRequest, state ViewState) (ListingsView, error) {
	if err := req.Validate(); err != nil {
		s.reject(v, err)
		return ListingsView{}, err
	}
	req = req.Normalize()
	observability.FromContext(ctx).Debug("storefront: search",
		zap.String("destination", req.Destination), zap.Int("guests", req.Guests.Total()))
	v.notify(fmt.Sprintf("Searching for stays in %s...", req.Destination), notify.KindSuccess)
	return s.Listings(state, v.Favorites), nil
}

// ClearSearch resets the search form.
func (s *Service) ClearSearch(v *Visitor) booking.SearchRequest {
	v.notify("Search cleared", notify.KindInfo)
	return booking.SearchRequest{}
}

// LoadMore waits the configured delay and then shows the whole catalog. Cancelling ctx
// abandons the wait.
func (s *Service) LoadMore(ctx context.Context, v *Visitor) (ListingsView, error) {
	v.notify("Loading more properties...", notify.KindInfo)
	if d := s.opts.LoadMoreDelay; d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ListingsView{}, ctx.Err()
		case <-timer.C:
		}
	}
	view := s.Listings(DefaultState(), v.Favorites)
	v.notify("More properties loaded", notify.KindSuccess)
	return view, nil
}

// ApplyFilters shows the listings refined by state's filters.
func (s *Service) ApplyFilters(v *Visitor, state ViewState) ListingsView {
	view := s.Listings(state, v.Favorites)
	v.notify("Filters applied", notify.KindSuccess)
	return view
}

// ClearFilters returns state with default filters for the filters modal. The listings are
// not re-rendered; they change when the filters are applied.
func (s *Service) ClearFilters(v *Visitor, state ViewState) ViewState {
	state.Filters = booking.DefaultFilters()
	v.notify("Filters cleared", notify.KindInfo)
	return state
}

// ToggleTheme flips and persists the visitor's theme.
func (s *Service) ToggleTheme(ctx context.Context, v *Visitor) (prefs.Theme, error) {
	theme, err := prefs.ToggleTheme(ctx, v.Store)
	if err != nil {
		return theme, err
	}
	v.notify("Theme updated", notify.KindSuccess)
	return theme, nil
}

// Authenticate simulates logging in or signing up. Nothing is stored.
func (s *Service) Authenticate(v *Visitor, mode booking.AuthMode, creds booking.Credentials) error {
	if err := creds.Validate(); err != nil {
		s.reject(v, err)
		return err
	}
	v.notify(fmt.Sprintf("%s successful! Welcome, %s", mode.Title(), strings.TrimSpace(creds.Email)), notify.KindSuccess)
	return nil
}

// SocialAuth acknowledges a social sign-in button.
func (s *Service) SocialAuth(v *Visitor, provider string) error {
	name, ok := booking.SocialProviders[strings.ToLower(provider)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	v.notify(name+" authentication initiated", notify.KindInfo)
	return nil
}

// Announce acknowledges an informational link.
func (s *Service) Announce(v *Visitor, slug string) error {
	t, ok := lookupTopic(slug)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTopic, slug)
	}
	v.notify(t.Message, notify.KindInfo)
	return nil
}

// Welcome greets a visitor on their first page view.
func (s *Service) Welcome(v *Visitor) {
	v.notify(fmt.Sprintf("Welcome to %s! Find your perfect stay.", s.opts.Brand), notify.KindSuccess)
}

func (s *Service) reject(v *Visitor, err error) {
	if p, ok := booking.AsProblem(err); ok {
		v.notify(p.Message, notify.KindError)
		return
	}
	s.logger.Warn("unexpected validation error", zap.Error(err))
}
