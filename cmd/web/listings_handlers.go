package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"finitefield.org/stays-web/internal/favorites"
	"finitefield.org/stays-web/internal/handlers"
	mw "finitefield.org/stays-web/internal/middleware"
	"finitefield.org/stays-web/internal/observability"
	"finitefield.org/stays-web/internal/storefront"
)

// handleHome renders the storefront for the view state in the query string. The first
// page view of a session is greeted with a welcome toast.
func (a *app) handleHome(w http.ResponseWriter, r *http.Request) {
	state := storefront.StateFromQuery(r.URL.Query())
	v, notes := a.visitor(r)
	if sd := mw.GetSession(r); !sd.Welcomed {
		a.svc.Welcome(v)
		sd.Welcomed = true
		sd.MarkDirty()
	}
	view := a.svc.Listings(state, v.Favorites)

	data := a.pageData(r, v, notes, handlers.PageHome, state)
	data.Listings = handlers.BuildListings(view, false)
	data.SEO.JSONLD = append(data.SEO.JSONLD, a.lodgingJSONLD(baseURL(r), view.Grid.Cards))
	if q := state.Query(); q != "" {
		// filtered views share the canonical storefront
		data.SEO.Robots = "noindex,follow"
	}
	a.renderPage(w, r, data)
}

// handleListings swaps the listings container for a category or layout change.
func (a *app) handleListings(w http.ResponseWriter, r *http.Request) {
	state := storefront.StateFromQuery(r.URL.Query())
	if !mw.IsHTMX(r.Context()) {
		target := "/"
		if q := state.Query(); q != "" {
			target += "?" + q
		}
		http.Redirect(w, r, target, http.StatusFound)
		return
	}
	v, _ := a.visitor(r)
	view := a.svc.Listings(state, v.Favorites)
	pushURL(w, state)
	a.renderTemplate(w, r, "frag_listings", handlers.BuildListings(view, true))
}

// handleLoadMore waits for the simulated fetch and then shows the whole catalog.
func (a *app) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	v, notes := a.visitor(r)
	view, err := a.svc.LoadMore(r.Context(), v)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			observability.FromContext(r.Context()).Debug("load more abandoned", zap.Error(err))
			mw.WriteError(w, r, http.StatusServiceUnavailable, "request cancelled")
			return
		}
		mw.WriteError(w, r, http.StatusInternalServerError, "could not load properties")
		return
	}
	trigger(w, r, notes)
	pushURL(w, view.State)
	a.renderTemplate(w, r, "frag_listings", handlers.BuildListings(view, true))
}

// handleToggleFavorite flips a listing in the visitor's favorites and re-renders the grid
// for the view state carried in the query string.
func (a *app) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := propertyID(r)
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "property not found")
		return
	}
	state := storefront.StateFromQuery(r.URL.Query())
	v, notes := a.visitor(r)
	view, _, err := a.svc.ToggleFavorite(r.Context(), v, id, state)
	if err != nil {
		if errors.Is(err, storefront.ErrPropertyNotFound) {
			mw.WriteError(w, r, http.StatusNotFound, "property not found")
			return
		}
		if errors.Is(err, favorites.ErrUnavailable) {
			trigger(w, r, notes)
			mw.WriteError(w, r, http.StatusServiceUnavailable, "favorites unavailable")
			return
		}
		mw.WriteError(w, r, http.StatusInternalServerError, "could not update favorites")
		return
	}
	trigger(w, r, notes)
	a.renderTemplate(w, r, "frag_listings", handlers.BuildListings(view, false))
}

func propertyID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
