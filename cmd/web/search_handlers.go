package main

import (
	"net/http"

	"finitefield.org/stays-web/internal/booking"
	"finitefield.org/stays-web/internal/handlers"
	mw "finitefield.org/stays-web/internal/middleware"
	"finitefield.org/stays-web/internal/storefront"
)

const eventSearchClose = "search:close"

func searchRequest(r *http.Request) booking.SearchRequest {
	f := r.PostForm
	return booking.SearchRequest{
		Destination: f.Get("destination"),
		CheckIn:     f.Get("check_in"),
		CheckOut:    f.Get("check_out"),
		Guests: booking.GuestCounts{
			Adults:   max(formInt(f.Get("adults"), 0), 0),
			Children: max(formInt(f.Get("children"), 0), 0),
			Pets:     max(formInt(f.Get("pets"), 0), 0),
		},
	}.Normalize()
}

// handleSearch accepts a complete search, closes the modal and refreshes the listings.
func (a *app) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	// hidden fields keep the current category, filters and layout
	state := storefront.StateFromQuery(r.PostForm)
	v, notes := a.visitor(r)
	view, err := a.svc.SubmitSearch(r.Context(), v, searchRequest(r), state)
	if err != nil {
		reject(w, r, notes)
		return
	}
	trigger(w, r, notes, eventSearchClose)
	pushURL(w, view.State)
	a.renderTemplate(w, r, "frag_listings", handlers.BuildListings(view, true))
}

// handleSearchClear resets the search form.
func (a *app) handleSearchClear(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	v, notes := a.visitor(r)
	req := a.svc.ClearSearch(v)
	trigger(w, r, notes)
	a.renderTemplate(w, r, "frag_search_form", handlers.SearchForm{
		Destination: req.Destination,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Guests:      req.Guests,
		State:       storefront.StateFromQuery(r.PostForm),
	})
}

// handleSearchGuests steps one guest counter and re-renders the guests popover.
func (a *app) handleSearchGuests(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	req := searchRequest(r)
	kind := booking.GuestKind(r.PostForm.Get("kind"))
	step := booking.Step(r.PostForm.Get("step"))
	req.Guests = req.Guests.Apply(kind, step)
	a.renderTemplate(w, r, "frag_search_guests", handlers.SearchForm{
		Destination: req.Destination,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Guests:      req.Guests,
	})
}
