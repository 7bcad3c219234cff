package main

import (
	"net/http"

	"finitefield.org/stays-web/internal/booking"
	"finitefield.org/stays-web/internal/handlers"
	mw "finitefield.org/stays-web/internal/middleware"
	"finitefield.org/stays-web/internal/storefront"
)

const eventFiltersClose = "filters:close"

func (a *app) parseState(w http.ResponseWriter, r *http.Request) (storefront.ViewState, bool) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return storefront.ViewState{}, false
	}
	return storefront.StateFromQuery(r.PostForm), true
}

// handleFiltersApply refines the listings with the submitted filters and closes the modal.
func (a *app) handleFiltersApply(w http.ResponseWriter, r *http.Request) {
	state, ok := a.parseState(w, r)
	if !ok {
		return
	}
	v, notes := a.visitor(r)
	view := a.svc.ApplyFilters(v, state)
	trigger(w, r, notes, eventFiltersClose)
	pushURL(w, view.State)
	a.renderTemplate(w, r, "frag_listings", handlers.BuildListings(view, true))
}

// handleFiltersClear resets the modal controls. The listings keep their refinement until
// the filters are applied again.
func (a *app) handleFiltersClear(w http.ResponseWriter, r *http.Request) {
	state, ok := a.parseState(w, r)
	if !ok {
		return
	}
	v, notes := a.visitor(r)
	cleared := a.svc.ClearFilters(v, state)
	trigger(w, r, notes)
	a.renderTemplate(w, r, "frag_filters_form", handlers.BuildFilters(cleared))
}

// handleFilterRooms steps the bedrooms or bathrooms counter.
func (a *app) handleFilterRooms(w http.ResponseWriter, r *http.Request) {
	state, ok := a.parseState(w, r)
	if !ok {
		return
	}
	step := booking.Step(r.PostForm.Get("step"))
	switch r.PostForm.Get("room") {
	case booking.ParamBedrooms:
		state.Filters.Bedrooms = booking.StepRoom(state.Filters.Bedrooms, step)
	case booking.ParamBathrooms:
		state.Filters.Bathrooms = booking.StepRoom(state.Filters.Bathrooms, step)
	}
	a.renderTemplate(w, r, "frag_filter_rooms", handlers.BuildFilters(state))
}
