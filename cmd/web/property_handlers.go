package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"finitefield.org/stays-web/internal/booking"
	"finitefield.org/stays-web/internal/handlers"
	mw "finitefield.org/stays-web/internal/middleware"
	"finitefield.org/stays-web/internal/notify"
	"finitefield.org/stays-web/internal/observability"
	"finitefield.org/stays-web/internal/storefront"
)

// Client events closing the detail modal and announcing it opened.
const (
	eventPropertyOpen  = "property:open"
	eventPropertyClose = "property:close"
)

// handleProperty renders the detail view: a modal body for htmx, a standalone page
// otherwise.
func (a *app) handleProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := propertyID(r)
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "property not found")
		return
	}
	detail, err := a.svc.OpenProperty(id)
	if err != nil {
		if errors.Is(err, storefront.ErrPropertyNotFound) {
			mw.WriteError(w, r, http.StatusNotFound, "property not found")
			return
		}
		mw.WriteError(w, r, http.StatusInternalServerError, "could not load property")
		return
	}
	if mw.IsHTMX(r.Context()) {
		trigger(w, r, &notify.Collector{}, eventPropertyOpen)
		a.renderTemplate(w, r, "frag_property", detail)
		return
	}

	v, notes := a.visitor(r)
	data := a.pageData(r, v, notes, handlers.PageProperty, storefront.DefaultState())
	data.Detail = &detail
	data.Title = detail.Title + " | " + data.Brand
	data.SEO.Title = data.Title
	data.SEO.Description = detail.Location + " · " + detail.Heading
	data.SEO.OG.Title = data.Title
	data.SEO.OG.Description = data.SEO.Description
	data.SEO.OG.Type = "article"
	if len(detail.Images) > 0 {
		data.SEO.OG.Image = baseURL(r) + detail.Images[0].Src
	}
	data.SEO.JSONLD = append(data.SEO.JSONLD, detailJSONLD(baseURL(r), detail))
	a.renderPage(w, r, data)
}

// handleReserve confirms a simulated booking. Invalid input answers 422 with an error
// toast and leaves the modal open.
func (a *app) handleReserve(w http.ResponseWriter, r *http.Request) {
	id, ok := propertyID(r)
	if !ok {
		mw.WriteError(w, r, http.StatusNotFound, "property not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	req := booking.ReservationRequest{
		CheckIn:  r.PostForm.Get("check_in"),
		CheckOut: r.PostForm.Get("check_out"),
		Guests:   formInt(r.PostForm.Get("guests"), 1),
	}
	v, notes := a.visitor(r)
	res, err := a.svc.Reserve(r.Context(), v, id, req)
	if err != nil {
		if errors.Is(err, storefront.ErrPropertyNotFound) {
			mw.WriteError(w, r, http.StatusNotFound, "property not found")
			return
		}
		if _, ok := booking.AsProblem(err); ok {
			reject(w, r, notes)
			return
		}
		observability.FromContext(r.Context()).Error("reserve", zap.Int("propertyId", id), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "could not reserve")
		return
	}
	w.Header().Set("X-Reservation-Code", res.Code)
	done(w, r, notes, eventPropertyClose)
}

// formInt parses a form number, falling back when the field is absent or blank.
func formInt(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// unparseable input is out of range rather than defaulted
		return 0
	}
	return n
}
