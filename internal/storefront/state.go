package storefront

import (
	"net/url"
	"strings"

	"finitefield.org/stays-web/internal/booking"
	"finitefield.org/stays-web/internal/catalog"
)

// Layout is the listings presentation mode.
type Layout string

const (
	LayoutGrid Layout = "grid"
	LayoutList Layout = "list"
)

// Query parameter names carrying the view state.
const (
	ParamCategory = "category"
	ParamLayout   = "view"
)

// ViewState is what the visitor is currently looking at. It travels in query strings and
// form fields and is never persisted.
type ViewState struct {
	Category catalog.Category
	Filters  booking.Filters
	Layout   Layout
}

// DefaultState shows every listing as a grid.
func DefaultState() ViewState {
	return ViewState{Category: catalog.CategoryAll, Filters: booking.DefaultFilters(), Layout: LayoutGrid}
}

// StateFromQuery decodes a view state. Missing values take their defaults.
func StateFromQuery(v url.Values) ViewState {
	s := DefaultState()
	s.Category = catalog.ParseCategory(v.Get(ParamCategory))
	s.Filters = booking.ParseFilters(v)
	if Layout(strings.ToLower(strings.TrimSpace(v.Get(ParamLayout)))) == LayoutList {
		s.Layout = LayoutList
	}
	return s
}

// Values encodes the non-default parts of s.
func (s ViewState) Values() url.Values {
	v := url.Values{}
	if s.Category != "" && s.Category != catalog.CategoryAll {
		v.Set(ParamCategory, string(s.Category))
	}
	s.Filters.Encode(v)
	if s.Layout == LayoutList {
		v.Set(ParamLayout, string(LayoutList))
	}
	return v
}

// Query is the encoded form of Values; empty for the default state.
func (s ViewState) Query() string { return s.Values().Encode() }

// WithCategory returns s showing category c.
func (s ViewState) WithCategory(c catalog.Category) ViewState {
	s.Category = c
	return s
}

// Criteria is the refinement applied after the category filter.
func (s ViewState) Criteria() catalog.Criteria { return s.Filters.Criteria() }
