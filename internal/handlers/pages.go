package handlers

import (
	"html/template"
	"sort"

	"finitefield.org/stays-web/internal/booking"
	"finitefield.org/stays-web/internal/catalog"
	"finitefield.org/stays-web/internal/listing"
	"finitefield.org/stays-web/internal/nav"
	"finitefield.org/stays-web/internal/prefs"
	"finitefield.org/stays-web/internal/storefront"
)

// Page names selected by the base layout.
const (
	PageHome     = "home"
	PageProperty = "property"
)

// SEOData is the head metadata of a page.
type SEOData struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          struct {
		Title       string
		Description string
		Image       string
		Type        string
		URL         string
		SiteName    string
	}
	JSONLD []template.JS
}

// PageData is the view model for full pages using the shared layout.
type PageData struct {
	Page      string
	Title     string
	Brand     string
	Lang      string
	SEO       SEOData
	Analytics Analytics
	Path      string
	Dev       bool

	Theme     prefs.Theme
	CSRFToken string
	// Notifications is a JSON array of toasts to show once the page loads.
	Notifications template.JS

	Listings ListingsData
	Search   SearchForm
	Filters  FiltersForm
	Detail   *listing.Detail
	Footer   []FooterGroup
	Account  []storefront.Topic
	Settings []storefront.Topic
	Social   []storefront.Topic
	Year     int
}

// ListingsData is the listings container: the category bar and the card grid.
type ListingsData struct {
	Grid       listing.Grid
	Layout     storefront.Layout
	Query      string
	Categories []nav.RenderedItem
	// OOB renders the category bar as an out-of-band swap alongside the grid.
	OOB bool
	// GridHref and ListHref switch the layout keeping the rest of the state.
	GridHref string
	ListHref string
	// Empty-state copy.
	EmptyTitle string
	EmptyText  string
}

// BuildListings projects a storefront listings view for templates.
func BuildListings(view storefront.ListingsView, oob bool) ListingsData {
	grid, list := view.State, view.State
	grid.Layout, list.Layout = storefront.LayoutGrid, storefront.LayoutList
	return ListingsData{
		Grid:       view.Grid,
		Layout:     view.State.Layout,
		Query:      view.State.Query(),
		Categories: nav.Build(view.State.Category, view.State.Values()),
		OOB:        oob,
		GridHref:   fragmentHref(grid),
		ListHref:   fragmentHref(list),
		EmptyTitle: "No exact matches",
		EmptyText:  "Try changing or removing some of your filters.",
	}
}

// List reports whether the listings use the list layout.
func (l ListingsData) List() bool { return l.Layout == storefront.LayoutList }

func fragmentHref(state storefront.ViewState) string {
	if q := state.Query(); q != "" {
		return "/listings?" + q
	}
	return "/listings"
}

// Field is a hidden form input.
type Field struct {
	Name  string
	Value string
}

// stateFields carries state through a form; filters are included unless the form edits them.
func stateFields(state storefront.ViewState, withFilters bool) []Field {
	if !withFilters {
		state.Filters = booking.DefaultFilters()
	}
	v := state.Values()
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Field, 0, len(keys))
	for _, k := range keys {
		for _, val := range v[k] {
			out = append(out, Field{Name: k, Value: val})
		}
	}
	return out
}

// SearchForm is the search modal state.
type SearchForm struct {
	Destination string
	CheckIn     string
	CheckOut    string
	Guests      booking.GuestCounts
	// StateQuery keeps the current view state across the submission.
	State storefront.ViewState
}

// StateFields keeps the current view across a search.
func (s SearchForm) StateFields() []Field { return stateFields(s.State, true) }

// GuestRows lists the counters of the guests popover.
func (s SearchForm) GuestRows() []GuestRow {
	return []GuestRow{
		{Kind: booking.GuestAdults, Label: "Adults", Hint: "Ages 13 or above", Count: s.Guests.Adults},
		{Kind: booking.GuestChildren, Label: "Children", Hint: "Ages 2-12", Count: s.Guests.Children},
		{Kind: booking.GuestPets, Label: "Pets", Hint: "Bringing a service animal?", Count: s.Guests.Pets},
	}
}

// GuestRow is one counter of the guests popover.
type GuestRow struct {
	Kind  booking.GuestKind
	Label string
	Hint  string
	Count int
}

// FiltersForm is the filters modal state.
type FiltersForm struct {
	Filters   booking.Filters
	State     storefront.ViewState
	Types     []Option
	Amenities []Option
	Floor     int
	Ceiling   int
}

// Option is a toggleable choice in the filters modal.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Amenities offered as filter checkboxes.
var filterAmenities = []string{"WiFi", "Kitchen", "Pool", "Hot tub", "Free parking", "Air conditioning", "Fireplace", "Gym"}

// BuildFilters projects the filters modal for state.
func BuildFilters(state storefront.ViewState) FiltersForm {
	f := state.Filters
	f.Price = f.Price.Normalize()
	types := make([]Option, 0, 4)
	for _, t := range catalog.PropertyTypes() {
		types = append(types, Option{Value: string(t), Label: listing.TypeLabel(t), Selected: f.HasType(t)})
	}
	amenities := make([]Option, 0, len(filterAmenities))
	for _, a := range filterAmenities {
		amenities = append(amenities, Option{Value: a, Label: a, Selected: f.HasAmenity(a)})
	}
	return FiltersForm{
		Filters:   f,
		State:     state,
		Types:     types,
		Amenities: amenities,
		Floor:     booking.PriceFloor,
		Ceiling:   booking.PriceCeiling,
	}
}

// StateFields keeps the category and layout across a filters submission.
func (f FiltersForm) StateFields() []Field { return stateFields(f.State, false) }

// BedroomsLabel renders the bedrooms counter.
func (f FiltersForm) BedroomsLabel() string { return booking.RoomLabel(f.Filters.Bedrooms) }

// BathroomsLabel renders the bathrooms counter.
func (f FiltersForm) BathroomsLabel() string { return booking.RoomLabel(f.Filters.Bathrooms) }

// Bedrooms is the bedrooms minimum for hidden inputs, 0 for Any.
func (f FiltersForm) Bedrooms() int { return deref(f.Filters.Bedrooms) }

// Bathrooms is the bathrooms minimum for hidden inputs, 0 for Any.
func (f FiltersForm) Bathrooms() int { return deref(f.Filters.Bathrooms) }

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

// FooterGroup is a footer column of informational links.
type FooterGroup struct {
	Title  string
	Topics []storefront.Topic
}

// BuildFooter lays out the footer columns.
func BuildFooter() []FooterGroup {
	return []FooterGroup{
		{Title: "Support", Topics: storefront.Topics(storefront.GroupSupport)},
		{Title: "Community", Topics: storefront.Topics(storefront.GroupHosting)},
		{Title: "Company", Topics: storefront.Topics(storefront.GroupCompany)},
	}
}
