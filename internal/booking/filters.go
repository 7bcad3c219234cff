package booking

import (
	"net/url"
	"strconv"
	"strings"

	"finitefield.org/stays-web/internal/catalog"
)

const (
	// PriceFloor and PriceCeiling bound the price range sliders. A maximum at the
	// ceiling means "no upper bound".
	PriceFloor   = 0
	PriceCeiling = 1000
)

// Query parameter names carrying the filters modal state.
const (
	ParamMinPrice  = "min_price"
	ParamMaxPrice  = "max_price"
	ParamType      = "type"
	ParamBedrooms  = "bedrooms"
	ParamBathrooms = "bathrooms"
	ParamAmenity   = "amenity"
)

// PriceRange is the slider pair.
type PriceRange struct {
	Min int
	Max int
}

// DefaultPriceRange spans the whole slider.
func DefaultPriceRange() PriceRange { return PriceRange{Min: PriceFloor, Max: PriceCeiling} }

// Normalize clamps both ends into the slider range and orders them.
func (r PriceRange) Normalize() PriceRange {
	r.Min = clamp(r.Min, PriceFloor, PriceCeiling)
	r.Max = clamp(r.Max, PriceFloor, PriceCeiling)
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	return r
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// StepRoom moves a room counter. nil is "Any"; minus at one returns to Any.
func StepRoom(cur *int, step Step) *int {
	n := 0
	if cur != nil {
		n = *cur
	}
	switch step {
	case StepPlus:
		n++
	case StepMinus:
		if n > 0 {
			n--
		}
	}
	if n == 0 {
		return nil
	}
	return &n
}

// RoomLabel renders a room counter.
func RoomLabel(n *int) string {
	if n == nil {
		return "Any"
	}
	return strconv.Itoa(*n)
}

// Filters is the filters modal state.
type Filters struct {
	Price     PriceRange
	Types     []catalog.PropertyType
	Bedrooms  *int
	Bathrooms *int
	Amenities []string
}

// DefaultFilters is the cleared modal.
func DefaultFilters() Filters { return Filters{Price: DefaultPriceRange()} }

// ParseFilters reads the modal state from query or form values. Unknown types, blank
// amenities and malformed numbers are dropped.
func ParseFilters(v url.Values) Filters {
	f := DefaultFilters()
	if n, ok := atoi(v.Get(ParamMinPrice)); ok {
		f.Price.Min = n
	}
	if n, ok := atoi(v.Get(ParamMaxPrice)); ok {
		f.Price.Max = n
	}
	f.Price = f.Price.Normalize()

	seen := map[catalog.PropertyType]bool{}
	for _, raw := range v[ParamType] {
		t := catalog.PropertyType(strings.ToLower(strings.TrimSpace(raw)))
		if t.Valid() && !seen[t] {
			seen[t] = true
			f.Types = append(f.Types, t)
		}
	}
	f.Bedrooms = roomParam(v.Get(ParamBedrooms))
	f.Bathrooms = roomParam(v.Get(ParamBathrooms))
	for _, raw := range v[ParamAmenity] {
		if a := strings.TrimSpace(raw); a != "" {
			f.Amenities = append(f.Amenities, a)
		}
	}
	return f
}

func roomParam(raw string) *int {
	n, ok := atoi(raw)
	if !ok || n <= 0 {
		return nil
	}
	return &n
}

func atoi(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsDefault reports whether the filters would not narrow anything.
func (f Filters) IsDefault() bool { return f.Criteria().IsZero() }

// Criteria converts the modal state into catalog refinement criteria.
func (f Filters) Criteria() catalog.Criteria {
	p := f.Price.Normalize()
	c := catalog.Criteria{
		MinPrice:     p.Min,
		MinBedrooms:  f.Bedrooms,
		MinBathrooms: f.Bathrooms,
	}
	if p.Max < PriceCeiling {
		c.MaxPrice = p.Max
		if c.MaxPrice == 0 {
			// zero reads as unbounded to the catalog
			c.MaxPrice = -1
		}
	}
	if len(f.Types) > 0 {
		c.Types = append([]catalog.PropertyType(nil), f.Types...)
	}
	if len(f.Amenities) > 0 {
		c.Amenities = append([]string(nil), f.Amenities...)
	}
	return c
}

// Encode writes the non-default parts of f into v.
func (f Filters) Encode(v url.Values) {
	p := f.Price.Normalize()
	if p.Min != PriceFloor {
		v.Set(ParamMinPrice, strconv.Itoa(p.Min))
	}
	if p.Max != PriceCeiling {
		v.Set(ParamMaxPrice, strconv.Itoa(p.Max))
	}
	for _, t := range f.Types {
		v.Add(ParamType, string(t))
	}
	if f.Bedrooms != nil {
		v.Set(ParamBedrooms, strconv.Itoa(*f.Bedrooms))
	}
	if f.Bathrooms != nil {
		v.Set(ParamBathrooms, strconv.Itoa(*f.Bathrooms))
	}
	for _, a := range f.Amenities {
		v.Add(ParamAmenity, a)
	}
}

// HasType reports whether t is selected; used by the modal template.
func (f Filters) HasType(t catalog.PropertyType) bool {
	for _, s := range f.Types {
		if s == t {
			return true
		}
	}
	return false
}

// HasAmenity reports whether a is selected.
func (f Filters) HasAmenity(a string) bool {
	for _, s := range f.Amenities {
		if strings.EqualFold(s, a) {
			return true
		}
	}
	return false
}
