package catalog

// Filter returns the records whose category equals active, in their original order.
// CategoryAll returns every record. An unknown category yields an empty, non-nil slice.
// The input is never modified.
func Filter(props []Property, active Category) []Property {
	out := make([]Property, 0, len(props))
	for _, p := range props {
		if active == CategoryAll || p.Category == active {
			out = append(out, p)
		}
	}
	return out
}

// Criteria narrows a filtered list further. The zero value matches every record.
type Criteria struct {
	// MinPrice and MaxPrice bound the nightly price inclusively. MaxPrice 0 means unbounded
	// and a negative MaxPrice matches nothing.
	MinPrice int
	MaxPrice int
	// Types restricts the dwelling type; empty matches all types.
	Types []PropertyType
	// MinBedrooms and MinBathrooms are nil for "Any".
	MinBedrooms  *int
	MinBathrooms *int
	// Amenities must all be offered by a record.
	Amenities []string
}

// IsZero reports whether c would match every record.
func (c Criteria) IsZero() bool {
	return c.MinPrice <= 0 && c.MaxPrice == 0 && len(c.Types) == 0 &&
		c.MinBedrooms == nil && c.MinBathrooms == nil && len(c.Amenities) == 0
}

// Matches reports whether p satisfies every constraint in c.
func (c Criteria) Matches(p Property) bool {
	if c.MinPrice > 0 && p.Price < c.MinPrice {
		return false
	}
	if c.MaxPrice != 0 && p.Price > c.MaxPrice {
		return false
	}
	if len(c.Types) > 0 {
		found := false
		for _, t := range c.Types {
			if p.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.MinBedrooms != nil && p.Bedrooms < *c.MinBedrooms {
		return false
	}
	if c.MinBathrooms != nil && p.Bathrooms < *c.MinBathrooms {
		return false
	}
	for _, a := range c.Amenities {
		if !p.HasAmenity(a) {
			return false
		}
	}
	return true
}

// Refine keeps the records matching c, preserving order.
func Refine(props []Property, c Criteria) []Property {
	out := make([]Property, 0, len(props))
	for _, p := range props {
		if c.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
