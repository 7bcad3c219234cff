package booking

import (
	"strings"

	"finitefield.org/stays-web/internal/format"
)

// GuestKind is one of the search party counters.
type GuestKind string

const (
	GuestAdults   GuestKind = "adults"
	GuestChildren GuestKind = "children"
	GuestPets     GuestKind = "pets"
)

// Step is a counter button action.
type Step string

const (
	StepPlus  Step = "plus"
	StepMinus Step = "minus"
)

// GuestCounts is the search party. Pets do not count as guests.
type GuestCounts struct {
	Adults   int `validate:"gte=0"`
	Children int `validate:"gte=0"`
	Pets     int `validate:"gte=0"`
}

// Apply moves one counter; minus never goes below zero and unknown kinds are ignored.
func (g GuestCounts) Apply(kind GuestKind, step Step) GuestCounts {
	var n *int
	switch kind {
	case GuestAdults:
		n = &g.Adults
	case GuestChildren:
		n = &g.Children
	case GuestPets:
		n = &g.Pets
	default:
		return g
	}
	switch step {
	case StepPlus:
		*n++
	case StepMinus:
		if *n > 0 {
			*n--
		}
	}
	return g
}

// Total counts adults and children.
func (g GuestCounts) Total() int { return g.Adults + g.Children }

// Summary is the text shown on the guests field.
func (g GuestCounts) Summary() string {
	if g.Total() == 0 {
		return "Add guests"
	}
	return format.Count(g.Total(), "guest", "guests")
}

// SearchRequest is the search modal submission.
type SearchRequest struct {
	Destination string `validate:"required"`
	CheckIn     string `validate:"required"`
	CheckOut    string `validate:"required"`
	Guests      GuestCounts
}

// Normalize trims text fields.
func (s SearchRequest) Normalize() SearchRequest {
	s.Destination = strings.TrimSpace(s.Destination)
	s.CheckIn = strings.TrimSpace(s.CheckIn)
	s.CheckOut = strings.TrimSpace(s.CheckOut)
	return s
}

// Validate requires destination, check-in and check-out.
func (s SearchRequest) Validate() error {
	if err := validate.Struct(s.Normalize()); err != nil {
		return &Problem{Field: firstField(err), Message: "Please fill in all search fields", Err: ErrIncompleteSearch}
	}
	return nil
}
