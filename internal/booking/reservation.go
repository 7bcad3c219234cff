package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"finitefield.org/stays-web/internal/catalog"
	"finitefield.org/stays-web/internal/listing"
)

// ReservationRequest is the detail view's reserve submission. Dates are opaque strings;
// their order is not checked.
type ReservationRequest struct {
	CheckIn  string `validate:"required"`
	CheckOut string `validate:"required"`
	Guests   int
}

// Validate checks both dates are present and the party fits the property.
func (r ReservationRequest) Validate(maxGuests int) error {
	r.CheckIn = strings.TrimSpace(r.CheckIn)
	r.CheckOut = strings.TrimSpace(r.CheckOut)
	if err := validate.Struct(r); err != nil {
		return &Problem{Field: firstField(err), Message: "Please select check-in and check-out dates", Err: ErrMissingDates}
	}
	if err := validate.Var(r.Guests, fmt.Sprintf("min=1,max=%d", maxGuests)); err != nil {
		return &Problem{
			Field:   "Guests",
			Message: fmt.Sprintf("Please select between 1 and %d guests", maxGuests),
			Err:     ErrGuestsOutOfRange,
		}
	}
	return nil
}

// Reservation is a confirmed, simulated booking. It is never stored.
type Reservation struct {
	Code       string
	PropertyID int
	Title      string
	CheckIn    string
	CheckOut   string
	Guests     int
	Quote      listing.PriceBreakdown
	CreatedAt  time.Time
}

// Confirm validates req against p and issues a reservation with a fresh code.
func Confirm(p catalog.Property, req ReservationRequest, now time.Time) (Reservation, error) {
	if err := req.Validate(p.Guests); err != nil {
		return Reservation{}, err
	}
	return Reservation{
		Code:       ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		PropertyID: p.ID,
		Title:      p.Title,
		CheckIn:    strings.TrimSpace(req.CheckIn),
		CheckOut:   strings.TrimSpace(req.CheckOut),
		Guests:     req.Guests,
		Quote:      listing.PriceFor(p.Price),
		CreatedAt:  now,
	}, nil
}
