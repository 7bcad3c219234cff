package booking

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"finitefield.org/stays-web/internal/catalog"
)

func TestSearchValidate(t *testing.T) {
	t.Parallel()

	ok := SearchRequest{Destination: "Malibu", CheckIn: "2026-07-01", CheckOut: "2026-07-06"}
	require.NoError(t, ok.Validate())

	tests := map[string]SearchRequest{
		"empty destination": {CheckIn: "2026-07-01", CheckOut: "2026-07-06"},
		"blank destination": {Destination: "   ", CheckIn: "2026-07-01", CheckOut: "2026-07-06"},
		"no check-in":       {Destination: "Malibu", CheckOut: "2026-07-06"},
		"no check-out":      {Destination: "Malibu", CheckIn: "2026-07-01"},
	}
	for name, req := range tests {
		req := req
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := req.Validate()
			require.ErrorIs(t, err, ErrIncompleteSearch)
			p, ok := AsProblem(err)
			require.True(t, ok)
			require.Equal(t, "Please fill in all search fields", p.Message)
		})
	}
}

func TestGuestCounts(t *testing.T) {
	t.Parallel()

	var g GuestCounts
	require.Equal(t, "Add guests", g.Summary())

	g = g.Apply(GuestAdults, StepPlus)
	require.Equal(t, "1 guest", g.Summary())
	g = g.Apply(GuestChildren, StepPlus).Apply(GuestPets, StepPlus)
	require.Equal(t, 2, g.Total(), "pets are not guests")
	require.Equal(t, "2 guests", g.Summary())

	g = g.Apply(GuestChildren, StepMinus).Apply(GuestChildren, StepMinus)
	require.Equal(t, 0, g.Children, "minus stops at zero")
	require.Equal(t, g, g.Apply(GuestKind("infants"), StepPlus))
}

func TestReservationValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, ReservationRequest{CheckIn: "2026-07-01", CheckOut: "2026-07-06", Guests: 2}.Validate(4))

	err := ReservationRequest{CheckIn: "2026-07-01", Guests: 1}.Validate(4)
	require.ErrorIs(t, err, ErrMissingDates)
	p, _ := AsProblem(err)
	require.Equal(t, "Please select check-in and check-out dates", p.Message)

	err = ReservationRequest{CheckIn: "2026-07-01", CheckOut: "2026-07-06", Guests: 5}.Validate(4)
	require.ErrorIs(t, err, ErrGuestsOutOfRange)
	p, _ = AsProblem(err)
	require.Equal(t, "Please select between 1 and 4 guests", p.Message)

	err = ReservationRequest{CheckIn: "2026-07-01", CheckOut: "2026-07-06", Guests: 0}.Validate(4)
	require.ErrorIs(t, err, ErrGuestsOutOfRange)

	// date order is not checked
	require.NoError(t, ReservationRequest{CheckIn: "2026-07-06", CheckOut: "2026-07-01", Guests: 1}.Validate(4))
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	c, err := catalog.Default()
	require.NoError(t, err)
	villa, _ := c.Get(1)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	res, err := Confirm(villa, ReservationRequest{CheckIn: " 2026-11-01 ", CheckOut: "2026-11-06", Guests: 8}, now)
	require.NoError(t, err)
	require.Equal(t, "Luxury Beachfront Villa", res.Title)
	require.Equal(t, "2026-11-01", res.CheckIn)
	require.Equal(t, 4810, res.Quote.Total)

	code, err := ulid.Parse(res.Code)
	require.NoError(t, err)
	require.Equal(t, ulid.Timestamp(now), code.Time())

	_, err = Confirm(villa, ReservationRequest{Guests: 1}, now)
	require.True(t, errors.Is(err, ErrMissingDates))
}

func TestCredentials(t *testing.T) {
	t.Parallel()

	require.NoError(t, Credentials{Email: "guest@example.com"}.Validate())
	require.NoError(t, Credentials{Email: "  guest@example.com "}.Validate())
	for _, email := range []string{"", "guest", "guest@", "@example.com"} {
		require.ErrorIs(t, Credentials{Email: email}.Validate(), ErrInvalidEmail, email)
	}
}

func TestParseAuthMode(t *testing.T) {
	t.Parallel()

	m, err := ParseAuthMode("Login")
	require.NoError(t, err)
	require.Equal(t, "Log in", m.Title())
	m, err = ParseAuthMode("signup")
	require.NoError(t, err)
	require.Equal(t, "Sign up", m.Title())
	_, err = ParseAuthMode("sso")
	require.ErrorIs(t, err, ErrUnknownAuthMode)
}

func TestStepRoom(t *testing.T) {
	t.Parallel()

	n := StepRoom(nil, StepPlus)
	require.Equal(t, "1", RoomLabel(n))
	n = StepRoom(n, StepPlus)
	require.Equal(t, "2", RoomLabel(n))
	n = StepRoom(StepRoom(n, StepMinus), StepMinus)
	require.Nil(t, n, "reaching zero returns to Any")
	require.Equal(t, "Any", RoomLabel(n))
	require.Nil(t, StepRoom(nil, StepMinus))
}

func TestPriceRangeNormalize(t *testing.T) {
	t.Parallel()

	require.Equal(t, PriceRange{Min: 0, Max: 1000}, PriceRange{Min: -5, Max: 4000}.Normalize())
	require.Equal(t, PriceRange{Min: 200, Max: 600}, PriceRange{Min: 600, Max: 200}.Normalize())
}

func TestFiltersRoundTripThroughQuery(t *testing.T) {
	t.Parallel()

	in := url.Values{
		ParamMinPrice:  {"295"},
		ParamMaxPrice:  {"395"},
		ParamType:      {"cabin", "castle", "Villa", "cabin"},
		ParamBedrooms:  {"2"},
		ParamBathrooms: {"0"},
		ParamAmenity:   {"WiFi", " "},
	}
	f := ParseFilters(in)
	require.Equal(t, PriceRange{Min: 295, Max: 395}, f.Price)
	require.Equal(t, []catalog.PropertyType{catalog.TypeCabin, catalog.TypeVilla}, f.Types)
	require.Equal(t, "2", RoomLabel(f.Bedrooms))
	require.Nil(t, f.Bathrooms)
	require.Equal(t, []string{"WiFi"}, f.Amenities)
	require.True(t, f.HasType(catalog.TypeVilla))
	require.True(t, f.HasAmenity("wifi"))

	out := url.Values{}
	f.Encode(out)
	require.Equal(t, f, ParseFilters(out))
}

func TestFiltersCriteria(t *testing.T) {
	t.Parallel()

	require.True(t, DefaultFilters().IsDefault())
	require.True(t, ParseFilters(url.Values{}).IsDefault())

	crit := ParseFilters(url.Values{ParamMaxPrice: {"1000"}, ParamMinPrice: {"300"}}).Criteria()
	require.Equal(t, 300, crit.MinPrice)
	require.Equal(t, 0, crit.MaxPrice, "slider ceiling means unbounded")

	crit = ParseFilters(url.Values{ParamMaxPrice: {"0"}}).Criteria()
	require.Equal(t, -1, crit.MaxPrice)

	c, err := catalog.Default()
	require.NoError(t, err)
	require.Empty(t, catalog.Refine(c.All(), crit))
}
