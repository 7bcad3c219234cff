package listing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/stays-web/internal/catalog"
)

type favSet map[int]bool

func (f favSet) IsFavorited(id int) bool { return f[id] }

func mustCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func TestPriceFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, PriceBreakdown{Nightly: 850, Nights: 5, Subtotal: 4250, CleaningFee: 50, ServiceFee: 510, Total: 4810}, PriceFor(850))
	require.Equal(t, PriceBreakdown{Nightly: 295, Nights: 5, Subtotal: 1475, CleaningFee: 50, ServiceFee: 177, Total: 1702}, PriceFor(295))
}

func TestServiceFeeRounding(t *testing.T) {
	t.Parallel()

	// 12% of a whole-dollar subtotal never lands on an exact half, so half-up and
	// half-even agree; these check the nearest-dollar boundaries.
	require.Equal(t, 15, ServiceFee(125))
	require.Equal(t, 137, ServiceFee(1145))
	require.Equal(t, 171, ServiceFee(1429))
	require.Equal(t, 172, ServiceFee(1430))
	require.Equal(t, 1, ServiceFee(12))
	require.Equal(t, 0, ServiceFee(0))
	for subtotal := 0; subtotal < 10000; subtotal++ {
		require.NotEqual(t, 50, subtotal*ServiceFeePercent%100)
	}
}

func TestBreakdownLines(t *testing.T) {
	t.Parallel()

	lines := PriceFor(850).Lines()
	require.Equal(t, []SummaryLine{
		{Label: "$850 x 5 nights", Amount: "$4,250"},
		{Label: "Cleaning fee", Amount: "$50"},
		{Label: "Service fee", Amount: "$510"},
		{Label: "Total", Amount: "$4,810", Total: true},
	}, lines)
}

func TestGuestOptions(t *testing.T) {
	t.Parallel()

	require.Equal(t, []GuestOption{
		{Value: 1, Label: "1 guest"},
		{Value: 2, Label: "2 guests"},
		{Value: 3, Label: "3 guests"},
		{Value: 4, Label: "4 guests"},
	}, GuestOptions(4))
	require.Nil(t, GuestOptions(0))
}

func TestRenderDetails(t *testing.T) {
	t.Parallel()

	c := mustCatalog(t)

	villa, _ := c.Get(1)
	d := RenderDetails(villa)
	require.Equal(t, "Villa hosted by Sarah", d.Heading)
	require.Equal(t, "Superhost", d.HostLabel)
	require.Equal(t, 4810, d.Breakdown.Total)
	require.Len(t, d.Guests, villa.Guests)
	require.Equal(t, "/properties/1/reserve", d.ReserveHref)
	require.Equal(t, "/assets/images/property-1.jpg", d.Images[0].Src)
	require.True(t, d.Images[0].Main)
	require.Equal(t, "Entire villa", d.Features[0].Title)
	require.Contains(t, string(d.Description), "<p>Experience luxury living")
	require.Equal(t, "124 reviews", d.ReviewsLabel())

	apartment, _ := c.Get(2)
	d = RenderDetails(apartment)
	require.Equal(t, "Apartment hosted by Michael", d.Heading)
	require.Equal(t, "Host", d.HostLabel, "absent badge falls back to Host")
	require.Equal(t, 1702, d.Breakdown.Total)
}

func TestRenderCards(t *testing.T) {
	t.Parallel()

	props := mustCatalog(t).All()
	grid := Render(props, favSet{2: true})
	require.Equal(t, len(props), grid.Count)
	require.False(t, grid.Empty)

	first := grid.Cards[0]
	require.Equal(t, 1, first.ID)
	require.Equal(t, "/assets/images/property-1.jpg", first.Image)
	require.Equal(t, "/properties/1", first.DetailHref)
	require.Equal(t, "/favorites/1", first.FavoriteHref)
	require.Equal(t, "4.95", first.Rating)
	require.Equal(t, "$850", first.Price)
	require.Equal(t, "8 guests · 4 bedrooms · 3 baths", first.Summary)
	require.True(t, first.HasBadge)
	require.Equal(t, "Superhost", first.Badge)
	require.False(t, first.Favorited)
	require.Equal(t, int64(0), first.Delay)

	second := grid.Cards[1]
	require.True(t, second.Favorited)
	require.False(t, second.HasBadge)
	require.Equal(t, int64(50), second.Delay)

	for i, card := range grid.Cards {
		require.Equal(t, props[i].ID, card.ID, "cards keep input order")
	}
}

func TestRenderEmptyAndNilFavorites(t *testing.T) {
	t.Parallel()

	grid := Render(nil, nil)
	require.True(t, grid.Empty)
	require.NotNil(t, grid.Cards)

	grid = Render(mustCatalog(t).All()[:1], nil)
	require.False(t, grid.Cards[0].Favorited)
}

func TestWithStateQuery(t *testing.T) {
	t.Parallel()

	grid := Render(mustCatalog(t).All()[:2], nil)
	scoped := grid.WithStateQuery("category=city")
	require.Equal(t, "/favorites/1?category=city", scoped.Cards[0].FavoriteHref)
	require.Equal(t, "/favorites/1", grid.Cards[0].FavoriteHref, "original grid untouched")
	require.Equal(t, grid, grid.WithStateQuery(""))
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Cozy and bright.", Excerpt("Cozy *and* bright.", 100))
	require.Equal(t, "First para. Second para.", Excerpt("First para.\n\nSecond para.", 100))

	long := strings.Repeat("word ", 40)
	got := Excerpt(long, 22)
	require.True(t, strings.HasSuffix(got, "…"))
	require.LessOrEqual(t, len([]rune(got)), 23)
	require.Equal(t, "word word word word…", got)
}

func TestDescriptionHTMLSanitizes(t *testing.T) {
	t.Parallel()

	out := string(DescriptionHTML("Nice <script>alert(1)</script> place"))
	require.NotContains(t, out, "<script>")
	require.Contains(t, out, "Nice")
}
