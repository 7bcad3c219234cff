package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/stays-web/internal/catalog"
	"finitefield.org/stays-web/internal/storefront"
)

func TestBuildListings(t *testing.T) {
	t.Parallel()

	c, err := catalog.Default()
	require.NoError(t, err)
	svc := storefront.New(c, storefront.Options{}, nil)
	state := storefront.StateFromQuery(url.Values{"category": {"city"}, "view": {"list"}})

	data := BuildListings(svc.Listings(state, nil), true)
	require.True(t, data.OOB)
	require.True(t, data.List())
	require.Equal(t, "category=city&view=list", data.Query)
	require.Equal(t, 2, data.Grid.Count)
	for _, it := range data.Categories {
		require.Equal(t, it.Category == catalog.CategoryCity, it.Active)
	}
}

func TestBuildFilters(t *testing.T) {
	t.Parallel()

	state := storefront.StateFromQuery(url.Values{"type": {"cabin"}, "amenity": {"wifi"}, "bedrooms": {"2"}})
	form := BuildFilters(state)
	require.Len(t, form.Types, 4)
	require.Equal(t, Option{Value: "cabin", Label: "Cabin", Selected: true}, form.Types[2])
	require.True(t, form.Amenities[0].Selected)
	require.Equal(t, "2", form.BedroomsLabel())
	require.Equal(t, "Any", form.BathroomsLabel())
	require.Equal(t, 2, form.Bedrooms())
	require.Equal(t, 0, form.Bathrooms())
	require.Equal(t, 1000, form.Filters.Price.Max)
}

func TestBuildFooter(t *testing.T) {
	t.Parallel()

	groups := BuildFooter()
	require.Len(t, groups, 3)
	for _, g := range groups {
		require.NotEmpty(t, g.Topics, g.Title)
	}
}

func TestStateFields(t *testing.T) {
	t.Parallel()

	state := storefront.StateFromQuery(url.Values{"category": {"pool"}, "view": {"list"}, "type": {"villa"}})
	require.Equal(t, []Field{
		{Name: "category", Value: "pool"},
		{Name: "type", Value: "villa"},
		{Name: "view", Value: "list"},
	}, SearchForm{State: state}.StateFields())
	require.Equal(t, []Field{
		{Name: "category", Value: "pool"},
		{Name: "view", Value: "list"},
	}, BuildFilters(state).StateFields())
}

func TestLayoutHrefs(t *testing.T) {
	t.Parallel()

	c, err := catalog.Default()
	require.NoError(t, err)
	svc := storefront.New(c, storefront.Options{}, nil)
	state := storefront.StateFromQuery(url.Values{"category": {"cabin"}})

	data := BuildListings(svc.Listings(state, nil), false)
	require.Equal(t, "/listings?category=cabin", data.GridHref)
	require.Equal(t, "/listings?category=cabin&view=list", data.ListHref)
}
