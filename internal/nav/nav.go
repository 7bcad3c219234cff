package nav

import (
	"net/url"

	"finitefield.org/stays-web/internal/catalog"
)

// Item is one entry of the category bar.
type Item struct {
	Category catalog.Category
	Label    string
	Icon     string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Category catalog.Category
	Label    string
	Icon     string
	// Href is the full page URL; FragmentHref is the listings fragment URL.
	Href         string
	FragmentHref string
	Active       bool
}

// Categories is the category bar definition, in display order.
var Categories = []Item{
	{Category: catalog.CategoryAll, Label: "All", Icon: "grid"},
	{Category: catalog.CategoryBeachfront, Label: "Beachfront", Icon: "waves"},
	{Category: catalog.CategoryCity, Label: "City", Icon: "building"},
	{Category: catalog.CategoryCabin, Label: "Cabins", Icon: "tree"},
	{Category: catalog.CategoryPool, Label: "Amazing pools", Icon: "pool"},
	{Category: catalog.CategoryLuxury, Label: "Luxe", Icon: "diamond"},
	{Category: catalog.CategoryTrending, Label: "Trending", Icon: "flame"},
}

// Build renders the category bar with the active entry marked. base carries the rest of
// the view state (filters, layout) so switching category keeps it; base is not modified.
func Build(active catalog.Category, base url.Values) []RenderedItem {
	if active == "" {
		active = catalog.CategoryAll
	}
	items := make([]RenderedItem, 0, len(Categories))
	for _, it := range Categories {
		q := url.Values{}
		for k, v := range base {
			if k == "category" {
				continue
			}
			q[k] = append([]string(nil), v...)
		}
		if it.Category != catalog.CategoryAll {
			q.Set("category", string(it.Category))
		}
		items = append(items, RenderedItem{
			Category:     it.Category,
			Label:        it.Label,
			Icon:         it.Icon,
			Href:         withQuery("/", q),
			FragmentHref: withQuery("/listings", q),
			Active:       it.Category == active,
		})
	}
	return items
}

func withQuery(path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
