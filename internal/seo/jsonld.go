package seo

import (
	"encoding/json"
	"strconv"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WebSite returns a minimal WebSite schema with optional SearchAction.
func WebSite(name, url, searchActionURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if searchActionURL != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      searchActionURL + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// Lodging describes one listing for structured data.
type Lodging struct {
	Name     string
	URL      string
	Image    string
	Locality string
	Rating   string
	Reviews  int
	Price    int
}

// LodgingList builds a schema.org ItemList of LodgingBusiness entries.
func LodgingList(items []Lodging) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		biz := map[string]any{
			"@type":      "LodgingBusiness",
			"name":       it.Name,
			"priceRange": "$" + strconv.Itoa(it.Price) + " per night",
		}
		if it.URL != "" {
			biz["url"] = it.URL
		}
		if it.Image != "" {
			biz["image"] = it.Image
		}
		if it.Locality != "" {
			biz["address"] = map[string]any{"@type": "PostalAddress", "addressLocality": it.Locality}
		}
		if it.Rating != "" && it.Reviews > 0 {
			biz["aggregateRating"] = map[string]any{
				"@type":       "AggregateRating",
				"ratingValue": it.Rating,
				"reviewCount": it.Reviews,
			}
		}
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"item":     biz,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"itemListElement": el,
	}
}
