// Package listing projects catalog records into the view models the storefront templates
// render: listing cards and the property detail view.
package listing

import (
	"fmt"
	"time"

	"finitefield.org/stays-web/internal/catalog"
	"finitefield.org/stays-web/internal/format"
)

// StaggerStep is the animation delay added per card index.
const StaggerStep = 50 * time.Millisecond

// FavoriteChecker reports favorite membership at render time.
type FavoriteChecker interface {
	IsFavorited(id int) bool
}

// Card is one listing tile.
type Card struct {
	ID           int
	DetailHref   string
	FavoriteHref string
	Image        string
	ImageAlt     string
	Title        string
	Location     string
	Rating       string
	Summary      string
	Price        string
	Badge        string
	HasBadge     bool
	Favorited    bool
	Excerpt      string
	// Delay is the entrance animation offset in milliseconds.
	Delay int64
}

// Grid is the full set of cards replacing the listings container.
type Grid struct {
	Cards []Card
	Count int
	Empty bool
}

// ImagePath derives a listing's primary image from its id.
func ImagePath(id int) string {
	return fmt.Sprintf("/assets/images/property-%d.jpg", id)
}

// DetailPath is the detail fragment endpoint for id.
func DetailPath(id int) string {
	return fmt.Sprintf("/properties/%d", id)
}

// FavoritePath is the favorite toggle endpoint for id.
func FavoritePath(id int) string {
	return fmt.Sprintf("/favorites/%d", id)
}

// Render builds a card per record in order. favs may be nil.
func Render(props []catalog.Property, favs FavoriteChecker) Grid {
	cards := make([]Card, 0, len(props))
	for i, p := range props {
		cards = append(cards, Card{
			ID:           p.ID,
			DetailHref:   DetailPath(p.ID),
			FavoriteHref: FavoritePath(p.ID),
			Image:        ImagePath(p.ID),
			ImageAlt:     p.Title,
			Title:        p.Title,
			Location:     p.Location,
			Rating:       format.Rating(p.Rating),
			Summary:      Summary(p),
			Price:        format.Money(p.Price),
			Badge:        p.BadgeLabel(),
			HasBadge:     p.HasBadge(),
			Favorited:    favs != nil && favs.IsFavorited(p.ID),
			Excerpt:      Excerpt(p.Description, ExcerptLength),
			Delay:        (time.Duration(i) * StaggerStep).Milliseconds(),
		})
	}
	return Grid{Cards: cards, Count: len(cards), Empty: len(cards) == 0}
}

// WithStateQuery appends an encoded filter state to every favorite toggle link so the
// re-rendered grid keeps the visitor's current view.
func (g Grid) WithStateQuery(query string) Grid {
	if query == "" {
		return g
	}
	cards := make([]Card, len(g.Cards))
	for i, c := range g.Cards {
		c.FavoriteHref = FavoritePath(c.ID) + "?" + query
		cards[i] = c
	}
	g.Cards = cards
	return g
}

// Summary is the capacity line shown on a card.
func Summary(p catalog.Property) string {
	return format.Count(p.Guests, "guest", "guests") + " · " +
		format.Count(p.Bedrooms, "bedroom", "bedrooms") + " · " +
		format.Count(p.Bathrooms, "bath", "baths")
}
