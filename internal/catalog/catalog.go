package catalog

import "strings"

// PropertyType is the structural kind of dwelling.
type PropertyType string

const (
	TypeVilla     PropertyType = "villa"
	TypeApartment PropertyType = "apartment"
	TypeCabin     PropertyType = "cabin"
	TypeHouse     PropertyType = "house"
)

var propertyTypes = []PropertyType{TypeVilla, TypeApartment, TypeCabin, TypeHouse}

// PropertyTypes lists every known dwelling type in display order.
func PropertyTypes() []PropertyType {
	out := make([]PropertyType, len(propertyTypes))
	copy(out, propertyTypes)
	return out
}

// Valid reports whether t is one of the known dwelling types.
func (t PropertyType) Valid() bool {
	for _, known := range propertyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Category is a coarse tag used purely for filtering. It is distinct from PropertyType.
type Category string

const (
	// CategoryAll matches every record regardless of its category.
	CategoryAll        Category = "all"
	CategoryBeachfront Category = "beachfront"
	CategoryCity       Category = "city"
	CategoryCabin      Category = "cabin"
	CategoryPool       Category = "pool"
	CategoryLuxury     Category = "luxury"
	CategoryTrending   Category = "trending"
)

var categories = []Category{
	CategoryBeachfront,
	CategoryCity,
	CategoryCabin,
	CategoryPool,
	CategoryLuxury,
	CategoryTrending,
}

// Categories lists the concrete categories in display order. CategoryAll is not included.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is a concrete category. CategoryAll is not a record category.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory normalises a selector value. Blank input selects CategoryAll; unknown
// values are kept as-is so that filtering on them yields an empty result.
func ParseCategory(raw string) Category {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return CategoryAll
	}
	return Category(v)
}

// Property is a single catalog listing. Records are immutable for the lifetime of the process.
type Property struct {
	ID          int          `yaml:"id"`
	Title       string       `yaml:"title"`
	Location    string       `yaml:"location"`
	Host        string       `yaml:"host"`
	Description string       `yaml:"description"`
	Type        PropertyType `yaml:"type"`
	Category    Category     `yaml:"category"`
	Rating      float64      `yaml:"rating"`
	Reviews     int          `yaml:"reviews"`
	Price       int          `yaml:"price"`
	Guests      int          `yaml:"guests"`
	Bedrooms    int          `yaml:"bedrooms"`
	Bathrooms   int          `yaml:"bathrooms"`
	Amenities   []string     `yaml:"amenities"`
	Images      int          `yaml:"images"`
	// Badge is nil for ordinary listings; nil is distinct from any tag value.
	Badge    *string `yaml:"badge"`
	Featured bool    `yaml:"featured"`
}

// HasBadge reports whether the listing carries a promotional badge.
func (p Property) HasBadge() bool { return p.Badge != nil }

// BadgeLabel returns the badge text, or "" when absent.
func (p Property) BadgeLabel() string {
	if p.Badge == nil {
		return ""
	}
	return *p.Badge
}

// HasAmenity reports whether the listing offers the named amenity (case-insensitive).
func (p Property) HasAmenity(name string) bool {
	for _, a := range p.Amenities {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

func (p Property) clone() Property {
	out := p
	if p.Amenities != nil {
		out.Amenities = make([]string, len(p.Amenities))
		copy(out.Amenities, p.Amenities)
	}
	if p.Badge != nil {
		badge := *p.Badge
		out.Badge = &badge
	}
	return out
}
