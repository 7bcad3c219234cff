package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultSeed []byte

var (
	// ErrDuplicateID is returned when two records share an id.
	ErrDuplicateID = errors.New("catalog: duplicate property id")
	// ErrInvalidProperty is returned when a record violates the data model.
	ErrInvalidProperty = errors.New("catalog: invalid property")
	// ErrEmpty is returned when a seed contains no records.
	ErrEmpty = errors.New("catalog: no properties")
)

// Catalog is the fixed, id-indexed list of listings held in memory for the process lifetime.
// It is safe for concurrent use because nothing mutates it after construction.
type Catalog struct {
	items []Property
	index map[int]int
}

type seedFile struct {
	Properties []Property `yaml:"properties"`
}

// Default loads the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return Parse(defaultSeed)
}

// LoadFile reads a YAML seed from disk.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML seed with a top-level `properties` list.
func Parse(raw []byte) (*Catalog, error) {
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("catalog: decode seed: %w", err)
	}
	return New(seed.Properties)
}

// New validates the records and builds the catalog, preserving their order.
func New(items []Property) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	c := &Catalog{
		items: make([]Property, 0, len(items)),
		index: make(map[int]int, len(items)),
	}
	for _, p := range items {
		if err := validate(p); err != nil {
			return nil, err
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		c.index[p.ID] = len(c.items)
		c.items = append(c.items, p.clone())
	}
	return c, nil
}

// All returns every record in catalog order. The slice is a copy.
func (c *Catalog) All() []Property {
	out := make([]Property, len(c.items))
	for i, p := range c.items {
		out[i] = p.clone()
	}
	return out
}

// Get looks up a record by id.
func (c *Catalog) Get(id int) (Property, bool) {
	i, ok := c.index[id]
	if !ok {
		return Property{}, false
	}
	return c.items[i].clone(), true
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.items) }

func validate(p Property) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: property %d: %s", ErrInvalidProperty, p.ID, fmt.Sprintf(format, args...))
	}
	switch {
	case p.ID <= 0:
		return invalid("id must be positive")
	case strings.TrimSpace(p.Title) == "":
		return invalid("title is required")
	case !p.Type.Valid():
		return invalid("unknown type %q", p.Type)
	case !p.Category.Valid():
		return invalid("unknown category %q", p.Category)
	case p.Rating < 0 || p.Rating > 5:
		return invalid("rating %.2f outside [0,5]", p.Rating)
	case p.Reviews < 0:
		return invalid("reviews must not be negative")
	case p.Price <= 0:
		return invalid("price must be positive")
	case p.Guests <= 0, p.Bedrooms <= 0, p.Bathrooms <= 0:
		return invalid("guests, bedrooms and bathrooms must be positive")
	}
	return nil
}
