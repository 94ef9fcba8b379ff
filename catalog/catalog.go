// Package catalog holds the read-only list of desserts offered by the
// storefront and the sources it can be loaded from.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"goflare.io/storefront/models"
)

var (
	// ErrInvalidCatalog wraps every validation failure found while building a Catalog.
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrInvalidPrice   = errors.New("invalid price")
	ErrInvalidID      = errors.New("dessert id must be positive")
	ErrDuplicateID    = errors.New("duplicate dessert id")
	ErrEmptyName      = errors.New("dessert name is required")
	ErrEmptyCatalog   = errors.New("catalog has no desserts")
)

// Catalog is an immutable, ordered set of desserts.
type Catalog struct {
	desserts []models.Dessert
	index    map[uint64]int
}

// New validates desserts and returns a Catalog preserving their order.
func New(desserts []models.Dessert) (*Catalog, error) {
	if len(desserts) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, ErrEmptyCatalog)
	}

	c := &Catalog{
		desserts: make([]models.Dessert, 0, len(desserts)),
		index:    make(map[uint64]int, len(desserts)),
	}
	for _, d := range desserts {
		if err := validate(d); err != nil {
			return nil, fmt.Errorf("%w: dessert %d: %w", ErrInvalidCatalog, d.ID, err)
		}
		if _, exists := c.index[d.ID]; exists {
			return nil, fmt.Errorf("%w: dessert %d: %w", ErrInvalidCatalog, d.ID, ErrDuplicateID)
		}
		c.index[d.ID] = len(c.desserts)
		c.desserts = append(c.desserts, d)
	}

	return c, nil
}

func validate(d models.Dessert) error {
	if d.ID == 0 {
		return ErrInvalidID
	}
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if d.Price.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidPrice, d.Price)
	}
	return nil
}

// Desserts returns a copy of the desserts in catalog order.
func (c *Catalog) Desserts() []models.Dessert {
	out := make([]models.Dessert, len(c.desserts))
	copy(out, c.desserts)
	return out
}

// Lookup returns the dessert with the given id.
func (c *Catalog) Lookup(id uint64) (models.Dessert, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.Dessert{}, false
	}
	return c.desserts[i], true
}

func (c *Catalog) Len() int {
	return len(c.desserts)
}
