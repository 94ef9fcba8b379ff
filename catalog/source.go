package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"goflare.io/storefront/models"
)

//go:embed desserts.json
var embeddedDesserts []byte

// Source loads a Catalog once at startup.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// record is the wire and row shape of a dessert, with the price kept as text
// so every source goes through ParsePrice.
type record struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Price    string `json:"price" db:"price"`
	ImageSrc string `json:"image_src" db:"image_src"`
}

func fromRecords(records []record) (*Catalog, error) {
	desserts := make([]models.Dessert, 0, len(records))
	for _, r := range records {
		if r.ID <= 0 {
			return nil, fmt.Errorf("%w: dessert %d: %w", ErrInvalidCatalog, r.ID, ErrInvalidID)
		}
		price, err := ParsePrice(r.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: dessert %d: %w", ErrInvalidCatalog, r.ID, err)
		}
		desserts = append(desserts, models.Dessert{
			ID:       uint64(r.ID),
			Name:     r.Name,
			Price:    price,
			ImageSrc: r.ImageSrc,
		})
	}
	return New(desserts)
}

// Parse decodes a JSON array of desserts and validates it.
func Parse(data []byte) (*Catalog, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	return fromRecords(records)
}

// Embedded returns the catalog compiled into the binary.
func Embedded() (*Catalog, error) {
	return Parse(embeddedDesserts)
}

type embeddedSource struct{}

func NewEmbeddedSource() Source {
	return embeddedSource{}
}

func (embeddedSource) Load(context.Context) (*Catalog, error) {
	return Embedded()
}
