package models

import (
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
)

// Cart is the ordered list of lines for one session. Lines keep the order in
// which desserts were first added. The zero value is an empty cart.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// CartLine 代表購物車中的單個甜點項目
type CartLine struct {
	DessertID uint64 `json:"dessert_id"`
	Quantity  uint64 `json:"quantity"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// CartSummary is the render model of a cart, recomputed from the catalog on
// every read.
type CartSummary struct {
	Currency       stripe.Currency `json:"currency"`
	Lines          []LineSummary   `json:"lines"`
	ItemCount      uint64          `json:"item_count"`
	Total          decimal.Decimal `json:"total"`
	FormattedTotal string          `json:"formatted_total"`
	Empty          bool            `json:"empty"`
}

type LineSummary struct {
	DessertID          uint64          `json:"dessert_id"`
	Name               string          `json:"name"`
	ImageSrc           string          `json:"image_src"`
	Quantity           uint64          `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	LineTotal          decimal.Decimal `json:"line_total"`
	FormattedUnitPrice string          `json:"formatted_unit_price"`
	FormattedLineTotal string          `json:"formatted_line_total"`
}

// Quantity returns the quantity of dessertID in the summary, 0 when absent.
func (s *CartSummary) Quantity(dessertID uint64) uint64 {
	for _, line := range s.Lines {
		if line.DessertID == dessertID {
			return line.Quantity
		}
	}
	return 0
}
