package models

import "github.com/shopspring/decimal"

// Dessert 代表目錄中的一個甜點
type Dessert struct {
	ID       uint64          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageSrc string          `json:"image_src"`
}
