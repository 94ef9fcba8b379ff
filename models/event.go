package models

import (
	"time"

	"goflare.io/storefront/models/enum"
)

// CartEvent records one cart state transition. Quantity is the line quantity
// after the transition (0 when the line is gone).
type CartEvent struct {
	ID         string             `json:"id"`
	Type       enum.CartEventType `json:"type"`
	SessionID  string             `json:"session_id"`
	DessertID  uint64             `json:"dessert_id,omitempty"`
	Quantity   uint64             `json:"quantity"`
	OccurredAt time.Time          `json:"occurred_at"`
}
