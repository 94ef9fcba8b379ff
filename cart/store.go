// Package cart implements the cart state transitions, price aggregation and
// the per-session cart repositories.
//
// Every transition takes a cart and returns a new one; the input is never
// modified, so a cart value can be shared freely between readers.
package cart

import "goflare.io/storefront/models"

// Add increments the line for dessertID, or appends a new line with
// quantity 1 when the dessert is not in the cart yet.
func Add(c models.Cart, dessertID uint64) models.Cart {
	if i := indexOf(c, dessertID); i >= 0 {
		return withQuantity(c, i, c.Lines[i].Quantity+1)
	}

	lines := make([]models.CartLine, len(c.Lines), len(c.Lines)+1)
	copy(lines, c.Lines)
	lines = append(lines, models.CartLine{DessertID: dessertID, Quantity: 1})
	return models.Cart{Lines: lines}
}

// Increase increments an existing line. Desserts not in the cart are ignored:
// the +/- controls only exist for lines already present.
func Increase(c models.Cart, dessertID uint64) models.Cart {
	i := indexOf(c, dessertID)
	if i < 0 {
		return c
	}
	return withQuantity(c, i, c.Lines[i].Quantity+1)
}

// Decrease decrements an existing line and drops it when it reaches zero.
func Decrease(c models.Cart, dessertID uint64) models.Cart {
	i := indexOf(c, dessertID)
	if i < 0 {
		return c
	}
	if c.Lines[i].Quantity <= 1 {
		return without(c, i)
	}
	return withQuantity(c, i, c.Lines[i].Quantity-1)
}

// Remove drops the whole line for dessertID.
func Remove(c models.Cart, dessertID uint64) models.Cart {
	i := indexOf(c, dessertID)
	if i < 0 {
		return c
	}
	return without(c, i)
}

// Quantity returns the quantity of dessertID, 0 when absent.
func Quantity(c models.Cart, dessertID uint64) uint64 {
	if i := indexOf(c, dessertID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

func Contains(c models.Cart, dessertID uint64) bool {
	return indexOf(c, dessertID) >= 0
}

// Count is the total number of units across all lines.
func Count(c models.Cart) uint64 {
	var n uint64
	for _, line := range c.Lines {
		n += line.Quantity
	}
	return n
}

// Equal reports whether a and b hold the same lines in the same order.
func Equal(a, b models.Cart) bool {
	if len(a.Lines) != len(b.Lines) {
		return false
	}
	for i := range a.Lines {
		if a.Lines[i] != b.Lines[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no memory with c.
func Clone(c models.Cart) models.Cart {
	if c.Lines == nil {
		return models.Cart{}
	}
	lines := make([]models.CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return models.Cart{Lines: lines}
}

func indexOf(c models.Cart, dessertID uint64) int {
	for i, line := range c.Lines {
		if line.DessertID == dessertID {
			return i
		}
	}
	return -1
}

func withQuantity(c models.Cart, i int, quantity uint64) models.Cart {
	out := Clone(c)
	out.Lines[i].Quantity = quantity
	return out
}

func without(c models.Cart, i int) models.Cart {
	lines := make([]models.CartLine, 0, len(c.Lines)-1)
	lines = append(lines, c.Lines[:i]...)
	lines = append(lines, c.Lines[i+1:]...)
	return models.Cart{Lines: lines}
}
