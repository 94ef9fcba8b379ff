package cart

import (
	"context"
	"errors"

	"goflare.io/storefront/models"
)

// ErrConflict is returned when a cart kept changing underneath Update.
var ErrConflict = errors.New("cart changed concurrently")

// UpdateFunc derives the next cart from the current one. It may be called
// more than once for a single Update and must not have side effects.
type UpdateFunc func(current models.Cart) (models.Cart, error)

// Repository keeps one cart per session for the lifetime of that session.
// A session without a stored cart has an empty cart. Every Load or Update
// restarts the cart's expiry, matching the session cookie.
type Repository interface {
	Load(ctx context.Context, sessionID string) (models.Cart, error)
	// Update applies fn atomically with respect to other updates of the same
	// session and returns the stored result.
	Update(ctx context.Context, sessionID string, fn UpdateFunc) (models.Cart, error)
	// Delete removes the cart and returns what it held, in one step.
	Delete(ctx context.Context, sessionID string) (models.Cart, error)
}
