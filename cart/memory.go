package cart

import (
	"context"
	"sync"
	"time"

	"goflare.io/storefront/models"
)

var _ Repository = (*memoryRepository)(nil)

type memoryEntry struct {
	cart      models.Cart
	expiresAt time.Time
}

// memoryRepository keeps carts in process memory. Entries expire after ttl
// without a load or update; expired entries are dropped lazily.
type memoryRepository struct {
	mu    sync.Mutex
	carts map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryRepository(ttl time.Duration) Repository {
	return &memoryRepository{
		carts: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (r *memoryRepository) Load(_ context.Context, sessionID string) (models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.current(sessionID)
	if entry, ok := r.carts[sessionID]; ok {
		entry.expiresAt = r.now().Add(r.ttl)
		r.carts[sessionID] = entry
	}
	return Clone(c), nil
}

func (r *memoryRepository) Update(ctx context.Context, sessionID string, fn UpdateFunc) (models.Cart, error) {
	if err := ctx.Err(); err != nil {
		return models.Cart{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(Clone(r.current(sessionID)))
	if err != nil {
		return models.Cart{}, err
	}
	r.carts[sessionID] = memoryEntry{cart: Clone(next), expiresAt: r.now().Add(r.ttl)}
	r.sweep()

	return next, nil
}

func (r *memoryRepository) Delete(_ context.Context, sessionID string) (models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := r.current(sessionID)
	delete(r.carts, sessionID)
	return removed, nil
}

// current must be called with mu held.
func (r *memoryRepository) current(sessionID string) models.Cart {
	entry, ok := r.carts[sessionID]
	if !ok {
		return models.Cart{}
	}
	if !r.now().Before(entry.expiresAt) {
		delete(r.carts, sessionID)
		return models.Cart{}
	}
	return entry.cart
}

// sweep must be called with mu held.
func (r *memoryRepository) sweep() {
	now := r.now()
	for id, entry := range r.carts {
		if !now.Before(entry.expiresAt) {
			delete(r.carts, id)
		}
	}
}
