package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/zap"

	"goflare.io/storefront/cart"
	"goflare.io/storefront/catalog"
	"goflare.io/storefront/models"
	"goflare.io/storefront/models/enum"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []*models.CartEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e *models.CartEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []enum.CartEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]enum.CartEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type failingRepository struct {
	cart.Repository
	err error
}

func (r failingRepository) Update(context.Context, string, cart.UpdateFunc) (models.Cart, error) {
	return models.Cart{}, r.err
}

type deletingRepository struct {
	cart.Repository
	removed models.Cart
}

func (r deletingRepository) Delete(context.Context, string) (models.Cart, error) {
	return r.removed, nil
}

func newTestService(t *testing.T) (Service, *recordingPublisher, cart.Repository) {
	t.Helper()
	cat, err := catalog.Embedded()
	require.NoError(t, err)

	pub := &recordingPublisher{}
	repo := cart.NewMemoryRepository(time.Hour)
	return NewService(cat, repo, pub, stripe.CurrencyUSD, zap.NewNop()), pub, repo
}

func TestCatalog(t *testing.T) {
	svc, _, _ := newTestService(t)

	desserts := svc.Catalog()
	require.Len(t, desserts, 6)
	assert.Equal(t, "Waffle com frutas vermelhas", desserts[0].Name)
	assert.Equal(t, stripe.CurrencyUSD, svc.Currency())
}

func TestGetCartEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)

	summary, err := svc.GetCart(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, summary.Empty)
	assert.Equal(t, "$0.00", summary.FormattedTotal)
}

func TestAddToCart(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newTestService(t)

	summary, err := svc.AddToCart(ctx, "s1", 4)
	require.NoError(t, err)
	assert.Equal(t, "$4.50", summary.FormattedTotal)

	_, err = svc.AddToCart(ctx, "s1", 4)
	require.NoError(t, err)
	summary, err = svc.AddToCart(ctx, "s1", 6)
	require.NoError(t, err)

	assert.Equal(t, "11.75", summary.Total.StringFixed(2))
	assert.Equal(t, uint64(3), summary.ItemCount)
	require.Len(t, pub.events, 3)

	last := pub.events[2]
	assert.Equal(t, enum.CartEventTypeItemAdded, last.Type)
	assert.Equal(t, "s1", last.SessionID)
	assert.Equal(t, uint64(6), last.DessertID)
	assert.Equal(t, uint64(1), last.Quantity)
	assert.NotEmpty(t, last.ID)
	assert.False(t, last.OccurredAt.IsZero())
	assert.Equal(t, uint64(2), pub.events[1].Quantity)
}

func TestAddToCartUnknownDessert(t *testing.T) {
	svc, pub, _ := newTestService(t)

	_, err := svc.AddToCart(context.Background(), "s1", 99)
	assert.ErrorIs(t, err, ErrDessertNotFound)
	assert.Empty(t, pub.events)
}

func TestAddToCartChecksSessionBeforeCatalog(t *testing.T) {
	svc, pub, _ := newTestService(t)

	_, err := svc.AddToCart(context.Background(), "", 99)
	assert.ErrorIs(t, err, ErrSessionRequired)
	assert.NotErrorIs(t, err, ErrDessertNotFound)
	assert.Empty(t, pub.events)
}

func TestSessionRequired(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.GetCart(ctx, "")
	assert.ErrorIs(t, err, ErrSessionRequired)
	_, err = svc.AddToCart(ctx, "", 1)
	assert.ErrorIs(t, err, ErrSessionRequired)
	_, err = svc.IncreaseQuantity(ctx, "", 1)
	assert.ErrorIs(t, err, ErrSessionRequired)
	assert.ErrorIs(t, svc.EndSession(ctx, ""), ErrSessionRequired)
}

func TestIncreaseAndDecrease(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newTestService(t)

	_, err := svc.AddToCart(ctx, "s1", 6)
	require.NoError(t, err)

	summary, err := svc.IncreaseQuantity(ctx, "s1", 6)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), summary.Quantity(6))
	assert.Equal(t, "$5.50", summary.FormattedTotal)

	_, err = svc.DecreaseQuantity(ctx, "s1", 6)
	require.NoError(t, err)
	summary, err = svc.DecreaseQuantity(ctx, "s1", 6)
	require.NoError(t, err)
	assert.True(t, summary.Empty)
	assert.Equal(t, "0.00", summary.Total.StringFixed(2))

	assert.Equal(t, []enum.CartEventType{
		enum.CartEventTypeItemAdded,
		enum.CartEventTypeQuantityIncreased,
		enum.CartEventTypeQuantityDecreased,
		enum.CartEventTypeQuantityDecreased,
	}, pub.types())
	assert.Equal(t, uint64(0), pub.events[3].Quantity)
}

func TestNoOpsPublishNothing(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newTestService(t)

	summary, err := svc.IncreaseQuantity(ctx, "s1", 3)
	require.NoError(t, err)
	assert.True(t, summary.Empty)

	_, err = svc.DecreaseQuantity(ctx, "s1", 3)
	require.NoError(t, err)
	_, err = svc.RemoveFromCart(ctx, "s1", 3)
	require.NoError(t, err)
	require.NoError(t, svc.EndSession(ctx, "s1"))

	assert.Empty(t, pub.events)
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newTestService(t)

	for _, id := range []uint64{1, 1, 2} {
		_, err := svc.AddToCart(ctx, "s1", id)
		require.NoError(t, err)
	}

	summary, err := svc.RemoveFromCart(ctx, "s1", 1)
	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
	assert.Equal(t, uint64(2), summary.Lines[0].DessertID)
	assert.Equal(t, enum.CartEventTypeLineRemoved, pub.events[len(pub.events)-1].Type)
}

func TestEndSession(t *testing.T) {
	ctx := context.Background()
	svc, pub, repo := newTestService(t)

	_, err := svc.AddToCart(ctx, "s1", 5)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "s2", 5)
	require.NoError(t, err)

	require.NoError(t, svc.EndSession(ctx, "s1"))

	c, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	other, err := svc.GetCart(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), other.Quantity(5))

	assert.Equal(t, enum.CartEventTypeCartCleared, pub.events[len(pub.events)-1].Type)
}

func TestEndSessionPublishesWhatWasDeleted(t *testing.T) {
	cat, err := catalog.Embedded()
	require.NoError(t, err)
	ctx := context.Background()

	pub := &recordingPublisher{}
	svc := NewService(cat, deletingRepository{removed: models.Cart{Lines: []models.CartLine{{DessertID: 2, Quantity: 1}}}},
		pub, stripe.CurrencyUSD, zap.NewNop())
	require.NoError(t, svc.EndSession(ctx, "s1"))
	assert.Equal(t, []enum.CartEventType{enum.CartEventTypeCartCleared}, pub.types())

	pub = &recordingPublisher{}
	svc = NewService(cat, deletingRepository{}, pub, stripe.CurrencyUSD, zap.NewNop())
	require.NoError(t, svc.EndSession(ctx, "s1"))
	assert.Empty(t, pub.events)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	svc, pub, _ := newTestService(t)
	pub.err = errors.New("nats down")

	summary, err := svc.AddToCart(context.Background(), "s1", 2)
	require.NoError(t, err)
	assert.Equal(t, "$7.00", summary.FormattedTotal)
}

func TestRepositoryFailure(t *testing.T) {
	cat, err := catalog.Embedded()
	require.NoError(t, err)
	boom := errors.New("redis down")
	pub := &recordingPublisher{}

	svc := NewService(cat, failingRepository{err: boom}, pub, stripe.CurrencyUSD, zap.NewNop())

	_, err = svc.AddToCart(context.Background(), "s1", 1)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, pub.events)
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	svc, pub, _ := newTestService(t)

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.AddToCart(ctx, "s1", 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	summary, err := svc.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, uint64(n), summary.Quantity(3))
	assert.Equal(t, "$160.00", summary.FormattedTotal)
	assert.Len(t, pub.types(), n)
}
