package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goflare.io/storefront/models"
)

func TestMemoryRepositoryLoadUnknownSession(t *testing.T) {
	repo := NewMemoryRepository(time.Hour)

	c, err := repo.Load(context.Background(), "missing")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestMemoryRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(time.Hour)

	got, err := repo.Update(ctx, "s1", func(c models.Cart) (models.Cart, error) {
		return Add(c, 4), nil
	})
	require.NoError(t, err)
	assert.Equal(t, lines(4, 1), got)

	loaded, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, lines(4, 1), loaded)

	other, err := repo.Load(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())
}

func TestMemoryRepositoryUpdateError(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(time.Hour)
	_, err := repo.Update(ctx, "s1", func(c models.Cart) (models.Cart, error) { return Add(c, 1), nil })
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = repo.Update(ctx, "s1", func(c models.Cart) (models.Cart, error) {
		return Add(c, 2), boom
	})
	assert.ErrorIs(t, err, boom)

	loaded, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, lines(1, 1), loaded)
}

func TestMemoryRepositoryUpdateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryRepository(time.Hour).Update(ctx, "s1", func(c models.Cart) (models.Cart, error) {
		t.Fatal("update func must not run")
		return c, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryRepositoryLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(time.Hour)
	_, err := repo.Update(ctx, "s1", func(c models.Cart) (models.Cart, error) { return Add(c, 1), nil })
	require.NoError(t, err)

	loaded, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	loaded.Lines[0].Quantity = 42

	again, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), again.Lines[0].Quantity)
}

func TestMemoryRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(time.Hour)
	_, err := repo.Update(ctx, "s1", func(c models.Cart) (models.Cart, error) { return Add(c, 1), nil })
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, lines(1, 1), removed)

	removed, err = repo.Delete(ctx, "never-existed")
	require.NoError(t, err)
	assert.True(t, removed.IsEmpty())

	c, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestMemoryRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	repo := NewMemoryRepository(time.Minute).(*memoryRepository)
	repo.now = func() time.Time { return now }

	_, err := repo.Update(ctx, "s1", func(c models.Cart) (models.Cart, error) { return Add(c, 1), nil })
	require.NoError(t, err)

	now = now.Add(time.Minute)
	c, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.NotContains(t, repo.carts, "s1")
}

func TestMemoryRepositoryLoadExtendsExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	repo := NewMemoryRepository(24 * time.Hour).(*memoryRepository)
	repo.now = func() time.Time { return now }

	_, err := repo.Update(ctx, "s1", func(c models.Cart) (models.Cart, error) { return Add(c, 4), nil })
	require.NoError(t, err)

	now = now.Add(23 * time.Hour)
	c, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, lines(4, 1), c)

	now = now.Add(2 * time.Hour)
	c, err = repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, lines(4, 1), c)

	now = now.Add(24 * time.Hour)
	c, err = repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestMemoryRepositoryConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(time.Hour)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := repo.Update(ctx, "s1", func(c models.Cart) (models.Cart, error) {
				return Add(c, 3), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, lines(3, n), c)
}
