package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"goflare.io/storefront/models"
)

var _ Repository = (*redisRepository)(nil)

const maxUpdateAttempts = 5

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// redisRepository stores each cart as JSON under cart:<session> with a TTL
// that is refreshed on every load and update.
type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) Repository {
	return &redisRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (r *redisRepository) Load(ctx context.Context, sessionID string) (models.Cart, error) {
	c, err := decodeCart(r.client.GetEx(ctx, cacheKey(sessionID), r.ttl).Bytes())
	if err != nil {
		r.logger.Error("Failed to load cart", zap.String("session_id", sessionID), zap.Error(err))
		return models.Cart{}, err
	}
	return c, nil
}

func (r *redisRepository) Update(ctx context.Context, sessionID string, fn UpdateFunc) (models.Cart, error) {
	key := cacheKey(sessionID)

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		var next models.Cart

		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			current, err := r.get(ctx, tx, key)
			if err != nil {
				return err
			}
			if next, err = fn(current); err != nil {
				return err
			}
			data, err := json.Marshal(next)
			if err != nil {
				return fmt.Errorf("failed to encode cart: %w", err)
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, r.ttl)
				return nil
			})
			return err
		}, key)

		if err == nil {
			return next, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			r.logger.Error("Failed to update cart", zap.String("session_id", sessionID), zap.Error(err))
			return models.Cart{}, err
		}
		r.logger.Warn("Cart changed during update, retrying",
			zap.String("session_id", sessionID),
			zap.Int("attempt", attempt))
	}

	return models.Cart{}, fmt.Errorf("%w: session %s", ErrConflict, sessionID)
}

func (r *redisRepository) Delete(ctx context.Context, sessionID string) (models.Cart, error) {
	removed, err := decodeCart(r.client.GetDel(ctx, cacheKey(sessionID)).Bytes())
	if err != nil {
		r.logger.Error("Failed to delete cart", zap.String("session_id", sessionID), zap.Error(err))
		return models.Cart{}, err
	}
	return removed, nil
}

func (r *redisRepository) get(ctx context.Context, cmd stringGetter, key string) (models.Cart, error) {
	return decodeCart(cmd.Get(ctx, key).Bytes())
}

// decodeCart maps a missing key to an empty cart.
func decodeCart(data []byte, err error) (models.Cart, error) {
	if errors.Is(err, redis.Nil) {
		return models.Cart{}, nil
	}
	if err != nil {
		return models.Cart{}, fmt.Errorf("failed to read cart: %w", err)
	}

	var c models.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return models.Cart{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	return c, nil
}
