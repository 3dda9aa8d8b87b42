package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/nithyashree19/electromart/internal/domain"
)

// recordKey matches the storage key the original storefront used.
const recordKey = "electromart-cart"

// RedisStore keeps the cart as a JSON array under a single key.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Load(ctx context.Context) ([]domain.CartItem, error) {
	data, err := r.client.Get(ctx, recordKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSavedCart
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	return items, nil
}

func (r *RedisStore) Save(ctx context.Context, items []domain.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	// No TTL: the record lives until the cart is cleared.
	if err := r.client.Set(ctx, recordKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, recordKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
