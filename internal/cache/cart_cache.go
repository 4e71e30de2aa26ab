package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/beautyhub/shop_api/internal/models"
)

// CartCache is the server-side model of the shopper's client-held cart.
// Each browser session gets a cart key; the cart under that key mirrors what
// the client keeps locally and survives across requests without an account.
type CartCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewCartCache creates a new CartCache. TTL bounds how long an idle
// anonymous cart is kept around.
func NewCartCache(redis *RedisClient, ttl time.Duration) *CartCache {
	return &CartCache{
		redis: redis,
		ttl:   ttl,
	}
}

func (c *CartCache) key(cartKey string) string {
	return fmt.Sprintf("cart:session:%s", cartKey)
}

// Get returns the mirrored cart for a session. A missing key is an empty
// cart, not an error.
func (c *CartCache) Get(ctx context.Context, cartKey string) (models.Cart, error) {
	jsonData, err := c.redis.Get(ctx, c.key(cartKey))
	if err == redis.Nil {
		return models.Cart{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(jsonData), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return cart, nil
}

// Set replaces the mirrored cart for a session in full.
func (c *CartCache) Set(ctx context.Context, cartKey string, cart models.Cart) error {
	jsonData, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := c.redis.Set(ctx, c.key(cartKey), string(jsonData), c.ttl); err != nil {
		return fmt.Errorf("failed to set cart mirror: %w", err)
	}
	return nil
}

// Delete removes the mirrored cart for a session.
func (c *CartCache) Delete(ctx context.Context, cartKey string) error {
	return c.redis.Delete(ctx, c.key(cartKey))
}
