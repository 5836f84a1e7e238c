// Package cache contains Redis-backed read-through caches for hot lookup
// paths.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vintagecrib/backend/internal/domain/subscription"
)

// defaultSubscriptionTTL bounds how stale a cached subscription can be. The
// gate's lazy-expiry downgrade still applies on every read, so a stale tier
// can only ever be too generous for the TTL window, never permanently.
const defaultSubscriptionTTL = 5 * time.Minute

// SubscriptionCache is a read-through cache decorating a
// SubscriptionRepository. Cache problems are never surfaced to callers: a
// Redis failure logs a warning and falls through to the inner repository.
type SubscriptionCache struct {
	inner  subscription.SubscriptionRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// SubscriptionCacheOption is a functional option for configuring the cache
type SubscriptionCacheOption func(*SubscriptionCache)

// WithSubscriptionTTL sets the cache entry TTL
func WithSubscriptionTTL(ttl time.Duration) SubscriptionCacheOption {
	return func(c *SubscriptionCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithSubscriptionCacheLogger sets the logger for the cache
func WithSubscriptionCacheLogger(logger *zap.Logger) SubscriptionCacheOption {
	return func(c *SubscriptionCache) {
		c.logger = logger
	}
}

// NewSubscriptionCache creates a cache over an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewSubscriptionCache(inner subscription.SubscriptionRepository, client *redis.Client, opts ...SubscriptionCacheOption) *SubscriptionCache {
	cache := &SubscriptionCache{
		inner:  inner,
		client: client,
		ttl:    defaultSubscriptionTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// cacheKey generates the cache key for a seller's subscription
func (c *SubscriptionCache) cacheKey(sellerID uuid.UUID) string {
	return fmt.Sprintf("subscription:%s", sellerID)
}

// FindBySeller returns the seller's subscription, from cache when possible
func (c *SubscriptionCache) FindBySeller(ctx context.Context, sellerID uuid.UUID) (*subscription.Subscription, error) {
	key := c.cacheKey(sellerID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var sub subscription.Subscription
		if err := json.Unmarshal(data, &sub); err == nil {
			return &sub, nil
		}
		c.logger.Warn("failed to decode cached subscription, falling through",
			zap.String("seller_id", sellerID.String()))
	} else if err != redis.Nil {
		c.logger.Warn("subscription cache read failed, falling through",
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
	}

	sub, err := c.inner.FindBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, sub)
	return sub, nil
}

// Save persists the subscription and refreshes the cache entry
func (c *SubscriptionCache) Save(ctx context.Context, sub *subscription.Subscription) error {
	if err := c.inner.Save(ctx, sub); err != nil {
		return err
	}
	c.store(ctx, c.cacheKey(sub.SellerID), sub)
	return nil
}

// Invalidate drops a seller's cached subscription
func (c *SubscriptionCache) Invalidate(ctx context.Context, sellerID uuid.UUID) {
	if err := c.client.Del(ctx, c.cacheKey(sellerID)).Err(); err != nil {
		c.logger.Warn("failed to invalidate cached subscription",
			zap.String("seller_id", sellerID.String()),
			zap.Error(err))
	}
}

func (c *SubscriptionCache) store(ctx context.Context, key string, sub *subscription.Subscription) {
	data, err := json.Marshal(sub)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("subscription cache write failed", zap.Error(err))
	}
}

// Ensure SubscriptionCache implements SubscriptionRepository interface
var _ subscription.SubscriptionRepository = (*SubscriptionCache)(nil)
