package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ViewCache is a JSON-backed Redis cache for one read model type. Cache
// failures are logged and treated as misses.
type ViewCache[T any] struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewViewCache creates a cache. A zero ttl keeps keys until deleted.
func NewViewCache[T any](client *redis.Client, ttl time.Duration, logger *zap.Logger) *ViewCache[T] {
	return &ViewCache[T]{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached value, or false on a miss. A cache without a client
// always misses.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.logger.Warn("cache entry unreadable", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &v, true
}

// Set stores value under key.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes key.
func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
	}
}
