package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKey = "jobs:latest"
	cacheTTL = 10 * time.Minute
)

// Cache holds the serialised response for the unfiltered /jobs request so
// the common read path skips Postgres. Filtered queries always go to the
// database.
type Cache struct {
	rdb *redis.Client
}

// NewCache parses redisURL, verifies connectivity and returns a Cache.
func NewCache(ctx context.Context, redisURL string) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Cache{rdb: client}, nil
}

// Get returns the cached payload, or (nil, false) on miss or error.
func (c *Cache) Get(ctx context.Context) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// Set stores payload under the jobs key with a TTL.
func (c *Cache) Set(ctx context.Context, payload []byte) error {
	return c.rdb.Set(ctx, cacheKey, payload, cacheTTL).Err()
}

// Invalidate drops the cached payload. Called after every replace so reads
// never serve the previous run's data.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, cacheKey).Err()
}
