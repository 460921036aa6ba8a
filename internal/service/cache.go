package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// generationKey holds a counter that is bumped whenever the ingestion
// pipeline changes the catalog. The counter is part of every query cache key,
// so bumping it invalidates all cached pages at once without scanning keys.
const generationKey = "catalog:generation"

// QueryCache is a short-TTL Redis cache for query results. It is strictly
// best-effort: any Redis failure is logged and treated as a miss, never
// surfaced to the caller.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewQueryCache creates a query cache with the given TTL.
func NewQueryCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *QueryCache {
	return &QueryCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get looks up a cached value and unmarshals it into dest. The bool result
// reports whether a usable cached value was found.
func (c *QueryCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}

	raw, err := c.client.Get(ctx, c.versionedKey(ctx, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "cache get failed", slog.String("error", err.Error()))
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.WarnContext(ctx, "cache entry corrupt, ignoring", slog.String("error", err.Error()))
		return false
	}
	return true
}

// Set stores a value under the key for the cache TTL.
func (c *QueryCache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "cache marshal failed", slog.String("error", err.Error()))
		return
	}

	if err := c.client.Set(ctx, c.versionedKey(ctx, key), raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache set failed", slog.String("error", err.Error()))
	}
}

// Invalidate bumps the catalog generation, orphaning every cached query
// result. Orphaned entries expire on their own TTL.
func (c *QueryCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache invalidation failed", slog.String("error", err.Error()))
	}
}

func (c *QueryCache) versionedKey(ctx context.Context, key string) string {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		// Treat an unreadable generation as generation zero; worst case is a
		// brief window of stale results within the TTL.
		gen = 0
	}
	return fmt.Sprintf("catalog:q:%d:%s", gen, key)
}

// cacheKey derives a stable key from any JSON-marshalable query description.
func cacheKey(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return "invalid"
	}
	h := fnv.New64a()
	_, _ = h.Write(raw)
	return fmt.Sprintf("%x", h.Sum64())
}
