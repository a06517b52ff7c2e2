package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"truck-route-service/internal/ports"
)

const (
	redisKeyPrefix = "route:"
	defaultTTL     = 24 * time.Hour
)

// RedisRouteCache is a Redis-backed cache for resolved route summaries.
// Entries expire after a TTL so stale road data ages out on its own.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisRouteCache{client: client, ttl: ttl}
}

type redisRouteEntry struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (ports.RouteResult, bool, error) {
	if c.client == nil {
		return ports.RouteResult{}, false, errors.New("route cache: redis client is nil")
	}
	if key == "" {
		return ports.RouteResult{}, false, errors.New("get route cache: key must not be empty")
	}

	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: redis get: %w", err)
	}

	var entry redisRouteEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: decode entry: %w", err)
	}

	return ports.RouteResult{
		DistanceMeters:  entry.DistanceMeters,
		DurationSeconds: entry.DurationSeconds,
	}, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, result ports.RouteResult) error {
	if c.client == nil {
		return errors.New("route cache: redis client is nil")
	}
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	raw, err := json.Marshal(redisRouteEntry{
		DistanceMeters:  result.DistanceMeters,
		DurationSeconds: result.DurationSeconds,
	})
	if err != nil {
		return fmt.Errorf("insert route cache: encode entry: %w", err)
	}

	if err := c.client.Set(ctx, redisKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
