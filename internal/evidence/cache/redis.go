package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"idverify/internal/evidence/providers"
)

// RedisCache stores lookup results as JSON with a Redis TTL.
type RedisCache struct {
	client redis.Cmdable
}

func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*providers.LookupResult, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, eris.Wrap(err, "cache: redis get")
	}
	var result providers.LookupResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, eris.Wrap(err, "cache: decode entry")
	}
	return &result, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, result *providers.LookupResult, ttl time.Duration) error {
	if result == nil || ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "cache: encode entry")
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return eris.Wrap(err, "cache: redis set")
	}
	return nil
}
