package ai

import (
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sarensabesk/HireAI/internal/adapter/observability"
	"github.com/sarensabesk/HireAI/internal/domain"
)

const redisKeyPrefix = "ai:resp:"

// redisCacheClient caches generated responses in Redis so replicas share one
// cache. Redis failures degrade to calling the base client directly.
type redisCacheClient struct {
	base domain.AIClient
	rdb  *redis.Client
	ttl  time.Duration
}

// NewRedisCache wraps base with a Redis-backed response cache. If rdb is nil,
// base is returned unmodified.
func NewRedisCache(base domain.AIClient, rdb *redis.Client, ttl time.Duration) domain.AIClient {
	if rdb == nil || base == nil {
		return base
	}
	return &redisCacheClient{base: base, rdb: rdb, ttl: ttl}
}

func (c *redisCacheClient) Generate(ctx domain.Context, prompt string) (string, error) {
	k := redisKeyPrefix + keyFor(prompt)
	val, err := c.rdb.Get(ctx, k).Result()
	switch {
	case err == nil:
		observability.CacheHit()
		return val, nil
	case errors.Is(err, redis.Nil):
		observability.CacheMiss()
	default:
		slog.Warn("ai cache read failed", slog.Any("error", err))
	}

	out, genErr := c.base.Generate(ctx, prompt)
	if genErr != nil {
		return "", genErr
	}
	if err := c.rdb.Set(ctx, k, out, c.ttl).Err(); err != nil {
		slog.Warn("ai cache write failed", slog.Any("error", err))
	}
	return out, nil
}
