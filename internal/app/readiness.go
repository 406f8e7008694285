package app

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Pinger is the minimal interface for a database pool capable of Ping.
type Pinger interface{ Ping(ctx context.Context) error }

// RedisPinger is the minimal interface for a Redis client needed for readiness.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// BuildReadinessChecks returns readiness probes for the optional backing
// stores. A nil check means the store is not configured and is skipped by
// the readiness handler.
func BuildReadinessChecks(pool Pinger, rdb RedisPinger) (func(ctx context.Context) error, func(ctx context.Context) error) {
	var dbCheck, redisCheck func(ctx context.Context) error
	if pool != nil {
		dbCheck = pool.Ping
	}
	if rdb != nil {
		redisCheck = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return dbCheck, redisCheck
}
