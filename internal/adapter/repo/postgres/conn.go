// Package postgres persists analysis history in PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates a pgx connection pool from the provided DSN. The initial
// ping retries with exponential backoff so the service tolerates a database
// that is still starting up.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("op=db.parse_config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 5 * time.Minute
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("op=db.new_pool: %w", err)
	}

	expo := backoff.NewExponentialBackOff()
	expo.MaxElapsedTime = 30 * time.Second
	ping := func() error { return pool.Ping(ctx) }
	if err := backoff.Retry(ping, backoff.WithContext(expo, ctx)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("op=db.ping: %w", err)
	}
	return pool, nil
}
