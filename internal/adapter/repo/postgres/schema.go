package postgres

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS analyses (
    id         TEXT PRIMARY KEY,
    score      DOUBLE PRECISION NOT NULL,
    error      TEXT NOT NULL DEFAULT '',
    summary    TEXT NOT NULL DEFAULT '',
    ats_level  TEXT NOT NULL DEFAULT '',
    ats_label  TEXT NOT NULL DEFAULT '',
    domain     TEXT NOT NULL DEFAULT '',
    detail     JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS analyses_created_at_idx ON analyses (created_at DESC);
`

// EnsureSchema creates the analyses table when it does not exist yet.
func EnsureSchema(ctx context.Context, pool PgxPool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("op=db.ensure_schema: %w", err)
	}
	return nil
}
