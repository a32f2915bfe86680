package database

import (
	"context"
	"fmt"

	"github.com/yourusername/oddsfeed/internal/config"
)

// schema is the snapshot archive DDL, applied idempotently at startup.
const schema = `
CREATE TABLE IF NOT EXISTS odds_snapshots (
	id           BIGSERIAL PRIMARY KEY,
	batch_id     UUID        NOT NULL,
	sport        TEXT        NOT NULL,
	home_team    TEXT        NOT NULL,
	away_team    TEXT        NOT NULL,
	start_time   TIMESTAMPTZ,
	sportsbook   TEXT        NOT NULL,
	bet_type     TEXT        NOT NULL,
	price        TEXT        NOT NULL,
	line         TEXT,
	odds_format  TEXT        NOT NULL,
	captured_at  TIMESTAMPTZ NOT NULL,
	archived_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_odds_snapshots_batch ON odds_snapshots (batch_id);
CREATE INDEX IF NOT EXISTS idx_odds_snapshots_game ON odds_snapshots (sport, home_team, away_team, start_time);
CREATE INDEX IF NOT EXISTS idx_odds_snapshots_captured ON odds_snapshots (captured_at DESC);
`

// Initialize creates a database connection pool and applies the archive schema
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if _, err := db.pool.Exec(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply archive schema: %w", err)
	}

	return db, nil
}
