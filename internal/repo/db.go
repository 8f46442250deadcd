package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	return pool, nil
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS runs (
  id            TEXT PRIMARY KEY,
  op            TEXT NOT NULL,
  alphabet      TEXT NOT NULL,
  input_path    TEXT NOT NULL,
  output_path   TEXT NOT NULL,
  input_size    BIGINT NOT NULL,
  output_size   BIGINT NOT NULL,
  symbols       BIGINT NOT NULL,
  distinct_syms INTEGER NOT NULL,
  input_digest  TEXT NOT NULL,
  output_digest TEXT NOT NULL,
  elapsed_ns    BIGINT NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL
)`)
	return err
}
