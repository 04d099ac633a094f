package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgxpool.Pool the repos use. pgxmock pools satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type DB struct {
	Pool *pgxpool.Pool
}

func NewDB(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &DB{Pool: pool}, nil
}

func (d *DB) Close() {
	if d != nil && d.Pool != nil {
		d.Pool.Close()
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS dataset_runs (
  run_id       TEXT PRIMARY KEY,
  input_dir    TEXT NOT NULL DEFAULT '',
  output_path  TEXT NOT NULL DEFAULT '',
  stage        TEXT NOT NULL,
  status       TEXT NOT NULL,
  message      TEXT,
  task_type    TEXT,
  files        INT NOT NULL DEFAULT 0,
  cleaned      INT NOT NULL DEFAULT 0,
  filtered     INT NOT NULL DEFAULT 0,
  dropped      INT NOT NULL DEFAULT 0,
  chunks       INT NOT NULL DEFAULT 0,
  rows_written INT NOT NULL DEFAULT 0,
  started_at   TIMESTAMPTZ NOT NULL,
  updated_at   TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS dataset_records (
  record_id  TEXT PRIMARY KEY,
  run_id     TEXT NOT NULL REFERENCES dataset_runs(run_id) ON DELETE CASCADE,
  row_index  INT NOT NULL,
  text       TEXT NOT NULL,
  label      TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS dataset_records_run_idx ON dataset_records (run_id, row_index);`

// EnsureSchema creates the run and record tables when missing.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
