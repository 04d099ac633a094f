package storage

import (
	"context"
	"errors"
	"fmt"

	"dataprep/internal/models"

	"github.com/jackc/pgx/v5"
)

var ErrRunNotFound = errors.New("run not found")

type RunRepo struct {
	q Querier
}

func NewRunRepo(q Querier) *RunRepo {
	return &RunRepo{q: q}
}

func (r *RunRepo) UpsertRun(ctx context.Context, run models.Run) error {
	c := run.Counts
	_, err := r.q.Exec(ctx, `
INSERT INTO dataset_runs (run_id, input_dir, output_path, stage, status, message, task_type,
                          files, cleaned, filtered, dropped, chunks, rows_written, started_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NULLIF($6,''), NULLIF($7,''), $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (run_id)
DO UPDATE SET
  input_dir = EXCLUDED.input_dir,
  output_path = EXCLUDED.output_path,
  stage = EXCLUDED.stage,
  status = EXCLUDED.status,
  message = EXCLUDED.message,
  task_type = COALESCE(EXCLUDED.task_type, dataset_runs.task_type),
  files = EXCLUDED.files,
  cleaned = EXCLUDED.cleaned,
  filtered = EXCLUDED.filtered,
  dropped = EXCLUDED.dropped,
  chunks = EXCLUDED.chunks,
  rows_written = EXCLUDED.rows_written,
  updated_at = EXCLUDED.updated_at`,
		run.RunID, run.InputDir, run.OutputPath, run.Stage, run.Status, run.Message, run.TaskType,
		c.Files, c.Cleaned, c.Filtered, c.Dropped, c.Chunks, c.Rows, run.StartedAt, run.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert run: %w", err)
	}
	return nil
}

const runColumns = `run_id, input_dir, output_path, stage, status, COALESCE(message,''), COALESCE(task_type,''),
       files, cleaned, filtered, dropped, chunks, rows_written, started_at, updated_at`

func (r *RunRepo) GetRun(ctx context.Context, runID string) (models.Run, error) {
	row := r.q.QueryRow(ctx, `SELECT `+runColumns+` FROM dataset_runs WHERE run_id=$1`, runID)
	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return models.Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

func (r *RunRepo) ListRuns(ctx context.Context, limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.q.Query(ctx, `SELECT `+runColumns+` FROM dataset_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := make([]models.Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

func scanRun(row pgx.Row) (models.Run, error) {
	var run models.Run
	c := &run.Counts
	err := row.Scan(&run.RunID, &run.InputDir, &run.OutputPath, &run.Stage, &run.Status, &run.Message, &run.TaskType,
		&c.Files, &c.Cleaned, &c.Filtered, &c.Dropped, &c.Chunks, &c.Rows, &run.StartedAt, &run.UpdatedAt)
	return run, err
}
