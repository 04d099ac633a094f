package storage

import (
	"context"
	"fmt"
	"strconv"

	"dataprep/internal/models"
	"dataprep/internal/util"
)

type RecordRepo struct {
	q Querier
}

func NewRecordRepo(q Querier) *RecordRepo {
	return &RecordRepo{q: q}
}

// RecordID is stable for a given run, position and text so re-inserting a run is idempotent.
func RecordID(runID string, index int, text string) string {
	return util.HashKey(runID, strconv.Itoa(index), text)
}

func (r *RecordRepo) InsertRecords(ctx context.Context, runID string, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx insert records: %w", err)
	}

	for i, rec := range records {
		_, err := tx.Exec(ctx, `
INSERT INTO dataset_records (record_id, run_id, row_index, text, label)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (record_id) DO NOTHING`,
			RecordID(runID, i, rec.Text), runID, i, rec.Text, rec.Label,
		)
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit records tx: %w", err)
	}
	return nil
}

func (r *RecordRepo) ListRecords(ctx context.Context, runID string) ([]models.Record, error) {
	rows, err := r.q.Query(ctx, `
SELECT text, label
FROM dataset_records
WHERE run_id=$1
ORDER BY row_index ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	out := make([]models.Record, 0, 64)
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.Text, &rec.Label); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}
