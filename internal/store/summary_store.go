package store

import (
	"context"
	"database/sql"

	"sid/internal/models"
)

// SummaryStore holds the derived metric table. It is overwritten as a whole
// on every run, never updated incrementally.
type SummaryStore struct {
	db *sql.DB
}

// Replace discards the previous summary and writes the new one atomically.
func (s *SummaryStore) Replace(ctx context.Context, metrics []models.MetricRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &models.StoreWriteError{Op: "replace summary", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM summary`); err != nil {
		return &models.StoreWriteError{Op: "replace summary", Err: err}
	}

	for _, m := range metrics {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO summary (metric, value) VALUES (?, ?)`, m.Metric, m.Value); err != nil {
			return &models.StoreWriteError{Op: "replace summary", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &models.StoreWriteError{Op: "replace summary", Err: err}
	}
	return nil
}

// All returns the summary rows in insertion order.
func (s *SummaryStore) All(ctx context.Context) ([]models.MetricRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT metric, value FROM summary ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MetricRow
	for rows.Next() {
		var m models.MetricRow
		if err := rows.Scan(&m.Metric, &m.Value); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
