package store

import (
	"context"
	"database/sql"

	"sid/internal/models"
)

// ConfigStore is the two-column key/value table holding the run
// configuration.
type ConfigStore struct {
	db *sql.DB
}

// All returns every key/value pair. An empty map means the table has never
// been seeded.
func (c *ConfigStore) All(ctx context.Context) (map[string]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT key, value FROM config`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Set inserts or replaces one key.
func (c *ConfigStore) Set(ctx context.Context, key, value string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO config (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return &models.StoreWriteError{Op: "set config", Err: err}
	}
	return nil
}

// Seed populates the table with defaults in one transaction.
func (c *ConfigStore) Seed(ctx context.Context, defaults map[string]string) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return &models.StoreWriteError{Op: "seed config", Err: err}
	}
	defer tx.Rollback()

	for k, v := range defaults {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO config (key, value) VALUES (?, ?)`, k, v); err != nil {
			return &models.StoreWriteError{Op: "seed config", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &models.StoreWriteError{Op: "seed config", Err: err}
	}
	return nil
}
