package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sid/internal/models"
)

// tsFormat keeps timestamps lexicographically sortable in the TEXT columns.
const tsFormat = time.RFC3339Nano

// DataStore is the persisted tabular destination for normalized records.
// Row positions are the SQLite rowids; the header of the original sheet
// maps to the column schema.
type DataStore struct {
	db *sql.DB
}

// List returns all rows in position order.
func (d *DataStore) List(ctx context.Context) ([]models.PersistedRow, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT pos, ts, id, name, type, dimension FROM data ORDER BY pos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PersistedRow
	for rows.Next() {
		var r models.PersistedRow
		var ts string
		if err := rows.Scan(&r.Pos, &ts, &r.Id, &r.Name, &r.Type, &r.Dimension); err != nil {
			return nil, err
		}
		r.Ts, err = time.Parse(tsFormat, ts)
		if err != nil {
			return nil, fmt.Errorf("corrupt timestamp at pos %d: %w", r.Pos, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DataStore) Count(ctx context.Context) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM data`).Scan(&n)
	return n, err
}

// Append inserts rows at the end of the table in one transaction.
func (d *DataStore) Append(ctx context.Context, rows []models.PersistedRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return &models.StoreWriteError{Op: "append rows", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO data (ts, id, name, type, dimension) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return &models.StoreWriteError{Op: "append rows", Err: err}
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.Ts.Format(tsFormat), r.Id, r.Name, r.Type, r.Dimension); err != nil {
			return &models.StoreWriteError{Op: "append rows", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &models.StoreWriteError{Op: "append rows", Err: err}
	}
	return nil
}

// UpdateAt overwrites the row content at the given position, timestamp
// included.
func (d *DataStore) UpdateAt(ctx context.Context, pos int64, row models.PersistedRow) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE data SET ts = ?, id = ?, name = ?, type = ?, dimension = ? WHERE pos = ?`,
		row.Ts.Format(tsFormat), row.Id, row.Name, row.Type, row.Dimension, pos)
	if err != nil {
		return &models.StoreWriteError{Op: "update row", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return &models.StoreWriteError{Op: "update row", Err: err}
	}
	if affected == 0 {
		return &models.StoreWriteError{Op: "update row", Err: fmt.Errorf("no row at pos %d", pos)}
	}
	return nil
}

// Clear truncates the data table back to its header-only state.
func (d *DataStore) Clear(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM data`); err != nil {
		return &models.StoreWriteError{Op: "clear data", Err: err}
	}
	// Restart positions from 1 for the next import.
	if _, err := d.db.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'data'`); err != nil {
		return &models.StoreWriteError{Op: "clear data", Err: err}
	}
	return nil
}
