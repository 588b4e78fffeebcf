package store

import (
	"context"
	"database/sql"
	"time"

	json "github.com/goccy/go-json"

	"sid/internal/models"
)

// LogStore is the append-only execution log.
type LogStore struct {
	db *sql.DB
}

func (l *LogStore) Append(ctx context.Context, entry models.LogEntry) error {
	contextJSON := []byte("{}")
	if len(entry.Context) > 0 {
		data, err := json.Marshal(entry.Context)
		if err != nil {
			return &models.StoreWriteError{Op: "append log", Err: err}
		}
		contextJSON = data
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO logs (ts, level, message, context) VALUES (?, ?, ?, ?)`,
		entry.Ts.Format(tsFormat), string(entry.Level), entry.Message, string(contextJSON))
	if err != nil {
		return &models.StoreWriteError{Op: "append log", Err: err}
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (l *LogStore) Recent(ctx context.Context, limit int) ([]models.LogEntry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT ts, level, message, context FROM logs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		var ts, level, contextJSON string
		if err := rows.Scan(&ts, &level, &e.Message, &contextJSON); err != nil {
			return nil, err
		}
		e.Ts, err = time.Parse(tsFormat, ts)
		if err != nil {
			return nil, err
		}
		e.Level = models.LogLevel(level)
		if contextJSON != "" && contextJSON != "{}" {
			if err := json.Unmarshal([]byte(contextJSON), &e.Context); err != nil {
				return nil, err
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
