package store

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"sid/internal/structures"

	"github.com/pressly/goose/v3"
	// SQLite driver.
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const driver = "sqlite"

// Store owns the SQLite connection and the per-table accessors. It replaces
// the implicit "current document" with an explicit handle passed into every
// operation.
type Store struct {
	db *sql.DB

	Data    *DataStore
	RunCfg  *ConfigStore
	Logs    *LogStore
	Summary *SummaryStore
}

// Open opens (creating if necessary) the SQLite database at path and brings
// the schema up to date.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is empty")
	}

	db, err := sql.Open(driver, sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(driver); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{
		db:      db,
		Data:    &DataStore{db: db},
		RunCfg:  &ConfigStore{db: db},
		Logs:    &LogStore{db: db},
		Summary: &SummaryStore{db: db},
	}, nil
}

func sqliteDSN(path string) string {
	values := url.Values{}
	values.Add("_pragma", "journal_mode(WAL)")
	values.Add("_pragma", "synchronous(NORMAL)")
	values.Add("_pragma", "busy_timeout(5000)")
	return fmt.Sprintf("file:%s?%s", path, values.Encode())
}

// NewStoreProvider opens the store configured in conf for injection.
func NewStoreProvider(conf *structures.Config) (*Store, error) {
	return Open(conf.Store.Path)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
