package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS collections (
	tenant     TEXT NOT NULL,
	name       TEXT NOT NULL,
	data       BLOB NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (tenant, name)
);`

// SQLite stores collections in a single-file SQLite database, one row per
// (tenant, collection). WAL mode keeps concurrent report reads cheap while a
// mutation is in flight.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path and ensures the
// schema exists.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &SQLite{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLite) Path() string { return s.path }

// Read returns the stored document, or nil if the collection was never written.
func (s *SQLite) Read(ctx context.Context, tenant, collection string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE tenant = ? AND name = ?`,
		tenant, collection,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting %s/%s: %w", tenant, collection, err)
	}
	return data, nil
}

// Write replaces the stored document in one statement, so a failure leaves
// the previous value in place.
func (s *SQLite) Write(ctx context.Context, tenant, collection string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collections (tenant, name, data, updated_at)
		 VALUES (?, ?, ?, datetime('now'))
		 ON CONFLICT (tenant, name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		tenant, collection, data,
	)
	if err != nil {
		return fmt.Errorf("upserting %s/%s: %w", tenant, collection, err)
	}
	return nil
}
