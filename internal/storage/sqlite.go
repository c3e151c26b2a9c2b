package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql
)

// SQLite is a Storage backed by a single-table SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the SQLite database at path and initialises the schema.
func OpenSQLite(path string) (*SQLite, error) {
	sqldb, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("storage.OpenSQLite: %w", err)
	}
	s := &SQLite{db: sqldb}
	if err := s.createSchema(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("storage.OpenSQLite createSchema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

// Get returns the value for key, or ("", false, nil) if not set.
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var val string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage.Get: %w", err)
	}
	return val, true, nil
}

// Set upserts a key-value pair.
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, key, value,
	); err != nil {
		return fmt.Errorf("storage.Set: %w", err)
	}
	return nil
}

// Remove deletes key.
func (s *SQLite) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("storage.Remove: %w", err)
	}
	return nil
}
