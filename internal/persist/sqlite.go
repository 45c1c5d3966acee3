// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSaver keeps the latest snapshot of each collection as a JSON
// document in a single SQLite table.
type SQLiteSaver struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteSaver opens or creates the database at path and creates the
// schema if it does not exist.
func NewSQLiteSaver(path string) (*SQLiteSaver, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteSaver{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteSaver) Close() error {
	return s.db.Close()
}

func (s *SQLiteSaver) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Save implements Saver.
func (s *SQLiteSaver) Save(ctx context.Context, collection string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", collection, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO collections (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at`,
		collection, string(data), s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting %s: %w", collection, err)
	}
	return nil
}

// Snapshot returns the stored JSON document for collection. ok is false
// when the collection has never been saved.
func (s *SQLiteSaver) Snapshot(ctx context.Context, collection string) ([]byte, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE name = ?`, collection,
	).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s snapshot: %w", collection, err)
	}
	return []byte(data), true, nil
}

// UpdatedAt reports when collection was last saved.
func (s *SQLiteSaver) UpdatedAt(ctx context.Context, collection string) (time.Time, bool, error) {
	var ts string
	err := s.db.QueryRowContext(ctx,
		`SELECT updated_at FROM collections WHERE name = ?`, collection,
	).Scan(&ts)
	if err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("reading %s timestamp: %w", collection, err)
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing %s timestamp: %w", collection, err)
	}
	return t, true, nil
}
