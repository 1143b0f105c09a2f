// Package sqlite implements the storage interfaces on a single-file SQLite
// database. One serving process owns the file; there is no cross-process
// coordination.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/leonelcastillo/Tx/pkg/storage"
)

// Store implements the Storage interface using a local SQLite database.
type Store struct {
	db *sql.DB
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// Open opens the SQLite database at path, creating the file if it does not
// exist. The connection pool is capped at a single connection: SQLite allows
// one writer at a time, and serializing access through the pool avoids
// SQLITE_BUSY surfacing to request handlers.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}
	return &Store{db: db}, nil
}

// Ping verifies the database file is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Timestamps are persisted as text. New rows are written as RFC 3339; legacy
// rows imported from earlier deployments may carry a space-separated layout,
// so parsing tries both.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
