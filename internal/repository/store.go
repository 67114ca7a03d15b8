package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// schema is applied on every open; statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS metrics (
	id                TEXT PRIMARY KEY,
	label             TEXT NOT NULL,
	kind              TEXT NOT NULL,
	goal              REAL NOT NULL DEFAULT 0,
	frequency         TEXT NOT NULL DEFAULT '',
	color             TEXT NOT NULL DEFAULT '',
	widget            TEXT NOT NULL DEFAULT '',
	unit              TEXT NOT NULL DEFAULT '',
	range_json        TEXT NOT NULL DEFAULT '',
	options_json      TEXT NOT NULL DEFAULT '',
	dashboard_visible INTEGER,
	display_order     INTEGER NOT NULL DEFAULT 0,
	created_at        TEXT NOT NULL,
	updated_at        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS log_entries (
	id         TEXT PRIMARY KEY,
	metric_id  TEXT NOT NULL,
	value_kind TEXT NOT NULL,
	value_num  REAL NOT NULL DEFAULT 0,
	value_text TEXT NOT NULL DEFAULT '',
	timestamp  TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_log_entries_metric ON log_entries(metric_id);
CREATE INDEX IF NOT EXISTS idx_log_entries_timestamp ON log_entries(timestamp);

CREATE TABLE IF NOT EXISTS time_logs (
	id             TEXT PRIMARY KEY,
	activity_id    TEXT NOT NULL,
	start_time     TEXT NOT NULL,
	end_time       TEXT,
	duration_hours REAL NOT NULL DEFAULT 0,
	notes          TEXT NOT NULL DEFAULT '',
	created_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_time_logs_activity ON time_logs(activity_id);

CREATE TABLE IF NOT EXISTS reports (
	id        TEXT PRIMARY KEY,
	timestamp TEXT NOT NULL,
	segment   TEXT NOT NULL,
	content   TEXT NOT NULL
);
`

// Store owns the sqlite connection shared by the repositories.
type Store struct {
	path string
	db   *sql.DB
}

// NewStore creates a store for the given database path. Call Open before
// constructing repositories.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Open creates the parent directory if needed, opens the database, and
// applies the schema.
func (s *Store) Open() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the underlying handle for repository construction.
func (s *Store) DB() *sql.DB {
	return s.db
}
