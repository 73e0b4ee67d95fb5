package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection: SQLite allows one writer at a time, and funneling
	// every transaction through one connection keeps concurrent completes
	// for the same identity strictly ordered instead of deadlocking two
	// deferred transactions.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. The composite primary key on
// ongoing_sessions is what enforces the one-session-per-identity invariant
// under concurrent starts.
func (db *DB) RunMigrations() error {
	migration := `
-- Ongoing sessions: at most one row per (user, chat)
CREATE TABLE IF NOT EXISTS ongoing_sessions (
    user_id TEXT NOT NULL,
    chat_id TEXT NOT NULL,
    activity_type TEXT NOT NULL,
    start_time TEXT NOT NULL,
    user_full_name TEXT NOT NULL,
    chat_title TEXT NOT NULL,
    created_at TEXT NOT NULL,
    PRIMARY KEY (user_id, chat_id)
);
CREATE INDEX IF NOT EXISTS idx_ongoing_start_time ON ongoing_sessions(start_time);

-- Completed records: append-only history
CREATE TABLE IF NOT EXISTS completed_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id TEXT NOT NULL,
    chat_id TEXT NOT NULL,
    activity_type TEXT NOT NULL,
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL,
    duration INTEGER NOT NULL,
    overtime INTEGER NOT NULL DEFAULT 0,
    user_full_name TEXT NOT NULL,
    chat_title TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('completed', 'overtime')),
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_records_chat ON completed_records(chat_id);
CREATE INDEX IF NOT EXISTS idx_records_start_time ON completed_records(start_time);
CREATE INDEX IF NOT EXISTS idx_records_chat_user ON completed_records(chat_id, user_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
