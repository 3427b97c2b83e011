package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys on every pooled connection and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS investors (
			name TEXT PRIMARY KEY COLLATE NOCASE,
			firm TEXT NOT NULL DEFAULT '',
			sectors TEXT NOT NULL DEFAULT '',
			stages TEXT NOT NULL DEFAULT '',
			geo TEXT NOT NULL DEFAULT '',
			check_min REAL,
			check_max REAL,
			check_currency TEXT NOT NULL DEFAULT '',
			thesis TEXT NOT NULL DEFAULT '',
			constraints TEXT NOT NULL DEFAULT '',
			profile TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS pitches (
			id TEXT PRIMARY KEY,
			summary TEXT NOT NULL,
			sector TEXT NOT NULL DEFAULT '',
			stage TEXT NOT NULL DEFAULT '',
			geo TEXT NOT NULL DEFAULT '',
			traction TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pitch_id TEXT NOT NULL,
			investor_name TEXT NOT NULL,
			score_pct INTEGER NOT NULL,
			distance REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (pitch_id) REFERENCES pitches(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_matches_pitch ON matches (pitch_id);`,
		`CREATE TABLE IF NOT EXISTS qa_responses (
			id TEXT PRIMARY KEY,
			investor_name TEXT NOT NULL,
			question TEXT NOT NULL,
			mode TEXT NOT NULL,
			intent TEXT NOT NULL,
			answer TEXT NOT NULL,
			citations TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// parseTimestamp reads a SQLite DATETIME column.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	// Try alternative format (SQLite might use different format)
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
