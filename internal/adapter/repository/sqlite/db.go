package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB opens the cache database at path, creating the parent directory if
// needed. WAL mode keeps reads cheap while a fetch writes new series.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", connString(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// connString appends the pragmas every connection needs.
func connString(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

const schema = `
CREATE TABLE IF NOT EXISTS price_series (
	id TEXT PRIMARY KEY,
	ticker TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	interval TEXT NOT NULL,
	fetched_at TEXT NOT NULL,
	UNIQUE (ticker, start_date, end_date, interval)
);

CREATE TABLE IF NOT EXISTS price_points (
	series_id TEXT NOT NULL REFERENCES price_series (id) ON DELETE CASCADE,
	point_date TEXT NOT NULL,
	close_price TEXT NOT NULL,
	PRIMARY KEY (series_id, point_date)
);
`

// InitSchema creates the cache tables if they do not exist yet
func (db *DB) InitSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
