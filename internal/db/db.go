// Package db is the sqlite persistence layer for weekly schedules and
// date overrides.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

var ErrOverrideNotFound = errors.New("override not found")

// DB wraps the sqlite connection.
type DB struct {
	*sql.DB
	logger *zerolog.Logger
}

// New opens the database at path, configures the pool and creates the
// schema if needed.
func New(path string, logger *zerolog.Logger) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := createTables(sqlDB); err != nil {
		return nil, err
	}

	return &DB{DB: sqlDB, logger: logger}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS location_hours (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			location_id INTEGER NOT NULL,
			day_of_week INTEGER NOT NULL,
			open_time TEXT NOT NULL,
			close_time TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_location_hours_location
			ON location_hours(location_id, day_of_week)`,

		`CREATE TABLE IF NOT EXISTS hours_overrides (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			location_id INTEGER NOT NULL,
			date TEXT NOT NULL,
			is_closed BOOLEAN NOT NULL DEFAULT 0,
			open_time TEXT,
			close_time TEXT,
			reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(location_id, date)
		)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	return nil
}

// PingContext checks the connection.
func (db *DB) PingContext(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}
