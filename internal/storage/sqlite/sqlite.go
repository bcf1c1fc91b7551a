// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
//
// The trip collection is kept as one JSON document in a key-value table,
// under a fixed key, mirroring how browser clients keep it in local storage.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// New creates a new SQLiteStore with the given database path, keeping the
// document under key (storage.DefaultKey when empty).
// It creates the parent directories and runs migrations automatically.
func New(dbPath, key string) (*SQLiteStore, error) {
	if key == "" {
		key = storage.DefaultKey
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; snapshots are small and writes are serialized anyway.
	db.SetMaxOpenConns(1)

	return &SQLiteStore{db: db, key: key}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load retrieves the document stored under the store's key.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.Trip, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.Trip{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}
	return storage.Decode([]byte(value))
}

// Save replaces the document stored under the store's key.
func (s *SQLiteStore) Save(ctx context.Context, trips []models.Trip) error {
	data, err := storage.Encode(trips)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(data), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save trips: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdatedAt returns when the document was last saved, as a Unix timestamp
// in milliseconds. The second value is false when nothing was saved yet.
func (s *SQLiteStore) UpdatedAt(ctx context.Context) (int64, bool, error) {
	var updatedAt int64
	err := s.db.QueryRowContext(ctx, "SELECT updated_at FROM kv WHERE key = ?", s.key).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get last save time: %w", err)
	}
	return updatedAt, true, nil
}
