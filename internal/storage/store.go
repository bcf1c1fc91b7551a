// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/tripsplit/internal/models"
)

// DefaultKey is the storage identifier the trip document is kept under.
const DefaultKey = "tripsplit_data_v2"

// Store defines the persistence port for the trip collection.
// The whole collection is read and written as one snapshot; there are no
// incremental updates. This abstraction allows swapping storage backends
// (JSON file, SQLite, in-memory) without changing the repository.
type Store interface {
	// Load returns the stored trips in stored order.
	// Returns an empty collection, not an error, when nothing was saved yet.
	Load(ctx context.Context) ([]models.Trip, error)

	// Save replaces the stored collection with trips.
	// It must not return before the data is durable.
	Save(ctx context.Context, trips []models.Trip) error

	// Close releases any resources held by the store.
	Close() error
}
