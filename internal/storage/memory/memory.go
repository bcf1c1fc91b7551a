// Package memory provides an in-memory storage.Store for tests and
// throwaway runs.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps the encoded document in memory. Encoding on every save keeps
// it honest about what a real backend would persist.
type Store struct {
	mu      sync.RWMutex
	doc     []byte
	saves   int
	saveErr error
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// NewWithTrips returns a store that already holds trips.
func NewWithTrips(trips []models.Trip) (*Store, error) {
	doc, err := storage.Encode(trips)
	if err != nil {
		return nil, err
	}
	return &Store{doc: doc}, nil
}

func (s *Store) Load(_ context.Context) ([]models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.Decode(s.doc)
}

func (s *Store) Save(_ context.Context, trips []models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	doc, err := storage.Encode(trips)
	if err != nil {
		return err
	}
	s.doc = doc
	s.saves++
	return nil
}

func (s *Store) Close() error { return nil }

// FailSaves makes every following Save return err. Pass nil to recover.
func (s *Store) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Saves is the number of successful saves.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Document returns a copy of the last saved document.
func (s *Store) Document() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.doc...)
}
