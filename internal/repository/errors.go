package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrTripNotFound is returned by every mutation whose trip id matches no
	// trip. The collection is left untouched.
	ErrTripNotFound = errors.New("trip not found")

	// ErrPersistence is returned when the snapshot could not be written.
	// The in-memory collection is rolled back to its previous state.
	ErrPersistence = errors.New("persistence failed")

	// ErrPersonReferenced is returned in strict mode when removing a person
	// that an expense or settlement still points at.
	ErrPersonReferenced = errors.New("person is still referenced")
)

// PersistenceError wraps a failed snapshot write with the mutation that
// triggered it.
type PersistenceError struct {
	Op     string
	TripID string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s (trip %s): %v: %v", e.Op, e.TripID, ErrPersistence, e.Err)
}

// Unwrap exposes both ErrPersistence and the store's own error to errors.Is.
func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// IsNotFound reports whether err means the targeted trip does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTripNotFound)
}
