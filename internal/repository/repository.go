// Package repository holds the authoritative trip collection.
//
// Every mutation is applied to a copy of the collection, written to the
// store as a full snapshot, and only then published. A failed write leaves
// the previous collection in place, so readers never observe a change that
// was not persisted.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
)

// Mutation names used in logs, errors and metrics.
const (
	OpAddTrip          = "add_trip"
	OpAddExpense       = "add_expense"
	OpDeleteExpense    = "delete_expense"
	OpAddSettlement    = "add_settlement"
	OpDeleteSettlement = "delete_settlement"
	OpRemovePerson     = "remove_person"
)

// Repository is an in-memory trip collection backed by a storage.Store.
// It is safe for concurrent use; mutations are serialized.
type Repository struct {
	mu    sync.Mutex
	trips []models.Trip // newest first

	store   storage.Store
	strict  bool
	metrics *metrics.Metrics
	logger  *slog.Logger
	newID   func() string
}

// Option configures a Repository.
type Option func(*Repository)

// WithStrictWrites turns on validation of trips, expenses and settlements
// before they are stored. Without it, records are admitted as given and
// inconsistencies only show up as omissions in balances.
func WithStrictWrites(strict bool) Option {
	return func(r *Repository) { r.strict = strict }
}

// WithMetrics reports mutations and snapshot writes to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Repository) { r.metrics = m }
}

// WithLogger replaces slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// WithIDGenerator sets how ids are filled in for records added without one.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

// New loads the stored collection and returns a Repository serving it.
func New(ctx context.Context, store storage.Store, opts ...Option) (*Repository, error) {
	r := &Repository{
		store:  store,
		logger: slog.Default(),
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(r)
	}

	trips, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}
	r.trips = trips
	r.metrics.SetTrips(len(trips))
	r.logger.Info("Trips loaded", "count", len(trips), "strict_writes", r.strict)

	return r, nil
}

// AddTrip inserts trip at the front of the collection and returns it as
// stored. A trip without an id gets a generated one; duplicate ids are
// accepted.
func (r *Repository) AddTrip(ctx context.Context, trip models.Trip) (models.Trip, error) {
	trip = trip.Clone()
	if trip.ID == "" {
		trip.ID = r.newID()
	}
	if r.strict {
		if err := models.ValidateTrip(trip); err != nil {
			r.metrics.ObserveMutation(OpAddTrip, metrics.ResultInvalid)
			return models.Trip{}, fmt.Errorf("%s: %w", OpAddTrip, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]models.Trip, 0, len(r.trips)+1)
	next = append(next, trip)
	next = append(next, r.trips...)

	if err := r.commit(ctx, OpAddTrip, trip.ID, next); err != nil {
		return models.Trip{}, err
	}

	r.logger.Info("Trip added", "trip_id", trip.ID, "name", trip.Name, "people_count", len(trip.People))
	return trip.Clone(), nil
}

// AddExpense prepends expense to the trip's expenses and returns the
// updated trip.
func (r *Repository) AddExpense(ctx context.Context, tripID string, expense models.Expense) (models.Trip, error) {
	expense = expense.Clone()
	if expense.ID == "" {
		expense.ID = r.newID()
	}

	trip, err := r.mutate(ctx, OpAddExpense, tripID, func(t *models.Trip) (bool, error) {
		if r.strict {
			if err := models.ValidateExpense(*t, expense); err != nil {
				return false, err
			}
		}
		t.Expenses = append([]models.Expense{expense.Clone()}, t.Expenses...)
		return true, nil
	})
	if err != nil {
		return models.Trip{}, err
	}

	r.logger.Info("Expense added",
		"trip_id", tripID,
		"expense_id", expense.ID,
		"amount", expense.Amount.String(),
		"payers_count", len(expense.Payments),
		"split_count", len(expense.SplitWith),
	)
	return trip, nil
}

// DeleteExpense removes the expense with the given id from the trip.
// Deleting an expense that does not exist is a no-op.
func (r *Repository) DeleteExpense(ctx context.Context, tripID, expenseID string) (models.Trip, error) {
	trip, err := r.mutate(ctx, OpDeleteExpense, tripID, func(t *models.Trip) (bool, error) {
		kept := make([]models.Expense, 0, len(t.Expenses))
		for _, e := range t.Expenses {
			if e.ID != expenseID {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(t.Expenses) {
			return false, nil
		}
		t.Expenses = kept
		return true, nil
	})
	if err != nil {
		return models.Trip{}, err
	}

	r.logger.Info("Expense deleted", "trip_id", tripID, "expense_id", expenseID)
	return trip, nil
}

// AddSettlement prepends settlement to the trip's settlements and returns
// the updated trip.
func (r *Repository) AddSettlement(ctx context.Context, tripID string, settlement models.SettlementRecord) (models.Trip, error) {
	if settlement.ID == "" {
		settlement.ID = r.newID()
	}

	trip, err := r.mutate(ctx, OpAddSettlement, tripID, func(t *models.Trip) (bool, error) {
		if r.strict {
			if err := models.ValidateSettlement(*t, settlement); err != nil {
				return false, err
			}
		}
		t.Settlements = append([]models.SettlementRecord{settlement}, t.Settlements...)
		return true, nil
	})
	if err != nil {
		return models.Trip{}, err
	}

	r.logger.Info("Settlement added",
		"trip_id", tripID,
		"settlement_id", settlement.ID,
		"from", settlement.FromID,
		"to", settlement.ToID,
		"amount", settlement.Amount.String(),
	)
	return trip, nil
}

// DeleteSettlement removes the settlement with the given id from the trip.
// Deleting a settlement that does not exist is a no-op.
func (r *Repository) DeleteSettlement(ctx context.Context, tripID, settlementID string) (models.Trip, error) {
	trip, err := r.mutate(ctx, OpDeleteSettlement, tripID, func(t *models.Trip) (bool, error) {
		kept := make([]models.SettlementRecord, 0, len(t.Settlements))
		for _, s := range t.Settlements {
			if s.ID != settlementID {
				kept = append(kept, s)
			}
		}
		if len(kept) == len(t.Settlements) {
			return false, nil
		}
		t.Settlements = kept
		return true, nil
	})
	if err != nil {
		return models.Trip{}, err
	}

	r.logger.Info("Settlement deleted", "trip_id", tripID, "settlement_id", settlementID)
	return trip, nil
}

// RemovePerson takes a member off the trip. Records that still point at
// them stay as they are and drop out of balance totals. In strict mode the
// removal is refused while such records exist.
func (r *Repository) RemovePerson(ctx context.Context, tripID, personID string) (models.Trip, error) {
	trip, err := r.mutate(ctx, OpRemovePerson, tripID, func(t *models.Trip) (bool, error) {
		if !t.HasPerson(personID) {
			return false, nil
		}
		if r.strict && t.IsReferenced(personID) {
			return false, fmt.Errorf("%w: %s", ErrPersonReferenced, personID)
		}
		kept := make([]models.Person, 0, len(t.People)-1)
		for _, p := range t.People {
			if p.ID != personID {
				kept = append(kept, p)
			}
		}
		t.People = kept
		return true, nil
	})
	if err != nil {
		return models.Trip{}, err
	}

	r.logger.Info("Person removed", "trip_id", tripID, "person_id", personID)
	return trip, nil
}

// GetTrip returns a copy of the trip with the given id.
func (r *Repository) GetTrip(tripID string) (models.Trip, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(tripID)
	if idx < 0 {
		return models.Trip{}, false
	}
	return r.trips[idx].Clone(), true
}

// ListTrips returns copies of all trips, newest first.
func (r *Repository) ListTrips() []models.Trip {
	r.mu.Lock()
	defer r.mu.Unlock()

	trips := make([]models.Trip, len(r.trips))
	for i, t := range r.trips {
		trips[i] = t.Clone()
	}
	return trips
}

// Balances computes the current balances of a trip. Nothing is cached;
// every call recomputes from the stored records.
func (r *Repository) Balances(tripID string) ([]calculator.Balance, error) {
	trip, ok := r.GetTrip(tripID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
	}
	return calculator.ComputeBalances(trip), nil
}

// mutate applies fn to a copy of every trip carrying tripID and commits
// the result in one snapshot. Duplicate ids are all updated; the first
// match is returned. When fn reports no change for any of them nothing is
// written and the current trip is returned.
func (r *Repository) mutate(ctx context.Context, op, tripID string, fn func(t *models.Trip) (bool, error)) (models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := r.indexesOf(tripID)
	if len(matches) == 0 {
		r.metrics.ObserveMutation(op, metrics.ResultNotFound)
		r.logger.Warn("Mutation on unknown trip", "op", op, "trip_id", tripID)
		return models.Trip{}, fmt.Errorf("%s: %w: %s", op, ErrTripNotFound, tripID)
	}

	next := make([]models.Trip, len(r.trips))
	copy(next, r.trips)

	anyChanged := false
	for _, idx := range matches {
		updated := r.trips[idx].Clone()
		changed, err := fn(&updated)
		if err != nil {
			r.metrics.ObserveMutation(op, metrics.ResultInvalid)
			r.logger.Warn("Mutation rejected", "op", op, "trip_id", tripID, "error", err)
			return models.Trip{}, fmt.Errorf("%s: %w", op, err)
		}
		if changed {
			next[idx] = updated
			anyChanged = true
		}
	}
	first := next[matches[0]]

	if !anyChanged {
		r.metrics.ObserveMutation(op, metrics.ResultOK)
		return first.Clone(), nil
	}

	if err := r.commit(ctx, op, tripID, next); err != nil {
		return models.Trip{}, err
	}
	return first.Clone(), nil
}

// commit persists next and publishes it. Callers hold r.mu.
func (r *Repository) commit(ctx context.Context, op, tripID string, next []models.Trip) error {
	start := time.Now()
	err := r.store.Save(ctx, next)
	r.metrics.ObserveSave(start, err)
	if err != nil {
		r.metrics.ObserveMutation(op, metrics.ResultError)
		r.logger.Error("Failed to save trips", "op", op, "trip_id", tripID, "error", err)
		return &PersistenceError{Op: op, TripID: tripID, Err: err}
	}

	r.trips = next
	r.metrics.ObserveMutation(op, metrics.ResultOK)
	r.metrics.SetTrips(len(next))
	return nil
}

// indexOf returns the position of the first trip with the given id, or -1.
// Callers hold r.mu.
func (r *Repository) indexOf(tripID string) int {
	for i, t := range r.trips {
		if t.ID == tripID {
			return i
		}
	}
	return -1
}

// indexesOf returns the positions of every trip with the given id.
// Callers hold r.mu.
func (r *Repository) indexesOf(tripID string) []int {
	var idx []int
	for i, t := range r.trips {
		if t.ID == tripID {
			idx = append(idx, i)
		}
	}
	return idx
}
