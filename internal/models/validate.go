package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedExpense is returned when an expense's parts do not add up
	// to its amount or a field is out of range.
	ErrMalformedExpense = errors.New("malformed expense")

	// ErrInvalidSettlement is returned when a settlement has a non-positive
	// amount or pays a person back to themselves.
	ErrInvalidSettlement = errors.New("invalid settlement")

	// ErrDanglingReference is returned when a record points at a person who
	// is not a member of the trip.
	ErrDanglingReference = errors.New("dangling person reference")

	// ErrInvalidTrip is returned when a trip's member list is unusable.
	ErrInvalidTrip = errors.New("invalid trip")
)

// ValidationError describes which field failed and why.
type ValidationError struct {
	Field  string
	Reason string
	Err    error // one of the sentinel errors above
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func malformed(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...), Err: ErrMalformedExpense}
}

func dangling(field, personID string) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf("unknown person %q", personID), Err: ErrDanglingReference}
}

// ValidateExpense checks e against the members of trip. It returns the first
// problem found, or nil.
func ValidateExpense(trip Trip, e Expense) error {
	if !e.Amount.IsPositive() {
		return malformed("amount", "must be positive, got %s", e.Amount)
	}
	if !e.Category.Valid() {
		return malformed("category", "unknown category %q", e.Category)
	}
	if len(e.Payments) == 0 {
		return malformed("payments", "at least one payer is required")
	}
	if len(e.SplitWith) == 0 {
		return malformed("splitWith", "at least one sharer is required")
	}
	for i, p := range e.Payments {
		field := fmt.Sprintf("payments[%d]", i)
		if p.Amount.IsNegative() {
			return malformed(field, "negative amount %s", p.Amount)
		}
		if !p.Method.Valid() {
			return malformed(field, "unknown payment method %q", p.Method)
		}
		if !trip.HasPerson(p.PersonID) {
			return dangling(field, p.PersonID)
		}
	}
	for i, s := range e.SplitWith {
		field := fmt.Sprintf("splitWith[%d]", i)
		if s.Amount.IsNegative() {
			return malformed(field, "negative amount %s", s.Amount)
		}
		if !trip.HasPerson(s.PersonID) {
			return dangling(field, s.PersonID)
		}
	}
	if e.AddedBy != "" && !trip.HasPerson(e.AddedBy) {
		return dangling("addedBy", e.AddedBy)
	}
	if paid := e.TotalPaid(); !paid.Equal(e.Amount) {
		return malformed("payments", "sum %s does not match amount %s", paid, e.Amount)
	}
	if split := e.TotalSplit(); !split.Equal(e.Amount) {
		return malformed("splitWith", "sum %s does not match amount %s", split, e.Amount)
	}
	return nil
}

// ValidateSettlement checks s against the members of trip.
func ValidateSettlement(trip Trip, s SettlementRecord) error {
	if !s.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: fmt.Sprintf("must be positive, got %s", s.Amount), Err: ErrInvalidSettlement}
	}
	if s.FromID == s.ToID {
		return &ValidationError{Field: "toId", Reason: "cannot settle with yourself", Err: ErrInvalidSettlement}
	}
	if s.Method != "" && !s.Method.Valid() {
		return &ValidationError{Field: "method", Reason: fmt.Sprintf("unknown payment method %q", s.Method), Err: ErrInvalidSettlement}
	}
	if !trip.HasPerson(s.FromID) {
		return dangling("fromId", s.FromID)
	}
	if !trip.HasPerson(s.ToID) {
		return dangling("toId", s.ToID)
	}
	return nil
}

// ValidateTrip checks that every member has a distinct, non-empty id and
// that every record already on the trip is valid.
func ValidateTrip(trip Trip) error {
	seen := make(map[string]bool, len(trip.People))
	for i, p := range trip.People {
		field := fmt.Sprintf("people[%d]", i)
		if p.ID == "" {
			return &ValidationError{Field: field, Reason: "person id is required", Err: ErrInvalidTrip}
		}
		if seen[p.ID] {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("duplicate person id %q", p.ID), Err: ErrInvalidTrip}
		}
		seen[p.ID] = true
	}
	for _, e := range trip.Expenses {
		if err := ValidateExpense(trip, e); err != nil {
			return fmt.Errorf("expense %s: %w", e.ID, err)
		}
	}
	for _, s := range trip.Settlements {
		if err := ValidateSettlement(trip, s); err != nil {
			return fmt.Errorf("settlement %s: %w", s.ID, err)
		}
	}
	return nil
}
