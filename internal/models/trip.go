package models

// Trip is the aggregate root: a group of people and everything they spent
// and settled together.
type Trip struct {
	// ID is the unique identifier for the trip.
	ID string `json:"id"`

	// Name is the display name of the trip (e.g. "Goa 2024").
	Name string `json:"name"`

	// Currency is a display symbol only; no conversion is ever performed.
	Currency string `json:"currency"`

	// People are the trip members in insertion order, which is also the
	// order balances are reported in.
	People []Person `json:"people"`

	// Expenses are ordered newest first.
	Expenses []Expense `json:"expenses"`

	// Settlements are ordered newest first.
	Settlements []SettlementRecord `json:"settlements"`

	// CreatedAt is the Unix timestamp in milliseconds when the trip was created.
	CreatedAt int64 `json:"createdAt"`

	// StartDate and EndDate are optional calendar dates as entered (e.g. "2024-03-01").
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// Person returns the member with the given id.
func (t Trip) Person(id string) (Person, bool) {
	for _, p := range t.People {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// HasPerson reports whether id belongs to a current member.
func (t Trip) HasPerson(id string) bool {
	_, ok := t.Person(id)
	return ok
}

// IsReferenced reports whether any expense or settlement points at personID.
func (t Trip) IsReferenced(personID string) bool {
	for _, e := range t.Expenses {
		if e.References(personID) {
			return true
		}
	}
	for _, s := range t.Settlements {
		if s.FromID == personID || s.ToID == personID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the trip. Mutating the copy's slices never
// affects the original.
func (t Trip) Clone() Trip {
	c := t
	c.People = append([]Person(nil), t.People...)
	c.Settlements = append([]SettlementRecord(nil), t.Settlements...)
	if t.Expenses != nil {
		c.Expenses = make([]Expense, len(t.Expenses))
		for i, e := range t.Expenses {
			c.Expenses[i] = e.Clone()
		}
	}
	return c
}

// Normalize replaces nil collections with empty ones so the trip encodes as
// JSON arrays rather than null.
func (t Trip) Normalize() Trip {
	if t.People == nil {
		t.People = []Person{}
	}
	if t.Expenses == nil {
		t.Expenses = []Expense{}
	}
	if t.Settlements == nil {
		t.Settlements = []SettlementRecord{}
	}
	for i := range t.Expenses {
		if t.Expenses[i].Payments == nil {
			t.Expenses[i].Payments = []PaymentPart{}
		}
		if t.Expenses[i].SplitWith == nil {
			t.Expenses[i].SplitWith = []SplitMember{}
		}
	}
	return t
}
