package models

import "github.com/shopspring/decimal"

// Category classifies an expense.
type Category string

const (
	CategoryFood     Category = "Food"
	CategoryTravel   Category = "Travel"
	CategoryStay     Category = "Stay"
	CategoryShopping Category = "Shopping"
	CategoryFuel     Category = "Fuel"
	CategoryOther    Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTravel,
	CategoryStay,
	CategoryShopping,
	CategoryFuel,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// PaymentMethod is how money was handed over.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "Cash"
	MethodUPI    PaymentMethod = "UPI"
	MethodCard   PaymentMethod = "Card"
	MethodWallet PaymentMethod = "Wallet"
)

// PaymentMethods lists every payment method in display order.
var PaymentMethods = []PaymentMethod{MethodCash, MethodUPI, MethodCard, MethodWallet}

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// PaymentPart is one payer's contribution to an expense.
// Several people can front money for the same purchase.
type PaymentPart struct {
	PersonID string          `json:"personId"`
	Amount   decimal.Decimal `json:"amount"`
	Method   PaymentMethod   `json:"method"`
}

// SplitMember is one sharer's portion of an expense's cost.
type SplitMember struct {
	PersonID string          `json:"personId"`
	Amount   decimal.Decimal `json:"amount"`
}

// Expense represents a shared purchase made during a trip.
//
// Callers are expected to keep sum(Payments) == Amount == sum(SplitWith).
// The balance engine trusts the stored parts and does not re-check this;
// ValidateExpense does, for the strict write path.
type Expense struct {
	// ID is the unique identifier for the expense.
	ID string `json:"id"`

	// Title is the human-readable name (e.g. "Dinner at the shack").
	Title string `json:"title"`

	// Amount is the total cost. Always positive.
	Amount decimal.Decimal `json:"amount"`

	// Date is the Unix timestamp in milliseconds of the purchase.
	Date int64 `json:"date"`

	// Category classifies the expense for trip summaries.
	Category Category `json:"category"`

	// Payments lists who paid and how much. Never empty.
	Payments []PaymentPart `json:"payments"`

	// SplitWith lists who shares the cost and how much each owes. Never empty.
	SplitWith []SplitMember `json:"splitWith"`

	// AddedBy is the person who recorded the expense.
	AddedBy string `json:"addedBy"`

	// Note is an optional free-form description.
	Note string `json:"note,omitempty"`
}

// TotalPaid is the sum of all payment parts.
func (e Expense) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range e.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// TotalSplit is the sum of all split shares.
func (e Expense) TotalSplit() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.SplitWith {
		total = total.Add(s.Amount)
	}
	return total
}

// References reports whether personID pays for, shares, or recorded the expense.
func (e Expense) References(personID string) bool {
	if e.AddedBy == personID {
		return true
	}
	for _, p := range e.Payments {
		if p.PersonID == personID {
			return true
		}
	}
	for _, s := range e.SplitWith {
		if s.PersonID == personID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the expense.
func (e Expense) Clone() Expense {
	c := e
	c.Payments = append([]PaymentPart(nil), e.Payments...)
	c.SplitWith = append([]SplitMember(nil), e.SplitWith...)
	return c
}
