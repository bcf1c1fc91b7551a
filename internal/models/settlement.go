package models

import "github.com/shopspring/decimal"

// SettlementRecord represents money that actually changed hands between two
// trip members, outside of any expense. It is used to net out debts.
type SettlementRecord struct {
	// ID is the unique identifier for the settlement.
	ID string `json:"id"`

	// FromID is the person who paid (debtor settling up).
	FromID string `json:"fromId"`

	// ToID is the person who received the payment (creditor being paid).
	ToID string `json:"toId"`

	// Amount is the payment amount. Always positive.
	Amount decimal.Decimal `json:"amount"`

	// Date is the Unix timestamp in milliseconds when the payment was made.
	Date int64 `json:"date"`

	// Method is how the money was transferred.
	Method PaymentMethod `json:"method"`
}
