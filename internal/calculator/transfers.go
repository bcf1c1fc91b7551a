package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Transfer is a suggested payment that moves the group towards settled.
type Transfer struct {
	FromID string          `json:"fromId"` // Person who owes
	ToID   string          `json:"toId"`   // Person who is owed
	Amount decimal.Decimal `json:"amount"`
}

type position struct {
	personID  string
	remaining decimal.Decimal
}

// SuggestTransfers turns net balances into a short list of payments that
// would settle everyone. Balances within epsilon of zero are ignored.
//
// Greedy matching: the largest debtor pays the largest creditor as much as
// both allow, and whoever is cleared moves on. Ties are broken by person id
// so the result is deterministic.
func SuggestTransfers(balances []Balance, epsilon decimal.Decimal) []Transfer {
	var debtors, creditors []position
	for _, b := range balances {
		if b.IsSettled(epsilon) {
			continue
		}
		if b.Net.IsPositive() {
			creditors = append(creditors, position{personID: b.PersonID, remaining: b.Net})
		} else {
			debtors = append(debtors, position{personID: b.PersonID, remaining: b.Net.Neg()})
		}
	}
	byLargest(debtors)
	byLargest(creditors)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		transfers = append(transfers, Transfer{
			FromID: debtor.personID,
			ToID:   creditor.personID,
			Amount: amount,
		})

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		if cleared(debtor.remaining, epsilon) {
			i++
		}
		if cleared(creditor.remaining, epsilon) {
			j++
		}
	}
	return transfers
}

// cleared is true once a position has nothing left to move. A position
// that hit exactly zero is cleared even when epsilon is zero.
func cleared(remaining, epsilon decimal.Decimal) bool {
	return remaining.Sign() <= 0 || remaining.LessThan(epsilon)
}

func byLargest(positions []position) {
	sort.SliceStable(positions, func(a, b int) bool {
		if cmp := positions[a].remaining.Cmp(positions[b].remaining); cmp != 0 {
			return cmp > 0
		}
		return positions[a].personID < positions[b].personID
	})
}
