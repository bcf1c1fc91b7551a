package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// EqualSplit divides amount between personIDs so that the shares add up to
// exactly amount rounded to places decimals.
//
// The amount is first rounded with banker's rounding. It is then cut into
// units of 10^-places; everyone gets the same number of units and the
// leftover units go one each to the first people in the list. For example
// 100.00 between three people is 33.34, 33.33, 33.33.
//
// Amounts of any size are supported. Returns nil when personIDs is empty.
func EqualSplit(amount decimal.Decimal, personIDs []string, places int32) []models.SplitMember {
	if len(personIDs) == 0 {
		return nil
	}

	units := amount.RoundBank(places).Shift(places)
	negative := units.IsNegative()
	units = units.Abs()

	base, remainder := units.QuoRem(decimal.NewFromInt(int64(len(personIDs))), 0)
	extra := remainder.IntPart() // always below len(personIDs)

	splits := make([]models.SplitMember, len(personIDs))
	for i, id := range personIDs {
		share := base
		if int64(i) < extra {
			share = share.Add(decimal.NewFromInt(1))
		}
		share = share.Shift(-places)
		if negative {
			share = share.Neg()
		}
		splits[i] = models.SplitMember{PersonID: id, Amount: share}
	}
	return splits
}

// SinglePayer is the common case of one person fronting the whole amount.
func SinglePayer(personID string, amount decimal.Decimal, method models.PaymentMethod) []models.PaymentPart {
	return []models.PaymentPart{{PersonID: personID, Amount: amount, Method: method}}
}
