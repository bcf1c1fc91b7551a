package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// DefaultSettledEpsilon is the net magnitude below which a person is shown
// as settled.
var DefaultSettledEpsilon = decimal.RequireFromString("0.1")

// Balance is one trip member's complete accounting. It is derived from the
// trip on every read and never stored.
type Balance struct {
	PersonID             string          `json:"personId"`
	TotalPaid            decimal.Decimal `json:"totalPaid"`            // Paid towards expenses
	TotalShare           decimal.Decimal `json:"totalShare"`           // Own share of expense costs
	TotalSettledPaid     decimal.Decimal `json:"totalSettledPaid"`     // Given to others to settle
	TotalSettledReceived decimal.Decimal `json:"totalSettledReceived"` // Received from others
	Net                  decimal.Decimal `json:"net"`                  // Positive = gets back, negative = owes
}

// IsSettled reports whether the balance is within epsilon of zero.
func (b Balance) IsSettled(epsilon decimal.Decimal) bool {
	return IsSettled(b.Net, epsilon)
}

// IsSettled reports whether |net| < epsilon. A zero net is always settled,
// even with a zero epsilon. The net value itself is never snapped to zero;
// this only drives presentation.
func IsSettled(net, epsilon decimal.Decimal) bool {
	return net.IsZero() || net.Abs().LessThan(epsilon)
}

type accumulator struct {
	paid            decimal.Decimal
	share           decimal.Decimal
	settledPaid     decimal.Decimal
	settledReceived decimal.Decimal
}

// ComputeBalances returns one Balance per member of trip, in trip.People order.
//
// Algorithm:
// - For each expense: every payment part adds to its payer's paid total,
// every split member adds to its sharer's share
// - For each settlement: the amount adds to the sender's settled-paid and
// the receiver's settled-received totals
// - net = (paid + settledPaid) - (share + settledReceived)
//
// References to people who are not current members are dropped silently,
// which keeps records created before a member was removed readable. The
// trip is never modified and no error is ever returned.
func ComputeBalances(trip models.Trip) []Balance {
	acc := make(map[string]*accumulator, len(trip.People))
	for _, p := range trip.People {
		acc[p.ID] = &accumulator{}
	}

	for _, e := range trip.Expenses {
		for _, part := range e.Payments {
			if a, ok := acc[part.PersonID]; ok {
				a.paid = a.paid.Add(part.Amount)
			}
		}
		for _, member := range e.SplitWith {
			if a, ok := acc[member.PersonID]; ok {
				a.share = a.share.Add(member.Amount)
			}
		}
	}

	for _, s := range trip.Settlements {
		if a, ok := acc[s.FromID]; ok {
			a.settledPaid = a.settledPaid.Add(s.Amount)
		}
		if a, ok := acc[s.ToID]; ok {
			a.settledReceived = a.settledReceived.Add(s.Amount)
		}
	}

	balances := make([]Balance, 0, len(trip.People))
	for _, p := range trip.People {
		a := acc[p.ID]
		balances = append(balances, Balance{
			PersonID:             p.ID,
			TotalPaid:            a.paid,
			TotalShare:           a.share,
			TotalSettledPaid:     a.settledPaid,
			TotalSettledReceived: a.settledReceived,
			Net:                  a.paid.Add(a.settledPaid).Sub(a.share.Add(a.settledReceived)),
		})
	}
	return balances
}
