package calculator

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func people(ids ...string) []models.Person {
	ps := make([]models.Person, len(ids))
	for i, id := range ids {
		ps[i] = models.Person{ID: id, Name: id}
	}
	return ps
}

func paidBy(id, amount string) models.PaymentPart {
	return models.PaymentPart{PersonID: id, Amount: d(amount), Method: models.MethodUPI}
}

func shareOf(id, amount string) models.SplitMember {
	return models.SplitMember{PersonID: id, Amount: d(amount)}
}

func netOf(t *testing.T, balances []Balance, personID string) decimal.Decimal {
	t.Helper()
	for _, b := range balances {
		if b.PersonID == personID {
			return b.Net
		}
	}
	t.Fatalf("no balance for %s", personID)
	return decimal.Zero
}

func sumNet(balances []Balance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Net)
	}
	return total
}

func scenarioA() models.Trip {
	return models.Trip{
		ID:     "trip",
		People: people("P1", "P2"),
		Expenses: []models.Expense{{
			ID:        "e1",
			Amount:    d("100"),
			Category:  models.CategoryFood,
			Payments:  []models.PaymentPart{paidBy("P1", "100")},
			SplitWith: []models.SplitMember{shareOf("P1", "50"), shareOf("P2", "50")},
		}},
	}
}

func TestComputeBalances(t *testing.T) {
	t.Run("scenario A: one payer, equal split", func(t *testing.T) {
		balances := ComputeBalances(scenarioA())

		require.Len(t, balances, 2)
		assert.Equal(t, "P1", balances[0].PersonID)
		assert.Equal(t, "P2", balances[1].PersonID)
		assert.True(t, netOf(t, balances, "P1").Equal(d("50")))
		assert.True(t, netOf(t, balances, "P2").Equal(d("-50")))
		assert.True(t, balances[0].TotalPaid.Equal(d("100")))
		assert.True(t, balances[0].TotalShare.Equal(d("50")))
	})

	t.Run("scenario B: settlement clears the debt", func(t *testing.T) {
		trip := scenarioA()
		trip.Settlements = []models.SettlementRecord{{ID: "s1", FromID: "P2", ToID: "P1", Amount: d("50")}}

		balances := ComputeBalances(trip)

		assert.True(t, netOf(t, balances, "P1").IsZero())
		assert.True(t, netOf(t, balances, "P2").IsZero())
		assert.True(t, balances[1].TotalSettledPaid.Equal(d("50")))
		assert.True(t, balances[0].TotalSettledReceived.Equal(d("50")))
		for _, b := range balances {
			assert.True(t, b.IsSettled(DefaultSettledEpsilon))
		}
	})

	t.Run("scenario C: two payers, three-way split", func(t *testing.T) {
		trip := models.Trip{
			People: people("P1", "P2", "P3"),
			Expenses: []models.Expense{{
				ID:        "e1",
				Amount:    d("100"),
				Payments:  []models.PaymentPart{paidBy("P1", "60"), paidBy("P2", "40")},
				SplitWith: EqualSplit(d("100"), []string{"P1", "P2", "P3"}, 2),
			}},
		}

		balances := ComputeBalances(trip)

		// P1 carries the leftover cent: share 33.34
		assert.Equal(t, "26.66", netOf(t, balances, "P1").String())
		assert.Equal(t, "6.67", netOf(t, balances, "P2").String())
		assert.Equal(t, "-33.33", netOf(t, balances, "P3").String())
		assert.True(t, sumNet(balances).IsZero())
	})

	t.Run("scenario D: settlement with a removed person", func(t *testing.T) {
		trip := scenarioA()
		trip.People = append(trip.People, models.Person{ID: "P3"})
		trip.Settlements = []models.SettlementRecord{
			{ID: "s1", FromID: "P3", ToID: "P1", Amount: d("20")},
			{ID: "s2", FromID: "P2", ToID: "P3", Amount: d("5")},
		}
		// P3 leaves after the settlements were recorded.
		trip.People = trip.People[:2]

		balances := ComputeBalances(trip)

		require.Len(t, balances, 2)
		// Each settlement still counts for the side that is a member.
		assert.True(t, balances[0].TotalSettledReceived.Equal(d("20")))
		assert.True(t, balances[1].TotalSettledPaid.Equal(d("5")))
		assert.True(t, netOf(t, balances, "P1").Equal(d("30")))
		assert.True(t, netOf(t, balances, "P2").Equal(d("-45")))
	})

	t.Run("unknown ids in expenses are dropped", func(t *testing.T) {
		trip := scenarioA()
		trip.Expenses[0].Payments = append(trip.Expenses[0].Payments, paidBy("ghost", "10"))
		trip.Expenses[0].SplitWith = append(trip.Expenses[0].SplitWith, shareOf("ghost", "10"))

		balances := ComputeBalances(trip)

		assert.True(t, netOf(t, balances, "P1").Equal(d("50")))
		assert.True(t, netOf(t, balances, "P2").Equal(d("-50")))
	})

	t.Run("person with no activity", func(t *testing.T) {
		trip := scenarioA()
		trip.People = append(trip.People, models.Person{ID: "P3"})

		balances := ComputeBalances(trip)

		require.Len(t, balances, 3)
		assert.True(t, balances[2].Net.IsZero())
		assert.True(t, balances[2].TotalPaid.IsZero())
	})

	t.Run("empty trip", func(t *testing.T) {
		assert.Empty(t, ComputeBalances(models.Trip{}))
	})
}

func randomTrip(r *rand.Rand) models.Trip {
	ids := []string{"a", "b", "c", "d", "e"}
	trip := models.Trip{ID: "rand", People: people(ids...)}

	for i := 0; i < 40; i++ {
		amount := decimal.New(int64(r.Intn(100000)+1), -2)

		payers := ids[:r.Intn(len(ids))+1]
		payments := make([]models.PaymentPart, 0, len(payers))
		for _, split := range EqualSplit(amount, payers, 2) {
			payments = append(payments, models.PaymentPart{PersonID: split.PersonID, Amount: split.Amount, Method: models.MethodCash})
		}

		sharers := append([]string(nil), ids...)
		r.Shuffle(len(sharers), func(i, j int) { sharers[i], sharers[j] = sharers[j], sharers[i] })
		sharers = sharers[:r.Intn(len(ids))+1]

		trip.Expenses = append(trip.Expenses, models.Expense{
			ID:        strconv.Itoa(i),
			Amount:    amount,
			Payments:  payments,
			SplitWith: EqualSplit(amount, sharers, 2),
		})
	}
	for i := 0; i < 10; i++ {
		from, to := ids[r.Intn(len(ids))], ids[r.Intn(len(ids))]
		if from == to {
			continue
		}
		trip.Settlements = append(trip.Settlements, models.SettlementRecord{
			FromID: from,
			ToID:   to,
			Amount: decimal.New(int64(r.Intn(5000)+1), -2),
		})
	}
	return trip
}

func TestComputeBalancesProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		trip := randomTrip(r)

		t.Run("conservation", func(t *testing.T) {
			assert.True(t, sumNet(ComputeBalances(trip)).IsZero())
		})

		t.Run("order independence", func(t *testing.T) {
			want := ComputeBalances(trip)

			shuffled := trip.Clone()
			r.Shuffle(len(shuffled.Expenses), func(i, j int) {
				shuffled.Expenses[i], shuffled.Expenses[j] = shuffled.Expenses[j], shuffled.Expenses[i]
			})
			r.Shuffle(len(shuffled.Settlements), func(i, j int) {
				shuffled.Settlements[i], shuffled.Settlements[j] = shuffled.Settlements[j], shuffled.Settlements[i]
			})

			got := ComputeBalances(shuffled)
			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i].PersonID, got[i].PersonID)
				assert.True(t, want[i].Net.Equal(got[i].Net), "net for %s", want[i].PersonID)
				assert.True(t, want[i].TotalPaid.Equal(got[i].TotalPaid))
				assert.True(t, want[i].TotalShare.Equal(got[i].TotalShare))
			}
		})

		t.Run("idempotent and pure", func(t *testing.T) {
			before := trip.Clone()

			first := ComputeBalances(trip)
			second := ComputeBalances(trip)

			assert.Equal(t, first, second)
			assert.Equal(t, before, trip)
		})
	}
}

func TestIsSettled(t *testing.T) {
	tests := []struct {
		net  string
		want bool
	}{
		{"0", true},
		{"0.09", true},
		{"-0.09", true},
		{"0.1", false},
		{"-0.1", false},
		{"25", false},
	}
	for _, tt := range tests {
		t.Run(tt.net, func(t *testing.T) {
			if got := IsSettled(d(tt.net), DefaultSettledEpsilon); got != tt.want {
				t.Errorf("IsSettled(%s) = %v, want %v", tt.net, got, tt.want)
			}
		})
	}

	if !IsSettled(decimal.Zero, decimal.Zero) {
		t.Error("IsSettled(0) with zero epsilon = false, want true")
	}
	if IsSettled(d("0.01"), decimal.Zero) {
		t.Error("IsSettled(0.01) with zero epsilon = true, want false")
	}
}
