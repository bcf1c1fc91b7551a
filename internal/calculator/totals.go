package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// CategoryTotal is the spend for one category across a trip.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// TripTotal is the sum of every expense amount in the trip.
func TripTotal(trip models.Trip) decimal.Decimal {
	total := decimal.Zero
	for _, e := range trip.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// CategoryTotals groups expense amounts by category. Known categories come
// first in display order; anything else follows sorted by name. Categories
// without expenses are left out.
func CategoryTotals(trip models.Trip) []CategoryTotal {
	byCategory := make(map[models.Category]*CategoryTotal)
	for _, e := range trip.Expenses {
		ct, ok := byCategory[e.Category]
		if !ok {
			ct = &CategoryTotal{Category: e.Category, Total: decimal.Zero}
			byCategory[e.Category] = ct
		}
		ct.Total = ct.Total.Add(e.Amount)
		ct.Count++
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for _, c := range models.Categories {
		if ct, ok := byCategory[c]; ok {
			totals = append(totals, *ct)
			delete(byCategory, c)
		}
	}

	var unknown []CategoryTotal
	for _, ct := range byCategory {
		unknown = append(unknown, *ct)
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i].Category < unknown[j].Category })
	return append(totals, unknown...)
}
