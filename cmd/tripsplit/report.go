package main

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
)

// writeReport logs where every member of every trip stands and the
// transfers that would settle them.
func writeReport(logger *slog.Logger, trips []models.Trip, epsilon decimal.Decimal) {
	if len(trips) == 0 {
		logger.Info("No trips stored")
		return
	}

	for _, trip := range trips {
		logger.Info("Trip",
			"trip_id", trip.ID,
			"name", trip.Name,
			"people_count", len(trip.People),
			"expenses_count", len(trip.Expenses),
			"settlements_count", len(trip.Settlements),
			"total", trip.Currency+calculator.TripTotal(trip).StringFixed(2),
		)

		balances := calculator.ComputeBalances(trip)
		for _, b := range balances {
			name := b.PersonID
			if p, ok := trip.Person(b.PersonID); ok && p.Name != "" {
				name = p.Name
			}
			logger.Info("Balance",
				"trip_id", trip.ID,
				"person", name,
				"status", status(b, epsilon),
				"net", b.Net.StringFixed(2),
				"paid", b.TotalPaid.StringFixed(2),
				"share", b.TotalShare.StringFixed(2),
			)
		}

		for _, tr := range calculator.SuggestTransfers(balances, epsilon) {
			logger.Info("Suggested transfer",
				"trip_id", trip.ID,
				"from", tr.FromID,
				"to", tr.ToID,
				"amount", trip.Currency+tr.Amount.StringFixed(2),
			)
		}
	}
}

func status(b calculator.Balance, epsilon decimal.Decimal) string {
	switch {
	case b.IsSettled(epsilon):
		return "settled"
	case b.Net.IsPositive():
		return "gets back"
	default:
		return "owes"
	}
}
