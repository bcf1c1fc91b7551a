package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
)

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	amount := decimal.RequireFromString("90")
	trip := models.Trip{
		ID:       "goa",
		Name:     "Goa",
		Currency: "$",
		People:   []models.Person{{ID: "1", Name: "Asha"}, {ID: "2", Name: "Ben"}, {ID: "3", Name: "Cy"}},
		Expenses: []models.Expense{{
			ID:        "e1",
			Amount:    amount,
			Payments:  calculator.SinglePayer("1", amount, models.MethodCard),
			SplitWith: calculator.EqualSplit(amount, []string{"1", "2"}, 2),
		}},
	}

	writeReport(logger, []models.Trip{trip}, calculator.DefaultSettledEpsilon)

	out := buf.String()
	assert.Contains(t, out, "total=$90.00")
	assert.Contains(t, out, `person=Asha status="gets back" net=45.00`)
	assert.Contains(t, out, "person=Ben status=owes net=-45.00")
	assert.Contains(t, out, "person=Cy status=settled net=0.00")
	assert.Contains(t, out, "msg=\"Suggested transfer\" trip_id=goa from=2 to=1 amount=$45.00")
}

func TestWriteReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	writeReport(slog.New(slog.NewTextHandler(&buf, nil)), nil, calculator.DefaultSettledEpsilon)
	assert.Contains(t, buf.String(), "No trips stored")
}
