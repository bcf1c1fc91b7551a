package models

import "github.com/shopspring/decimal"

func init() {
	// Stored documents carry amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
