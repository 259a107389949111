package model

import "github.com/shopspring/decimal"

func init() {
	// Aggregates are consumed as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Sum adds ds.
func Sum(ds ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}
