package db

import "github.com/shopspring/decimal"

// Dec converts a NUMERIC column selected as ::text. Malformed input yields zero.
func Dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
