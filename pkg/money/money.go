package money

import (
	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits every stored amount carries.
const Places = 2

var half = decimal.New(5, -1)

// Round rounds d half-up (towards +Inf) to two decimal places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Shift(Places).Add(half).Floor().Shift(-Places)
}

// Percent returns Round(base * pct / 100).
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return Round(base.Mul(pct).Shift(-2))
}

// HasCents reports whether d has at most two fractional digits.
func HasCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(Places))
}
