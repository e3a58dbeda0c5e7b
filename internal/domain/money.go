package domain

import (
	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits of a GTON amount.
const Scale = 6

var hundred = decimal.NewFromInt(100)

// ValidateAmount rejects non-positive amounts and amounts finer than Scale digits.
func ValidateAmount(a decimal.Decimal) error {
	if !a.IsPositive() {
		return ErrInvalidAmount
	}
	if !a.Equal(a.Truncate(Scale)) {
		return ErrInvalidAmount
	}
	return nil
}

// Round brings a to Scale digits with round-half-even.
func Round(a decimal.Decimal) decimal.Decimal {
	return a.RoundBank(Scale)
}

// Percent returns amount*percent/100 rounded half-even to Scale digits.
func Percent(amount, percent decimal.Decimal) decimal.Decimal {
	return Round(amount.Mul(percent).Div(hundred))
}
