package utils

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// RoundToCents applies the fixed rounding policy for all monetary
// outputs: round half-up to two decimal places.
func RoundToCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// PercentOf computes amount * percentage / 100, rounded to cents.
func PercentOf(amount, percentage decimal.Decimal) decimal.Decimal {
	return RoundToCents(amount.Mul(percentage).Div(oneHundred))
}

// ClampPercentage bounds a percentage into [min, max].
func ClampPercentage(pct, min, max decimal.Decimal) decimal.Decimal {
	if pct.LessThan(min) {
		return min
	}
	if pct.GreaterThan(max) {
		return max
	}
	return pct
}

// FormatUSD renders an amount as a dollar string for notification text.
func FormatUSD(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
