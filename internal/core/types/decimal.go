// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// NewMoneyFromInt creates a Money value from an integer amount.
func NewMoneyFromInt(n int64) Money {
	return decimal.NewFromInt(n)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Percent represents a percentage value (e.g. 19 means 19%).
type Percent = decimal.Decimal

var hundred = decimal.NewFromInt(100)

// ApplyPercent returns base * percent / 100.
func ApplyPercent(base Money, percent Percent) Money {
	return base.Mul(percent).Div(hundred)
}

// ValidPercent reports whether percent lies in [0, 100].
func ValidPercent(percent Percent) bool {
	return !percent.IsNegative() && percent.LessThanOrEqual(hundred)
}
