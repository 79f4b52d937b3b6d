package util

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Round2 rounds half away from zero to two decimal places. NaN and
// infinities come back unchanged
func Round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// FormatINR formats a rupee amount with grouping and the rupee sign
func FormatINR(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "n/a"
	}
	cur := money.GetCurrency(money.INR)
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	// past int64 minor units, without grouping
	if minor.Abs().GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return cur.Grapheme + decimal.NewFromFloat(amount).StringFixed(int32(cur.Fraction))
	}
	return money.New(minor.IntPart(), money.INR).Display()
}
