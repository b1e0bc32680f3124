// Package money holds the settlement rules shared by every calculation.
//
// Amounts are shopspring decimals end to end. Nothing in this package rounds
// implicitly: callers settle explicitly at the points each formula defines.
package money

import (
	"github.com/shopspring/decimal"
)

// SettlementPlaces is the number of fractional digits a settled amount carries.
const SettlementPlaces int32 = 2

var hundred = decimal.NewFromInt(100)

// Settle rounds d to cents, half-up.
// Settled values are never negative in this engine, where shopspring's
// half-away-from-zero rounding and half-up agree.
func Settle(d decimal.Decimal) decimal.Decimal {
	return d.Round(SettlementPlaces)
}

// SettleDiv divides and settles in one step so no intermediate quotient is
// truncated before the final rounding.
func SettleDiv(numerator, denominator decimal.Decimal) decimal.Decimal {
	return numerator.DivRound(denominator, SettlementPlaces)
}

// NonNegative returns max(0, d).
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Percent returns base × pct / 100 exactly.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Shift(-2)
}

// PercentOf returns part / whole × 100, or zero when whole is zero.
func PercentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// FromInt is shorthand for decimal.NewFromInt.
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// MustParse parses a literal used in static rate tables.
func MustParse(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Format renders an amount with two fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(SettlementPlaces)
}

// FormatEuro renders an amount as a euro string.
func FormatEuro(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-€" + d.Abs().StringFixed(SettlementPlaces)
	}
	return "€" + d.StringFixed(SettlementPlaces)
}

// FormatPercent renders a percentage value with two fractional digits.
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
