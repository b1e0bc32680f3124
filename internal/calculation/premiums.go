package calculation

import (
	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/shopspring/decimal"
)

// PremiumCalculator computes the flat-rate deductions.
type PremiumCalculator struct {
	AOWRate decimal.Decimal
	WWRate  decimal.Decimal
}

// NewPremiumCalculator creates a premium calculator from a rule table
func NewPremiumCalculator(rules *domain.FiscalYearRules) *PremiumCalculator {
	return &PremiumCalculator{
		AOWRate: rules.Premiums.AOWRate,
		WWRate:  rules.Premiums.WWRate,
	}
}

// PensionContribution returns gross × pct / 100, settled.
func (pc *PremiumCalculator) PensionContribution(gross, pct decimal.Decimal) decimal.Decimal {
	return money.Settle(money.Percent(gross, pct))
}

// AOW returns the state pension premium on the taxable income.
func (pc *PremiumCalculator) AOW(taxable decimal.Decimal) decimal.Decimal {
	return money.Settle(taxable.Mul(pc.AOWRate))
}

// WW returns the unemployment premium on the taxable income.
func (pc *PremiumCalculator) WW(taxable decimal.Decimal) decimal.Decimal {
	return money.Settle(taxable.Mul(pc.WWRate))
}
