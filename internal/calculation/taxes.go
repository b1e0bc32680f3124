package calculation

import (
	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/shopspring/decimal"
)

// IncomeTaxCalculator applies the progressive bracket table.
type IncomeTaxCalculator struct {
	Year             int
	GeneralAllowance decimal.Decimal
	LabourAllowance  decimal.Decimal
	Brackets         []domain.TaxBracket
}

// NewIncomeTaxCalculator2025 creates an income tax calculator for 2025
func NewIncomeTaxCalculator2025() *IncomeTaxCalculator {
	return NewIncomeTaxCalculator(DefaultRules2025())
}

// NewIncomeTaxCalculator creates an income tax calculator from a rule table
func NewIncomeTaxCalculator(rules *domain.FiscalYearRules) *IncomeTaxCalculator {
	return &IncomeTaxCalculator{
		Year:             rules.Year,
		GeneralAllowance: rules.IncomeTax.GeneralAllowance,
		LabourAllowance:  rules.IncomeTax.LabourAllowance,
		Brackets:         rules.IncomeTax.Brackets,
	}
}

// TotalAllowances returns the amount subtracted before the brackets apply.
func (c *IncomeTaxCalculator) TotalAllowances() decimal.Decimal {
	return c.GeneralAllowance.Add(c.LabourAllowance)
}

// TaxableBase returns taxable income minus allowances, floored at zero.
func (c *IncomeTaxCalculator) TaxableBase(taxableIncome decimal.Decimal) decimal.Decimal {
	return money.NonNegative(taxableIncome.Sub(c.TotalAllowances()))
}

// Calculate returns the income tax on taxableIncome and the bracket detail.
// Tax per bracket is settled to cents; the total is the sum of the settled
// bracket amounts. A zero base yields zero tax and no brackets.
func (c *IncomeTaxCalculator) Calculate(taxableIncome decimal.Decimal) (decimal.Decimal, []domain.BracketDetail) {
	base := c.TaxableBase(taxableIncome)
	if !base.IsPositive() {
		return decimal.Zero, []domain.BracketDetail{}
	}

	total := decimal.Zero
	details := make([]domain.BracketDetail, 0, len(c.Brackets))
	for _, bracket := range c.Brackets {
		if base.LessThanOrEqual(bracket.Min) {
			break
		}
		upper := base
		if bracket.Max != nil {
			upper = decimal.Min(base, *bracket.Max)
		}
		inBracket := upper.Sub(bracket.Min)
		tax := money.Settle(inBracket.Mul(bracket.Rate))
		total = total.Add(tax)
		details = append(details, domain.BracketDetail{
			Min:           bracket.Min,
			Max:           bracket.Max,
			Rate:          bracket.Rate,
			TaxableAmount: inBracket,
			Tax:           tax,
		})
	}
	return total, details
}

// MarginalRate returns the rate of the highest bracket the income reaches,
// or zero when no bracket applies.
func (c *IncomeTaxCalculator) MarginalRate(taxableIncome decimal.Decimal) decimal.Decimal {
	_, details := c.Calculate(taxableIncome)
	if len(details) == 0 {
		return decimal.Zero
	}
	return details[len(details)-1].Rate
}
