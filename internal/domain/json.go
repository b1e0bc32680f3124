package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// amountPlaces is the scale settled amounts are written with.
const amountPlaces = 2

// amount marshals a settled decimal as a quoted string with two fractional
// digits, so 2500 is written as "2500.00".
type amount decimal.Decimal

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + decimal.Decimal(a).StringFixed(amountPlaces) + `"`), nil
}

func optionalAmount(d *decimal.Decimal) *amount {
	if d == nil {
		return nil
	}
	a := amount(*d)
	return &a
}

// The MarshalJSON methods below shadow the amount fields of each type with
// fixed-scale values. Rates and percentages keep their natural scale.

func (b BracketDetail) MarshalJSON() ([]byte, error) {
	type plain BracketDetail
	return json.Marshal(struct {
		plain
		Min           amount  `json:"min"`
		Max           *amount `json:"max"`
		TaxableAmount amount  `json:"taxable_amount"`
		Tax           amount  `json:"tax"`
	}{
		plain:         plain(b),
		Min:           amount(b.Min),
		Max:           optionalAmount(b.Max),
		TaxableAmount: amount(b.TaxableAmount),
		Tax:           amount(b.Tax),
	})
}

func (r BenefitResult) MarshalJSON() ([]byte, error) {
	type plain BenefitResult
	return json.Marshal(struct {
		plain
		Amount amount `json:"amount"`
	}{plain: plain(r), Amount: amount(r.Amount)})
}

func (l LumpSumImpact) MarshalJSON() ([]byte, error) {
	type plain LumpSumImpact
	return json.Marshal(struct {
		plain
		TaxIncrease amount `json:"tax_increase"`
	}{plain: plain(l), TaxIncrease: amount(l.TaxIncrease)})
}

func (b Breakdown) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Gross        amount `json:"gross"`
		LumpSumAdded amount `json:"lump_sum_addition"`
		MinusPension amount `json:"minus_pension"`
		MinusTax     amount `json:"minus_tax"`
		MinusAOW     amount `json:"minus_aow"`
		MinusWW      amount `json:"minus_ww"`
		PlusBenefits amount `json:"plus_benefits"`
		EqualsNet    amount `json:"equals_net"`
	}{
		Gross:        amount(b.Gross),
		LumpSumAdded: amount(b.LumpSumAdded),
		MinusPension: amount(b.MinusPension),
		MinusTax:     amount(b.MinusTax),
		MinusAOW:     amount(b.MinusAOW),
		MinusWW:      amount(b.MinusWW),
		PlusBenefits: amount(b.PlusBenefits),
		EqualsNet:    amount(b.EqualsNet),
	})
}

func (s CalculationStep) MarshalJSON() ([]byte, error) {
	type plain CalculationStep
	return json.Marshal(struct {
		plain
		Amount amount `json:"amount"`
	}{plain: plain(s), Amount: amount(s.Amount)})
}

func (r EvaluationResult) MarshalJSON() ([]byte, error) {
	type plain EvaluationResult
	return json.Marshal(struct {
		plain
		GrossIncome             amount `json:"gross_income"`
		LumpSumAmount           amount `json:"lump_sum_amount"`
		PensionAmount           amount `json:"pension_amount"`
		TaxableIncomeBeforeLump amount `json:"taxable_income_before_lump_sum"`
		TaxableIncome           amount `json:"taxable_income_with_lump_sum"`
		IncomeTax               amount `json:"income_tax"`
		AOWPremium              amount `json:"aow_premium"`
		WWPremium               amount `json:"ww_premium"`
		TotalDeductions         amount `json:"total_deductions"`
		TotalBenefits           amount `json:"total_benefits"`
		NetIncome               amount `json:"net_income"`
	}{
		plain:                   plain(r),
		GrossIncome:             amount(r.GrossIncome),
		LumpSumAmount:           amount(r.LumpSumAmount),
		PensionAmount:           amount(r.PensionAmount),
		TaxableIncomeBeforeLump: amount(r.TaxableIncomeBeforeLump),
		TaxableIncome:           amount(r.TaxableIncome),
		IncomeTax:               amount(r.IncomeTax),
		AOWPremium:              amount(r.AOWPremium),
		WWPremium:               amount(r.WWPremium),
		TotalDeductions:         amount(r.TotalDeductions),
		TotalBenefits:           amount(r.TotalBenefits),
		NetIncome:               amount(r.NetIncome),
	})
}
