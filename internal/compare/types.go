package compare

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/shopspring/decimal"
)

// Direction is the sign of a delta.
type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
	NoChange Direction = "no_change"
)

// FieldDelta is the change of one result field between two evaluations.
type FieldDelta struct {
	Field            string          `json:"field"`
	Base             decimal.Decimal `json:"base"`
	Modified         decimal.Decimal `json:"modified"`
	Delta            decimal.Decimal `json:"delta"`
	PercentageChange decimal.Decimal `json:"percentage_change"`
	Direction        Direction       `json:"direction"`
}

// NewFieldDelta computes modified − base. The percentage change is zero when
// base is zero.
func NewFieldDelta(field string, base, modified decimal.Decimal) FieldDelta {
	delta := modified.Sub(base)
	direction := NoChange
	switch {
	case delta.IsPositive():
		direction = Increase
	case delta.IsNegative():
		direction = Decrease
	}
	return FieldDelta{
		Field:            field,
		Base:             base,
		Modified:         modified,
		Delta:            delta,
		PercentageChange: money.PercentOf(delta, base),
		Direction:        direction,
	}
}

// Field names accepted by CompareScenarios.
const (
	FieldGrossIncome       = "gross_income"
	FieldPensionAmount     = "pension_amount"
	FieldTaxableIncome     = "taxable_income"
	FieldIncomeTax         = "income_tax"
	FieldAOWPremium        = "aow_premium"
	FieldWWPremium         = "ww_premium"
	FieldTaxBurden         = "tax_burden"
	FieldHousingAllowance  = "housing_allowance"
	FieldHealthcareSubsidy = "healthcare_subsidy"
	FieldChildBudget       = "child_budget"
	FieldTotalBenefits     = "total_benefits"
	FieldBenefitsTotal     = "benefits_total"
	FieldNetIncome         = "net_income"
	FieldEffectiveTaxRate  = "effective_tax_rate"
)

// DefaultFields are compared when the caller names none.
var DefaultFields = []string{FieldNetIncome, FieldTaxBurden, FieldBenefitsTotal, FieldPensionAmount}

// DeltaFields are reported by a two-scenario delta.
var DeltaFields = []string{FieldGrossIncome, FieldPensionAmount, FieldIncomeTax, FieldTotalBenefits, FieldNetIncome}

var extractors = map[string]func(*domain.EvaluationResult) decimal.Decimal{
	FieldGrossIncome:       func(r *domain.EvaluationResult) decimal.Decimal { return r.GrossIncome },
	FieldPensionAmount:     func(r *domain.EvaluationResult) decimal.Decimal { return r.PensionAmount },
	FieldTaxableIncome:     func(r *domain.EvaluationResult) decimal.Decimal { return r.TaxableIncome },
	FieldIncomeTax:         func(r *domain.EvaluationResult) decimal.Decimal { return r.IncomeTax },
	FieldAOWPremium:        func(r *domain.EvaluationResult) decimal.Decimal { return r.AOWPremium },
	FieldWWPremium:         func(r *domain.EvaluationResult) decimal.Decimal { return r.WWPremium },
	FieldTaxBurden:         func(r *domain.EvaluationResult) decimal.Decimal { return r.TaxBurden() },
	FieldHousingAllowance:  func(r *domain.EvaluationResult) decimal.Decimal { return r.HousingAllowance.Amount },
	FieldHealthcareSubsidy: func(r *domain.EvaluationResult) decimal.Decimal { return r.HealthcareSubsidy.Amount },
	FieldChildBudget:       func(r *domain.EvaluationResult) decimal.Decimal { return r.ChildBudget.Amount },
	FieldTotalBenefits:     func(r *domain.EvaluationResult) decimal.Decimal { return r.TotalBenefits },
	FieldBenefitsTotal:     func(r *domain.EvaluationResult) decimal.Decimal { return r.TotalBenefits },
	FieldNetIncome:         func(r *domain.EvaluationResult) decimal.Decimal { return r.NetIncome },
	FieldEffectiveTaxRate:  func(r *domain.EvaluationResult) decimal.Decimal { return r.EffectiveTaxRate },
}

// FieldValue reads a named field from a result.
func FieldValue(r *domain.EvaluationResult, field string) (decimal.Decimal, error) {
	extract, ok := extractors[field]
	if !ok {
		return decimal.Zero, &domain.InvalidInputError{Field: "fields", Reason: fmt.Sprintf("unknown field %q", field)}
	}
	return extract(r), nil
}

// AvailableFields lists every comparable field name, sorted.
func AvailableFields() []string {
	names := make([]string, 0, len(extractors))
	for name := range extractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluation is one named, evaluated scenario.
type Evaluation struct {
	Name   string                   `json:"name"`
	Input  domain.EvaluationInput   `json:"input"`
	Result *domain.EvaluationResult `json:"result"`
}

// ScenarioDelta holds the field deltas of one scenario against the first.
type ScenarioDelta struct {
	Base     string       `json:"base"`
	Modified string       `json:"modified"`
	Fields   []FieldDelta `json:"fields"`
}

// Field returns the delta for a named field.
func (d ScenarioDelta) Field(name string) (FieldDelta, bool) {
	for _, f := range d.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldDelta{}, false
}

// ComparisonResult is the outcome of comparing two or more scenarios.
// FieldMatrix maps each compared field to one value per evaluation, in
// evaluation order.
type ComparisonResult struct {
	Evaluations []Evaluation                 `json:"evaluations"`
	Fields      []string                     `json:"fields"`
	FieldMatrix map[string][]decimal.Decimal `json:"field_matrix"`
	Deltas      []ScenarioDelta              `json:"deltas"`
	Insights    []Insight                    `json:"insights"`
	Source      string                       `json:"source,omitempty"`
}

// DeltaSummary is the verdict of a two-scenario delta.
type DeltaSummary struct {
	BestIncome           string          `json:"best_income"`
	NetIncomeImprovement decimal.Decimal `json:"net_income_improvement"`
}

// DeltaReport explains the differences between a base and a modified input.
type DeltaReport struct {
	Base     *domain.EvaluationResult `json:"base_scenario"`
	Modified *domain.EvaluationResult `json:"modified_scenario"`
	Deltas   []FieldDelta             `json:"deltas"`
	Summary  DeltaSummary             `json:"summary"`
}

// Field returns the delta for a named field.
func (r *DeltaReport) Field(name string) (FieldDelta, bool) {
	return ScenarioDelta{Fields: r.Deltas}.Field(name)
}
