package domain

import (
	"github.com/shopspring/decimal"
)

// FiscalYearRules contains every rate, bracket and threshold the engine needs
// for one fiscal year. It is built once (from the built-in table or a
// regulatory YAML file) and treated as read-only afterwards.
type FiscalYearRules struct {
	Year            int                 `yaml:"year" json:"year"`
	IncomeTax       IncomeTaxRules      `yaml:"income_tax" json:"income_tax"`
	Premiums        PremiumRates        `yaml:"premiums" json:"premiums"`
	HousingAllow    HousingAllowRules   `yaml:"housing_allowance" json:"housing_allowance"`
	HealthcareAllow HealthcareRules     `yaml:"healthcare_subsidy" json:"healthcare_subsidy"`
	ChildBudget     ChildBudgetRules    `yaml:"child_budget" json:"child_budget"`
	LumpSum         LumpSumRules        `yaml:"lump_sum" json:"lump_sum"`
	Recommendation  RecommendationRules `yaml:"recommendation" json:"recommendation"`
}

// TaxBracket is a half-open income range [Min, Max) taxed at Rate.
// A nil Max marks the unbounded top bracket.
type TaxBracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// IsUnbounded reports whether the bracket has no upper bound.
func (b TaxBracket) IsUnbounded() bool {
	return b.Max == nil
}

// IncomeTaxRules contains the bracket table and the allowances subtracted
// before the brackets apply.
type IncomeTaxRules struct {
	Brackets         []TaxBracket    `yaml:"brackets" json:"brackets"`
	GeneralAllowance decimal.Decimal `yaml:"general_allowance" json:"general_allowance"`
	LabourAllowance  decimal.Decimal `yaml:"labour_allowance" json:"labour_allowance"`
}

// TotalAllowances returns the general plus labour allowance.
func (r IncomeTaxRules) TotalAllowances() decimal.Decimal {
	return r.GeneralAllowance.Add(r.LabourAllowance)
}

// PremiumRates contains the flat social-insurance premium rates.
type PremiumRates struct {
	AOWRate decimal.Decimal `yaml:"aow_rate" json:"aow_rate"` // state pension
	WWRate  decimal.Decimal `yaml:"ww_rate" json:"ww_rate"`   // unemployment
}

// HousingAllowRules parameterises the housing allowance (huurtoeslag).
type HousingAllowRules struct {
	ThresholdSingle      decimal.Decimal `yaml:"threshold_single" json:"threshold_single"`
	ThresholdCouple      decimal.Decimal `yaml:"threshold_couple" json:"threshold_couple"`
	MaxMonthlyCostSingle decimal.Decimal `yaml:"max_monthly_cost_single" json:"max_monthly_cost_single"`
	MaxMonthlyCostCouple decimal.Decimal `yaml:"max_monthly_cost_couple" json:"max_monthly_cost_couple"`
	SubsidyFraction      decimal.Decimal `yaml:"subsidy_fraction" json:"subsidy_fraction"`
}

// HealthcareRules parameterises the healthcare subsidy (zorgtoeslag).
type HealthcareRules struct {
	ThresholdSingle    decimal.Decimal `yaml:"threshold_single" json:"threshold_single"`
	ThresholdPartner   decimal.Decimal `yaml:"threshold_partner" json:"threshold_partner"`
	ThresholdCouple    decimal.Decimal `yaml:"threshold_couple" json:"threshold_couple"`
	BaseSubsidySingle  decimal.Decimal `yaml:"base_subsidy_single" json:"base_subsidy_single"`
	BaseSubsidyPartner decimal.Decimal `yaml:"base_subsidy_partner" json:"base_subsidy_partner"`
	IncomeFloor        decimal.Decimal `yaml:"income_floor" json:"income_floor"`
	ReductionRate      decimal.Decimal `yaml:"reduction_rate" json:"reduction_rate"`
}

// ChildBudgetRules parameterises the child budget (kindgebonden budget).
type ChildBudgetRules struct {
	IncomeCeiling       decimal.Decimal `yaml:"income_ceiling" json:"income_ceiling"`
	AnnualPerChild      decimal.Decimal `yaml:"annual_per_child" json:"annual_per_child"`
	SupplementThreshold decimal.Decimal `yaml:"supplement_threshold" json:"supplement_threshold"`
	SupplementRate      decimal.Decimal `yaml:"supplement_rate" json:"supplement_rate"`
}

// LumpSumRules controls how the lump-sum percentage is normalised.
// The lump sum is annual_pension × pct / Divisor.
type LumpSumRules struct {
	Divisor decimal.Decimal `yaml:"divisor" json:"divisor"`
}

// RecommendationRules holds the effective-rate cut-offs (in percent) used for
// the lump-sum recommendation.
type RecommendationRules struct {
	HighRate     decimal.Decimal `yaml:"high_rate" json:"high_rate"`
	ModerateRate decimal.Decimal `yaml:"moderate_rate" json:"moderate_rate"`
}
