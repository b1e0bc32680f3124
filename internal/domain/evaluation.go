package domain

import (
	"github.com/shopspring/decimal"
)

// Household describes the shape of a household as far as the benefit
// thresholds care about it.
type Household struct {
	Members   int  `yaml:"members" json:"members"`
	IsPartner bool `yaml:"is_partner" json:"is_partner"`
	Children  int  `yaml:"children" json:"children"`
}

// IsSingle reports whether the household has a single member.
func (h Household) IsSingle() bool {
	return h.Members < 2
}

// EvaluationInput is one set of household figures to run through the engine.
// Monetary amounts are annual unless the field name says otherwise.
type EvaluationInput struct {
	GrossIncome            decimal.Decimal `yaml:"gross_income" json:"gross_income" validate:"decimal_gte=0"`
	PensionContributionPct decimal.Decimal `yaml:"pension_contribution_pct" json:"pension_contribution_pct" validate:"decimal_gte=0,decimal_lte=100"`
	LumpSumPct             decimal.Decimal `yaml:"lump_sum_pct" json:"lump_sum_pct" validate:"decimal_gte=0,decimal_lte=100"`
	HousingCostsMonthly    decimal.Decimal `yaml:"housing_costs_monthly" json:"housing_costs_monthly" validate:"decimal_gte=0"`
	ChildrenCount          int             `yaml:"children_count" json:"children_count" validate:"gte=0"`
	HouseholdMembers       int             `yaml:"household_members" json:"household_members" validate:"gte=1"`
	IsPartner              bool            `yaml:"is_partner" json:"is_partner"`
}

// Household returns the household shape described by the input.
func (in EvaluationInput) Household() Household {
	return Household{
		Members:   in.HouseholdMembers,
		IsPartner: in.IsPartner,
		Children:  in.ChildrenCount,
	}
}

// NamedInput pairs an input with a scenario name.
type NamedInput struct {
	Name  string          `yaml:"name" json:"name" validate:"required"`
	Input EvaluationInput `yaml:"input" json:"input"`
}

// StepType classifies a trace step.
type StepType string

const (
	StepEligible      StepType = "eligible"
	StepCalculated    StepType = "calculated"
	StepRejected      StepType = "rejected"
	StepNotApplicable StepType = "not_applicable"
)

// Trace step reasons.
const (
	ReasonIncomeExceedsThreshold = "income_exceeds_threshold"
	ReasonNoChildren             = "no_children"
)

// TraceValue is one named intermediate value in a trace step.
type TraceValue struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// TraceStep records one condition or intermediate result. Values keep the
// order in which they were produced.
type TraceStep struct {
	Type   StepType     `json:"type"`
	Reason string       `json:"reason,omitempty"`
	Values []TraceValue `json:"values"`
}

// Value looks up a named value in the step.
func (s TraceStep) Value(name string) (decimal.Decimal, bool) {
	for _, v := range s.Values {
		if v.Name == name {
			return v.Value, true
		}
	}
	return decimal.Zero, false
}

// BracketDetail is the audit record for a single applied tax bracket.
type BracketDetail struct {
	Min           decimal.Decimal  `json:"min"`
	Max           *decimal.Decimal `json:"max"`
	Rate          decimal.Decimal  `json:"rate"`
	TaxableAmount decimal.Decimal  `json:"taxable_amount"`
	Tax           decimal.Decimal  `json:"tax"`
}

// BenefitKind enumerates the means-tested benefits.
type BenefitKind int

const (
	BenefitHousing BenefitKind = iota
	BenefitHealthcare
	BenefitChildBudget
)

// BenefitKinds lists every benefit in evaluation order.
var BenefitKinds = []BenefitKind{BenefitHousing, BenefitHealthcare, BenefitChildBudget}

// RuleID returns the catalog id of the benefit.
func (k BenefitKind) RuleID() RuleID {
	switch k {
	case BenefitHousing:
		return RuleHousingAllowance
	case BenefitHealthcare:
		return RuleHealthcareSubsidy
	case BenefitChildBudget:
		return RuleChildBudget
	default:
		return ""
	}
}

func (k BenefitKind) String() string {
	return string(k.RuleID())
}

// BenefitResult is the settled amount of one benefit with its trace. The
// net-income waterfall adds Amount unchanged.
type BenefitResult struct {
	Rule   RuleID          `json:"rule"`
	Amount decimal.Decimal `json:"amount"`
	Trace  []TraceStep     `json:"trace"`
}

// RecommendationKind classifies the lump-sum advice.
type RecommendationKind string

const (
	RecommendNone     RecommendationKind = "none"
	RecommendHigh     RecommendationKind = "high_rate"
	RecommendModerate RecommendationKind = "moderate_rate"
	RecommendLower    RecommendationKind = "lower_rate"
	RecommendCompare  RecommendationKind = "compare"
)

// LumpSumImpact shows what the lump-sum withdrawal costs in tax.
type LumpSumImpact struct {
	TaxIncrease        decimal.Decimal    `json:"tax_increase"`
	BenefitImpact      string             `json:"benefit_impact"`
	RecommendationKind RecommendationKind `json:"recommendation_kind"`
	Recommendation     string             `json:"recommendation"`
}

// Breakdown is the waterfall from gross to net income.
type Breakdown struct {
	Gross        decimal.Decimal `json:"gross"`
	LumpSumAdded decimal.Decimal `json:"lump_sum_addition"`
	MinusPension decimal.Decimal `json:"minus_pension"`
	MinusTax     decimal.Decimal `json:"minus_tax"`
	MinusAOW     decimal.Decimal `json:"minus_aow"`
	MinusWW      decimal.Decimal `json:"minus_ww"`
	PlusBenefits decimal.Decimal `json:"plus_benefits"`
	EqualsNet    decimal.Decimal `json:"equals_net"`
}

// CalculationStep is one labelled line of the calculation walkthrough.
type CalculationStep struct {
	Step           int             `json:"step"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	RuleID         RuleID          `json:"rule_id,omitempty"`
	RuleName       string          `json:"rule_name,omitempty"`
	LegalReference string          `json:"legal_reference,omitempty"`
}

// EvaluationResult is the full output of one net-income evaluation. A result
// is created per call and not modified afterwards.
type EvaluationResult struct {
	GrossIncome             decimal.Decimal   `json:"gross_income"`
	LumpSumPct              decimal.Decimal   `json:"lump_sum_pct"`
	LumpSumAmount           decimal.Decimal   `json:"lump_sum_amount"`
	PensionContributionPct  decimal.Decimal   `json:"pension_contribution_pct"`
	PensionAmount           decimal.Decimal   `json:"pension_amount"`
	TaxableIncomeBeforeLump decimal.Decimal   `json:"taxable_income_before_lump_sum"`
	TaxableIncome           decimal.Decimal   `json:"taxable_income_with_lump_sum"`
	IncomeTax               decimal.Decimal   `json:"income_tax"`
	TaxBrackets             []BracketDetail   `json:"tax_brackets"`
	AOWPremium              decimal.Decimal   `json:"aow_premium"`
	WWPremium               decimal.Decimal   `json:"ww_premium"`
	TotalDeductions         decimal.Decimal   `json:"total_deductions"`
	HousingAllowance        BenefitResult     `json:"housing_allowance"`
	HealthcareSubsidy       BenefitResult     `json:"healthcare_subsidy"`
	ChildBudget             BenefitResult     `json:"child_budget"`
	TotalBenefits           decimal.Decimal   `json:"total_benefits"`
	NetIncome               decimal.Decimal   `json:"net_income"`
	EffectiveTaxRate        decimal.Decimal   `json:"effective_tax_rate"`
	LumpSumImpact           LumpSumImpact     `json:"lump_sum_impact"`
	Breakdown               Breakdown         `json:"breakdown"`
	Steps                   []CalculationStep `json:"calculation_steps"`
}

// Benefits returns the three benefit results in evaluation order.
func (r *EvaluationResult) Benefits() []BenefitResult {
	return []BenefitResult{r.HousingAllowance, r.HealthcareSubsidy, r.ChildBudget}
}

// TaxBurden is income tax plus both premiums.
func (r *EvaluationResult) TaxBurden() decimal.Decimal {
	return r.IncomeTax.Add(r.AOWPremium).Add(r.WWPremium)
}
