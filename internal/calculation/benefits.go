package calculation

import (
	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// BenefitCalculator evaluates the means-tested benefits. Every benefit has a
// hard income cliff: above the threshold it pays exactly zero.
type BenefitCalculator struct {
	Housing     domain.HousingAllowRules
	Healthcare  domain.HealthcareRules
	ChildBudget domain.ChildBudgetRules
}

// NewBenefitCalculator creates a benefit calculator from a rule table
func NewBenefitCalculator(rules *domain.FiscalYearRules) *BenefitCalculator {
	return &BenefitCalculator{
		Housing:     rules.HousingAllow,
		Healthcare:  rules.HealthcareAllow,
		ChildBudget: rules.ChildBudget,
	}
}

// Calculate dispatches to the evaluator for kind.
func (bc *BenefitCalculator) Calculate(kind domain.BenefitKind, income decimal.Decimal, household domain.Household, housingMonthly decimal.Decimal) (decimal.Decimal, []domain.TraceStep) {
	switch kind {
	case domain.BenefitHousing:
		return bc.HousingAllowance(income, household, housingMonthly)
	case domain.BenefitHealthcare:
		return bc.HealthcareSubsidy(income, household)
	case domain.BenefitChildBudget:
		return bc.ChildBudgetAmount(income, household)
	default:
		return decimal.Zero, []domain.TraceStep{}
	}
}

// HousingThreshold returns the income ceiling for the household.
func (bc *BenefitCalculator) HousingThreshold(household domain.Household) decimal.Decimal {
	if household.IsSingle() {
		return bc.Housing.ThresholdSingle
	}
	return bc.Housing.ThresholdCouple
}

// HousingAllowance computes the housing allowance.
//
// allowance = eligible_annual × (threshold − income) / threshold × fraction,
// multiplied out before the single division so only the final amount is
// rounded.
func (bc *BenefitCalculator) HousingAllowance(income decimal.Decimal, household domain.Household, housingMonthly decimal.Decimal) (decimal.Decimal, []domain.TraceStep) {
	threshold := bc.HousingThreshold(household)
	if income.GreaterThan(threshold) {
		return decimal.Zero, rejected(income, threshold)
	}

	maxMonthly := bc.Housing.MaxMonthlyCostCouple
	if household.IsSingle() {
		maxMonthly = bc.Housing.MaxMonthlyCostSingle
	}
	eligible := decimal.Min(housingMonthly, maxMonthly).Mul(monthsPerYear)

	headroom := threshold.Sub(income)
	allowance := decimal.Zero
	incomeFactor := decimal.Zero
	if threshold.IsPositive() {
		allowance = money.SettleDiv(eligible.Mul(headroom).Mul(bc.Housing.SubsidyFraction), threshold)
		incomeFactor = headroom.Div(threshold)
	}

	return allowance, []domain.TraceStep{{
		Type: domain.StepEligible,
		Values: []domain.TraceValue{
			{Name: "household_members", Value: decimal.NewFromInt(int64(household.Members))},
			{Name: "income_threshold", Value: threshold},
			{Name: "eligible_housing_costs", Value: eligible},
			{Name: "income_factor", Value: incomeFactor},
			{Name: "subsidy_fraction", Value: bc.Housing.SubsidyFraction},
			{Name: "calculated_allowance", Value: allowance},
		},
	}}
}

// HealthcareThreshold returns the income ceiling for the household.
func (bc *BenefitCalculator) HealthcareThreshold(household domain.Household) decimal.Decimal {
	if household.IsPartner {
		return bc.Healthcare.ThresholdPartner
	}
	return bc.Healthcare.ThresholdSingle
}

// HealthcareSubsidy computes the healthcare subsidy:
// max(0, base − settle(rate × max(0, income − floor))).
func (bc *BenefitCalculator) HealthcareSubsidy(income decimal.Decimal, household domain.Household) (decimal.Decimal, []domain.TraceStep) {
	threshold := bc.HealthcareThreshold(household)
	if income.GreaterThan(threshold) {
		return decimal.Zero, rejected(income, threshold)
	}

	base := bc.Healthcare.BaseSubsidySingle
	if household.IsPartner {
		base = bc.Healthcare.BaseSubsidyPartner
	}
	excess := money.NonNegative(income.Sub(bc.Healthcare.IncomeFloor))
	reduction := money.Settle(excess.Mul(bc.Healthcare.ReductionRate))
	subsidy := money.NonNegative(base.Sub(reduction))

	return subsidy, []domain.TraceStep{{
		Type: domain.StepCalculated,
		Values: []domain.TraceValue{
			{Name: "threshold", Value: threshold},
			{Name: "base_subsidy", Value: base},
			{Name: "excess_income", Value: excess},
			{Name: "reduction", Value: reduction},
			{Name: "final_subsidy", Value: subsidy},
		},
	}}
}

// ChildBudgetAmount computes the monthly child budget.
func (bc *BenefitCalculator) ChildBudgetAmount(income decimal.Decimal, household domain.Household) (decimal.Decimal, []domain.TraceStep) {
	if household.Children <= 0 {
		return decimal.Zero, []domain.TraceStep{{
			Type:   domain.StepNotApplicable,
			Reason: domain.ReasonNoChildren,
			Values: []domain.TraceValue{},
		}}
	}

	ceiling := bc.ChildBudget.IncomeCeiling
	if income.GreaterThan(ceiling) {
		return decimal.Zero, rejected(income, ceiling)
	}

	children := decimal.NewFromInt(int64(household.Children))
	baseTotal := children.Mul(bc.ChildBudget.AnnualPerChild)
	supplement := decimal.Zero
	if income.LessThan(bc.ChildBudget.SupplementThreshold) {
		supplement = baseTotal.Mul(bc.ChildBudget.SupplementRate)
	}
	monthly := money.SettleDiv(baseTotal.Add(supplement), monthsPerYear)

	return monthly, []domain.TraceStep{{
		Type: domain.StepCalculated,
		Values: []domain.TraceValue{
			{Name: "children_count", Value: children},
			{Name: "budget_per_child", Value: bc.ChildBudget.AnnualPerChild},
			{Name: "base_total", Value: baseTotal},
			{Name: "supplement", Value: supplement},
			{Name: "monthly_benefit", Value: monthly},
		},
	}}
}

func rejected(income, threshold decimal.Decimal) []domain.TraceStep {
	return []domain.TraceStep{{
		Type:   domain.StepRejected,
		Reason: domain.ReasonIncomeExceedsThreshold,
		Values: []domain.TraceValue{
			{Name: "income", Value: income},
			{Name: "threshold", Value: threshold},
		},
	}}
}
