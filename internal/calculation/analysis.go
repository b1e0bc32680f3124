package calculation

import (
	"errors"

	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/shopspring/decimal"
)

// TaxAnalysis is a detailed look at the income tax on one income.
type TaxAnalysis struct {
	Income           decimal.Decimal        `json:"income"`
	Brackets         []domain.BracketDetail `json:"tax_brackets"`
	TotalTax         decimal.Decimal        `json:"total_tax"`
	EffectiveRate    decimal.Decimal        `json:"effective_tax_rate"`
	MarginalRate     decimal.Decimal        `json:"marginal_tax_rate"`
	GeneralAllowance decimal.Decimal        `json:"general_allowance"`
	LabourAllowance  decimal.Decimal        `json:"labour_allowance"`
	TotalAllowances  decimal.Decimal        `json:"total_allowances"`
}

// AnalyzeTax reports total, effective and marginal tax for an income.
// Rates are percentages; the marginal rate is that of the last bracket reached.
func (e *Engine) AnalyzeTax(income decimal.Decimal) *TaxAnalysis {
	tax, brackets := e.TaxCalc.Calculate(income)
	a := &TaxAnalysis{
		Income:           income,
		Brackets:         brackets,
		TotalTax:         tax,
		EffectiveRate:    decimal.Zero,
		MarginalRate:     e.TaxCalc.MarginalRate(income).Shift(2),
		GeneralAllowance: e.TaxCalc.GeneralAllowance,
		LabourAllowance:  e.TaxCalc.LabourAllowance,
		TotalAllowances:  e.TaxCalc.TotalAllowances(),
	}
	if income.IsPositive() {
		a.EffectiveRate = money.PercentOf(tax, income)
	}
	return a
}

// BenefitLine is one benefit in a benefits analysis.
type BenefitLine struct {
	RuleID         domain.RuleID      `json:"rule_id"`
	Name           string             `json:"name"`
	Amount         decimal.Decimal    `json:"amount"`
	Annual         decimal.Decimal    `json:"annual"`
	Trace          []domain.TraceStep `json:"trace"`
	LegalReference string             `json:"legal_reference"`
	URL            string             `json:"url"`
}

// BenefitsAnalysis lists every benefit for one household and income.
type BenefitsAnalysis struct {
	Income       decimal.Decimal `json:"income"`
	Benefits     []BenefitLine   `json:"benefits"`
	TotalMonthly decimal.Decimal `json:"total_monthly_benefits"`
	TotalAnnual  decimal.Decimal `json:"total_annual_benefits"`
}

// AnalyzeBenefits evaluates each benefit on income directly, without the
// pension and premium pipeline in front of it.
func (e *Engine) AnalyzeBenefits(income decimal.Decimal, household domain.Household, housingMonthly decimal.Decimal) *BenefitsAnalysis {
	a := &BenefitsAnalysis{
		Income:       income,
		Benefits:     make([]BenefitLine, 0, len(domain.BenefitKinds)),
		TotalMonthly: decimal.Zero,
		TotalAnnual:  decimal.Zero,
	}
	for _, kind := range domain.BenefitKinds {
		amount, trace := e.BenefitCalc.Calculate(kind, income, household, housingMonthly)
		line := BenefitLine{
			RuleID: kind.RuleID(),
			Name:   string(kind.RuleID()),
			Amount: amount,
			Annual: amount.Mul(monthsPerYear),
			Trace:  trace,
		}
		if e.Catalog != nil {
			if def, err := e.Catalog.Get(kind.RuleID()); err == nil {
				line.Name = def.Name
				line.LegalReference = def.LegalReference
				line.URL = def.URL
			}
		}
		a.Benefits = append(a.Benefits, line)
		a.TotalMonthly = a.TotalMonthly.Add(line.Amount)
		a.TotalAnnual = a.TotalAnnual.Add(line.Annual)
	}
	return a
}

// ThresholdStatus says on which side of a threshold an income lies.
type ThresholdStatus string

const (
	StatusBelow ThresholdStatus = "BELOW"
	StatusAbove ThresholdStatus = "ABOVE"
)

// ThresholdProximity describes how far an income is from one cliff.
type ThresholdProximity struct {
	Name                  string          `json:"name"`
	RuleID                domain.RuleID   `json:"rule_id"`
	Threshold             decimal.Decimal `json:"threshold"`
	Distance              decimal.Decimal `json:"distance"`
	PercentageToThreshold decimal.Decimal `json:"percentage_to_threshold"`
	Status                ThresholdStatus `json:"status"`
	Approaching           bool            `json:"approaching"`
}

// ThresholdAnalysis lists the distance to every benefit cliff.
type ThresholdAnalysis struct {
	Income     decimal.Decimal      `json:"current_income"`
	Thresholds []ThresholdProximity `json:"thresholds"`
}

// approachWindow is the fraction of a threshold below it that counts as
// approaching the cliff.
var approachWindow = decimal.NewFromFloat(0.1)

// AnalyzeThresholds reports, for every cliff, the distance from income. An
// income is approaching a cliff when it sits below it by less than 10% of the
// threshold.
func (e *Engine) AnalyzeThresholds(income decimal.Decimal) *ThresholdAnalysis {
	type cliff struct {
		name  string
		rule  domain.RuleID
		value decimal.Decimal
	}
	cliffs := []cliff{
		{"housing_allowance_single", domain.RuleHousingAllowance, e.Rules.HousingAllow.ThresholdSingle},
		{"housing_allowance_couple", domain.RuleHousingAllowance, e.Rules.HousingAllow.ThresholdCouple},
		{"healthcare_subsidy_single", domain.RuleHealthcareSubsidy, e.Rules.HealthcareAllow.ThresholdSingle},
		{"healthcare_subsidy_couple", domain.RuleHealthcareSubsidy, e.Rules.HealthcareAllow.ThresholdCouple},
		{"child_benefits", domain.RuleChildBudget, e.Rules.ChildBudget.IncomeCeiling},
	}

	a := &ThresholdAnalysis{Income: income, Thresholds: make([]ThresholdProximity, 0, len(cliffs))}
	for _, c := range cliffs {
		distance := c.value.Sub(income)
		status := StatusAbove
		if income.LessThan(c.value) {
			status = StatusBelow
		}
		a.Thresholds = append(a.Thresholds, ThresholdProximity{
			Name:                  c.name,
			RuleID:                c.rule,
			Threshold:             c.value,
			Distance:              distance,
			PercentageToThreshold: money.PercentOf(distance, c.value),
			Status:                status,
			Approaching:           distance.IsPositive() && distance.LessThan(c.value.Mul(approachWindow)),
		})
	}
	return a
}

// RuleImpact is the isolated amount of one rule.
type RuleImpact struct {
	Rule   domain.RuleDefinition `json:"rule"`
	Impact decimal.Decimal       `json:"impact"`
	Type   string                `json:"type"`
}

// ImpactAnalysis shows how income flows through every rule.
type ImpactAnalysis struct {
	GrossIncome         decimal.Decimal `json:"gross_income"`
	PensionContribution decimal.Decimal `json:"pension_contribution"`
	TaxableIncome       decimal.Decimal `json:"taxable_income"`
	Impacts             []RuleImpact    `json:"impacts_by_rule"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	TotalBenefits       decimal.Decimal `json:"total_benefits"`
	AfterDeductions     decimal.Decimal `json:"after_deductions"`
}

// AnalyzeImpact computes taxable income once and evaluates every catalog rule
// against it in dependency order. Deductions are tax and premiums; benefits
// are reported separately and do not enter AfterDeductions.
func (e *Engine) AnalyzeImpact(gross, pensionPct decimal.Decimal, household domain.Household, housingMonthly decimal.Decimal) (*ImpactAnalysis, error) {
	if e.Catalog == nil {
		return nil, errors.New("impact analysis needs a rule catalog")
	}
	pension := e.PremiumCalc.PensionContribution(gross, pensionPct)
	taxable := gross.Sub(pension)

	a := &ImpactAnalysis{
		GrossIncome:         gross,
		PensionContribution: pension,
		TaxableIncome:       taxable,
		TotalDeductions:     decimal.Zero,
		TotalBenefits:       decimal.Zero,
	}

	reg := e.Registry()
	in := RuleInput{Income: taxable, Household: household, HousingCostsMonthly: housingMonthly}
	for _, id := range e.Catalog.EvaluationOrder() {
		def, err := e.Catalog.Get(id)
		if err != nil {
			return nil, err
		}
		rule, err := reg.Get(id)
		if err != nil {
			return nil, err
		}
		outcome := rule.Evaluate(in)
		impactType := "deduction"
		if rule.Kind() == KindBenefit {
			impactType = "benefit"
			a.TotalBenefits = a.TotalBenefits.Add(outcome.Amount)
		} else {
			a.TotalDeductions = a.TotalDeductions.Add(outcome.Amount)
		}
		a.Impacts = append(a.Impacts, RuleImpact{Rule: def, Impact: outcome.Amount, Type: impactType})
	}
	a.AfterDeductions = taxable.Sub(a.TotalDeductions)
	return a, nil
}
