package calculation

import (
	"strings"

	"github.com/rgehrsitz/rulescalc/internal/catalog"
	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/shopspring/decimal"
)

const benefitImpactNote = "May reduce housing allowance and healthcare allowance due to higher income"

// Engine orchestrates the net income calculation. It holds only read-only
// tables and may be shared between goroutines.
type Engine struct {
	Rules       *domain.FiscalYearRules
	TaxCalc     *IncomeTaxCalculator
	PremiumCalc *PremiumCalculator
	BenefitCalc *BenefitCalculator
	Catalog     *catalog.Catalog
	Logger      Logger
}

// NewEngine creates an engine with the built-in 2025 tables
func NewEngine() *Engine {
	return NewEngineWithRules(DefaultRules2025(), catalog.Default())
}

// NewEngineWithRules creates an engine for a specific rule table and catalog
func NewEngineWithRules(rules *domain.FiscalYearRules, cat *catalog.Catalog) *Engine {
	return &Engine{
		Rules:       rules,
		TaxCalc:     NewIncomeTaxCalculator(rules),
		PremiumCalc: NewPremiumCalculator(rules),
		BenefitCalc: NewBenefitCalculator(rules),
		Catalog:     cat,
		Logger:      NopLogger{},
	}
}

// SetLogger sets the engine logger; nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// EvaluateIncomeTax returns the income tax on a taxable income and the
// bracket detail.
func (e *Engine) EvaluateIncomeTax(taxable decimal.Decimal) (decimal.Decimal, []domain.BracketDetail) {
	return e.TaxCalc.Calculate(taxable)
}

// EvaluateBenefit evaluates one benefit. housingMonthly is only read by the
// housing allowance.
func (e *Engine) EvaluateBenefit(kind domain.BenefitKind, income decimal.Decimal, household domain.Household, housingMonthly decimal.Decimal) (decimal.Decimal, []domain.TraceStep) {
	return e.BenefitCalc.Calculate(kind, income, household, housingMonthly)
}

// LumpSumAmount returns annual_pension × pct / divisor, where the annual
// pension is the unrounded gross × contribution pct / 100.
func (e *Engine) LumpSumAmount(gross, pensionPct, lumpSumPct decimal.Decimal) decimal.Decimal {
	divisor := e.Rules.LumpSum.Divisor
	if divisor.IsZero() {
		return decimal.Zero
	}
	annualPension := money.Percent(gross, pensionPct)
	return annualPension.Mul(lumpSumPct).Div(divisor)
}

// EvaluateNetIncome runs the full pipeline for one input. Input is assumed
// validated; the result is built fresh on every call.
//
// Order matters: pension, lump sum, taxable income, tax, premiums, benefits,
// net income, effective rate, lump-sum impact.
func (e *Engine) EvaluateNetIncome(in domain.EvaluationInput) *domain.EvaluationResult {
	gross := in.GrossIncome

	pension := e.PremiumCalc.PensionContribution(gross, in.PensionContributionPct)
	lumpSum := e.LumpSumAmount(gross, in.PensionContributionPct, in.LumpSumPct)
	taxableBeforeLump := gross.Sub(pension)
	taxable := taxableBeforeLump.Add(lumpSum)
	e.Logger.Debugf("taxable income %s (pension %s, lump sum %s)", taxable, pension, lumpSum)

	tax, brackets := e.TaxCalc.Calculate(taxable)
	aow := e.PremiumCalc.AOW(taxable)
	ww := e.PremiumCalc.WW(taxable)
	e.Logger.Debugf("income tax %s over %d brackets, aow %s, ww %s", tax, len(brackets), aow, ww)

	household := in.Household()
	housing := e.benefit(domain.BenefitHousing, taxable, household, in.HousingCostsMonthly)
	healthcare := e.benefit(domain.BenefitHealthcare, taxable, household, in.HousingCostsMonthly)
	child := e.benefit(domain.BenefitChildBudget, taxable, household, in.HousingCostsMonthly)
	totalBenefits := housing.Amount.Add(healthcare.Amount).Add(child.Amount)

	net := gross.Sub(pension).Sub(tax).Sub(aow).Sub(ww).Add(totalBenefits)

	effective := decimal.Zero
	if taxable.IsPositive() {
		effective = money.PercentOf(tax, taxable)
	}

	taxWithoutLump, _ := e.TaxCalc.Calculate(taxableBeforeLump)
	kind, message := e.recommend(in.LumpSumPct, tax, taxable)

	result := &domain.EvaluationResult{
		GrossIncome:             gross,
		LumpSumPct:              in.LumpSumPct,
		LumpSumAmount:           lumpSum,
		PensionContributionPct:  in.PensionContributionPct,
		PensionAmount:           pension,
		TaxableIncomeBeforeLump: taxableBeforeLump,
		TaxableIncome:           taxable,
		IncomeTax:               tax,
		TaxBrackets:             brackets,
		AOWPremium:              aow,
		WWPremium:               ww,
		TotalDeductions:         pension.Add(tax).Add(aow).Add(ww),
		HousingAllowance:        housing,
		HealthcareSubsidy:       healthcare,
		ChildBudget:             child,
		TotalBenefits:           totalBenefits,
		NetIncome:               net,
		EffectiveTaxRate:        effective,
		LumpSumImpact: domain.LumpSumImpact{
			TaxIncrease:        tax.Sub(taxWithoutLump),
			BenefitImpact:      benefitImpactNote,
			RecommendationKind: kind,
			Recommendation:     message,
		},
		Breakdown: domain.Breakdown{
			Gross:        gross,
			LumpSumAdded: lumpSum,
			MinusPension: pension,
			MinusTax:     tax,
			MinusAOW:     aow,
			MinusWW:      ww,
			PlusBenefits: totalBenefits,
			EqualsNet:    net,
		},
	}
	result.Steps = e.steps(result)

	e.Logger.Debugf("net income %s (benefits %s, effective rate %s%%)", net, totalBenefits, effective.StringFixed(2))
	return result
}

func (e *Engine) benefit(kind domain.BenefitKind, income decimal.Decimal, household domain.Household, housingMonthly decimal.Decimal) domain.BenefitResult {
	amount, trace := e.BenefitCalc.Calculate(kind, income, household, housingMonthly)
	return domain.BenefitResult{Rule: kind.RuleID(), Amount: amount, Trace: trace}
}

// recommend classifies the lump-sum withdrawal by the effective tax rate.
func (e *Engine) recommend(lumpSumPct, tax, taxable decimal.Decimal) (domain.RecommendationKind, string) {
	if lumpSumPct.IsZero() {
		return domain.RecommendNone, "No lump sum withdrawal selected"
	}
	if tax.IsPositive() {
		rate := decimal.Zero
		if taxable.IsPositive() {
			rate = money.PercentOf(tax, taxable)
		}
		switch {
		case rate.GreaterThan(e.Rules.Recommendation.HighRate):
			return domain.RecommendHigh, "HIGH TAX IMPACT: Effective tax rate exceeds " + e.Rules.Recommendation.HighRate.String() + "%. Consider if the lump sum is necessary."
		case rate.GreaterThan(e.Rules.Recommendation.ModerateRate):
			return domain.RecommendModerate, "MODERATE TAX IMPACT: This will increase your taxes significantly. Evaluate if benefits outweigh costs."
		default:
			return domain.RecommendLower, "LOWER TAX IMPACT: Manageable tax burden for this withdrawal amount."
		}
	}
	return domain.RecommendCompare, "Consider comparing scenarios to see the full impact"
}

// steps builds the labelled walkthrough from gross to net income.
func (e *Engine) steps(r *domain.EvaluationResult) []domain.CalculationStep {
	return []domain.CalculationStep{
		{Step: 1, Description: "Gross income", Amount: r.GrossIncome},
		{Step: 2, Description: "Minus pension contribution (" + r.PensionContributionPct.String() + "%)", Amount: r.PensionAmount},
		e.labelled(domain.CalculationStep{Step: 3, Description: "Taxable income", Amount: r.TaxableIncome}, domain.RuleIncomeTax),
		e.labelled(domain.CalculationStep{Step: 4, Description: "Minus income tax", Amount: r.IncomeTax}, domain.RuleIncomeTax),
		e.labelled(domain.CalculationStep{Step: 5, Description: "Minus social security (AOW+WW)", Amount: r.AOWPremium.Add(r.WWPremium)},
			domain.RuleAOWPremium, domain.RuleWWPremium),
		e.labelled(domain.CalculationStep{Step: 6, Description: "Plus benefits (housing+healthcare+children)", Amount: r.TotalBenefits},
			domain.RuleHousingAllowance, domain.RuleHealthcareSubsidy, domain.RuleChildBudget),
		{Step: 7, Description: "Final net income", Amount: r.NetIncome},
	}
}

// labelled attaches catalog names and legal references. A step backed by a
// single rule also carries that rule's id.
func (e *Engine) labelled(step domain.CalculationStep, ids ...domain.RuleID) domain.CalculationStep {
	if e.Catalog == nil {
		return step
	}
	names := make([]string, 0, len(ids))
	refs := make([]string, 0, len(ids))
	for _, id := range ids {
		def, err := e.Catalog.Get(id)
		if err != nil {
			e.Logger.Warnf("step %d: %v", step.Step, err)
			continue
		}
		names = append(names, def.Name)
		refs = append(refs, def.LegalReference)
	}
	if len(ids) == 1 {
		step.RuleID = ids[0]
	}
	step.RuleName = strings.Join(names, " + ")
	step.LegalReference = strings.Join(refs, "; ")
	return step
}
