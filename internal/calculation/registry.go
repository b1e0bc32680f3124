package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/rulescalc/internal/catalog"
	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/shopspring/decimal"
)

// RuleKind tags the variant behind a Rule.
type RuleKind int

const (
	KindTax RuleKind = iota
	KindPremium
	KindBenefit
)

func (k RuleKind) String() string {
	switch k {
	case KindTax:
		return "tax"
	case KindPremium:
		return "premium"
	case KindBenefit:
		return "benefit"
	default:
		return "unknown"
	}
}

// RuleInput is what a single rule is evaluated against.
type RuleInput struct {
	Income              decimal.Decimal
	Household           domain.Household
	HousingCostsMonthly decimal.Decimal
}

// RuleOutcome is the isolated result of one rule.
type RuleOutcome struct {
	RuleID   domain.RuleID          `json:"rule_id"`
	Kind     string                 `json:"kind"`
	Amount   decimal.Decimal        `json:"amount"`
	Trace    []domain.TraceStep     `json:"trace"`
	Brackets []domain.BracketDetail `json:"brackets,omitempty"`
}

// Rule is one evaluable rule. The set of implementations is closed:
// TaxRule, PremiumRule and BenefitRule.
type Rule interface {
	ID() domain.RuleID
	Kind() RuleKind
	Evaluate(in RuleInput) RuleOutcome
}

// TaxRule evaluates the progressive income tax.
type TaxRule struct {
	calc *IncomeTaxCalculator
}

func (r TaxRule) ID() domain.RuleID { return domain.RuleIncomeTax }
func (r TaxRule) Kind() RuleKind    { return KindTax }

func (r TaxRule) Evaluate(in RuleInput) RuleOutcome {
	tax, brackets := r.calc.Calculate(in.Income)
	return RuleOutcome{
		RuleID: r.ID(),
		Kind:   r.Kind().String(),
		Amount: tax,
		Trace: []domain.TraceStep{{
			Type: domain.StepCalculated,
			Values: []domain.TraceValue{
				{Name: "income", Value: in.Income},
				{Name: "allowances", Value: r.calc.TotalAllowances()},
				{Name: "taxable_base", Value: r.calc.TaxableBase(in.Income)},
				{Name: "tax", Value: tax},
			},
		}},
		Brackets: brackets,
	}
}

// PremiumRule evaluates a flat-rate premium.
type PremiumRule struct {
	id   domain.RuleID
	rate decimal.Decimal
	calc func(decimal.Decimal) decimal.Decimal
}

func (r PremiumRule) ID() domain.RuleID { return r.id }
func (r PremiumRule) Kind() RuleKind    { return KindPremium }

// Rate returns the premium rate.
func (r PremiumRule) Rate() decimal.Decimal { return r.rate }

func (r PremiumRule) Evaluate(in RuleInput) RuleOutcome {
	premium := r.calc(in.Income)
	return RuleOutcome{
		RuleID: r.id,
		Kind:   r.Kind().String(),
		Amount: premium,
		Trace: []domain.TraceStep{{
			Type: domain.StepCalculated,
			Values: []domain.TraceValue{
				{Name: "base", Value: in.Income},
				{Name: "rate", Value: r.rate},
				{Name: "premium", Value: premium},
			},
		}},
	}
}

// BenefitRule evaluates one means-tested benefit.
type BenefitRule struct {
	kind domain.BenefitKind
	calc *BenefitCalculator
}

func (r BenefitRule) ID() domain.RuleID { return r.kind.RuleID() }
func (r BenefitRule) Kind() RuleKind    { return KindBenefit }

func (r BenefitRule) Evaluate(in RuleInput) RuleOutcome {
	amount, trace := r.calc.Calculate(r.kind, in.Income, in.Household, in.HousingCostsMonthly)
	return RuleOutcome{
		RuleID: r.ID(),
		Kind:   r.Kind().String(),
		Amount: amount,
		Trace:  trace,
	}
}

// Registry maps rule ids to their evaluators. Built once, read-only after.
type Registry struct {
	rules   map[domain.RuleID]Rule
	catalog *catalog.Catalog
}

// NewRegistry builds the registry for a rule table. The catalog supplies the
// metadata returned by Explain and may be nil.
func NewRegistry(rules *domain.FiscalYearRules, cat *catalog.Catalog) *Registry {
	tax := NewIncomeTaxCalculator(rules)
	premiums := NewPremiumCalculator(rules)
	benefits := NewBenefitCalculator(rules)

	all := []Rule{
		TaxRule{calc: tax},
		PremiumRule{id: domain.RuleAOWPremium, rate: premiums.AOWRate, calc: premiums.AOW},
		PremiumRule{id: domain.RuleWWPremium, rate: premiums.WWRate, calc: premiums.WW},
		BenefitRule{kind: domain.BenefitHousing, calc: benefits},
		BenefitRule{kind: domain.BenefitHealthcare, calc: benefits},
		BenefitRule{kind: domain.BenefitChildBudget, calc: benefits},
	}
	reg := &Registry{rules: make(map[domain.RuleID]Rule, len(all)), catalog: cat}
	for _, r := range all {
		reg.rules[r.ID()] = r
	}
	return reg
}

// Registry returns a registry over the engine's tables and catalog.
func (e *Engine) Registry() *Registry {
	return NewRegistry(e.Rules, e.Catalog)
}

// Get returns the rule for id or a *domain.NotFoundError.
func (reg *Registry) Get(id domain.RuleID) (Rule, error) {
	r, ok := reg.rules[id]
	if !ok {
		return nil, &domain.NotFoundError{RuleID: id}
	}
	return r, nil
}

// Evaluate runs a single rule in isolation.
func (reg *Registry) Evaluate(id domain.RuleID, in RuleInput) (RuleOutcome, error) {
	r, err := reg.Get(id)
	if err != nil {
		return RuleOutcome{}, err
	}
	return r.Evaluate(in), nil
}

// ExplainStep is one human-readable line of a rule explanation.
type ExplainStep struct {
	Description string          `json:"step"`
	Amount      decimal.Decimal `json:"amount"`
}

// Explanation shows how one rule arrives at its amount for an income.
type Explanation struct {
	Rule    *domain.RuleDefinition `json:"rule,omitempty"`
	Income  decimal.Decimal        `json:"income"`
	Steps   []ExplainStep          `json:"steps"`
	Outcome RuleOutcome            `json:"outcome"`
}

// Explain evaluates id for a single household and describes each step.
func (reg *Registry) Explain(id domain.RuleID, in RuleInput) (*Explanation, error) {
	r, err := reg.Get(id)
	if err != nil {
		return nil, err
	}
	outcome := r.Evaluate(in)
	ex := &Explanation{Income: in.Income, Outcome: outcome}
	if reg.catalog != nil {
		if def, err := reg.catalog.Get(id); err == nil {
			ex.Rule = &def
		}
	}

	switch rule := r.(type) {
	case TaxRule:
		ex.Steps = []ExplainStep{
			{Description: "Apply tax allowances", Amount: rule.calc.TotalAllowances()},
			{Description: "Calculate taxable income", Amount: rule.calc.TaxableBase(in.Income)},
			{Description: "Apply tax brackets", Amount: outcome.Amount},
		}
	case PremiumRule:
		ex.Steps = []ExplainStep{
			{Description: fmt.Sprintf("Apply %s rate (%s × %s)", premiumLabel(rule.id), in.Income.StringFixed(2), rule.rate), Amount: outcome.Amount},
		}
	default:
		ex.Steps = []ExplainStep{
			{Description: "Evaluate eligibility and amount", Amount: outcome.Amount},
		}
	}
	return ex, nil
}

func premiumLabel(id domain.RuleID) string {
	return strings.ToUpper(strings.TrimSuffix(string(id), "_premium"))
}
