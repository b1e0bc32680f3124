package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/rulescalc/internal/calculation"
	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// LoadRules reads a fiscal-year rule table. Keys missing from the file keep
// their built-in 2025 value; a bracket list in the file replaces the whole
// table. An empty path returns the built-in table.
func LoadRules(path string) (*domain.FiscalYearRules, error) {
	if path == "" {
		return calculation.DefaultRules2025(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}
	return ParseRules(data)
}

// ParseRules decodes rule-table YAML over the built-in defaults and validates
// the result.
func ParseRules(data []byte) (*domain.FiscalYearRules, error) {
	rules := calculation.DefaultRules2025()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ValidateRules(rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return rules, nil
}

// ValidateRules checks that the brackets partition [0, ∞) and that every rate
// and threshold is in range.
func ValidateRules(rules *domain.FiscalYearRules) error {
	if rules.Year <= 0 {
		return invalid("year", "must be positive")
	}
	if err := validateBrackets(rules.IncomeTax.Brackets); err != nil {
		return err
	}

	nonNegative := map[string]decimal.Decimal{
		"income_tax.general_allowance":              rules.IncomeTax.GeneralAllowance,
		"income_tax.labour_allowance":               rules.IncomeTax.LabourAllowance,
		"housing_allowance.max_monthly_cost_single": rules.HousingAllow.MaxMonthlyCostSingle,
		"housing_allowance.max_monthly_cost_couple": rules.HousingAllow.MaxMonthlyCostCouple,
		"healthcare_subsidy.base_subsidy_single":    rules.HealthcareAllow.BaseSubsidySingle,
		"healthcare_subsidy.base_subsidy_partner":   rules.HealthcareAllow.BaseSubsidyPartner,
		"healthcare_subsidy.income_floor":           rules.HealthcareAllow.IncomeFloor,
		"child_budget.annual_per_child":             rules.ChildBudget.AnnualPerChild,
		"child_budget.supplement_threshold":         rules.ChildBudget.SupplementThreshold,
		"recommendation.moderate_rate":              rules.Recommendation.ModerateRate,
	}
	for field, v := range nonNegative {
		if v.IsNegative() {
			return invalid(field, "must not be negative")
		}
	}

	positive := map[string]decimal.Decimal{
		"housing_allowance.threshold_single":   rules.HousingAllow.ThresholdSingle,
		"housing_allowance.threshold_couple":   rules.HousingAllow.ThresholdCouple,
		"healthcare_subsidy.threshold_single":  rules.HealthcareAllow.ThresholdSingle,
		"healthcare_subsidy.threshold_partner": rules.HealthcareAllow.ThresholdPartner,
		"healthcare_subsidy.threshold_couple":  rules.HealthcareAllow.ThresholdCouple,
		"child_budget.income_ceiling":          rules.ChildBudget.IncomeCeiling,
		"lump_sum.divisor":                     rules.LumpSum.Divisor,
	}
	for field, v := range positive {
		if !v.IsPositive() {
			return invalid(field, "must be positive")
		}
	}

	fractions := map[string]decimal.Decimal{
		"premiums.aow_rate":                  rules.Premiums.AOWRate,
		"premiums.ww_rate":                   rules.Premiums.WWRate,
		"housing_allowance.subsidy_fraction": rules.HousingAllow.SubsidyFraction,
		"healthcare_subsidy.reduction_rate":  rules.HealthcareAllow.ReductionRate,
		"child_budget.supplement_rate":       rules.ChildBudget.SupplementRate,
	}
	for field, v := range fractions {
		if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(1)) {
			return invalid(field, "must be between 0 and 1")
		}
	}

	if rules.Recommendation.HighRate.LessThan(rules.Recommendation.ModerateRate) {
		return invalid("recommendation.high_rate", "must not be below moderate_rate")
	}
	return nil
}

func validateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return invalid("income_tax.brackets", "at least one bracket is required")
	}
	if !brackets[0].Min.IsZero() {
		return invalid("income_tax.brackets[0].min", "first bracket must start at 0")
	}
	one := decimal.NewFromInt(1)
	for i, b := range brackets {
		field := fmt.Sprintf("income_tax.brackets[%d]", i)
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return invalid(field+".rate", "must be between 0 and 1")
		}
		last := i == len(brackets)-1
		if b.Max == nil {
			if !last {
				return invalid(field+".max", "only the last bracket may be unbounded")
			}
			continue
		}
		if last {
			return invalid(field+".max", "last bracket must be unbounded")
		}
		if !b.Max.GreaterThan(b.Min) {
			return invalid(field+".max", "must be greater than min")
		}
		if !brackets[i+1].Min.Equal(*b.Max) {
			return invalid(fmt.Sprintf("income_tax.brackets[%d].min", i+1), "must equal the previous bracket's max")
		}
	}
	return nil
}

func invalid(field, reason string) error {
	return &domain.InvalidInputError{Field: field, Reason: reason}
}
