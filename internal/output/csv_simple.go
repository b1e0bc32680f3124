package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/rulescalc/internal/domain"
)

// CSVSummarizer writes one field,value row per headline figure.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.EvaluationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Field", "Value"}); err != nil {
		return nil, err
	}
	rows := [][]string{
		{"gross_income", result.GrossIncome.StringFixed(2)},
		{"pension_amount", result.PensionAmount.StringFixed(2)},
		{"lump_sum_amount", result.LumpSumAmount.StringFixed(2)},
		{"taxable_income_before_lump_sum", result.TaxableIncomeBeforeLump.StringFixed(2)},
		{"taxable_income_with_lump_sum", result.TaxableIncome.StringFixed(2)},
		{"income_tax", result.IncomeTax.StringFixed(2)},
		{"aow_premium", result.AOWPremium.StringFixed(2)},
		{"ww_premium", result.WWPremium.StringFixed(2)},
		{"total_deductions", result.TotalDeductions.StringFixed(2)},
		{"housing_allowance", result.HousingAllowance.Amount.StringFixed(2)},
		{"healthcare_subsidy", result.HealthcareSubsidy.Amount.StringFixed(2)},
		{"child_budget", result.ChildBudget.Amount.StringFixed(2)},
		{"total_benefits", result.TotalBenefits.StringFixed(2)},
		{"net_income", result.NetIncome.StringFixed(2)},
		{"effective_tax_rate", result.EffectiveTaxRate.StringFixed(2)},
		{"tax_brackets_applied", strconv.Itoa(len(result.TaxBrackets))},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DetailedCSVFormatter writes the numbered calculation steps.
type DetailedCSVFormatter struct{}

func (d DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (d DetailedCSVFormatter) Format(result *domain.EvaluationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Step", "Description", "Amount", "RuleID", "RuleName", "LegalReference"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range result.Steps {
		row := []string{
			strconv.Itoa(s.Step),
			s.Description,
			s.Amount.StringFixed(2),
			string(s.RuleID),
			s.RuleName,
			s.LegalReference,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
