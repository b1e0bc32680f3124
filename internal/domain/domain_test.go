package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHousehold_IsSingle(t *testing.T) {
	tests := []struct {
		members int
		want    bool
	}{
		{0, true},
		{1, true},
		{2, false},
		{4, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d members", tt.members), func(t *testing.T) {
			assert.Equal(t, tt.want, Household{Members: tt.members}.IsSingle())
		})
	}
}

func TestEvaluationInput_Household(t *testing.T) {
	in := EvaluationInput{HouseholdMembers: 3, IsPartner: true, ChildrenCount: 1}
	assert.Equal(t, Household{Members: 3, IsPartner: true, Children: 1}, in.Household())
}

func TestTraceStep_Value(t *testing.T) {
	step := TraceStep{
		Type: StepCalculated,
		Values: []TraceValue{
			{Name: "base", Value: decimal.NewFromInt(2000)},
			{Name: "reduction", Value: decimal.NewFromInt(150)},
		},
	}

	v, ok := step.Value("reduction")
	assert.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromInt(150)))

	v, ok = step.Value("missing")
	assert.False(t, ok)
	assert.True(t, v.IsZero())
}

func TestBenefitKind(t *testing.T) {
	assert.Equal(t, RuleHousingAllowance, BenefitHousing.RuleID())
	assert.Equal(t, RuleHealthcareSubsidy, BenefitHealthcare.RuleID())
	assert.Equal(t, RuleChildBudget, BenefitChildBudget.RuleID())
	assert.Equal(t, "zorgtoeslag", BenefitHealthcare.String())
	assert.Empty(t, BenefitKind(42).RuleID())
	assert.Len(t, BenefitKinds, 3)
}

func TestTaxBracket_IsUnbounded(t *testing.T) {
	upper := decimal.NewFromInt(38441)
	assert.False(t, TaxBracket{Max: &upper}.IsUnbounded())
	assert.True(t, TaxBracket{}.IsUnbounded())
}

func TestIncomeTaxRules_TotalAllowances(t *testing.T) {
	r := IncomeTaxRules{GeneralAllowance: decimal.NewFromInt(3068), LabourAllowance: decimal.NewFromInt(5599)}
	assert.Equal(t, "8667", r.TotalAllowances().String())
}

func TestEvaluationResult_TaxBurden(t *testing.T) {
	r := &EvaluationResult{
		IncomeTax:  decimal.RequireFromString("5613.59"),
		AOWPremium: decimal.RequireFromString("9286.25"),
		WWPremium:  decimal.RequireFromString("1045.00"),
	}
	assert.Equal(t, "15944.84", r.TaxBurden().StringFixed(2))
	assert.Len(t, r.Benefits(), 3)
}

func TestErrors(t *testing.T) {
	notFound := fmt.Errorf("lookup: %w", &NotFoundError{RuleID: "bogus"})
	assert.True(t, errors.Is(notFound, ErrRuleNotFound))
	assert.Equal(t, `lookup: rule "bogus" not found`, notFound.Error())

	var nf *NotFoundError
	assert.True(t, errors.As(notFound, &nf))
	assert.Equal(t, RuleID("bogus"), nf.RuleID)

	invalid := &InvalidInputError{Field: "gross_income", Reason: "must not be negative"}
	assert.Equal(t, "invalid gross_income: must not be negative", invalid.Error())
	assert.False(t, errors.Is(invalid, ErrRuleNotFound))
}

func TestEvaluationResult_MarshalJSON(t *testing.T) {
	upper := decimal.NewFromInt(38441)
	r := &EvaluationResult{
		GrossIncome:            decimal.NewFromInt(50000),
		PensionContributionPct: decimal.NewFromInt(5),
		PensionAmount:          decimal.NewFromInt(2500),
		WWPremium:              decimal.RequireFromString("1045"),
		NetIncome:              decimal.RequireFromString("31555.16"),
		EffectiveTaxRate:       decimal.RequireFromString("11.8"),
		TaxBrackets: []BracketDetail{
			{Min: decimal.Zero, Max: &upper, Rate: decimal.RequireFromString("0.0932"), Tax: decimal.RequireFromString("3582.7")},
			{Min: upper, Rate: decimal.RequireFromString("0.3697")},
		},
		HousingAllowance: BenefitResult{Rule: RuleHousingAllowance, Amount: decimal.NewFromInt(100)},
		Breakdown:        Breakdown{Gross: decimal.NewFromInt(50000)},
		Steps:            []CalculationStep{{Step: 1, Description: "Gross income", Amount: decimal.NewFromInt(50000)}},
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded struct {
		GrossIncome string           `json:"gross_income"`
		PensionPct  string           `json:"pension_contribution_pct"`
		Pension     string           `json:"pension_amount"`
		WWPremium   string           `json:"ww_premium"`
		NetIncome   string           `json:"net_income"`
		Effective   string           `json:"effective_tax_rate"`
		TaxBrackets []map[string]any `json:"tax_brackets"`
		Housing     map[string]any   `json:"housing_allowance"`
		Breakdown   map[string]any   `json:"breakdown"`
		Steps       []map[string]any `json:"calculation_steps"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "50000.00", decoded.GrossIncome)
	assert.Equal(t, "2500.00", decoded.Pension)
	assert.Equal(t, "1045.00", decoded.WWPremium)
	assert.Equal(t, "31555.16", decoded.NetIncome)
	assert.Equal(t, "5", decoded.PensionPct)
	assert.Equal(t, "11.8", decoded.Effective)

	require.Len(t, decoded.TaxBrackets, 2)
	assert.Equal(t, "38441.00", decoded.TaxBrackets[0]["max"])
	assert.Equal(t, "3582.70", decoded.TaxBrackets[0]["tax"])
	assert.Equal(t, "0.0932", decoded.TaxBrackets[0]["rate"])
	assert.Nil(t, decoded.TaxBrackets[1]["max"])

	assert.Equal(t, "100.00", decoded.Housing["amount"])
	assert.Equal(t, string(RuleHousingAllowance), decoded.Housing["rule"])
	assert.Equal(t, "50000.00", decoded.Breakdown["gross"])
	assert.Equal(t, "0.00", decoded.Breakdown["equals_net"])
	assert.Equal(t, "50000.00", decoded.Steps[0]["amount"])
	assert.Equal(t, "Gross income", decoded.Steps[0]["description"])

	var back EvaluationResult
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.PensionAmount.Equal(r.PensionAmount))
}
