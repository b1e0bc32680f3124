package validation

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() domain.EvaluationInput {
	return domain.EvaluationInput{
		GrossIncome:            money.FromInt(50000),
		PensionContributionPct: money.FromInt(5),
		LumpSumPct:             money.FromInt(0),
		HousingCostsMonthly:    money.FromInt(400),
		ChildrenCount:          0,
		HouseholdMembers:       1,
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*domain.EvaluationInput)
		field   string
		message string
	}{
		{"valid", func(*domain.EvaluationInput) {}, "", ""},
		{"negative income", func(in *domain.EvaluationInput) { in.GrossIncome = money.FromInt(-1) }, "gross_income", "must not be negative"},
		{"pension above 100", func(in *domain.EvaluationInput) { in.PensionContributionPct = money.MustParse("100.5") }, "pension_contribution_pct", "must be less than or equal to 100"},
		{"pension exactly 100", func(in *domain.EvaluationInput) { in.PensionContributionPct = money.FromInt(100) }, "", ""},
		{"pension a hair above 100", func(in *domain.EvaluationInput) { in.PensionContributionPct = money.MustParse("100.00000000000000001") }, "pension_contribution_pct", "must be less than or equal to 100"},
		{"lump sum a hair below 0", func(in *domain.EvaluationInput) { in.LumpSumPct = money.MustParse("-0.00000000000000001") }, "lump_sum_pct", "must not be negative"},
		{"lump sum exactly 0", func(in *domain.EvaluationInput) { in.LumpSumPct = money.MustParse("0.000") }, "", ""},
		{"negative lump sum", func(in *domain.EvaluationInput) { in.LumpSumPct = money.MustParse("-0.01") }, "lump_sum_pct", "must not be negative"},
		{"negative housing", func(in *domain.EvaluationInput) { in.HousingCostsMonthly = money.FromInt(-400) }, "housing_costs_monthly", "must not be negative"},
		{"negative children", func(in *domain.EvaluationInput) { in.ChildrenCount = -1 }, "children_count", "must not be negative"},
		{"empty household", func(in *domain.EvaluationInput) { in.HouseholdMembers = 0 }, "household_members", "must be greater than or equal to 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.modify(&in)
			err := ValidateInput(in)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidationError(err))

			var invalid *domain.InvalidInputError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
			assert.Equal(t, tt.message, invalid.Reason)
		})
	}
}

func TestValidateInput_CollectsAllFailures(t *testing.T) {
	in := validInput()
	in.GrossIncome = money.FromInt(-5)
	in.HouseholdMembers = 0

	err := ValidateInput(in)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
	assert.Contains(t, err.Error(), "gross_income: must not be negative")
	assert.Contains(t, err.Error(), "household_members")
}

func TestValidateIncome(t *testing.T) {
	assert.NoError(t, ValidateIncome(money.FromInt(0)))
	assert.NoError(t, ValidateIncome(money.FromInt(50000)))

	err := ValidateIncome(money.MustParse("-0.01"))
	var invalid *domain.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "income", invalid.Field)
	assert.Equal(t, "must not be negative", invalid.Reason)
}

func TestValidateScenarios(t *testing.T) {
	good := domain.NamedInput{Name: "base", Input: validInput()}
	bad := domain.NamedInput{Name: "", Input: validInput()}
	bad.Input.LumpSumPct = money.FromInt(150)

	assert.NoError(t, ValidateScenarios([]domain.NamedInput{good, {Name: "raise", Input: validInput()}}))

	err := ValidateScenarios([]domain.NamedInput{good, bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios[1].name: is required")
	assert.Contains(t, err.Error(), "scenarios[1].input.lump_sum_pct")

	err = ValidateScenarios([]domain.NamedInput{good, good})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate scenario name")
}

func TestIsValidationError(t *testing.T) {
	assert.False(t, IsValidationError(errors.New("boom")))
	assert.True(t, IsValidationError(ValidationErrors{{Field: "x", Reason: "y"}}))
}
