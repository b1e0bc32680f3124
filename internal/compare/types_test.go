package compare

import (
	"testing"

	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldDelta(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		modified  string
		delta     string
		pct       string
		direction Direction
	}{
		{"increase", "100", "150", "50", "50", Increase},
		{"decrease", "200", "150", "-50", "-25", Decrease},
		{"no change", "75.25", "75.25", "0", "0", NoChange},
		{"zero base", "0", "624", "624", "0", Increase},
		{"cent difference", "31555.16", "31555.17", "0.01", "0.0000316905", Increase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd := NewFieldDelta("net_income", money.MustParse(tt.base), money.MustParse(tt.modified))
			assert.True(t, fd.Delta.Equal(money.MustParse(tt.delta)), "delta = %s", fd.Delta)
			assert.Equal(t, tt.pct, fd.PercentageChange.Round(10).String())
			assert.Equal(t, tt.direction, fd.Direction)
		})
	}
}

func TestFieldValue(t *testing.T) {
	r := &domain.EvaluationResult{
		IncomeTax:     money.MustParse("5613.59"),
		AOWPremium:    money.MustParse("9286.25"),
		WWPremium:     money.MustParse("1045"),
		TotalBenefits: money.MustParse("12"),
	}

	burden, err := FieldValue(r, FieldTaxBurden)
	require.NoError(t, err)
	assert.True(t, burden.Equal(money.MustParse("15944.84")))

	total, err := FieldValue(r, FieldBenefitsTotal)
	require.NoError(t, err)
	assert.True(t, total.Equal(money.FromInt(12)))

	_, err = FieldValue(r, "happiness")
	var invalid *domain.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "fields", invalid.Field)
}

func TestAvailableFields(t *testing.T) {
	fields := AvailableFields()
	assert.Contains(t, fields, FieldNetIncome)
	assert.Contains(t, fields, FieldTaxBurden)
	assert.IsIncreasing(t, fields)
}

func TestFieldLabel(t *testing.T) {
	assert.Equal(t, "Net Income", fieldLabel("net_income"))
	assert.Equal(t, "AOW Premium", fieldLabel("aow_premium"))
}
