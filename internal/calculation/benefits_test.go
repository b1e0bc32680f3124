package calculation

import (
	"testing"

	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	single  = domain.Household{Members: 1}
	couple  = domain.Household{Members: 2}
	partner = domain.Household{Members: 2, IsPartner: true}
)

func TestHousingAllowance(t *testing.T) {
	bc := NewBenefitCalculator(DefaultRules2025())

	tests := []struct {
		name      string
		income    string
		household domain.Household
		monthly   string
		expected  string
		stepType  domain.StepType
	}{
		{"single below threshold", "20000", single, "400", "624", domain.StepEligible},
		{"single costs capped", "20000", single, "800", "780", domain.StepEligible},
		{"couple costs capped", "30000", couple, "700", "668.57", domain.StepEligible},
		{"exactly at threshold", "25000", single, "400", "0", domain.StepEligible},
		{"just above threshold", "25000.01", single, "400", "0", domain.StepRejected},
		{"couple above single threshold", "30000", couple, "400", "445.71", domain.StepEligible},
		{"no housing costs", "10000", single, "0", "0", domain.StepEligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, trace := bc.HousingAllowance(money.MustParse(tt.income), tt.household, money.MustParse(tt.monthly))
			assert.True(t, amount.Equal(money.MustParse(tt.expected)), "allowance = %s", amount)
			require.Len(t, trace, 1)
			assert.Equal(t, tt.stepType, trace[0].Type)
		})
	}
}

func TestHousingAllowance_CliffTrace(t *testing.T) {
	bc := NewBenefitCalculator(DefaultRules2025())

	for income := int64(25001); income <= 60000; income += 777 {
		amount, trace := bc.HousingAllowance(money.FromInt(income), single, money.FromInt(400))
		assert.True(t, amount.IsZero(), "income %d", income)
		require.Len(t, trace, 1)
		assert.Equal(t, domain.StepRejected, trace[0].Type)
		assert.Equal(t, domain.ReasonIncomeExceedsThreshold, trace[0].Reason)

		threshold, ok := trace[0].Value("threshold")
		require.True(t, ok)
		assert.True(t, threshold.Equal(money.FromInt(25000)))
		got, ok := trace[0].Value("income")
		require.True(t, ok)
		assert.True(t, got.Equal(money.FromInt(income)))
	}
}

func TestHousingAllowance_TraceValues(t *testing.T) {
	bc := NewBenefitCalculator(DefaultRules2025())
	_, trace := bc.HousingAllowance(money.FromInt(20000), single, money.FromInt(400))

	require.Len(t, trace, 1)
	eligible, _ := trace[0].Value("eligible_housing_costs")
	factor, _ := trace[0].Value("income_factor")
	threshold, _ := trace[0].Value("income_threshold")
	assert.True(t, eligible.Equal(money.FromInt(4800)))
	assert.True(t, factor.Equal(money.MustParse("0.2")))
	assert.True(t, threshold.Equal(money.FromInt(25000)))
}

func TestHealthcareSubsidy(t *testing.T) {
	bc := NewBenefitCalculator(DefaultRules2025())

	tests := []struct {
		name      string
		income    string
		household domain.Household
		expected  string
		stepType  domain.StepType
	}{
		{"single at floor", "15000", single, "2200", domain.StepCalculated},
		{"single below floor", "9000", single, "2200", domain.StepCalculated},
		{"single reduced", "20000", single, "1400", domain.StepCalculated},
		{"single near threshold", "23200", single, "888", domain.StepCalculated},
		{"single above threshold", "23200.01", single, "0", domain.StepRejected},
		{"partner reduced", "20000", partner, "300", domain.StepCalculated},
		{"partner reduction exceeds base", "30000", partner, "0", domain.StepCalculated},
		{"partner above threshold", "31400.5", partner, "0", domain.StepRejected},
		{"couple without partner flag uses single tier", "24000", couple, "0", domain.StepRejected},
		{"reduction settled", "15000.04", single, "2199.99", domain.StepCalculated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, trace := bc.HealthcareSubsidy(money.MustParse(tt.income), tt.household)
			assert.True(t, amount.Equal(money.MustParse(tt.expected)), "subsidy = %s", amount)
			require.Len(t, trace, 1)
			assert.Equal(t, tt.stepType, trace[0].Type)
		})
	}
}

func TestChildBudget(t *testing.T) {
	bc := NewBenefitCalculator(DefaultRules2025())

	tests := []struct {
		name     string
		income   string
		children int
		expected string
		stepType domain.StepType
		reason   string
	}{
		{"no children", "20000", 0, "0", domain.StepNotApplicable, domain.ReasonNoChildren},
		{"supplement below 50000", "40000", 2, "44", domain.StepCalculated, ""},
		{"no supplement at 50000", "50000", 2, "36.67", domain.StepCalculated, ""},
		{"three children", "60000", 3, "55", domain.StepCalculated, ""},
		{"at ceiling", "115000", 1, "18.33", domain.StepCalculated, ""},
		{"above ceiling", "115000.01", 1, "0", domain.StepRejected, domain.ReasonIncomeExceedsThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := domain.Household{Members: 1, Children: tt.children}
			amount, trace := bc.ChildBudgetAmount(money.MustParse(tt.income), h)
			assert.True(t, amount.Equal(money.MustParse(tt.expected)), "budget = %s", amount)
			require.Len(t, trace, 1)
			assert.Equal(t, tt.stepType, trace[0].Type)
			assert.Equal(t, tt.reason, trace[0].Reason)
		})
	}
}

func TestBenefitCalculator_Dispatch(t *testing.T) {
	bc := NewBenefitCalculator(DefaultRules2025())
	h := domain.Household{Members: 1, Children: 1}

	housing, _ := bc.Calculate(domain.BenefitHousing, money.FromInt(20000), h, money.FromInt(400))
	healthcare, _ := bc.Calculate(domain.BenefitHealthcare, money.FromInt(20000), h, money.FromInt(400))
	child, _ := bc.Calculate(domain.BenefitChildBudget, money.FromInt(20000), h, money.FromInt(400))

	assert.True(t, housing.Equal(money.FromInt(624)))
	assert.True(t, healthcare.Equal(money.FromInt(1400)))
	assert.True(t, child.Equal(money.FromInt(22)))
}
