package calculation

import (
	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/shopspring/decimal"
)

// 2025 RULE TABLE ASSUMPTIONS:
//
// 1. Income tax: four brackets, general tax credit and labour credit are
//    treated as flat allowances subtracted from taxable income.
//
// 2. Premiums: AOW 19.55% and WW 2.2% of taxable income, no maximum
//    premium income applied.
//
// 3. Benefits: thresholds are hard cliffs. Amounts are simplified versions
//    of the statutory formulas.

// DefaultRules2025 returns the built-in 2025 rule table.
func DefaultRules2025() *domain.FiscalYearRules {
	return &domain.FiscalYearRules{
		Year: 2025,
		IncomeTax: domain.IncomeTaxRules{
			Brackets: []domain.TaxBracket{
				{Min: decimal.Zero, Max: boundPtr(36950), Rate: money.MustParse("0.1155")},
				{Min: money.FromInt(36950), Max: boundPtr(71900), Rate: money.MustParse("0.2385")},
				{Min: money.FromInt(71900), Max: boundPtr(96750), Rate: money.MustParse("0.405")},
				{Min: money.FromInt(96750), Max: nil, Rate: money.MustParse("0.495")},
			},
			GeneralAllowance: money.FromInt(3107),
			LabourAllowance:  money.FromInt(1800),
		},
		Premiums: domain.PremiumRates{
			AOWRate: money.MustParse("0.1955"),
			WWRate:  money.MustParse("0.022"),
		},
		HousingAllow: domain.HousingAllowRules{
			ThresholdSingle:      money.FromInt(25000),
			ThresholdCouple:      money.FromInt(35000),
			MaxMonthlyCostSingle: money.FromInt(500),
			MaxMonthlyCostCouple: money.FromInt(600),
			SubsidyFraction:      money.MustParse("0.65"),
		},
		HealthcareAllow: domain.HealthcareRules{
			ThresholdSingle:    money.FromInt(23200),
			ThresholdPartner:   money.FromInt(31400),
			ThresholdCouple:    money.FromInt(47300),
			BaseSubsidySingle:  money.FromInt(2200),
			BaseSubsidyPartner: money.FromInt(1100),
			IncomeFloor:        money.FromInt(15000),
			ReductionRate:      money.MustParse("0.16"),
		},
		ChildBudget: domain.ChildBudgetRules{
			IncomeCeiling:       money.FromInt(115000),
			AnnualPerChild:      money.FromInt(220),
			SupplementThreshold: money.FromInt(50000),
			SupplementRate:      money.MustParse("0.20"),
		},
		LumpSum: domain.LumpSumRules{
			Divisor: money.FromInt(10),
		},
		Recommendation: domain.RecommendationRules{
			HighRate:     money.FromInt(35),
			ModerateRate: money.FromInt(25),
		},
	}
}

func boundPtr(v int64) *decimal.Decimal {
	d := money.FromInt(v)
	return &d
}
