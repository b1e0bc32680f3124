package compare

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/shopspring/decimal"
)

// InsightKind names the check that produced an insight.
type InsightKind string

const (
	InsightBestNetIncome      InsightKind = "best_net_income"
	InsightLowestTax          InsightKind = "lowest_tax"
	InsightHousingThreshold   InsightKind = "housing_threshold_exceeded"
	InsightHighMarginalImpact InsightKind = "high_marginal_impact"
)

// Insight is one qualitative finding over a set of evaluations.
// Rate is a percentage and only set for marginal-impact insights.
type Insight struct {
	Kind      InsightKind     `json:"kind"`
	Scenarios []string        `json:"scenarios"`
	Amount    decimal.Decimal `json:"amount"`
	Rate      decimal.Decimal `json:"rate"`
	Message   string          `json:"message"`
}

var highMarginalRate = decimal.NewFromFloat(0.4)

// GenerateInsights runs the independent checks in a fixed order: best net
// income, lowest income tax, lost housing allowance above the single-person
// threshold, then high marginal impact between neighbouring incomes.
func GenerateInsights(evals []Evaluation, housingThresholdSingle decimal.Decimal) []Insight {
	insights := []Insight{}
	if len(evals) == 0 {
		return insights
	}

	best := 0
	lowestTax := 0
	for i := 1; i < len(evals); i++ {
		if evals[i].Result.NetIncome.GreaterThan(evals[best].Result.NetIncome) {
			best = i
		}
		if evals[i].Result.IncomeTax.LessThan(evals[lowestTax].Result.IncomeTax) {
			lowestTax = i
		}
	}
	insights = append(insights, Insight{
		Kind:      InsightBestNetIncome,
		Scenarios: []string{evals[best].Name},
		Amount:    evals[best].Result.NetIncome,
		Message:   fmt.Sprintf("Best net income: %s with %s", evals[best].Name, money.FormatEuro(evals[best].Result.NetIncome)),
	})
	insights = append(insights, Insight{
		Kind:      InsightLowestTax,
		Scenarios: []string{evals[lowestTax].Name},
		Amount:    evals[lowestTax].Result.IncomeTax,
		Message:   fmt.Sprintf("Lowest income tax: %s with %s", evals[lowestTax].Name, money.FormatEuro(evals[lowestTax].Result.IncomeTax)),
	})

	for _, e := range evals {
		if e.Result.HousingAllowance.Amount.IsZero() && e.Result.GrossIncome.GreaterThan(housingThresholdSingle) {
			insights = append(insights, Insight{
				Kind:      InsightHousingThreshold,
				Scenarios: []string{e.Name},
				Amount:    e.Result.GrossIncome.Sub(housingThresholdSingle),
				Message: fmt.Sprintf("%s: income %s exceeds the housing allowance threshold of %s",
					e.Name, money.FormatEuro(e.Result.GrossIncome), money.FormatEuro(housingThresholdSingle)),
			})
		}
	}

	sorted := make([]Evaluation, len(evals))
	copy(sorted, evals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Result.GrossIncome.LessThan(sorted[j].Result.GrossIncome)
	})
	for i := 1; i < len(sorted); i++ {
		low, high := sorted[i-1], sorted[i]
		incomeDelta := high.Result.GrossIncome.Sub(low.Result.GrossIncome)
		if !incomeDelta.IsPositive() {
			continue
		}
		netDelta := high.Result.NetIncome.Sub(low.Result.NetIncome)
		marginal := decimal.NewFromInt(1).Sub(netDelta.Div(incomeDelta))
		if marginal.GreaterThan(highMarginalRate) {
			rate := marginal.Shift(2)
			insights = append(insights, Insight{
				Kind:      InsightHighMarginalImpact,
				Scenarios: []string{low.Name, high.Name},
				Amount:    netDelta,
				Rate:      rate,
				Message: fmt.Sprintf("High marginal impact between %s and %s: %s of the extra %s is lost",
					low.Name, high.Name, money.FormatPercent(rate), money.FormatEuro(incomeDelta)),
			})
		}
	}

	return insights
}
