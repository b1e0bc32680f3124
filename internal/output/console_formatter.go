package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
)

// ConsoleFormatter renders a short summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *domain.EvaluationResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "NET INCOME SUMMARY")
	fmt.Fprintln(&buf, "==================")
	writeWaterfall(&buf, result)
	if result.LumpSumImpact.RecommendationKind != domain.RecommendNone && result.LumpSumImpact.RecommendationKind != "" {
		fmt.Fprintf(&buf, "Lump sum: %s (tax +%s)\n", money.FormatEuro(result.LumpSumAmount), money.FormatEuro(result.LumpSumImpact.TaxIncrease))
		fmt.Fprintf(&buf, "Recommendation: %s\n", result.LumpSumImpact.Recommendation)
	}
	return buf.Bytes(), nil
}
