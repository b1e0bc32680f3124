package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the full walkthrough: waterfall, brackets,
// benefit traces, lump-sum impact and the numbered steps.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *domain.EvaluationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf, "DETAILED NET INCOME ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeWaterfall(&buf, result)

	fmt.Fprintln(&buf, "INCOME TAX BRACKETS:")
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	if len(result.TaxBrackets) == 0 {
		fmt.Fprintln(&buf, "  No tax due")
	}
	for _, b := range result.TaxBrackets {
		upper := "∞"
		if b.Max != nil {
			upper = money.FormatEuro(*b.Max)
		}
		fmt.Fprintf(&buf, "  %12s - %-12s @ %6s  on %12s = %12s\n",
			money.FormatEuro(b.Min), upper, money.FormatPercent(b.Rate.Shift(2)),
			money.FormatEuro(b.TaxableAmount), money.FormatEuro(b.Tax))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "BENEFITS:")
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	for _, b := range result.Benefits() {
		fmt.Fprintf(&buf, "  %-24s %14s\n", b.Rule, money.FormatEuro(b.Amount))
		WriteTrace(&buf, b.Trace, "    ")
	}
	fmt.Fprintln(&buf)

	if result.LumpSumPct.IsPositive() {
		impact := result.LumpSumImpact
		fmt.Fprintln(&buf, "LUMP SUM IMPACT:")
		fmt.Fprintln(&buf, strings.Repeat("-", 80))
		fmt.Fprintf(&buf, "  Lump Sum (%s):  %s\n", money.FormatPercent(result.LumpSumPct), money.FormatEuro(result.LumpSumAmount))
		fmt.Fprintf(&buf, "  Tax Increase:        %s\n", money.FormatEuro(impact.TaxIncrease))
		fmt.Fprintf(&buf, "  Benefit Impact:      %s\n", impact.BenefitImpact)
		fmt.Fprintf(&buf, "  Recommendation:      %s\n", impact.Recommendation)
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "CALCULATION STEPS:")
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	for _, s := range result.Steps {
		fmt.Fprintf(&buf, "  %d. %-40s %14s\n", s.Step, s.Description, money.FormatEuro(s.Amount))
		if s.LegalReference != "" {
			fmt.Fprintf(&buf, "     %s\n", s.LegalReference)
		}
	}

	return buf.Bytes(), nil
}

func writeWaterfall(buf *bytes.Buffer, result *domain.EvaluationResult) {
	b := result.Breakdown
	fmt.Fprintln(buf, "GROSS TO NET:")
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	line(buf, "Gross Income", b.Gross)
	if !b.LumpSumAdded.IsZero() {
		line(buf, "+ Lump Sum", b.LumpSumAdded)
	}
	line(buf, "- Pension Contribution", b.MinusPension)
	line(buf, "- Income Tax", b.MinusTax)
	line(buf, "- AOW Premium", b.MinusAOW)
	line(buf, "- WW Premium", b.MinusWW)
	line(buf, "+ Benefits", b.PlusBenefits)
	fmt.Fprintln(buf, "  "+strings.Repeat("-", 40))
	line(buf, "= Net Income", b.EqualsNet)
	fmt.Fprintf(buf, "  %-24s %14s\n", "Effective Tax Rate", money.FormatPercent(result.EffectiveTaxRate))
	fmt.Fprintln(buf)
}

func line(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "  %-24s %14s\n", label, money.FormatEuro(amount))
}
