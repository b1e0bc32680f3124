package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(result *ComparisonResult) string {
	var sb strings.Builder

	sb.WriteString("NET INCOME SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if len(result.Evaluations) > 0 {
		sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", result.Evaluations[0].Name))
	}
	if result.Source != "" {
		sb.WriteString(fmt.Sprintf("Scenarios: %s\n", result.Source))
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s", nameWidth, "Scenario"))
	for _, f := range result.Fields {
		sb.WriteString(fmt.Sprintf(" %*s", numWidth, tf.truncate(fieldLabel(f), numWidth)))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i, e := range result.Evaluations {
		name := e.Name
		if i == 0 {
			name += " (base)"
		}
		sb.WriteString(fmt.Sprintf("%-*s", nameWidth, tf.truncate(name, nameWidth)))
		for _, f := range result.Fields {
			sb.WriteString(fmt.Sprintf(" %*s", numWidth, money.FormatEuro(result.FieldMatrix[f][i])))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(result.Deltas) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, d := range result.Deltas {
			sb.WriteString(fmt.Sprintf("\n%s:\n", d.Modified))
			for _, fd := range d.Fields {
				sb.WriteString(tf.formatDelta(fd))
			}
		}
		sb.WriteString("\n")
	}

	if len(result.Insights) > 0 {
		sb.WriteString("\nINSIGHTS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, in := range result.Insights {
			sb.WriteString(fmt.Sprintf("• %s\n", in.Message))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatDelta renders a two-scenario delta report.
func (tf *TableFormatter) FormatDelta(report *DeltaReport) string {
	var sb strings.Builder

	sb.WriteString("SCENARIO DELTA\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-22s %14s %14s %14s %10s\n", "Field", "Base", "Modified", "Delta", "Change"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, fd := range report.Deltas {
		sb.WriteString(fmt.Sprintf("%-22s %14s %14s %14s %10s\n",
			fieldLabel(fd.Field),
			money.FormatEuro(fd.Base),
			money.FormatEuro(fd.Modified),
			tf.deltaSymbol(fd.Delta)+money.FormatEuro(fd.Delta),
			money.FormatPercent(fd.PercentageChange)))
	}
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Best income: %s (%s%s)\n",
		report.Summary.BestIncome,
		tf.deltaSymbol(report.Summary.NetIncomeImprovement),
		money.FormatEuro(report.Summary.NetIncomeImprovement)))
	return sb.String()
}

func (tf *TableFormatter) formatDelta(fd FieldDelta) string {
	return fmt.Sprintf("  %-20s %s%s (%s, %s)\n",
		fieldLabel(fd.Field)+":",
		tf.deltaSymbol(fd.Delta),
		money.FormatEuro(fd.Delta),
		money.FormatPercent(fd.PercentageChange),
		fd.Direction)
}

// deltaSymbol returns "+" for positive deltas; negatives carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(result *ComparisonResult) string {
	var sb strings.Builder

	if len(result.Evaluations) > 0 {
		sb.WriteString(fmt.Sprintf("Base: %s | ", result.Evaluations[0].Name))
	}
	for i, d := range result.Deltas {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if fd, ok := d.Field(FieldNetIncome); ok && !fd.Delta.IsZero() {
			change = tf.deltaSymbol(fd.Delta) + money.FormatEuro(fd.Delta)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", d.Modified, change))
	}
	return sb.String()
}

func fieldLabel(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		switch w {
		case "aow", "ww":
			words[i] = strings.ToUpper(w)
		default:
			if w != "" {
				words[i] = strings.ToUpper(w[:1]) + w[1:]
			}
		}
	}
	return strings.Join(words, " ")
}
