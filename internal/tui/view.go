package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/rulescalc/internal/compare"
	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.scene {
	case SceneInputs:
		content = m.renderInputs()
	case SceneCompare:
		content = m.renderCompare()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	parts := []string{m.renderTitleBar(), content}
	if m.err != nil {
		parts = append(parts, ErrorStyle.Render("Error: "+m.err.Error()+" (press any key)"))
	} else if m.status != "" {
		parts = append(parts, StatusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTitleBar() string {
	year := 0
	if m.engine != nil && m.engine.Rules != nil {
		year = m.engine.Rules.Year
	}
	title := TitleStyle.Render(fmt.Sprintf("Net Income Rules Calculator %d", year))
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(m.scene.String()))
}

func (m Model) renderInputs() string {
	var inputs strings.Builder
	for _, s := range m.sliders {
		inputs.WriteString(s.RenderCompact())
		inputs.WriteString("\n")
	}
	partner := "no"
	if m.isPartner {
		partner = "yes"
	}
	inputs.WriteString(fmt.Sprintf("  %s %s\n", ParameterLabelStyle.Render("Benefit partner"), ParameterValueStyle.Render(partner)))
	inputs.WriteString(fmt.Sprintf("\n  Saved scenarios: %d", len(m.saved)))

	left := BorderStyle.Render(inputs.String())
	if m.result == nil {
		return left
	}
	right := BorderStyle.Render(renderResult(m.result))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func renderResult(r *domain.EvaluationResult) string {
	var sb strings.Builder
	sb.WriteString(metricLine("Gross income", money.FormatEuro(r.GrossIncome)))
	if r.LumpSumAmount.IsPositive() {
		sb.WriteString(metricLine("Lump sum", money.FormatEuro(r.LumpSumAmount)))
	}
	sb.WriteString(metricLine("Pension contribution", money.FormatEuro(r.PensionAmount)))
	sb.WriteString(metricLine("Taxable income", money.FormatEuro(r.TaxableIncome)))
	sb.WriteString(metricLine("Income tax", money.FormatEuro(r.IncomeTax)))
	sb.WriteString(metricLine("AOW premium", money.FormatEuro(r.AOWPremium)))
	sb.WriteString(metricLine("WW premium", money.FormatEuro(r.WWPremium)))
	for _, b := range r.Benefits() {
		sb.WriteString(metricLine(string(b.Rule), benefitStatus(b)))
	}
	sb.WriteString(metricLine("Net income", money.FormatEuro(r.NetIncome)))
	sb.WriteString(metricLine("Effective tax rate", money.FormatPercent(r.EffectiveTaxRate)))
	if r.LumpSumImpact.RecommendationKind != domain.RecommendNone {
		sb.WriteString("\n")
		sb.WriteString(SubtitleStyle.Render(r.LumpSumImpact.Recommendation))
	}
	return sb.String()
}

func benefitStatus(b domain.BenefitResult) string {
	if len(b.Trace) > 0 {
		switch b.Trace[0].Type {
		case domain.StepRejected:
			return MetricNegativeStyle.Render("over threshold")
		case domain.StepNotApplicable:
			return SubtitleStyle.Render("n/a")
		}
	}
	return MetricPositiveStyle.Render(money.FormatEuro(b.Amount))
}

func metricLine(label, value string) string {
	return MetricLabelStyle.Render(label) + " " + MetricValueStyle.Render(value) + "\n"
}

func (m Model) renderCompare() string {
	if m.comparison == nil {
		return BorderStyle.Render("No comparison yet. Save two or more scenarios and press c.")
	}
	var sb strings.Builder
	for i, e := range m.comparison.Evaluations {
		name := e.Name
		if i == 0 {
			name += " (base)"
		}
		line := fmt.Sprintf("%-22s net %12s", name, money.FormatEuro(e.Result.NetIncome))
		if i > 0 {
			if fd, ok := m.comparison.Deltas[i-1].Field(compare.FieldNetIncome); ok {
				line += "  " + trend(fd.Delta)
			}
		}
		sb.WriteString(line + "\n")
	}
	if len(m.comparison.Insights) > 0 {
		sb.WriteString("\nInsights:\n")
		for _, in := range m.comparison.Insights {
			sb.WriteString("• " + in.Message + "\n")
		}
	}
	return BorderStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

func trend(delta decimal.Decimal) string {
	if delta.IsZero() {
		return SubtitleStyle.Render("=")
	}
	positive := delta.IsPositive()
	return MetricTrendStyle(positive).Render(fmt.Sprintf("%s %s", TrendIndicator(positive), money.FormatEuro(delta.Abs())))
}

func (m Model) renderHelp() string {
	helpText := `Adjust the inputs with the arrow keys; the result updates on every change.

Saved scenarios live in memory for this session only. Compare evaluates
every saved scenario concurrently and reports the differences against the
first one saved.

Benefit thresholds are hard cliffs: one euro over removes the benefit.`
	return BorderStyle.Render(helpText)
}
