package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/rulescalc/internal/domain"
)

const scenariosYAML = `
scenarios:
  - name: current
    input:
      gross_income: 50000
      pension_contribution_pct: 5
      housing_costs_monthly: 400
      household_members: 1
  - name: part-time
    input:
      gross_income: 20000
      housing_costs_monthly: 400
      household_members: 1
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "rulescalc", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"evaluate", "tax", "benefits", "thresholds", "rules", "compare", "delta", "validate", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
	for _, flag := range []string{"rules", "log-level", "log-format", "log-file", "config"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing persistent flag %s", flag)
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands")
	assert.Contains(t, out, "evaluate")
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, err := run(t, "nonexistent-command")
	assert.Error(t, err)
}

func TestRootCommand_InvalidFlag(t *testing.T) {
	_, err := run(t, "evaluate", "--no-such-flag")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rulescalc dev")
}

func TestEvaluate_Console(t *testing.T) {
	out, err := run(t, "evaluate", "--gross", "50000", "--pension", "5", "--housing", "400")
	require.NoError(t, err)
	assert.Contains(t, out, "DETAILED NET INCOME ANALYSIS")
	assert.Contains(t, out, "€5613.59")
	assert.Contains(t, out, "€31555.16")
}

func TestEvaluate_JSON(t *testing.T) {
	out, err := run(t, "evaluate", "--gross", "50000", "--pension", "5", "--housing", "400", "--format", "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "31555.16", decoded["net_income"])
	assert.Equal(t, "5613.59", decoded["income_tax"])
}

func TestEvaluate_Alias(t *testing.T) {
	out, err := run(t, "evaluate", "--gross", "20000", "--format", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "NET INCOME SUMMARY")
}

func TestEvaluate_OutputDir(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "evaluate", "--gross", "50000", "--format", "csv", "--output-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	files, err := filepath.Glob(filepath.Join(dir, "net_income_report_*.csv"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"negative gross", []string{"--gross", "-1"}, "gross_income"},
		{"pension above 100", []string{"--gross", "1000", "--pension", "120"}, "pension_contribution_pct"},
		{"no household members", []string{"--gross", "1000", "--members", "0"}, "household_members"},
		{"unknown format", []string{"--gross", "1000", "--format", "xml"}, "unsupported format"},
		{"not a number", []string{"--gross", "lots"}, "invalid amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"evaluate"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTax(t *testing.T) {
	out, err := run(t, "tax", "--income", "47500")
	require.NoError(t, err)
	assert.Contains(t, out, "Total tax:")
	assert.Contains(t, out, "€5613.59")
}

func TestTax_RulesFromEnvironment(t *testing.T) {
	rules := writeTemp(t, "rules.yaml", `
income_tax:
  general_allowance: 0
  labour_allowance: 0
  brackets:
    - min: 0
      max: 40000
      rate: 0.10
    - min: 40000
      rate: 0.40
`)
	t.Setenv("RULESCALC_RULES", rules)

	out, err := run(t, "tax", "--income", "50000", "--format", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "8000", decoded["total_tax"])
}

func TestTax_RulesFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("RULESCALC_RULES", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := run(t, "tax", "--income", "50000", "--rules", "")
	assert.NoError(t, err)
}

func TestInvalidRulesFile(t *testing.T) {
	rules := writeTemp(t, "rules.yaml", "income_tax:\n  brackets: []\n")
	_, err := run(t, "--rules", rules, "tax", "--income", "1000")
	require.Error(t, err)
	var invalid *domain.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "chatty", "tax", "--income", "1000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestBenefits(t *testing.T) {
	out, err := run(t, "benefits", "--income", "20000", "--housing", "700", "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "[eligible]")
}

func TestBenefits_JSON(t *testing.T) {
	out, err := run(t, "benefits", "--income", "20000", "--housing", "700", "--format", "json")
	require.NoError(t, err)
	var decoded struct {
		Benefits []struct {
			RuleID string `json:"rule_id"`
		} `json:"benefits"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Benefits, 3)
	assert.Equal(t, "huurtoeslag", decoded.Benefits[0].RuleID)
}

func TestThresholds(t *testing.T) {
	out, err := run(t, "thresholds", "--income", "25000")
	require.NoError(t, err)
	assert.Contains(t, out, "housing_allowance_single")
	assert.Contains(t, out, "child_benefits")
}

func TestIncomeOnlyCommands(t *testing.T) {
	tests := []struct {
		name    string
		command string
		key     string
	}{
		{"tax", "tax", "total_tax"},
		{"thresholds", "thresholds", "current_income"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.command, "--income", "30000", "--format", "json")
			require.NoError(t, err)
			var decoded map[string]any
			require.NoError(t, json.Unmarshal([]byte(out), &decoded))
			assert.Contains(t, decoded, tt.key)

			_, err = run(t, tt.command, "--income", "-1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "income: must not be negative")
			assert.NotContains(t, err.Error(), "household_members")
		})
	}
}

func TestRulesList(t *testing.T) {
	out, err := run(t, "rules", "list")
	require.NoError(t, err)
	for _, id := range []string{"income_tax", "aow_premium", "ww_premium", "huurtoeslag", "zorgtoeslag", "kindgebonden_budget"} {
		assert.Contains(t, out, id)
	}
}

func TestRulesShow(t *testing.T) {
	out, err := run(t, "rules", "show", "income_tax")
	require.NoError(t, err)
	assert.Contains(t, out, "Wet inkomstenbelasting 2001")
	assert.Contains(t, out, "Used by:")

	_, err = run(t, "rules", "show", "no_such_rule")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRuleNotFound))
}

func TestRulesDeps(t *testing.T) {
	out, err := run(t, "rules", "deps", "huurtoeslag")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6, "aow and ww each repeat income_tax below them")
	assert.Contains(t, lines[0], "huurtoeslag")
	assert.True(t, strings.HasPrefix(lines[1], "  "), "dependencies are indented")
}

func TestRulesTrace(t *testing.T) {
	out, err := run(t, "rules", "trace", "aow_premium", "--income", "47500")
	require.NoError(t, err)
	assert.Contains(t, out, "€9286.25")

	_, err = run(t, "rules", "trace", "no_such_rule", "--income", "1000")
	assert.True(t, errors.Is(err, domain.ErrRuleNotFound))
}

func TestRulesImpact(t *testing.T) {
	out, err := run(t, "rules", "impact", "--gross", "50000", "--pension", "5", "--format", "json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "47500", decoded["taxable_income"])
	assert.Len(t, decoded["impacts_by_rule"], 6)
}

func TestCompare(t *testing.T) {
	path := writeTemp(t, "scenarios.yaml", scenariosYAML)

	out, err := run(t, "compare", path)
	require.NoError(t, err)
	assert.Contains(t, out, "current (base)")
	assert.Contains(t, out, "part-time")
	assert.Contains(t, out, "INSIGHTS")
	assert.Contains(t, out, path)

	out, err = run(t, "compare", path, "--format", "csv", "--fields", "net_income, income_tax")
	require.NoError(t, err)
	assert.Contains(t, out, "net_income")

	_, err = run(t, "compare", path, "--fields", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestCompare_NeedsTwoScenarios(t *testing.T) {
	path := writeTemp(t, "one.yaml", `
scenarios:
  - name: only
    input:
      gross_income: 30000
      household_members: 1
`)
	_, err := run(t, "compare", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two scenarios")
}

func TestDelta(t *testing.T) {
	path := writeTemp(t, "delta.yaml", `
base:
  gross_income: 50000
  pension_contribution_pct: 5
  household_members: 1
modified:
  gross_income: 50000
  pension_contribution_pct: 5
  lump_sum_pct: 10
  household_members: 1
`)
	out, err := run(t, "delta", path, "--format", "json")
	require.NoError(t, err)
	var decoded struct {
		Summary struct {
			BestIncome string `json:"best_income"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "base", decoded.Summary.BestIncome)

	out, err = run(t, "delta", path)
	require.NoError(t, err)
	assert.Contains(t, out, "SCENARIO DELTA")
}

func TestValidate(t *testing.T) {
	path := writeTemp(t, "scenarios.yaml", scenariosYAML)
	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (2 scenarios)")

	bad := writeTemp(t, "bad.yaml", `
scenarios:
  - name: negative
    input:
      gross_income: -5
      household_members: 1
`)
	_, err = run(t, "validate", bad)
	require.Error(t, err)
	var invalid *domain.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Contains(t, invalid.Field, "gross_income")
}
