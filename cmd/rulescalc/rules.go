package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rulescalc/internal/calculation"
	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/rgehrsitz/rulescalc/internal/output"
	"github.com/rgehrsitz/rulescalc/internal/validation"
)

func (a *app) rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the rule catalog",
		Long:  "List the rules of the fiscal year, their legal references and dependencies, and trace a single rule.",
	}
	cmd.AddCommand(a.rulesListCmd())
	cmd.AddCommand(a.rulesShowCmd())
	cmd.AddCommand(a.rulesDepsCmd())
	cmd.AddCommand(a.rulesTraceCmd())
	cmd.AddCommand(a.rulesImpactCmd())
	return cmd
}

func (a *app) rulesListCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "console", "json"); err != nil {
				return err
			}
			defs := a.engine.Catalog.List()
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), defs)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tLEGAL REFERENCE")
			for _, def := range defs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def.ID, def.Name, def.Category, def.LegalReference)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, json)")
	return cmd
}

func (a *app) rulesShowCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <rule-id>",
		Short: "Show a rule with its dependencies and dependents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "console", "json"); err != nil {
				return err
			}
			id := domain.RuleID(args[0])
			def, err := a.engine.Catalog.Get(id)
			if err != nil {
				return err
			}
			deps, err := a.engine.Catalog.Dependencies(id)
			if err != nil {
				return err
			}
			dependents, err := a.engine.Catalog.Dependents(id)
			if err != nil {
				return err
			}
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), struct {
					Rule         domain.RuleDefinition   `json:"rule"`
					Dependencies []domain.RuleDefinition `json:"dependencies"`
					Dependents   []domain.RuleID         `json:"dependents"`
				}{def, deps, dependents})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", def.Name, def.ID)
			fmt.Fprintf(out, "  Category:  %s\n", def.Category)
			fmt.Fprintf(out, "  Year:      %d\n", def.Year)
			fmt.Fprintf(out, "  Reference: %s\n", def.LegalReference)
			if def.URL != "" {
				fmt.Fprintf(out, "  URL:       %s\n", def.URL)
			}
			fmt.Fprintf(out, "  %s\n", def.Description)
			if def.Impact != "" {
				fmt.Fprintf(out, "  Impact: %s\n", def.Impact)
			}
			if len(deps) > 0 {
				fmt.Fprintln(out, "Depends on:")
				for _, d := range deps {
					fmt.Fprintf(out, "  - %s (%s)\n", d.Name, d.ID)
				}
			}
			if len(dependents) > 0 {
				fmt.Fprintln(out, "Used by:")
				for _, d := range dependents {
					fmt.Fprintf(out, "  - %s (%s)\n", a.engine.Catalog.Name(d), d)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, json)")
	return cmd
}

func (a *app) rulesDepsCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "deps <rule-id>",
		Short: "Print the dependency tree of a rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "console", "json"); err != nil {
				return err
			}
			tree, err := a.engine.Catalog.DependencyTree(domain.RuleID(args[0]))
			if err != nil {
				return err
			}
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), tree)
			}
			writeTree(cmd.OutOrStdout(), tree, 0)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, json)")
	return cmd
}

func writeTree(w io.Writer, node *domain.DependencyNode, depth int) {
	label := string(node.RuleID)
	if node.RuleName != "" {
		label = fmt.Sprintf("%s (%s)", node.RuleName, node.RuleID)
	}
	if node.Circular {
		label += " [circular]"
	}
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), label)
	for _, child := range node.DependsOn {
		writeTree(w, child, depth+1)
	}
}

func (a *app) rulesTraceCmd() *cobra.Command {
	var (
		in     inputFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "trace <rule-id>",
		Short: "Evaluate one rule on its own and explain each step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "console", "json"); err != nil {
				return err
			}
			if err := validation.ValidateInput(in.input()); err != nil {
				return err
			}
			ex, err := a.engine.Registry().Explain(domain.RuleID(args[0]), calculation.RuleInput{
				Income:              in.gross,
				Household:           in.household(),
				HousingCostsMonthly: in.housing,
			})
			if err != nil {
				return err
			}
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), ex)
			}

			out := cmd.OutOrStdout()
			name := string(ex.Outcome.RuleID)
			if ex.Rule != nil {
				name = ex.Rule.Name
			}
			fmt.Fprintf(out, "%s on %s\n", name, money.FormatEuro(ex.Income))
			for i, step := range ex.Steps {
				fmt.Fprintf(out, "  %d. %-48s %12s\n", i+1, step.Description, money.FormatEuro(step.Amount))
			}
			fmt.Fprintf(out, "Result: %s\n", money.FormatEuro(ex.Outcome.Amount))
			if len(ex.Outcome.Trace) > 0 {
				fmt.Fprintln(out, "Trace:")
				output.WriteTrace(out, ex.Outcome.Trace, "  ")
			}
			return nil
		},
	}
	in.bindIncome(cmd, "income", "Annual income the rule is evaluated on")
	in.bindHousehold(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, json)")
	return cmd
}

func (a *app) rulesImpactCmd() *cobra.Command {
	var (
		in     inputFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Show how income flows through every rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "console", "json"); err != nil {
				return err
			}
			if err := validation.ValidateInput(in.input()); err != nil {
				return err
			}
			analysis, err := a.engine.AnalyzeImpact(in.gross, in.pensionPct, in.household(), in.housing)
			if err != nil {
				return err
			}
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), analysis)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "Gross income\t%s\t\n", money.FormatEuro(analysis.GrossIncome))
			fmt.Fprintf(w, "Pension contribution\t%s\t\n", money.FormatEuro(analysis.PensionContribution))
			fmt.Fprintf(w, "Taxable income\t%s\t\n", money.FormatEuro(analysis.TaxableIncome))
			fmt.Fprintln(w, "\t\t")
			for _, imp := range analysis.Impacts {
				fmt.Fprintf(w, "%s (%s)\t%s\t\n", imp.Rule.Name, imp.Type, money.FormatEuro(imp.Impact))
			}
			fmt.Fprintln(w, "\t\t")
			fmt.Fprintf(w, "Total deductions\t%s\t\n", money.FormatEuro(analysis.TotalDeductions))
			fmt.Fprintf(w, "Total benefits\t%s\t\n", money.FormatEuro(analysis.TotalBenefits))
			fmt.Fprintf(w, "After deductions\t%s\t\n", money.FormatEuro(analysis.AfterDeductions))
			return w.Flush()
		},
	}
	in.bindIncome(cmd, "gross", "Gross annual income")
	in.bindPension(cmd)
	in.bindHousehold(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, json)")
	return cmd
}
