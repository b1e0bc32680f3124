package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rulescalc/internal/money"
	"github.com/rgehrsitz/rulescalc/internal/output"
	"github.com/rgehrsitz/rulescalc/internal/validation"
)

func (a *app) evaluateCmd() *cobra.Command {
	var (
		in        inputFlags
		format    string
		outputDir string
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Calculate net income for one household",
		Long: "Runs gross income through pension, income tax, premiums and benefits and " +
			"prints the full waterfall down to net income.",
		Example: "  rulescalc evaluate --gross 50000 --pension 5 --housing 700\n" +
			"  rulescalc evaluate --gross 38000 --members 3 --children 1 --partner --format json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unsupported format %q (valid: %s; aliases: %s)", format,
					strings.Join(output.AvailableFormatterNames(), ", "),
					strings.Join(output.AvailableFormatAliases(), ", "))
			}
			input := in.input()
			if err := validation.ValidateInput(input); err != nil {
				return err
			}

			result := a.engine.EvaluateNetIncome(input)
			a.logger.Sugar().Infof("evaluated gross %s: net %s", input.GrossIncome, result.NetIncome)

			if outputDir != "" {
				path, err := output.WriteFormatted(f, result, outputDir, reportExtension(f.Name()))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}
			data, err := f.Format(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	in.bindIncome(cmd, "gross", "Gross annual income")
	in.bindPension(cmd)
	cmd.Flags().Var(decimalFlag{&in.lumpSumPct}, "lump-sum", "Pension lump sum withdrawn (% of annual pension)")
	in.bindHousehold(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, console-lite, json, breakdown, csv, detailed-csv)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Write the report to a timestamped file in this directory")
	return cmd
}

func reportExtension(formatter string) string {
	switch formatter {
	case "json", "breakdown":
		return "json"
	case "csv", "detailed-csv":
		return "csv"
	default:
		return "txt"
	}
}

func (a *app) taxCmd() *cobra.Command {
	var (
		in     inputFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Show the income tax bracket breakdown for a taxable income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "console", "json"); err != nil {
				return err
			}
			if err := validation.ValidateIncome(in.gross); err != nil {
				return err
			}
			analysis := a.engine.AnalyzeTax(in.gross)
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), analysis)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Taxable income:\t%s\n", money.FormatEuro(analysis.Income))
			fmt.Fprintf(w, "General allowance:\t%s\n", money.FormatEuro(analysis.GeneralAllowance))
			fmt.Fprintf(w, "Labour allowance:\t%s\n", money.FormatEuro(analysis.LabourAllowance))
			fmt.Fprintln(w)
			fmt.Fprintln(w, "FROM\tTO\tRATE\tTAXED\tTAX")
			for _, b := range analysis.Brackets {
				to := "-"
				if b.Max != nil {
					to = money.FormatEuro(*b.Max)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					money.FormatEuro(b.Min), to, money.FormatPercent(b.Rate.Shift(2)),
					money.FormatEuro(b.TaxableAmount), money.FormatEuro(b.Tax))
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Total tax:\t%s\n", money.FormatEuro(analysis.TotalTax))
			fmt.Fprintf(w, "Effective rate:\t%s\n", money.FormatPercent(analysis.EffectiveRate))
			fmt.Fprintf(w, "Marginal rate:\t%s\n", money.FormatPercent(analysis.MarginalRate))
			return w.Flush()
		},
	}
	in.bindIncome(cmd, "income", "Taxable annual income")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, json)")
	return cmd
}

func (a *app) benefitsCmd() *cobra.Command {
	var (
		in     inputFlags
		format string
		trace  bool
	)
	cmd := &cobra.Command{
		Use:   "benefits",
		Short: "Show the benefits a household receives at an income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "console", "json"); err != nil {
				return err
			}
			if err := validation.ValidateInput(in.input()); err != nil {
				return err
			}
			analysis := a.engine.AnalyzeBenefits(in.gross, in.household(), in.housing)
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), analysis)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Income: %s\n\n", money.FormatEuro(analysis.Income))
			for _, b := range analysis.Benefits {
				fmt.Fprintf(out, "%-28s %12s/month %12s/year\n", b.Name, money.FormatEuro(b.Amount), money.FormatEuro(b.Annual))
				if b.LegalReference != "" {
					fmt.Fprintf(out, "  %s\n", b.LegalReference)
				}
				if trace {
					output.WriteTrace(out, b.Trace, "    ")
				}
			}
			fmt.Fprintf(out, "\n%-28s %12s/month %12s/year\n", "Total",
				money.FormatEuro(analysis.TotalMonthly), money.FormatEuro(analysis.TotalAnnual))
			return nil
		},
	}
	in.bindIncome(cmd, "income", "Annual income the benefits are tested against")
	in.bindHousehold(cmd)
	cmd.Flags().BoolVar(&trace, "trace", false, "Print the evaluation trace of each benefit")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, json)")
	return cmd
}

func (a *app) thresholdsCmd() *cobra.Command {
	var (
		in     inputFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "thresholds",
		Short: "Show how far an income is from each benefit cliff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "console", "json"); err != nil {
				return err
			}
			if err := validation.ValidateIncome(in.gross); err != nil {
				return err
			}
			analysis := a.engine.AnalyzeThresholds(in.gross)
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), analysis)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Income:\t%s\n\n", money.FormatEuro(analysis.Income))
			fmt.Fprintln(w, "THRESHOLD\tVALUE\tDISTANCE\tSTATUS\t")
			for _, th := range analysis.Thresholds {
				marker := ""
				if th.Approaching {
					marker = "approaching"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", th.Name, money.FormatEuro(th.Threshold),
					money.FormatEuro(th.Distance), th.Status, marker)
			}
			return w.Flush()
		},
	}
	in.bindIncome(cmd, "income", "Annual income")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, json)")
	return cmd
}
