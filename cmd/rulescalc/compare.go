package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rulescalc/internal/compare"
	"github.com/rgehrsitz/rulescalc/internal/config"
)

func (a *app) compareCmd() *cobra.Command {
	var (
		format  string
		fields  string
		compact bool
	)
	cmd := &cobra.Command{
		Use:   "compare <scenarios-file>",
		Short: "Compare the named scenarios of a scenario file",
		Long: "Evaluates every scenario in the file, lines up the selected fields side by side " +
			"and reports deltas against the first scenario together with insights.",
		Example: "  rulescalc compare scenarios.yaml\n" +
			"  rulescalc compare scenarios.yaml --fields net_income,total_benefits --format csv",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "table", "csv", "json"); err != nil {
				return err
			}
			file, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if len(file.Scenarios) < 2 {
				return fmt.Errorf("%s: need at least two scenarios to compare (have %d)", args[0], len(file.Scenarios))
			}

			var selected []string
			if fields != "" {
				for _, f := range strings.Split(fields, ",") {
					selected = append(selected, strings.TrimSpace(f))
				}
			}
			result, err := compare.NewEngine(a.engine).CompareScenarios(cmd.Context(), file.Scenarios, selected)
			if err != nil {
				return err
			}
			result.Source = args[0]
			a.logger.Sugar().Infof("compared %d scenarios from %s", len(result.Evaluations), args[0])

			var out string
			switch format {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(result)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(result)
				out += "\n"
			default:
				if compact {
					out = (&compare.TableFormatter{}).FormatCompact(result)
				} else {
					out = (&compare.TableFormatter{}).Format(result)
				}
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().StringVar(&fields, "fields", "", "Comma-separated fields to compare (valid: "+strings.Join(compare.AvailableFields(), ", ")+")")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print only the net income line per scenario (table format)")
	return cmd
}

func (a *app) deltaCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "delta <scenarios-file>",
		Short: "Explain the difference between a base and a modified scenario",
		Long: "Uses the base and modified inputs of the file, or its first two scenarios, " +
			"and reports the change in every field.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "table", "csv", "json"); err != nil {
				return err
			}
			file, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			base, modified, err := file.DeltaPair()
			if err != nil {
				return err
			}
			report, err := compare.NewEngine(a.engine).Delta(cmd.Context(), base, modified)
			if err != nil {
				return err
			}

			var out string
			switch format {
			case "csv":
				out, err = (&compare.CSVFormatter{}).FormatDelta(report)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).FormatDelta(report)
				out += "\n"
			default:
				out = (&compare.TableFormatter{}).FormatDelta(report)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenarios-file>",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid (%d scenarios)\n", args[0], len(file.Scenarios))
			return nil
		},
	}
}
