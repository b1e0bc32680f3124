package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/rulescalc/internal/domain"
)

// decimalFlag lets amounts and percentages be passed as exact decimals.
type decimalFlag struct {
	d *decimal.Decimal
}

func (f decimalFlag) String() string {
	if f.d == nil {
		return "0"
	}
	return f.d.String()
}

func (f decimalFlag) Set(s string) error {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	*f.d = v
	return nil
}

func (f decimalFlag) Type() string { return "decimal" }

// inputFlags collects the household figures shared by evaluate and the
// analysis commands.
type inputFlags struct {
	gross      decimal.Decimal
	pensionPct decimal.Decimal
	lumpSumPct decimal.Decimal
	housing    decimal.Decimal
	children   int
	members    int
	partner    bool
}

func (f *inputFlags) bindIncome(cmd *cobra.Command, name, usage string) {
	cmd.Flags().Var(decimalFlag{&f.gross}, name, usage)
}

func (f *inputFlags) bindHousehold(cmd *cobra.Command) {
	cmd.Flags().Var(decimalFlag{&f.housing}, "housing", "Monthly housing costs")
	cmd.Flags().IntVar(&f.children, "children", 0, "Number of children")
	cmd.Flags().IntVar(&f.members, "members", 1, "Household members")
	cmd.Flags().BoolVar(&f.partner, "partner", false, "Household has a fiscal partner")
}

func (f *inputFlags) bindPension(cmd *cobra.Command) {
	cmd.Flags().Var(decimalFlag{&f.pensionPct}, "pension", "Pension contribution (% of gross)")
}

func (f *inputFlags) input() domain.EvaluationInput {
	return domain.EvaluationInput{
		GrossIncome:            f.gross,
		PensionContributionPct: f.pensionPct,
		LumpSumPct:             f.lumpSumPct,
		HousingCostsMonthly:    f.housing,
		ChildrenCount:          f.children,
		HouseholdMembers:       f.members,
		IsPartner:              f.partner,
	}
}

func (f *inputFlags) household() domain.Household {
	return f.input().Household()
}

// checkFormat rejects anything outside the formats a command supports.
func checkFormat(format string, valid ...string) error {
	for _, v := range valid {
		if format == v {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q (valid: %v)", format, valid)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
