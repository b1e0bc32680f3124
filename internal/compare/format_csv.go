package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format writes one row per scenario with every compared field followed by
// its delta against the base scenario.
func (cf *CSVFormatter) Format(result *ComparisonResult) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := append([]string{"Scenario", "Type"}, result.Fields...)
	for _, f := range result.Fields {
		header = append(header, f+"_delta")
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i, e := range result.Evaluations {
		scenarioType := "alternative"
		if i == 0 {
			scenarioType = "base"
		}
		row := []string{e.Name, scenarioType}
		for _, f := range result.Fields {
			row = append(row, result.FieldMatrix[f][i].StringFixed(2))
		}
		for _, f := range result.Fields {
			delta := "0.00"
			if i > 0 {
				if fd, ok := result.Deltas[i-1].Field(f); ok {
					delta = fd.Delta.StringFixed(2)
				}
			}
			row = append(row, delta)
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// FormatDelta writes one row per delta field.
func (cf *CSVFormatter) FormatDelta(report *DeltaReport) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write([]string{"Field", "Base", "Modified", "Delta", "Percentage Change", "Direction"}); err != nil {
		return "", err
	}
	for _, fd := range report.Deltas {
		row := []string{
			fd.Field,
			fd.Base.StringFixed(2),
			fd.Modified.StringFixed(2),
			fd.Delta.StringFixed(2),
			fd.PercentageChange.StringFixed(2),
			string(fd.Direction),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
