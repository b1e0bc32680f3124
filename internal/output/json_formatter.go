package output

import (
	"encoding/json"

	"github.com/rgehrsitz/rulescalc/internal/domain"
)

// JSONFormatter renders the full result, including traces and steps.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.EvaluationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

// BreakdownFormatter renders only the gross-to-net waterfall as JSON.
var BreakdownFormatter = FormatterFunc{
	ID: "breakdown",
	F: func(result *domain.EvaluationResult) ([]byte, error) {
		return json.MarshalIndent(result.Breakdown, "", "  ")
	},
}
