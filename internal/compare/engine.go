package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rulescalc/internal/calculation"
	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/validation"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Engine orchestrates scenario comparison
type Engine struct {
	Calc *calculation.Engine
}

// NewEngine creates a new comparison engine
func NewEngine(calc *calculation.Engine) *Engine {
	return &Engine{Calc: calc}
}

// CompareScenarios evaluates every scenario concurrently and compares the
// requested fields. An empty field list compares DefaultFields. Deltas are
// taken against the first scenario.
func (ce *Engine) CompareScenarios(ctx context.Context, scenarios []domain.NamedInput, fields []string) (*ComparisonResult, error) {
	if len(scenarios) < 2 {
		return nil, &domain.InvalidInputError{Field: "scenarios", Reason: "at least two scenarios are required"}
	}
	if len(fields) == 0 {
		fields = DefaultFields
	}
	for _, f := range fields {
		if _, ok := extractors[f]; !ok {
			return nil, &domain.InvalidInputError{Field: "fields", Reason: fmt.Sprintf("unknown field %q", f)}
		}
	}

	evals, err := ce.evaluateAll(ctx, scenarios)
	if err != nil {
		return nil, err
	}

	result := &ComparisonResult{
		Evaluations: evals,
		Fields:      append([]string(nil), fields...),
		FieldMatrix: make(map[string][]decimal.Decimal, len(fields)),
		Deltas:      make([]ScenarioDelta, 0, len(evals)-1),
	}
	for _, f := range fields {
		row := make([]decimal.Decimal, 0, len(evals))
		for _, e := range evals {
			v, err := FieldValue(e.Result, f)
			if err != nil {
				return nil, err
			}
			row = append(row, v)
		}
		result.FieldMatrix[f] = row
	}
	base := evals[0]
	for _, e := range evals[1:] {
		deltas, err := fieldDeltas(fields, base.Result, e.Result)
		if err != nil {
			return nil, err
		}
		result.Deltas = append(result.Deltas, ScenarioDelta{
			Base:     base.Name,
			Modified: e.Name,
			Fields:   deltas,
		})
	}
	result.Insights = GenerateInsights(evals, ce.Calc.Rules.HousingAllow.ThresholdSingle)

	ce.Calc.Logger.Debugf("compared %d scenarios over %d fields, %d insights", len(evals), len(fields), len(result.Insights))
	return result, nil
}

// evaluateAll validates and evaluates each scenario in its own goroutine.
// The first failure cancels the rest.
func (ce *Engine) evaluateAll(ctx context.Context, scenarios []domain.NamedInput) ([]Evaluation, error) {
	evals := make([]Evaluation, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range scenarios {
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := validation.ValidateInput(s.Input); err != nil {
				return fmt.Errorf("scenario %q: %w", s.Name, err)
			}
			evals[i] = Evaluation{Name: s.Name, Input: s.Input, Result: ce.Calc.EvaluateNetIncome(s.Input)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return evals, nil
}

// Delta evaluates base and modified and reports the standard delta fields.
func (ce *Engine) Delta(ctx context.Context, base, modified domain.EvaluationInput) (*DeltaReport, error) {
	evals, err := ce.evaluateAll(ctx, []domain.NamedInput{
		{Name: "base", Input: base},
		{Name: "modified", Input: modified},
	})
	if err != nil {
		return nil, err
	}
	b, m := evals[0].Result, evals[1].Result

	deltas, err := fieldDeltas(DeltaFields, b, m)
	if err != nil {
		return nil, err
	}

	best := "base"
	if m.NetIncome.GreaterThan(b.NetIncome) {
		best = "modified"
	}
	return &DeltaReport{
		Base:     b,
		Modified: m,
		Deltas:   deltas,
		Summary: DeltaSummary{
			BestIncome:           best,
			NetIncomeImprovement: m.NetIncome.Sub(b.NetIncome),
		},
	}, nil
}

func fieldDeltas(fields []string, base, modified *domain.EvaluationResult) ([]FieldDelta, error) {
	out := make([]FieldDelta, 0, len(fields))
	for _, f := range fields {
		b, err := FieldValue(base, f)
		if err != nil {
			return nil, err
		}
		m, err := FieldValue(modified, f)
		if err != nil {
			return nil, err
		}
		out = append(out, NewFieldDelta(f, b, m))
	}
	return out, nil
}
