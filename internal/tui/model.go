package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/rulescalc/internal/calculation"
	"github.com/rgehrsitz/rulescalc/internal/compare"
	"github.com/rgehrsitz/rulescalc/internal/domain"
	"github.com/rgehrsitz/rulescalc/internal/store"
	"github.com/rgehrsitz/rulescalc/internal/validation"
)

// LocalUser owns every scenario saved from the TUI.
const LocalUser = "local"

// Slider positions in Model.sliders.
const (
	inputGross = iota
	inputPension
	inputLumpSum
	inputHousing
	inputChildren
	inputMembers
)

// Model represents the entire application state
type Model struct {
	scene    Scene
	previous Scene

	width  int
	height int

	engine   *calculation.Engine
	comparer *compare.Engine
	repo     store.ScenarioRepository
	logger   calculation.Logger

	sliders   []*ParameterSlider
	focused   int
	isPartner bool

	result     *domain.EvaluationResult
	saved      []store.StoredScenario
	comparison *compare.ComparisonResult

	keys keyMap
	help help.Model

	status string
	err    error
}

// NewModel creates the application model and evaluates the starting inputs.
func NewModel(engine *calculation.Engine, repo store.ScenarioRepository, logger calculation.Logger) Model {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	m := Model{
		scene:    SceneInputs,
		engine:   engine,
		comparer: compare.NewEngine(engine),
		repo:     repo,
		logger:   logger,
		sliders:  defaultSliders(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		width:    100,
		height:   30,
	}
	m.sliders[0].IsFocused = true
	m.recalculate()
	return m
}

func defaultSliders() []*ParameterSlider {
	d := decimal.NewFromInt
	return []*ParameterSlider{
		inputGross:    NewParameterSlider("Gross income", d(40000), d(0), d(200000), d(1000)).WithUnit("€"),
		inputPension:  NewParameterSlider("Pension contribution", d(5), d(0), d(20), decimal.NewFromFloat(0.5)).WithUnit("%").WithPlaces(1),
		inputLumpSum:  NewParameterSlider("Lump sum", d(0), d(0), d(100), d(5)).WithUnit("%"),
		inputHousing:  NewParameterSlider("Housing costs / month", d(700), d(0), d(1500), d(25)).WithUnit("€"),
		inputChildren: NewParameterSlider("Children", d(0), d(0), d(6), d(1)),
		inputMembers:  NewParameterSlider("Household members", d(1), d(1), d(8), d(1)),
	}
}

// Init implements tea.Model. It picks up scenarios saved before start-up.
func (m Model) Init() tea.Cmd {
	return loadScenariosCmd(m.repo)
}

// Input returns the evaluation input described by the sliders.
func (m Model) Input() domain.EvaluationInput {
	return domain.EvaluationInput{
		GrossIncome:            m.sliders[inputGross].Value,
		PensionContributionPct: m.sliders[inputPension].Value,
		LumpSumPct:             m.sliders[inputLumpSum].Value,
		HousingCostsMonthly:    m.sliders[inputHousing].Value,
		ChildrenCount:          m.sliders[inputChildren].Int(),
		HouseholdMembers:       m.sliders[inputMembers].Int(),
		IsPartner:              m.isPartner,
	}
}

// Result returns the evaluation of the current inputs.
func (m Model) Result() *domain.EvaluationResult {
	return m.result
}

// Saved returns the scenarios saved in this session.
func (m Model) Saved() []store.StoredScenario {
	return m.saved
}

// recalculate evaluates the current inputs. Evaluation is synchronous.
func (m *Model) recalculate() {
	in := m.Input()
	if err := validation.ValidateInput(in); err != nil {
		m.err = err
		return
	}
	m.result = m.engine.EvaluateNetIncome(in)
}

func loadScenariosCmd(repo store.ScenarioRepository) tea.Cmd {
	return func() tea.Msg {
		scenarios, err := repo.List(context.Background(), LocalUser)
		return ScenariosLoadedMsg{Scenarios: scenarios, Err: err}
	}
}

// saveScenarioCmd stores the current evaluation under the next free name.
func saveScenarioCmd(repo store.ScenarioRepository, name string, in domain.EvaluationInput, result *domain.EvaluationResult) tea.Cmd {
	return func() tea.Msg {
		saved, err := repo.Create(context.Background(), store.StoredScenario{
			Name:   name,
			UserID: LocalUser,
			Input:  in,
			Result: result,
		})
		return ScenarioSavedMsg{Scenario: saved, Err: err}
	}
}

// deleteScenarioCmd removes a stored scenario.
func deleteScenarioCmd(repo store.ScenarioRepository, s store.StoredScenario) tea.Cmd {
	return func() tea.Msg {
		err := repo.Delete(context.Background(), s.ID)
		return ScenarioDeletedMsg{ID: s.ID, Name: s.Name, Err: err}
	}
}

// compareScenariosCmd compares every scenario saved by the local user.
func compareScenariosCmd(repo store.ScenarioRepository, comparer *compare.Engine) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		scenarios, err := repo.List(ctx, LocalUser)
		if err != nil {
			return ComparisonCompleteMsg{Err: err}
		}
		if len(scenarios) < 2 {
			return ComparisonCompleteMsg{Err: fmt.Errorf("save at least two scenarios to compare (have %d)", len(scenarios))}
		}
		inputs := make([]domain.NamedInput, 0, len(scenarios))
		for _, s := range scenarios {
			inputs = append(inputs, domain.NamedInput{Name: s.Name, Input: s.Input})
		}
		result, err := comparer.CompareScenarios(ctx, inputs, nil)
		return ComparisonCompleteMsg{Result: result, Err: err}
	}
}
