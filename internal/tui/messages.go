package tui

import (
	"github.com/google/uuid"
	"github.com/rgehrsitz/rulescalc/internal/compare"
	"github.com/rgehrsitz/rulescalc/internal/store"
)

// Scene represents the screens of the TUI.
type Scene int

const (
	SceneInputs Scene = iota
	SceneCompare
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneInputs:
		return "Inputs"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// ErrorMsg displays an error to the user.
type ErrorMsg struct {
	Err error
}

// ScenariosLoadedMsg carries the scenarios already in the repository.
type ScenariosLoadedMsg struct {
	Scenarios []store.StoredScenario
	Err       error
}

// ScenarioSavedMsg signals a scenario has been stored.
type ScenarioSavedMsg struct {
	Scenario store.StoredScenario
	Err      error
}

// ScenarioDeletedMsg signals a stored scenario has been removed.
type ScenarioDeletedMsg struct {
	ID   uuid.UUID
	Name string
	Err  error
}

// ComparisonCompleteMsg signals a comparison has finished.
type ComparisonCompleteMsg struct {
	Result *compare.ComparisonResult
	Err    error
}
