package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case ScenariosLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.saved = msg.Scenarios
		if len(m.saved) > 0 {
			m.status = fmt.Sprintf("Loaded %d scenarios", len(m.saved))
		}
		return m, nil

	case ScenarioSavedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.saved = append(m.saved, msg.Scenario)
		m.status = fmt.Sprintf("Saved %q (%d saved)", msg.Scenario.Name, len(m.saved))
		m.logger.Debugf("saved scenario %s as %s", msg.Scenario.Name, msg.Scenario.ID)
		return m, nil

	case ScenarioDeletedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		for i, s := range m.saved {
			if s.ID == msg.ID {
				m.saved = append(m.saved[:i:i], m.saved[i+1:]...)
				break
			}
		}
		m.status = fmt.Sprintf("Deleted %q", msg.Name)
		return m, nil

	case ComparisonCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.comparison = msg.Result
		m.previous = m.scene
		m.scene = SceneCompare
		m.status = fmt.Sprintf("Compared %d scenarios", len(msg.Result.Evaluations))
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses an error.
	if m.err != nil {
		m.err = nil
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.scene == SceneHelp {
			m.scene = m.previous
		} else {
			m.previous = m.scene
			m.scene = SceneHelp
		}
		m.help.ShowAll = m.scene == SceneHelp
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.scene != SceneInputs {
			m.scene = SceneInputs
			m.help.ShowAll = false
		}
		return m, nil

	case key.Matches(msg, m.keys.Save):
		name := fmt.Sprintf("Scenario %d", len(m.saved)+1)
		return m, saveScenarioCmd(m.repo, name, m.Input(), m.result)

	case key.Matches(msg, m.keys.Compare):
		m.status = "Comparing scenarios..."
		return m, compareScenariosCmd(m.repo, m.comparer)

	case key.Matches(msg, m.keys.Delete):
		if len(m.saved) == 0 {
			m.status = "Nothing to delete"
			return m, nil
		}
		return m, deleteScenarioCmd(m.repo, m.saved[len(m.saved)-1])
	}

	if m.scene != SceneInputs {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Left):
		m.sliders[m.focused].Decrement()
		m.recalculate()
	case key.Matches(msg, m.keys.Right):
		m.sliders[m.focused].Increment()
		m.recalculate()
	case key.Matches(msg, m.keys.Partner):
		m.isPartner = !m.isPartner
		m.recalculate()
	}
	return m, nil
}

func (m *Model) moveFocus(delta int) {
	m.sliders[m.focused].IsFocused = false
	m.focused = (m.focused + delta + len(m.sliders)) % len(m.sliders)
	m.sliders[m.focused].IsFocused = true
}
