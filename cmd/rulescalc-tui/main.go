package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rgehrsitz/rulescalc/internal/calculation"
	"github.com/rgehrsitz/rulescalc/internal/catalog"
	"github.com/rgehrsitz/rulescalc/internal/config"
	"github.com/rgehrsitz/rulescalc/internal/store"
	"github.com/rgehrsitz/rulescalc/internal/tui"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Println("Usage: rulescalc-tui [scenarios-file]")
		os.Exit(1)
	}

	settings, err := config.LoadSettings(config.NewViper(), "")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// The screen belongs to the TUI; logs only go to a file when one is set.
	logger := zap.NewNop()
	if settings.Logging.OutputFile != "" {
		logger, err = config.NewLogger(settings.Logging)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer func() { _ = logger.Sync() }()

	rules, err := config.LoadRules(settings.RulesPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	engine := calculation.NewEngineWithRules(rules, catalog.Default())
	engine.SetLogger(logger.Sugar())

	repo := store.NewMemoryRepository()
	if len(os.Args) == 2 {
		if err := preload(context.Background(), engine, repo, os.Args[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	model := tui.NewModel(engine, repo, logger.Sugar())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// preload evaluates every scenario in path and stores it for the TUI user.
func preload(ctx context.Context, engine *calculation.Engine, repo store.ScenarioRepository, path string) error {
	file, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return err
	}
	for _, s := range file.Scenarios {
		_, err := repo.Create(ctx, store.StoredScenario{
			Name:   s.Name,
			UserID: tui.LocalUser,
			Input:  s.Input,
			Result: engine.EvaluateNetIncome(s.Input),
		})
		if err != nil {
			return fmt.Errorf("failed to store scenario %q: %w", s.Name, err)
		}
	}
	return nil
}
