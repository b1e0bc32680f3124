package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/rulescalc/internal/calculation"
	"github.com/rgehrsitz/rulescalc/internal/store"
	"github.com/rgehrsitz/rulescalc/internal/tui"
)

func TestPreload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scenarios:
  - name: current
    input:
      gross_income: 50000
      pension_contribution_pct: 5
      housing_costs_monthly: 400
      household_members: 1
  - name: raise
    input:
      gross_income: 55000
      pension_contribution_pct: 5
      housing_costs_monthly: 400
      household_members: 1
`), 0644))

	repo := store.NewMemoryRepository()
	require.NoError(t, preload(context.Background(), calculation.NewEngine(), repo, path))

	saved, err := repo.List(context.Background(), tui.LocalUser)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "current", saved[0].Name)
	assert.Equal(t, "31555.16", saved[0].Result.NetIncome.StringFixed(2))
}

func TestPreload_MissingFile(t *testing.T) {
	err := preload(context.Background(), calculation.NewEngine(), store.NewMemoryRepository(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
