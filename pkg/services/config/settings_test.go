package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lgu-tools/aip-atlas/pkg/services/analysis/budget"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathKeepsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, budget.DefaultSettings(), cfg.BudgetSettings())
	assert.Equal(t, validation.DefaultSettings(), cfg.ValidationSettings())
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_OverridesApplyOnTopOfDefaults(t *testing.T) {
	path := writeSettings(t, `
budget:
  history_limit: 5
  minimum_share: 2.5
  sector_weights:
    infrastructure: 0.7
    tourism: 0.6
validation:
  expense_overrun: 0.2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	budgetSettings := cfg.BudgetSettings()
	assert.Equal(t, 5, budgetSettings.HistoryLimit)
	assert.Equal(t, 2.5, budgetSettings.MinimumShare)
	assert.Equal(t, 0.7, budgetSettings.SectorWeights["Infrastructure"], "overrides match default sectors case-insensitively")
	assert.Equal(t, 0.6, budgetSettings.SectorWeights["tourism"], "new sectors can be added")
	assert.Equal(t, budget.DefaultSettings().SectorWeights["Health"], budgetSettings.SectorWeights["Health"])

	validationSettings := cfg.ValidationSettings()
	assert.Equal(t, 0.2, validationSettings.ExpenseOverrun)
	assert.Equal(t, validation.DefaultSettings().OverAllocation, validationSettings.OverAllocation)
	assert.Equal(t, validation.DefaultSettings().UnderAllocation, validationSettings.UnderAllocation)
}

func TestLoad_RationaleOverride(t *testing.T) {
	path := writeSettings(t, `
budget:
  sector_rationales:
    health: "Aligned with the municipal health investment plan."
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	settings := cfg.BudgetSettings()
	assert.Equal(t, "Aligned with the municipal health investment plan.", settings.SectorRationales["Health"])
}
