// Package config loads optional analyzer settings overrides from a file.
// Absent file or absent keys fall back to the built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/lgu-tools/aip-atlas/pkg/services/analysis/budget"
	"github.com/lgu-tools/aip-atlas/pkg/services/analysis/validation"
	"github.com/spf13/viper"
)

type BudgetConfig struct {
	HistoryLimit     int                `mapstructure:"history_limit"`
	MinimumShare     float64            `mapstructure:"minimum_share"`
	SectorWeights    map[string]float64 `mapstructure:"sector_weights"`
	SectorRationales map[string]string  `mapstructure:"sector_rationales"`
}

type ValidationConfig struct {
	OverAllocation  float64 `mapstructure:"over_allocation"`
	UnderAllocation float64 `mapstructure:"under_allocation"`
	ExpenseOverrun  float64 `mapstructure:"expense_overrun"`
}

type Config struct {
	Budget     BudgetConfig     `mapstructure:"budget"`
	Validation ValidationConfig `mapstructure:"validation"`
}

// Load reads a settings file. An empty path returns an empty Config so every
// setting stays at its default.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &cfg, nil
}

// BudgetSettings applies the configured overrides on top of the defaults.
func (c *Config) BudgetSettings() budget.Settings {
	settings := budget.DefaultSettings()
	if c.Budget.HistoryLimit > 0 {
		settings.HistoryLimit = c.Budget.HistoryLimit
	}
	if c.Budget.MinimumShare > 0 {
		settings.MinimumShare = c.Budget.MinimumShare
	}
	// viper lowercases map keys, so overrides are matched against the
	// default sector names case-insensitively.
	for sector, weight := range c.Budget.SectorWeights {
		settings.SectorWeights[canonicalKey(settings.SectorWeights, sector)] = weight
	}
	for sector, rationale := range c.Budget.SectorRationales {
		settings.SectorRationales[canonicalKey(settings.SectorRationales, sector)] = rationale
	}
	return settings
}

func canonicalKey[V any](existing map[string]V, key string) string {
	for k := range existing {
		if strings.EqualFold(k, key) {
			return k
		}
	}
	return key
}

// ValidationSettings applies the configured overrides on top of the defaults.
func (c *Config) ValidationSettings() validation.Settings {
	settings := validation.DefaultSettings()
	if c.Validation.OverAllocation > 0 {
		settings.OverAllocation = c.Validation.OverAllocation
	}
	if c.Validation.UnderAllocation > 0 {
		settings.UnderAllocation = c.Validation.UnderAllocation
	}
	if c.Validation.ExpenseOverrun > 0 {
		settings.ExpenseOverrun = c.Validation.ExpenseOverrun
	}
	return settings
}
