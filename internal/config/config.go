package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/linecost/internal/reconcile"
)

// FileName is the config file at the root of a linecost repository.
const FileName = "linecost.yaml"

// Config represents the top-level linecost.yaml configuration.
type Config struct {
	Project        ProjectConfig        `yaml:"project"`
	Source         SourceConfig         `yaml:"source"`
	Classification ClassificationConfig `yaml:"classification"`
	Risk           RiskConfig           `yaml:"risk"`
	Logging        LoggingConfig        `yaml:"logging"`
}

// ProjectConfig identifies the default project.
type ProjectConfig struct {
	Name     string `yaml:"name"`
	ID       string `yaml:"id"`
	Currency string `yaml:"currency"` // ISO 4217 code used for display
}

// SourceConfig selects where project snapshots are read from.
type SourceConfig struct {
	Kind   string `yaml:"kind"`              // "csv" or "sqlite"
	DBPath string `yaml:"db_path,omitempty"` // relative to the repo root
}

// ClassificationConfig tunes quote status classification.
type ClassificationConfig struct {
	// FullCoverageRatio is the share of estimated cost a single accepted
	// quote must reach to count as full coverage.
	FullCoverageRatio float64 `yaml:"full_coverage_ratio"`
}

// RiskConfig holds the additive risk score weights.
type RiskConfig struct {
	OverBudget        float64 `yaml:"over_budget"`
	AwaitingInvoice   float64 `yaml:"awaiting_invoice"`
	Unquoted          float64 `yaml:"unquoted"`
	PartialAllocation float64 `yaml:"partial_allocation"`
	Internal          float64 `yaml:"internal"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// Load reads a linecost.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("", "")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new repository.
func Default(projectName, projectID string) *Config {
	return &Config{
		Project: ProjectConfig{
			Name:     projectName,
			ID:       projectID,
			Currency: "USD",
		},
		Source: SourceConfig{
			Kind:   "csv",
			DBPath: "linecost.db",
		},
		Classification: ClassificationConfig{
			FullCoverageRatio: 0.90,
		},
		Risk: RiskConfig{
			OverBudget:        reconcile.DefaultOverBudgetWeight,
			AwaitingInvoice:   reconcile.DefaultAwaitingInvoiceWeight,
			Unquoted:          reconcile.DefaultUnquotedWeight,
			PartialAllocation: reconcile.DefaultPartialAllocationWeight,
			Internal:          reconcile.DefaultInternalWeight,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Policy converts the classification and risk settings into an engine policy.
func (c *Config) Policy() reconcile.Policy {
	return reconcile.Policy{
		FullCoverageRatio: decimal.NewFromFloat(c.Classification.FullCoverageRatio),
		Risk: reconcile.RiskWeights{
			OverBudget:        decimal.NewFromFloat(c.Risk.OverBudget),
			AwaitingInvoice:   decimal.NewFromFloat(c.Risk.AwaitingInvoice),
			Unquoted:          decimal.NewFromFloat(c.Risk.Unquoted),
			PartialAllocation: decimal.NewFromFloat(c.Risk.PartialAllocation),
			Internal:          decimal.NewFromFloat(c.Risk.Internal),
		},
	}
}
