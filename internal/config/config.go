package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config filename looked for in the working directory.
const DefaultFile = "schoolbooks.yaml"

// Config represents the top-level schoolbooks.yaml configuration.
type Config struct {
	Institution InstitutionConfig `yaml:"institution"`
	Ledger      LedgerConfig      `yaml:"ledger"`
	Database    DatabaseConfig    `yaml:"database"`
}

// InstitutionConfig identifies the school whose books these are.
type InstitutionConfig struct {
	Name   string `yaml:"name"`
	Tenant string `yaml:"tenant"`
}

// LedgerConfig controls bookkeeping behavior.
type LedgerConfig struct {
	// AccountingModel is "simple" or "double"; it selects how fee
	// payments are materialized in the books.
	AccountingModel string `yaml:"accounting_model"`
	// Currency is the ISO 4217 code used when rendering amounts.
	Currency string `yaml:"currency"`
	// CashAccountID names the account vouchers move cash through.
	CashAccountID int `yaml:"cash_account_id"`
}

// DatabaseConfig locates the SQLite file backing the store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// Load reads a schoolbooks.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyEnv()
	return &cfg, nil
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

// Default returns a Config with sensible defaults for a new institution.
func Default(institutionName string) *Config {
	return &Config{
		Institution: InstitutionConfig{
			Name:   institutionName,
			Tenant: "default",
		},
		Ledger: LedgerConfig{
			AccountingModel: "simple",
			Currency:        "INR",
			CashAccountID:   1,
		},
		Database: DatabaseConfig{
			Path: "schoolbooks.db",
		},
	}
}

// applyEnv overlays SCHOOLBOOKS_* environment variables, which win over the
// file. The variables are typically sourced from a .env file at startup.
func (c *Config) applyEnv() {
	if v := os.Getenv("SCHOOLBOOKS_TENANT"); v != "" {
		c.Institution.Tenant = v
	}
	if v := os.Getenv("SCHOOLBOOKS_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("SCHOOLBOOKS_MODEL"); v != "" {
		c.Ledger.AccountingModel = v
	}
}
