package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/schoolbooks-dev/schoolbooks/internal/coa"
	"github.com/schoolbooks-dev/schoolbooks/internal/config"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string
	var model string
	var currency string
	var tenant string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new set of books",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), absDir, name, model, currency, tenant)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "institution name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&model, "model", "simple", "accounting model: simple or double")
	cmd.Flags().StringVar(&currency, "currency", "INR", "ISO 4217 currency code")
	cmd.Flags().StringVar(&tenant, "tenant", "default", "tenant the books belong to")

	return cmd
}

func runInit(ctx context.Context, dir, name, model, currency, tenant string) error {
	if model != "simple" && model != "double" {
		return fmt.Errorf("unknown accounting model %q", model)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	configPath := filepath.Join(dir, config.DefaultFile)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}

	cfg := config.Default(name)
	cfg.Institution.Tenant = tenant
	cfg.Ledger.AccountingModel = model
	cfg.Ledger.Currency = currency
	cfg.Database.Path = filepath.Join(dir, "schoolbooks.db")
	if err := config.Save(configPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Seed the chart of accounts.
	db, err := store.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	chart := coa.NewService(db, tenant)
	if err := chart.Bootstrap(ctx); err != nil {
		return fmt.Errorf("seeding chart of accounts: %w", err)
	}

	fmt.Printf("Initialized books for %s at %s\n", name, dir)
	return nil
}
