// Package commands wires the services into the schoolbooks CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schoolbooks-dev/schoolbooks/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "schoolbooks",
		Short:   "Ledger and fee bookkeeping for schools",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "schoolbooks.yaml", "path to the config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newCategoryCommand(&configPath))
	rootCmd.AddCommand(newAccountCommand(&configPath))
	rootCmd.AddCommand(newIncomeCommand(&configPath))
	rootCmd.AddCommand(newExpenseCommand(&configPath))
	rootCmd.AddCommand(newVoucherCommand(&configPath))
	rootCmd.AddCommand(newOpeningCommand(&configPath))
	rootCmd.AddCommand(newDayBookCommand(&configPath))
	rootCmd.AddCommand(newStatementCommand(&configPath))
	rootCmd.AddCommand(newTrialBalanceCommand(&configPath))
	rootCmd.AddCommand(newClassCommand(&configPath))
	rootCmd.AddCommand(newStudentCommand(&configPath))
	rootCmd.AddCommand(newFeeCommand(&configPath))
	rootCmd.AddCommand(newImportCommand(&configPath))
	rootCmd.AddCommand(newExportCommand(&configPath))
	rootCmd.AddCommand(newRestoreCommand(&configPath))

	return rootCmd
}
