package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/ledger"
)

func newIncomeCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Record and inspect income entries",
	}
	cmd.AddCommand(newEntryAddCommand(configPath, "income"))
	cmd.AddCommand(newIncomeListCommand(configPath))
	cmd.AddCommand(newEntryDeleteCommand(configPath))
	return cmd
}

func newExpenseCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and inspect expenditure entries",
	}
	cmd.AddCommand(newEntryAddCommand(configPath, "expense"))
	cmd.AddCommand(newExpenseListCommand(configPath))
	cmd.AddCommand(newEntryDeleteCommand(configPath))
	return cmd
}

func newEntryAddCommand(configPath *string, kind string) *cobra.Command {
	var dateStr string
	var accountID int
	var amountStr string
	var remarks string

	cmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Record an %s entry", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			on, err := date.Parse(dateStr)
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
			}

			params := ledger.EntryParams{Date: on, AccountID: accountID, Amount: amount, Remarks: remarks}
			var id string
			if kind == "income" {
				entry, err := a.ledger.RecordIncome(cmd.Context(), params)
				if err != nil {
					return err
				}
				id = entry.ID
			} else {
				entry, err := a.ledger.RecordExpenditure(cmd.Context(), params)
				if err != nil {
					return err
				}
				id = entry.ID
			}
			fmt.Printf("Recorded %s %s (%s)\n", kind, id, a.amount(amount))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", date.Today().String(), "entry date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&accountID, "account", 0, "account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&remarks, "remarks", "", "free-text remarks")

	return cmd
}

func newIncomeListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List income entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.ledger.Incomes(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s  %s  account %d  %s  %s\n", e.ID, e.Date, e.AccountID, a.amount(e.Amount), e.Remarks)
			}
			return nil
		},
	}
}

func newExpenseListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List expenditure entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.ledger.Expenditures(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s  %s  account %d  %s  %s\n", e.ID, e.Date, e.AccountID, a.amount(e.Amount), e.Remarks)
			}
			return nil
		},
	}
}

func newEntryDeleteCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete an entry by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.ledger.DeleteEntry(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}
