package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/model"
)

func newOpeningCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opening",
		Short: "Manage cash book opening balance anchors",
	}
	cmd.AddCommand(newOpeningSetCommand(configPath))
	cmd.AddCommand(newOpeningRemoveCommand(configPath))
	cmd.AddCommand(newOpeningListCommand(configPath))
	return cmd
}

func newOpeningSetCommand(configPath *string) *cobra.Command {
	var dateStr string
	var amountStr string
	var side string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Declare the opening balance for a date",
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
			var s model.Side
			switch side {
			case "debit":
				s = model.Debit
			case "credit":
				s = model.Credit
			default:
				return fmt.Errorf("side must be debit or credit, got %q", side)
			}

			if err := a.ledger.SetOpeningBalance(cmd.Context(), on, amount, s); err != nil {
				return err
			}
			fmt.Printf("Opening balance on %s set to %s %s\n", on, a.amount(amount), s)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "anchor date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&amountStr, "amount", "", "balance amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&side, "side", "credit", "balance side: debit or credit")

	return cmd
}

func newOpeningRemoveCommand(configPath *string) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove the opening balance anchor for a date",
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
			if err := a.ledger.RemoveOpeningBalance(cmd.Context(), on); err != nil {
				return err
			}
			fmt.Printf("Removed opening balance anchor on %s\n", on)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "anchor date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newOpeningListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List opening balance anchors",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			overrides, err := a.ledger.Overrides(cmd.Context())
			if err != nil {
				return err
			}
			for _, o := range overrides {
				fmt.Printf("%s  %s %s\n", o.Date, a.amount(o.Amount), o.Type)
			}
			return nil
		},
	}
}
