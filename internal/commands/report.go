package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/model"
	"github.com/schoolbooks-dev/schoolbooks/internal/report"
)

func newDayBookCommand(configPath *string) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "daybook",
		Short: "Show the cash book for a date",
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
			db, err := a.reports.DayBook(cmd.Context(), on)
			if err != nil {
				return err
			}
			printDayBook(a, db)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", date.Today().String(), "report date (YYYY-MM-DD)")
	return cmd
}

func printDayBook(a *app, db report.DayBook) {
	fmt.Printf("Day book for %s\n", db.Date)
	fmt.Printf("Opening balance: %s %s\n", a.amount(db.Opening.Amount), db.Opening.Type)
	if len(db.Income) > 0 {
		fmt.Println("Income:")
		for _, l := range db.Income {
			fmt.Printf("  %-16s %-24s %12s  %s\n", l.SourceID, l.AccountName, a.amount(l.Amount), l.Remarks)
		}
	}
	if len(db.Expenditure) > 0 {
		fmt.Println("Expenditure:")
		for _, l := range db.Expenditure {
			fmt.Printf("  %-16s %-24s %12s  %s\n", l.SourceID, l.AccountName, a.amount(l.Amount), l.Remarks)
		}
	}
	fmt.Printf("Total income: %s  Total expenditure: %s\n", a.amount(db.TotalIncome), a.amount(db.TotalExpenditure))
	fmt.Printf("Closing balance: %s %s\n", a.amount(db.Closing.Amount), db.Closing.Type)
}

func newStatementCommand(configPath *string) *cobra.Command {
	var accountID int
	var fromStr string
	var toStr string

	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Show an account's ledger statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			from, err := date.Parse(fromStr)
			if err != nil {
				return err
			}
			to, err := date.Parse(toStr)
			if err != nil {
				return err
			}
			st, err := a.reports.Statement(cmd.Context(), accountID, from, to)
			if err != nil {
				return err
			}

			fmt.Printf("Ledger statement: %s (%d), %s to %s\n", st.Account.Name, st.Account.ID, st.From, st.To)
			fmt.Printf("Opening: %s\n", a.amount(st.Opening))
			for _, row := range st.Rows {
				ref := row.SourceID
				if row.VoucherNumber > 0 {
					ref = fmt.Sprintf("#%d", row.VoucherNumber)
				}
				fmt.Printf("  %s  %-10s %-6s %12s  balance %12s  %s\n",
					row.Date, ref, row.Side, a.amount(row.Amount), a.amount(row.Balance), row.Narration)
			}
			fmt.Printf("Closing: %s\n", a.amount(st.Closing))
			return nil
		},
	}

	cmd.Flags().IntVar(&accountID, "account", 0, "account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&fromStr, "from", "", "range start YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("from")
	cmd.Flags().StringVar(&toStr, "to", date.Today().String(), "range end YYYY-MM-DD")

	return cmd
}

func newTrialBalanceCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "trial-balance",
		Short: "Show the trial balance across all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			tb, err := a.reports.TrialBalance(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Trial balance as of %s\n", tb.GeneratedOn)
			for _, row := range tb.Rows {
				fmt.Printf("  %-28s %14s %14s\n", row.AccountName, a.amount(row.Debit), a.amount(row.Credit))
			}
			fmt.Printf("  %-28s %14s %14s\n", "TOTAL", a.amount(tb.TotalDebits), a.amount(tb.TotalCredits))

			if err := tb.Check(); err != nil {
				if errors.Is(err, model.ErrIntegrityFault) {
					fmt.Printf("WARNING: %v\n", err)
					return nil
				}
				return err
			}
			return nil
		},
	}
}
