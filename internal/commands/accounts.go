package commands

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/schoolbooks-dev/schoolbooks/internal/coa"
	"github.com/schoolbooks-dev/schoolbooks/internal/model"
)

func newCategoryCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage account categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.chart.CreateCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created category %d: %s\n", c.ID, c.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad category id %q", args[0])
			}
			return a.chart.RenameCategory(cmd.Context(), id, args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an unused category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad category id %q", args[0])
			}
			return a.chart.DeleteCategory(cmd.Context(), id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			cats, err := a.chart.Categories(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range cats {
				marker := ""
				if c.IsSystem {
					marker = "  (system)"
				}
				fmt.Printf("%d  %s%s\n", c.ID, c.Name, marker)
			}
			return nil
		},
	})

	return cmd
}

func newAccountCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the chart of accounts",
	}

	var categoryID int
	var openingStr string
	var openingSide string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			params := coa.AccountParams{Name: args[0], CategoryID: categoryID}
			if openingStr != "" {
				params.OpeningBalance, err = decimal.NewFromString(openingStr)
				if err != nil {
					return fmt.Errorf("parsing opening balance: %w", err)
				}
				params.OpeningBalanceType = model.Side(openingSide)
			}

			acct, err := a.chart.CreateAccount(cmd.Context(), params)
			if err != nil {
				return err
			}
			fmt.Printf("Created account %d: %s\n", acct.ID, acct.Name)
			return nil
		},
	}
	add.Flags().IntVar(&categoryID, "category", 0, "category id (required)")
	_ = add.MarkFlagRequired("category")
	add.Flags().StringVar(&openingStr, "opening", "", "fixed opening balance")
	add.Flags().StringVar(&openingSide, "opening-side", "credit", "opening balance side: debit or credit")
	cmd.AddCommand(add)

	var editName string
	var editCategory int
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad account id %q", args[0])
			}
			current, err := a.chart.Account(cmd.Context(), id)
			if err != nil {
				return err
			}

			params := coa.AccountParams{
				Name:               current.Name,
				CategoryID:         current.CategoryID,
				OpeningBalance:     current.OpeningBalance,
				OpeningBalanceType: current.OpeningBalanceType,
			}
			if editName != "" {
				params.Name = editName
			}
			if editCategory != 0 {
				params.CategoryID = editCategory
			}
			return a.chart.EditAccount(cmd.Context(), id, params)
		},
	}
	edit.Flags().StringVar(&editName, "name", "", "new account name")
	edit.Flags().IntVar(&editCategory, "category", 0, "new category id")
	cmd.AddCommand(edit)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad account id %q", args[0])
			}
			return a.chart.DeleteAccount(cmd.Context(), id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			accounts, err := a.chart.Accounts(cmd.Context())
			if err != nil {
				return err
			}
			for _, acct := range accounts {
				marker := ""
				if acct.IsStudentAccount {
					marker = "  (student)"
				}
				fmt.Printf("%d  %-28s category %d%s\n", acct.ID, acct.Name, acct.CategoryID, marker)
			}
			return nil
		},
	})

	return cmd
}
