package commands

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/registry"
)

func newClassCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "class",
		Short: "Manage classes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.registry.CreateClass(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created class %d: %s\n", c.ID, c.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a class",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad class id %q", args[0])
			}
			return a.registry.RenameClass(cmd.Context(), id, args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a class with no students",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad class id %q", args[0])
			}
			return a.registry.DeleteClass(cmd.Context(), id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			classes, err := a.registry.Classes(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range classes {
				fmt.Printf("%d  %s\n", c.ID, c.Name)
			}
			return nil
		},
	})

	return cmd
}

func newStudentCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Manage students",
	}

	var classID int
	var rollNo string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Enroll a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.registry.CreateStudent(cmd.Context(), registry.StudentParams{
				Name:    args[0],
				ClassID: classID,
				RollNo:  rollNo,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Enrolled student %d: %s (account %d)\n", s.ID, s.Name, s.AccountID)
			return nil
		},
	}
	add.Flags().IntVar(&classID, "class", 0, "class id (required)")
	_ = add.MarkFlagRequired("class")
	add.Flags().StringVar(&rollNo, "roll", "", "roll number")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a student",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad student id %q", args[0])
			}
			return a.registry.RenameStudent(cmd.Context(), id, args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a student and their fee history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad student id %q", args[0])
			}
			return a.registry.DeleteStudent(cmd.Context(), id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List students",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			students, err := a.registry.Students(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range students {
				fmt.Printf("%d  %s  class %d  roll %s  account %d\n", s.ID, s.Name, s.ClassID, s.RollNo, s.AccountID)
			}
			return nil
		},
	})

	return cmd
}

func newFeeCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fee",
		Short: "Record and inspect student fee payments",
	}

	var studentID int
	var dateStr string
	var amountStr string
	var remarks string
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a fee payment",
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

			p, err := a.registry.RecordFeePayment(cmd.Context(), registry.FeeParams{
				StudentID: studentID,
				Date:      on,
				Amount:    amount,
				Remarks:   remarks,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Recorded fee payment %s (%s)\n", p.ID, a.amount(p.Amount))
			return nil
		},
	}
	add.Flags().IntVar(&studentID, "student", 0, "student id (required)")
	_ = add.MarkFlagRequired("student")
	add.Flags().StringVar(&dateStr, "date", date.Today().String(), "payment date (YYYY-MM-DD)")
	add.Flags().StringVar(&amountStr, "amount", "", "amount (required)")
	_ = add.MarkFlagRequired("amount")
	add.Flags().StringVar(&remarks, "remarks", "", "free-text remarks")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <payment-id>",
		Short: "Delete a fee payment and its ledger record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.registry.DeleteFeePayment(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List fee payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			payments, err := a.registry.FeePayments(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range payments {
				fmt.Printf("%s  %s  student %d  %s  %s\n", p.ID, p.Date, p.StudentID, a.amount(p.Amount), p.Remarks)
			}
			return nil
		},
	})

	return cmd
}
