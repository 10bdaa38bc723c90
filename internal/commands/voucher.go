package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/ledger"
	"github.com/schoolbooks-dev/schoolbooks/internal/model"
)

func newVoucherCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voucher",
		Short: "Post and inspect double-entry vouchers",
	}
	cmd.AddCommand(newVoucherPostCommand(configPath))
	cmd.AddCommand(newVoucherListCommand(configPath))
	cmd.AddCommand(newVoucherDeleteCommand(configPath))
	return cmd
}

func newVoucherPostCommand(configPath *string) *cobra.Command {
	var dateStr string
	var typeStr string
	var narration string
	var debits []string
	var credits []string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a voucher",
		Long: `Post a voucher. Lines are given as repeated --debit and --credit flags
in ACCOUNT:AMOUNT form, e.g.

  schoolbooks voucher post --type payment --debit 4:500 --credit 1:500`,
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
			vtype, err := parseVoucherType(typeStr)
			if err != nil {
				return err
			}

			var lines []ledger.LineInput
			for _, spec := range debits {
				line, err := parseLineSpec(spec, model.Debit)
				if err != nil {
					return err
				}
				lines = append(lines, line)
			}
			for _, spec := range credits {
				line, err := parseLineSpec(spec, model.Credit)
				if err != nil {
					return err
				}
				lines = append(lines, line)
			}

			v, err := a.ledger.PostVoucher(cmd.Context(), ledger.VoucherParams{
				Date:      on,
				Type:      vtype,
				Narration: narration,
				Lines:     lines,
			})
			if err != nil {
				return err
			}

			debit, _ := v.Totals()
			fmt.Printf("Posted voucher #%d (%s, %s)\n", v.Number, v.ID, a.amount(debit))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", date.Today().String(), "voucher date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&typeStr, "type", "journal", "voucher type: payment, receipt, journal or contra")
	cmd.Flags().StringVar(&narration, "narration", "", "narration text")
	cmd.Flags().StringArrayVar(&debits, "debit", nil, "debit line ACCOUNT:AMOUNT (repeatable)")
	cmd.Flags().StringArrayVar(&credits, "credit", nil, "credit line ACCOUNT:AMOUNT (repeatable)")

	return cmd
}

func newVoucherListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vouchers",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			vouchers, err := a.ledger.Vouchers(cmd.Context())
			if err != nil {
				return err
			}
			for _, v := range vouchers {
				debit, _ := v.Totals()
				fmt.Printf("#%d  %s  %s  %s  %s  %s\n", v.Number, v.ID, v.Date, v.Type, a.amount(debit), v.Narration)
			}
			return nil
		},
	}
}

func newVoucherDeleteCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <voucher-id>",
		Short: "Delete a voucher by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.ledger.DeleteVoucher(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func parseVoucherType(s string) (model.VoucherType, error) {
	switch model.VoucherType(strings.ToLower(s)) {
	case model.VoucherPayment:
		return model.VoucherPayment, nil
	case model.VoucherReceipt:
		return model.VoucherReceipt, nil
	case model.VoucherJournal:
		return model.VoucherJournal, nil
	case model.VoucherContra:
		return model.VoucherContra, nil
	}
	return "", fmt.Errorf("unknown voucher type %q", s)
}

// parseLineSpec parses an ACCOUNT:AMOUNT flag value into a voucher line on
// the given side.
func parseLineSpec(spec string, side model.Side) (ledger.LineInput, error) {
	acctStr, amountStr, ok := strings.Cut(spec, ":")
	if !ok {
		return ledger.LineInput{}, fmt.Errorf("line %q: want ACCOUNT:AMOUNT", spec)
	}
	accountID, err := strconv.Atoi(strings.TrimSpace(acctStr))
	if err != nil {
		return ledger.LineInput{}, fmt.Errorf("line %q: bad account id", spec)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(amountStr))
	if err != nil {
		return ledger.LineInput{}, fmt.Errorf("line %q: bad amount", spec)
	}

	line := ledger.LineInput{AccountID: accountID}
	if side == model.Debit {
		line.Debit = amount
	} else {
		line.Credit = amount
	}
	return line, nil
}
