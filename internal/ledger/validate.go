package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/model"
)

// Epsilon is the tolerance for the debit/credit match. Amounts arriving from
// spreadsheet imports were float-rounded upstream; internally all arithmetic
// is exact decimal, so this only ever absorbs inherited rounding.
var Epsilon = decimal.New(1, -2) // 0.01

// AccountResolver tests whether an account ID exists in the chart of accounts.
type AccountResolver interface {
	Exists(ctx context.Context, accountID int) (bool, error)
}

// LineInput is a voucher line as entered: an account and at most one side
// carrying an amount. A line with both sides set, or neither, is invalid and
// is excluded before totals are computed.
type LineInput struct {
	AccountID int
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// ValidationError describes a voucher invariant violation.
type ValidationError struct {
	Kind        error
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Description)
}

// Unwrap exposes the error kind to errors.Is.
func (e ValidationError) Unwrap() error { return e.Kind }

// ValidateLines checks voucher lines against the double-entry invariants and
// returns the effective lines in model form. The checks run in order:
// effective-line count, account resolution, balance. Nothing is mutated on
// failure.
func ValidateLines(ctx context.Context, accounts AccountResolver, lines []LineInput) ([]model.VoucherLine, error) {
	var (
		effective  []model.VoucherLine
		unresolved []int
	)

	for _, l := range lines {
		hasDebit := l.Debit.IsPositive()
		hasCredit := l.Credit.IsPositive()
		if hasDebit == hasCredit {
			// Both or neither side set: excluded, never counted.
			continue
		}

		ok, err := accounts.Exists(ctx, l.AccountID)
		if err != nil {
			return nil, err
		}
		if !ok {
			unresolved = append(unresolved, l.AccountID)
			continue
		}

		line := model.VoucherLine{AccountID: l.AccountID, Side: model.Debit, Amount: l.Debit}
		if hasCredit {
			line.Side = model.Credit
			line.Amount = l.Credit
		}
		effective = append(effective, line)
	}

	if len(effective) < 2 {
		return nil, ValidationError{
			Kind:        model.ErrTooFewLines,
			Description: fmt.Sprintf("%d effective line(s), need at least 2", len(effective)),
		}
	}
	if len(unresolved) > 0 {
		return nil, ValidationError{
			Kind:        model.ErrUnresolvedAccount,
			Description: fmt.Sprintf("unknown account(s) %v", unresolved),
		}
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range effective {
		if l.Side == model.Debit {
			totalDebit = totalDebit.Add(l.Amount)
		} else {
			totalCredit = totalCredit.Add(l.Amount)
		}
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(Epsilon) {
		return nil, ValidationError{
			Kind:        model.ErrUnbalanced,
			Description: fmt.Sprintf("debits (%s) != credits (%s)", totalDebit.StringFixed(2), totalCredit.StringFixed(2)),
		}
	}
	if !totalDebit.IsPositive() {
		return nil, ValidationError{
			Kind:        model.ErrUnbalanced,
			Description: "voucher total must be positive",
		}
	}

	return effective, nil
}
