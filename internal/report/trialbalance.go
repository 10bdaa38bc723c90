package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/model"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

// TrialBalanceRow is one account's closing position, in the column matching
// its side. Exactly one column is non-zero unless the account nets to zero.
type TrialBalanceRow struct {
	AccountID   int
	AccountName string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// TrialBalance asserts total debits equal total credits across all accounts
// as of now; there is no date filtering. A difference between the totals is
// an integrity fault the caller must surface.
type TrialBalance struct {
	GeneratedOn  date.Date
	Rows         []TrialBalanceRow
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

// Check returns an integrity fault when the totals differ. The report itself
// is still produced; the fault is reportable, not blocking.
func (tb TrialBalance) Check() error {
	if tb.TotalDebits.Equal(tb.TotalCredits) {
		return nil
	}
	return fmt.Errorf("debits %s != credits %s (difference %s): %w",
		tb.TotalDebits.StringFixed(2), tb.TotalCredits.StringFixed(2),
		tb.TotalDebits.Sub(tb.TotalCredits).Abs().StringFixed(2),
		model.ErrIntegrityFault)
}

// TrialBalance computes, for every account, the fixed opening balance plus
// the signed sum of every voucher line referencing it, debit positive.
func (g *Generator) TrialBalance(ctx context.Context) (TrialBalance, error) {
	accounts, err := store.Load[model.Account](ctx, g.store, g.tenant, store.Accounts)
	if err != nil {
		return TrialBalance{}, err
	}
	vouchers, err := store.Load[model.Voucher](ctx, g.store, g.tenant, store.Vouchers)
	if err != nil {
		return TrialBalance{}, err
	}

	// Voucher line sums per account, debit positive. Lines against deleted
	// accounts are orphans and fall out of the report.
	sums := make(map[int]decimal.Decimal, len(accounts))
	for _, v := range vouchers {
		for _, l := range v.Lines {
			if l.Side == model.Debit {
				sums[l.AccountID] = sums[l.AccountID].Add(l.Amount)
			} else {
				sums[l.AccountID] = sums[l.AccountID].Sub(l.Amount)
			}
		}
	}

	tb := TrialBalance{
		GeneratedOn:  date.Today(),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, a := range accounts {
		signed := a.OpeningSigned().Neg() // debit positive
		signed = signed.Add(sums[a.ID])

		row := TrialBalanceRow{AccountID: a.ID, AccountName: a.Name, Debit: decimal.Zero, Credit: decimal.Zero}
		switch {
		case signed.IsPositive():
			row.Debit = signed
			tb.TotalDebits = tb.TotalDebits.Add(signed)
		case signed.IsNegative():
			row.Credit = signed.Neg()
			tb.TotalCredits = tb.TotalCredits.Add(signed.Neg())
		}
		tb.Rows = append(tb.Rows, row)
	}
	return tb, nil
}
