package report

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/model"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

// StatementRow is one movement on the account, with the running balance after
// the movement is applied. Delta and Balance are signed, credit positive.
type StatementRow struct {
	Date          date.Date
	SourceID      string
	VoucherNumber int // 0 for simple postings
	Narration     string
	Side          model.Side
	Amount        decimal.Decimal
	Delta         decimal.Decimal
	Balance       decimal.Decimal
}

// Statement is the ledger report for one account over a date range. The
// opening is the account's own fixed opening balance, a declared anchor, not
// a date-derived value.
type Statement struct {
	Account model.Account
	From    date.Date
	To      date.Date
	Opening decimal.Decimal
	Rows    []StatementRow
	Closing decimal.Decimal
}

// Statement generates the ledger report for an account over [from, to].
func (g *Generator) Statement(ctx context.Context, accountID int, from, to date.Date) (Statement, error) {
	accounts, err := store.Load[model.Account](ctx, g.store, g.tenant, store.Accounts)
	if err != nil {
		return Statement{}, err
	}
	var account model.Account
	found := false
	for _, a := range accounts {
		if a.ID == accountID {
			account, found = a, true
			break
		}
	}
	if !found {
		return Statement{}, fmt.Errorf("account %d: %w", accountID, model.ErrUnresolvedAccount)
	}

	rows, err := g.movements(ctx, accountID, from, to)
	if err != nil {
		return Statement{}, err
	}

	// Chronological, with same-date double-entry rows in voucher-number
	// order. Simple postings sort ahead of vouchers within a day.
	slices.SortStableFunc(rows, func(a, b StatementRow) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if c := a.VoucherNumber - b.VoucherNumber; c != 0 {
			return c
		}
		if a.SourceID < b.SourceID {
			return -1
		}
		if a.SourceID > b.SourceID {
			return 1
		}
		return 0
	})

	st := Statement{
		Account: account,
		From:    from,
		To:      to,
		Opening: account.OpeningSigned(),
	}
	running := st.Opening
	for _, row := range rows {
		running = running.Add(row.Delta)
		row.Balance = running
		st.Rows = append(st.Rows, row)
	}
	st.Closing = running
	return st, nil
}

func (g *Generator) movements(ctx context.Context, accountID int, from, to date.Date) ([]StatementRow, error) {
	inRange := func(d date.Date) bool {
		return !d.Before(from) && !d.After(to)
	}

	var rows []StatementRow

	incomes, err := store.Load[model.IncomeEntry](ctx, g.store, g.tenant, store.Income)
	if err != nil {
		return nil, err
	}
	for _, e := range incomes {
		if e.AccountID != accountID || !inRange(e.Date) {
			continue
		}
		rows = append(rows, StatementRow{
			Date: e.Date, SourceID: e.ID, Narration: e.Remarks,
			Side: model.Credit, Amount: e.Amount, Delta: e.Amount,
		})
	}

	expenditures, err := store.Load[model.Expenditure](ctx, g.store, g.tenant, store.Expenditure)
	if err != nil {
		return nil, err
	}
	for _, e := range expenditures {
		if e.AccountID != accountID || !inRange(e.Date) {
			continue
		}
		rows = append(rows, StatementRow{
			Date: e.Date, SourceID: e.ID, Narration: e.Remarks,
			Side: model.Debit, Amount: e.Amount, Delta: e.Amount.Neg(),
		})
	}

	vouchers, err := store.Load[model.Voucher](ctx, g.store, g.tenant, store.Vouchers)
	if err != nil {
		return nil, err
	}
	for _, v := range vouchers {
		if !inRange(v.Date) {
			continue
		}
		for _, l := range v.Lines {
			if l.AccountID != accountID {
				continue
			}
			rows = append(rows, StatementRow{
				Date: v.Date, SourceID: v.ID, VoucherNumber: v.Number,
				Narration: v.Narration, Side: l.Side, Amount: l.Amount,
				Delta: l.Signed(),
			})
		}
	}

	return rows, nil
}
