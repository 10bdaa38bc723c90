// Package report shapes the balance engine's output into the three
// presentation reports: day book, account statement and trial balance.
// Generators only read; they never mutate a store.
package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/balance"
	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/model"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

// Generator builds reports for one tenant.
type Generator struct {
	store         store.Store
	tenant        string
	engine        *balance.Engine
	cashAccountID int
}

// NewGenerator creates a report Generator sharing the engine's cash account.
func NewGenerator(s store.Store, tenant string, engine *balance.Engine, cashAccountID int) *Generator {
	return &Generator{store: s, tenant: tenant, engine: engine, cashAccountID: cashAccountID}
}

// DayBookLine is one money movement in the day book.
type DayBookLine struct {
	SourceID    string
	AccountID   int
	AccountName string
	Amount      decimal.Decimal
	Remarks     string
}

// DayBook is the cash book for a single date: opening balance, the day's
// movements grouped income/expenditure, and the derived closing balance.
type DayBook struct {
	Date             date.Date
	Opening          balance.Balance
	Income           []DayBookLine
	Expenditure      []DayBookLine
	TotalIncome      decimal.Decimal
	TotalExpenditure decimal.Decimal
	Closing          balance.Balance
}

// DayBook generates the day book for one date.
func (g *Generator) DayBook(ctx context.Context, d date.Date) (DayBook, error) {
	opening, err := g.engine.OpeningBalance(ctx, d)
	if err != nil {
		return DayBook{}, err
	}

	accounts, err := store.Load[model.Account](ctx, g.store, g.tenant, store.Accounts)
	if err != nil {
		return DayBook{}, err
	}
	names := make(map[int]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	book := DayBook{
		Date:             d,
		Opening:          opening,
		TotalIncome:      decimal.Zero,
		TotalExpenditure: decimal.Zero,
	}

	incomes, err := store.Load[model.IncomeEntry](ctx, g.store, g.tenant, store.Income)
	if err != nil {
		return DayBook{}, err
	}
	for _, e := range incomes {
		name, known := names[e.AccountID]
		if e.Date != d || !known {
			continue
		}
		book.Income = append(book.Income, DayBookLine{
			SourceID: e.ID, AccountID: e.AccountID, AccountName: name,
			Amount: e.Amount, Remarks: e.Remarks,
		})
		book.TotalIncome = book.TotalIncome.Add(e.Amount)
	}

	expenditures, err := store.Load[model.Expenditure](ctx, g.store, g.tenant, store.Expenditure)
	if err != nil {
		return DayBook{}, err
	}
	for _, e := range expenditures {
		name, known := names[e.AccountID]
		if e.Date != d || !known {
			continue
		}
		book.Expenditure = append(book.Expenditure, DayBookLine{
			SourceID: e.ID, AccountID: e.AccountID, AccountName: name,
			Amount: e.Amount, Remarks: e.Remarks,
		})
		book.TotalExpenditure = book.TotalExpenditure.Add(e.Amount)
	}

	vouchers, err := store.Load[model.Voucher](ctx, g.store, g.tenant, store.Vouchers)
	if err != nil {
		return DayBook{}, err
	}
	for _, v := range vouchers {
		if v.Date != d {
			continue
		}
		delta := v.CashDelta(g.cashAccountID)
		if delta.IsZero() {
			continue
		}
		contraID, contraName := g.contra(v, names)
		line := DayBookLine{
			SourceID: v.ID, AccountID: contraID, AccountName: contraName,
			Amount: delta.Abs(), Remarks: v.Narration,
		}
		if delta.IsPositive() {
			book.Income = append(book.Income, line)
			book.TotalIncome = book.TotalIncome.Add(line.Amount)
		} else {
			book.Expenditure = append(book.Expenditure, line)
			book.TotalExpenditure = book.TotalExpenditure.Add(line.Amount)
		}
	}

	closing := opening.Signed().Add(book.TotalIncome).Sub(book.TotalExpenditure)
	book.Closing = balance.FromSigned(closing)
	return book, nil
}

// contra picks the account a voucher's cash movement is displayed against:
// the first non-cash line, falling back to the cash account itself.
func (g *Generator) contra(v model.Voucher, names map[int]string) (int, string) {
	for _, l := range v.Lines {
		if l.AccountID != g.cashAccountID {
			return l.AccountID, names[l.AccountID]
		}
	}
	return g.cashAccountID, names[g.cashAccountID]
}
