// Package balance derives balances from the ledger stores. It holds no state
// of its own: every query re-reads the stores and replays history, so results
// stay correct when postings are inserted, edited or deleted out of
// chronological order.
package balance

import (
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/model"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

// Balance is an unsigned amount on a named side. Credit is the positive,
// asset side; debit means owed.
type Balance struct {
	Amount decimal.Decimal
	Type   model.Side
}

// FromSigned folds a signed running balance (credit positive) into a Balance.
func FromSigned(v decimal.Decimal) Balance {
	if v.IsNegative() {
		return Balance{Amount: v.Neg(), Type: model.Debit}
	}
	return Balance{Amount: v, Type: model.Credit}
}

// Signed returns the balance with credit positive.
func (b Balance) Signed() decimal.Decimal {
	if b.Type == model.Debit {
		return b.Amount.Neg()
	}
	return b.Amount
}

// Engine computes balances for one tenant. Double-entry vouchers enter the
// cash book through their lines on the designated cash account.
type Engine struct {
	store         store.Store
	tenant        string
	cashAccountID int
}

// NewEngine creates a balance Engine.
func NewEngine(s store.Store, tenant string, cashAccountID int) *Engine {
	return &Engine{store: s, tenant: tenant, cashAccountID: cashAccountID}
}

// dayBook is one query's view of the ledger: postings bucketed into net cash
// movement per day, plus the anchor set. Bucketing first keeps the replay a
// single pass instead of re-scanning the posting list per day.
type dayBook struct {
	nets      map[date.Date]decimal.Decimal
	overrides map[date.Date]model.OpeningBalanceOverride
	earliest  date.Date
}

func (e *Engine) load(ctx context.Context) (*dayBook, error) {
	accounts, err := store.Load[model.Account](ctx, e.store, e.tenant, store.Accounts)
	if err != nil {
		return nil, err
	}
	known := make(map[int]bool, len(accounts))
	for _, a := range accounts {
		known[a.ID] = true
	}

	incomes, err := store.Load[model.IncomeEntry](ctx, e.store, e.tenant, store.Income)
	if err != nil {
		return nil, err
	}
	expenditures, err := store.Load[model.Expenditure](ctx, e.store, e.tenant, store.Expenditure)
	if err != nil {
		return nil, err
	}
	vouchers, err := store.Load[model.Voucher](ctx, e.store, e.tenant, store.Vouchers)
	if err != nil {
		return nil, err
	}
	overrides, err := store.Load[model.OpeningBalanceOverride](ctx, e.store, e.tenant, store.Overrides)
	if err != nil {
		return nil, err
	}

	db := &dayBook{
		nets:      make(map[date.Date]decimal.Decimal),
		overrides: make(map[date.Date]model.OpeningBalanceOverride, len(overrides)),
	}
	for _, o := range overrides {
		db.overrides[o.Date] = o
	}

	add := func(on date.Date, delta decimal.Decimal) {
		db.nets[on] = db.nets[on].Add(delta)
		if db.earliest.IsZero() || on.Before(db.earliest) {
			db.earliest = on
		}
	}

	for _, e := range incomes {
		if !known[e.AccountID] {
			continue // orphaned posting, excluded everywhere
		}
		add(e.Date, e.Amount)
	}
	for _, e := range expenditures {
		if !known[e.AccountID] {
			continue
		}
		add(e.Date, e.Amount.Neg())
	}
	for _, v := range vouchers {
		add(v.Date, v.CashDelta(e.cashAccountID))
	}
	return db, nil
}

// OpeningBalance computes the balance in force at the start of day D.
//
// An anchor dated exactly D wins verbatim. Otherwise the replay starts from
// the nearest earlier anchor, or from an implicit zero at the earliest
// transaction when no anchor precedes D, and accumulates each day's net up to
// but not including D. An anchor on an intermediate day resets the running
// balance before that day's net applies; anchors always beat replayed totals.
func (e *Engine) OpeningBalance(ctx context.Context, d date.Date) (Balance, error) {
	db, err := e.load(ctx)
	if err != nil {
		return Balance{}, err
	}
	return db.openingAt(d), nil
}

func (db *dayBook) openingAt(d date.Date) Balance {
	if o, ok := db.overrides[d]; ok {
		return Balance{Amount: o.Amount, Type: o.Type}
	}

	// Nearest anchor before d, if any.
	var anchor *model.OpeningBalanceOverride
	for on, o := range db.overrides {
		if !on.Before(d) {
			continue
		}
		if anchor == nil || on.After(anchor.Date) {
			anchor = &o
		}
	}

	var start date.Date
	running := decimal.Zero
	switch {
	case anchor != nil:
		start = anchor.Date
		running = anchor.Signed()
	case db.earliest.IsZero() || !db.earliest.Before(d):
		// No history before d at all.
		return Balance{Amount: decimal.Zero, Type: model.Credit}
	default:
		start = db.earliest
	}

	// Replay only the days that carry a posting or an anchor. The anchor's
	// own balance is the start-of-day value, so the anchor day's net still
	// applies on the way forward.
	for _, day := range db.daysIn(start, d) {
		if o, ok := db.overrides[day]; ok && day != start {
			running = o.Signed()
		}
		if net, ok := db.nets[day]; ok {
			running = running.Add(net)
		}
	}
	return FromSigned(running)
}

// daysIn returns the sorted days in [from, to) that have a net or an anchor.
func (db *dayBook) daysIn(from, to date.Date) []date.Date {
	seen := make(map[date.Date]bool)
	var days []date.Date
	collect := func(on date.Date) {
		if on.Before(from) || !on.Before(to) || seen[on] {
			return
		}
		seen[on] = true
		days = append(days, on)
	}
	for on := range db.nets {
		collect(on)
	}
	for on := range db.overrides {
		collect(on)
	}
	slices.SortFunc(days, date.Date.Compare)
	return days
}

// DayTotals returns the day's income and expenditure totals as the cash book
// sees them: simple postings plus cash-side voucher lines.
func (e *Engine) DayTotals(ctx context.Context, d date.Date) (income, expenditure decimal.Decimal, err error) {
	accounts, err := store.Load[model.Account](ctx, e.store, e.tenant, store.Accounts)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	known := make(map[int]bool, len(accounts))
	for _, a := range accounts {
		known[a.ID] = true
	}

	incomes, err := store.Load[model.IncomeEntry](ctx, e.store, e.tenant, store.Income)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	expenditures, err := store.Load[model.Expenditure](ctx, e.store, e.tenant, store.Expenditure)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	vouchers, err := store.Load[model.Voucher](ctx, e.store, e.tenant, store.Vouchers)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	income, expenditure = decimal.Zero, decimal.Zero
	for _, en := range incomes {
		if en.Date == d && known[en.AccountID] {
			income = income.Add(en.Amount)
		}
	}
	for _, en := range expenditures {
		if en.Date == d && known[en.AccountID] {
			expenditure = expenditure.Add(en.Amount)
		}
	}
	for _, v := range vouchers {
		if v.Date != d {
			continue
		}
		delta := v.CashDelta(e.cashAccountID)
		if delta.IsPositive() {
			income = income.Add(delta)
		} else if delta.IsNegative() {
			expenditure = expenditure.Add(delta.Neg())
		}
	}
	return income, expenditure, nil
}
