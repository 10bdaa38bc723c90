package balance

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/model"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

const (
	tenant = "demo"
	cashID = 1
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fixture wires an engine over a memory store with a minimal chart.
type fixture struct {
	ctx    context.Context
	mem    *store.Memory
	engine *Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{ctx: context.Background(), mem: store.NewMemory()}
	f.engine = NewEngine(f.mem, tenant, cashID)
	accounts := []model.Account{
		{ID: cashID, Name: "Cash", CategoryID: 1, OpeningBalanceType: model.Credit},
		{ID: 2, Name: "Fee Collection", CategoryID: 1, OpeningBalanceType: model.Credit},
	}
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Accounts, accounts))
	return f
}

func (f *fixture) addIncome(t *testing.T, on, amount string) {
	t.Helper()
	entries, err := store.Load[model.IncomeEntry](f.ctx, f.mem, tenant, store.Income)
	require.NoError(t, err)
	entries = append(entries, model.IncomeEntry{
		ID: "inc-test", Date: date.MustParse(on), AccountID: 2, Amount: dec(amount),
	})
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Income, entries))
}

func (f *fixture) addExpenditure(t *testing.T, on, amount string) {
	t.Helper()
	entries, err := store.Load[model.Expenditure](f.ctx, f.mem, tenant, store.Expenditure)
	require.NoError(t, err)
	entries = append(entries, model.Expenditure{
		ID: "exp-test", Date: date.MustParse(on), AccountID: 2, Amount: dec(amount),
	})
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Expenditure, entries))
}

func (f *fixture) addOverride(t *testing.T, on, amount string, side model.Side) {
	t.Helper()
	overrides, err := store.Load[model.OpeningBalanceOverride](f.ctx, f.mem, tenant, store.Overrides)
	require.NoError(t, err)
	overrides = append(overrides, model.OpeningBalanceOverride{
		Date: date.MustParse(on), Amount: dec(amount), Type: side,
	})
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Overrides, overrides))
}

func (f *fixture) opening(t *testing.T, on string) Balance {
	t.Helper()
	b, err := f.engine.OpeningBalance(f.ctx, date.MustParse(on))
	require.NoError(t, err)
	return b
}

func TestOpeningBalance_EmptyHistory(t *testing.T) {
	f := newFixture(t)
	b := f.opening(t, "2024-03-04")
	assert.True(t, b.Amount.IsZero())
	assert.Equal(t, model.Credit, b.Type)
}

func TestOpeningBalance_AnchorPlusReplay(t *testing.T) {
	// Anchor 1000 credit on 03-01, +300 on 03-02, -100 on 03-03:
	// opening of 03-04 is 1200 credit.
	f := newFixture(t)
	f.addOverride(t, "2024-03-01", "1000", model.Credit)
	f.addIncome(t, "2024-03-02", "300")
	f.addExpenditure(t, "2024-03-03", "100")

	b := f.opening(t, "2024-03-04")
	assert.True(t, b.Amount.Equal(dec("1200")), "got %s", b.Amount)
	assert.Equal(t, model.Credit, b.Type)
}

func TestOpeningBalance_AnchorBeatsSameDayPostings(t *testing.T) {
	f := newFixture(t)
	f.addOverride(t, "2024-03-01", "1000", model.Credit)
	f.addIncome(t, "2024-03-01", "999")
	f.addExpenditure(t, "2024-03-01", "5")

	// Same-day postings affect the closing, never the opening, of 03-01.
	b := f.opening(t, "2024-03-01")
	assert.True(t, b.Amount.Equal(dec("1000")))
	assert.Equal(t, model.Credit, b.Type)

	// They do show up in the next day's opening.
	next := f.opening(t, "2024-03-02")
	assert.True(t, next.Amount.Equal(dec("1994")), "got %s", next.Amount)
}

func TestOpeningBalance_ImplicitZeroAnchor(t *testing.T) {
	f := newFixture(t)
	f.addIncome(t, "2024-03-02", "300")

	// Before any history: zero credit.
	b := f.opening(t, "2024-03-02")
	assert.True(t, b.Amount.IsZero())
	assert.Equal(t, model.Credit, b.Type)

	// The earliest transaction day itself replays.
	b = f.opening(t, "2024-03-03")
	assert.True(t, b.Amount.Equal(dec("300")))
}

func TestOpeningBalance_DebitSide(t *testing.T) {
	f := newFixture(t)
	f.addExpenditure(t, "2024-03-02", "450")

	b := f.opening(t, "2024-03-05")
	assert.True(t, b.Amount.Equal(dec("450")))
	assert.Equal(t, model.Debit, b.Type)
}

func TestOpeningBalance_NearestAnchorWins(t *testing.T) {
	// Postings between two anchors are discarded by the later anchor.
	f := newFixture(t)
	f.addOverride(t, "2024-03-01", "1000", model.Credit)
	f.addIncome(t, "2024-03-02", "5000")
	f.addOverride(t, "2024-03-05", "50", model.Credit)
	f.addIncome(t, "2024-03-06", "25")

	b := f.opening(t, "2024-03-10")
	assert.True(t, b.Amount.Equal(dec("75")), "got %s", b.Amount)
	assert.Equal(t, model.Credit, b.Type)
}

func TestOpeningBalance_VoucherCashLines(t *testing.T) {
	f := newFixture(t)
	vouchers := []model.Voucher{
		{
			ID: "vch-000001", Number: 1, Date: date.MustParse("2024-03-02"), Type: model.VoucherReceipt,
			Lines: []model.VoucherLine{
				{AccountID: cashID, Side: model.Debit, Amount: dec("200")},
				{AccountID: 2, Side: model.Credit, Amount: dec("200")},
			},
		},
		{
			ID: "vch-000002", Number: 2, Date: date.MustParse("2024-03-03"), Type: model.VoucherPayment,
			Lines: []model.VoucherLine{
				{AccountID: 2, Side: model.Debit, Amount: dec("80")},
				{AccountID: cashID, Side: model.Credit, Amount: dec("80")},
			},
		},
	}
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Vouchers, vouchers))

	b := f.opening(t, "2024-03-04")
	assert.True(t, b.Amount.Equal(dec("120")), "got %s", b.Amount)
	assert.Equal(t, model.Credit, b.Type)
}

func TestOpeningBalance_OrphanedPostingsExcluded(t *testing.T) {
	f := newFixture(t)
	f.addIncome(t, "2024-03-02", "300")

	entries, err := store.Load[model.IncomeEntry](f.ctx, f.mem, tenant, store.Income)
	require.NoError(t, err)
	entries = append(entries, model.IncomeEntry{
		ID: "inc-orphan", Date: date.MustParse("2024-03-02"), AccountID: 999, Amount: dec("10000"),
	})
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Income, entries))

	b := f.opening(t, "2024-03-03")
	assert.True(t, b.Amount.Equal(dec("300")), "orphan must not count, got %s", b.Amount)
}

func TestOpeningBalance_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.addOverride(t, "2024-03-01", "1000", model.Credit)
	f.addIncome(t, "2024-03-02", "300")

	first := f.opening(t, "2024-03-04")
	second := f.opening(t, "2024-03-04")
	assert.True(t, first.Amount.Equal(second.Amount))
	assert.Equal(t, first.Type, second.Type)
}

func TestOpeningBalance_RecomputesAfterBackdatedEdit(t *testing.T) {
	f := newFixture(t)
	f.addIncome(t, "2024-03-10", "100")

	before := f.opening(t, "2024-03-15")
	assert.True(t, before.Amount.Equal(dec("100")))

	// A posting inserted for an earlier day changes the derived value; no
	// cached running total survives.
	f.addIncome(t, "2024-03-01", "40")
	after := f.opening(t, "2024-03-15")
	assert.True(t, after.Amount.Equal(dec("140")), "got %s", after.Amount)
}

func TestDayTotals(t *testing.T) {
	f := newFixture(t)
	f.addIncome(t, "2024-03-02", "300")
	f.addIncome(t, "2024-03-02", "200")
	f.addExpenditure(t, "2024-03-02", "50")
	f.addIncome(t, "2024-03-03", "999") // other day, ignored

	vouchers := []model.Voucher{{
		ID: "vch-000001", Number: 1, Date: date.MustParse("2024-03-02"), Type: model.VoucherPayment,
		Lines: []model.VoucherLine{
			{AccountID: 2, Side: model.Debit, Amount: dec("30")},
			{AccountID: cashID, Side: model.Credit, Amount: dec("30")},
		},
	}}
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Vouchers, vouchers))

	income, expenditure, err := f.engine.DayTotals(f.ctx, date.MustParse("2024-03-02"))
	require.NoError(t, err)
	assert.True(t, income.Equal(dec("500")), "got %s", income)
	assert.True(t, expenditure.Equal(dec("80")), "got %s", expenditure)
}

func TestFromSigned(t *testing.T) {
	b := FromSigned(dec("-12.50"))
	assert.Equal(t, model.Debit, b.Type)
	assert.True(t, b.Amount.Equal(dec("12.50")))
	assert.True(t, b.Signed().Equal(dec("-12.50")))

	b = FromSigned(decimal.Zero)
	assert.Equal(t, model.Credit, b.Type)
}
