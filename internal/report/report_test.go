package report

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolbooks-dev/schoolbooks/internal/balance"
	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/model"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

const (
	tenant = "demo"
	cashID = 1
	acctA  = 2
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	ctx context.Context
	mem *store.Memory
	gen *Generator
}

func newFixture(t *testing.T, accounts ...model.Account) *fixture {
	t.Helper()
	f := &fixture{ctx: context.Background(), mem: store.NewMemory()}
	engine := balance.NewEngine(f.mem, tenant, cashID)
	f.gen = NewGenerator(f.mem, tenant, engine, cashID)
	if len(accounts) == 0 {
		accounts = []model.Account{
			{ID: cashID, Name: "Cash", CategoryID: 1, OpeningBalanceType: model.Credit},
			{ID: acctA, Name: "Asha Rao", CategoryID: 1, OpeningBalance: dec("1000"), OpeningBalanceType: model.Credit},
		}
	}
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Accounts, accounts))
	return f
}

func (f *fixture) saveVouchers(t *testing.T, vouchers []model.Voucher) {
	t.Helper()
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Vouchers, vouchers))
}

func voucher(num int, on string, vtype model.VoucherType, lines ...model.VoucherLine) model.Voucher {
	return model.Voucher{
		ID:     fmt.Sprintf("vch-%06d", num),
		Number: num,
		Date:   date.MustParse(on),
		Type:   vtype,
		Lines:  lines,
	}
}

func debit(account int, amount string) model.VoucherLine {
	return model.VoucherLine{AccountID: account, Side: model.Debit, Amount: dec(amount)}
}

func credit(account int, amount string) model.VoucherLine {
	return model.VoucherLine{AccountID: account, Side: model.Credit, Amount: dec(amount)}
}

func TestStatement_AccountScenario(t *testing.T) {
	// Opening 1000 credit. V1 (01-05) debits the account 500, V2 (01-10)
	// credits it 200: rows land at balance 500, then 700.
	f := newFixture(t)
	f.saveVouchers(t, []model.Voucher{
		voucher(1, "2024-01-05", model.VoucherPayment, debit(acctA, "500"), credit(cashID, "500")),
		voucher(2, "2024-01-10", model.VoucherReceipt, debit(cashID, "200"), credit(acctA, "200")),
	})

	st, err := f.gen.Statement(f.ctx, acctA, date.MustParse("2024-01-01"), date.MustParse("2024-01-31"))
	require.NoError(t, err)
	assert.True(t, st.Opening.Equal(dec("1000")))
	require.Len(t, st.Rows, 2)

	assert.Equal(t, "2024-01-05", st.Rows[0].Date.String())
	assert.True(t, st.Rows[0].Delta.Equal(dec("-500")))
	assert.True(t, st.Rows[0].Balance.Equal(dec("500")), "got %s", st.Rows[0].Balance)

	assert.Equal(t, "2024-01-10", st.Rows[1].Date.String())
	assert.True(t, st.Rows[1].Delta.Equal(dec("200")))
	assert.True(t, st.Rows[1].Balance.Equal(dec("700")))

	assert.True(t, st.Closing.Equal(dec("700")))
}

func TestStatement_SameDayVoucherOrder(t *testing.T) {
	f := newFixture(t)
	// Posted out of order: higher number first in the stored slice.
	f.saveVouchers(t, []model.Voucher{
		voucher(2, "2024-01-05", model.VoucherReceipt, debit(cashID, "200"), credit(acctA, "200")),
		voucher(1, "2024-01-05", model.VoucherPayment, debit(acctA, "500"), credit(cashID, "500")),
	})

	st, err := f.gen.Statement(f.ctx, acctA, date.MustParse("2024-01-01"), date.MustParse("2024-01-31"))
	require.NoError(t, err)
	require.Len(t, st.Rows, 2)
	assert.Equal(t, 1, st.Rows[0].VoucherNumber)
	assert.Equal(t, 2, st.Rows[1].VoucherNumber)
	assert.True(t, st.Closing.Equal(dec("700")))
}

func TestStatement_RangeFilterAndSimplePostings(t *testing.T) {
	f := newFixture(t)
	incomes := []model.IncomeEntry{
		{ID: "inc-2024-01-001", Date: date.MustParse("2024-01-03"), AccountID: acctA, Amount: dec("100")},
		{ID: "inc-2024-02-001", Date: date.MustParse("2024-02-01"), AccountID: acctA, Amount: dec("999")}, // outside range
	}
	expenditures := []model.Expenditure{
		{ID: "exp-2024-01-001", Date: date.MustParse("2024-01-04"), AccountID: acctA, Amount: dec("40")},
	}
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Income, incomes))
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Expenditure, expenditures))

	st, err := f.gen.Statement(f.ctx, acctA, date.MustParse("2024-01-01"), date.MustParse("2024-01-31"))
	require.NoError(t, err)
	require.Len(t, st.Rows, 2)
	assert.True(t, st.Rows[0].Delta.Equal(dec("100")))
	assert.Equal(t, model.Credit, st.Rows[0].Side)
	assert.True(t, st.Rows[1].Delta.Equal(dec("-40")))
	assert.True(t, st.Closing.Equal(dec("1060")))
}

func TestStatement_UnknownAccount(t *testing.T) {
	f := newFixture(t)
	_, err := f.gen.Statement(f.ctx, 999, date.MustParse("2024-01-01"), date.MustParse("2024-01-31"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnresolvedAccount))
}

func TestDayBook(t *testing.T) {
	f := newFixture(t)
	overrides := []model.OpeningBalanceOverride{
		{Date: date.MustParse("2024-03-01"), Amount: dec("1000"), Type: model.Credit},
	}
	incomes := []model.IncomeEntry{
		{ID: "inc-2024-03-001", Date: date.MustParse("2024-03-02"), AccountID: acctA, Amount: dec("300"), Remarks: "term fee"},
	}
	expenditures := []model.Expenditure{
		{ID: "exp-2024-03-001", Date: date.MustParse("2024-03-02"), AccountID: acctA, Amount: dec("100"), Remarks: "chalk"},
	}
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Overrides, overrides))
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Income, incomes))
	require.NoError(t, store.Save(f.ctx, f.mem, tenant, store.Expenditure, expenditures))

	book, err := f.gen.DayBook(f.ctx, date.MustParse("2024-03-02"))
	require.NoError(t, err)

	assert.True(t, book.Opening.Amount.Equal(dec("1000")))
	assert.Equal(t, model.Credit, book.Opening.Type)
	require.Len(t, book.Income, 1)
	require.Len(t, book.Expenditure, 1)
	assert.Equal(t, "Asha Rao", book.Income[0].AccountName)
	assert.True(t, book.TotalIncome.Equal(dec("300")))
	assert.True(t, book.TotalExpenditure.Equal(dec("100")))
	assert.True(t, book.Closing.Amount.Equal(dec("1200")), "got %s", book.Closing.Amount)
	assert.Equal(t, model.Credit, book.Closing.Type)
}

func TestDayBook_VoucherCashMovement(t *testing.T) {
	f := newFixture(t)
	f.saveVouchers(t, []model.Voucher{
		voucher(1, "2024-03-02", model.VoucherReceipt, debit(cashID, "200"), credit(acctA, "200")),
		voucher(2, "2024-03-02", model.VoucherPayment, debit(acctA, "80"), credit(cashID, "80")),
		voucher(3, "2024-03-02", model.VoucherJournal, debit(acctA, "10"), credit(acctA, "10")), // no cash side
	})

	book, err := f.gen.DayBook(f.ctx, date.MustParse("2024-03-02"))
	require.NoError(t, err)
	require.Len(t, book.Income, 1)
	require.Len(t, book.Expenditure, 1)
	assert.Equal(t, "Asha Rao", book.Income[0].AccountName, "cash movement is shown against the contra account")
	assert.True(t, book.TotalIncome.Equal(dec("200")))
	assert.True(t, book.TotalExpenditure.Equal(dec("80")))
}

func TestTrialBalance_Balanced(t *testing.T) {
	accounts := []model.Account{
		{ID: cashID, Name: "Cash", CategoryID: 1, OpeningBalanceType: model.Credit},
		{ID: acctA, Name: "Asha Rao", CategoryID: 1, OpeningBalanceType: model.Credit},
		{ID: 3, Name: "Staff Salaries", CategoryID: 1, OpeningBalanceType: model.Debit},
	}
	f := newFixture(t, accounts...)
	f.saveVouchers(t, []model.Voucher{
		voucher(1, "2024-01-05", model.VoucherReceipt, debit(cashID, "500"), credit(acctA, "500")),
		voucher(2, "2024-01-08", model.VoucherPayment, debit(3, "300"), credit(cashID, "300")),
	})

	tb, err := f.gen.TrialBalance(f.ctx)
	require.NoError(t, err)
	require.Len(t, tb.Rows, 3)

	assert.True(t, tb.TotalDebits.Equal(dec("500")), "got %s", tb.TotalDebits)
	assert.True(t, tb.TotalCredits.Equal(dec("500")))
	assert.NoError(t, tb.Check())

	byID := make(map[int]TrialBalanceRow)
	for _, r := range tb.Rows {
		byID[r.AccountID] = r
	}
	assert.True(t, byID[cashID].Debit.Equal(dec("200")))
	assert.True(t, byID[acctA].Credit.Equal(dec("500")))
	assert.True(t, byID[3].Debit.Equal(dec("300")))
}

func TestTrialBalance_IntegrityFault(t *testing.T) {
	accounts := []model.Account{
		{ID: cashID, Name: "Cash", CategoryID: 1, OpeningBalanceType: model.Credit},
		{ID: acctA, Name: "Asha Rao", CategoryID: 1, OpeningBalanceType: model.Credit},
	}
	f := newFixture(t, accounts...)
	// A manual edit bypassed the validator: voucher does not balance.
	f.saveVouchers(t, []model.Voucher{
		voucher(1, "2024-01-05", model.VoucherJournal, debit(cashID, "500"), credit(acctA, "450")),
	})

	tb, err := f.gen.TrialBalance(f.ctx)
	require.NoError(t, err, "the report itself is still produced")

	fault := tb.Check()
	require.Error(t, fault)
	assert.True(t, errors.Is(fault, model.ErrIntegrityFault))
	assert.Contains(t, fault.Error(), "50.00")
}
