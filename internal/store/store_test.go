package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/model"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	got, err := m.Read(ctx, "demo", Accounts)
	require.NoError(t, err)
	assert.Nil(t, got, "unwritten collection reads as nil")

	require.NoError(t, m.Write(ctx, "demo", Accounts, []byte(`[{"id":1}]`)))
	got, err = m.Read(ctx, "demo", Accounts)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(got))

	// Tenants are isolated.
	got, err = m.Read(ctx, "other", Accounts)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryWriteErrLeavesStateIntact(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Write(ctx, "demo", Income, []byte(`[1]`)))

	m.WriteErr = errors.New("disk full")
	err := m.Write(ctx, "demo", Income, []byte(`[1,2]`))
	require.Error(t, err)

	got, err := m.Read(ctx, "demo", Income)
	require.NoError(t, err)
	assert.JSONEq(t, `[1]`, string(got))
}

func TestLoadSaveTyped(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	entries := []model.IncomeEntry{
		{ID: "inc-2024-03-001", Date: date.MustParse("2024-03-02"), AccountID: 1, Amount: dec("300")},
	}
	require.NoError(t, Save(ctx, m, "demo", Income, entries))

	back, err := Load[model.IncomeEntry](ctx, m, "demo", Income)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "inc-2024-03-001", back[0].ID)
	assert.True(t, back[0].Amount.Equal(dec("300")))
	assert.Equal(t, "2024-03-02", back[0].Date.String())
}

func TestSaveFailureWrapsPersistence(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.WriteErr = errors.New("boom")

	err := Save(ctx, m, "demo", Income, []model.IncomeEntry{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrPersistence))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "books.db"))
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Read(ctx, "demo", Vouchers)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Write(ctx, "demo", Vouchers, []byte(`[{"number":1}]`)))
	require.NoError(t, s.Write(ctx, "demo", Vouchers, []byte(`[{"number":1},{"number":2}]`)))

	got, err = s.Read(ctx, "demo", Vouchers)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"number":1},{"number":2}]`, string(got))
}
