package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolbooks-dev/schoolbooks/internal/model"
)

// mockAccounts resolves a fixed set of account ids.
type mockAccounts map[int]bool

func newMockAccounts(ids ...int) mockAccounts {
	m := make(mockAccounts, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func (m mockAccounts) Exists(_ context.Context, accountID int) (bool, error) {
	return m[accountID], nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestValidateLines_Balanced(t *testing.T) {
	ctx := context.Background()
	accts := newMockAccounts(1, 2)

	lines, err := ValidateLines(ctx, accts, []LineInput{
		{AccountID: 1, Debit: dec("500")},
		{AccountID: 2, Credit: dec("500")},
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, model.Debit, lines[0].Side)
	assert.Equal(t, model.Credit, lines[1].Side)

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range lines {
		if l.Side == model.Debit {
			totalDebit = totalDebit.Add(l.Amount)
		} else {
			totalCredit = totalCredit.Add(l.Amount)
		}
	}
	assert.True(t, totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(Epsilon))
}

func TestValidateLines_Unbalanced(t *testing.T) {
	ctx := context.Background()
	accts := newMockAccounts(1, 2)

	_, err := ValidateLines(ctx, accts, []LineInput{
		{AccountID: 1, Debit: dec("500")},
		{AccountID: 2, Credit: dec("400")},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnbalanced))
}

func TestValidateLines_EpsilonTolerance(t *testing.T) {
	ctx := context.Background()
	accts := newMockAccounts(1, 2)

	// Within 0.01: accepted.
	_, err := ValidateLines(ctx, accts, []LineInput{
		{AccountID: 1, Debit: dec("100.00")},
		{AccountID: 2, Credit: dec("100.005")},
	})
	require.NoError(t, err)

	// Beyond 0.01: rejected.
	_, err = ValidateLines(ctx, accts, []LineInput{
		{AccountID: 1, Debit: dec("100.00")},
		{AccountID: 2, Credit: dec("100.02")},
	})
	assert.True(t, errors.Is(err, model.ErrUnbalanced))
}

func TestValidateLines_ZeroTotal(t *testing.T) {
	ctx := context.Background()
	accts := newMockAccounts(1, 2)

	// Zero-amount lines are excluded, leaving too few.
	_, err := ValidateLines(ctx, accts, []LineInput{
		{AccountID: 1, Debit: decimal.Zero},
		{AccountID: 2, Credit: decimal.Zero},
	})
	assert.True(t, errors.Is(err, model.ErrTooFewLines))
}

func TestValidateLines_BothSidesExcluded(t *testing.T) {
	ctx := context.Background()
	accts := newMockAccounts(1, 2, 3)

	// The double-sided line is dropped before totals, so the remaining pair
	// must balance on its own.
	lines, err := ValidateLines(ctx, accts, []LineInput{
		{AccountID: 1, Debit: dec("200")},
		{AccountID: 2, Credit: dec("200")},
		{AccountID: 3, Debit: dec("50"), Credit: dec("50")},
	})
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestValidateLines_TooFewLines(t *testing.T) {
	ctx := context.Background()
	accts := newMockAccounts(1)

	_, err := ValidateLines(ctx, accts, []LineInput{
		{AccountID: 1, Debit: dec("100")},
	})
	assert.True(t, errors.Is(err, model.ErrTooFewLines))
}

func TestValidateLines_UnresolvedAccount(t *testing.T) {
	ctx := context.Background()
	accts := newMockAccounts(1, 2)

	// Two resolved lines plus an unknown account: resolution failure wins.
	_, err := ValidateLines(ctx, accts, []LineInput{
		{AccountID: 1, Debit: dec("300")},
		{AccountID: 2, Credit: dec("200")},
		{AccountID: 99, Credit: dec("100")},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUnresolvedAccount))

	// Unresolved lines do not count toward the two-line minimum.
	_, err = ValidateLines(ctx, accts, []LineInput{
		{AccountID: 1, Debit: dec("100")},
		{AccountID: 99, Credit: dec("100")},
	})
	assert.True(t, errors.Is(err, model.ErrTooFewLines))
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Kind: model.ErrUnbalanced, Description: "debits (1.00) != credits (2.00)"}
	assert.Contains(t, err.Error(), "do not balance")
	assert.Contains(t, err.Error(), "debits (1.00)")
}
