package coa

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/model"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

// CashAccountID is the id of the institution cash account seeded by Bootstrap.
// The day book and opening-balance replay read double-entry vouchers through
// this account.
const CashAccountID = 1

// DefaultCategories returns the seed categories for a new tenant.
func DefaultCategories() []model.AccountCategory {
	return []model.AccountCategory{
		{ID: 1, Name: "General"},
		{ID: 2, Name: "Fees"},
		{ID: 3, Name: "Salaries"},
		{ID: 4, Name: "Maintenance"},
	}
}

// DefaultAccounts returns the seed accounts for a new tenant.
func DefaultAccounts() []model.Account {
	return []model.Account{
		{ID: CashAccountID, Name: "Cash", CategoryID: 1, OpeningBalance: decimal.Zero, OpeningBalanceType: model.Credit},
		{ID: 2, Name: "Fee Collection", CategoryID: 2, OpeningBalance: decimal.Zero, OpeningBalanceType: model.Credit},
		{ID: 3, Name: "Staff Salaries", CategoryID: 3, OpeningBalance: decimal.Zero, OpeningBalanceType: model.Debit},
		{ID: 4, Name: "Building Maintenance", CategoryID: 4, OpeningBalance: decimal.Zero, OpeningBalanceType: model.Debit},
	}
}

// Bootstrap seeds an empty tenant with the default chart. Existing data is
// left alone.
func (s *Service) Bootstrap(ctx context.Context) error {
	cats, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	if len(cats) > 0 {
		return nil
	}
	if err := store.Save(ctx, s.store, s.tenant, store.Categories, DefaultCategories()); err != nil {
		return err
	}
	return store.Save(ctx, s.store, s.tenant, store.Accounts, DefaultAccounts())
}
