// Package coa maintains the chart of accounts: account categories and the
// accounts under them. System categories and student accounts are owned by
// the class/student lifecycle and reject manual edits.
package coa

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/model"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

// Service provides chart-of-accounts operations for one tenant.
type Service struct {
	store  store.Store
	tenant string
}

// NewService creates a chart-of-accounts Service.
func NewService(s store.Store, tenant string) *Service {
	return &Service{store: s, tenant: tenant}
}

// Categories returns all account categories.
func (s *Service) Categories(ctx context.Context) ([]model.AccountCategory, error) {
	return store.Load[model.AccountCategory](ctx, s.store, s.tenant, store.Categories)
}

// Accounts returns all accounts.
func (s *Service) Accounts(ctx context.Context) ([]model.Account, error) {
	return store.Load[model.Account](ctx, s.store, s.tenant, store.Accounts)
}

// Account returns an account by ID.
func (s *Service) Account(ctx context.Context, accountID int) (model.Account, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return model.Account{}, err
	}
	for _, a := range accounts {
		if a.ID == accountID {
			return a, nil
		}
	}
	return model.Account{}, fmt.Errorf("account %d: %w", accountID, model.ErrNotFound)
}

// Exists reports whether an account ID resolves. Satisfies
// ledger.AccountResolver.
func (s *Service) Exists(ctx context.Context, accountID int) (bool, error) {
	_, err := s.Account(ctx, accountID)
	if errors.Is(err, model.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateCategory adds a user-managed category and returns it.
func (s *Service) CreateCategory(ctx context.Context, name string) (model.AccountCategory, error) {
	cats, err := s.Categories(ctx)
	if err != nil {
		return model.AccountCategory{}, err
	}
	cat := model.AccountCategory{ID: nextCategoryID(cats), Name: name}
	if err := store.Save(ctx, s.store, s.tenant, store.Categories, append(cats, cat)); err != nil {
		return model.AccountCategory{}, err
	}
	return cat, nil
}

// RenameCategory renames a user-managed category. System categories follow
// their class and reject manual renames.
func (s *Service) RenameCategory(ctx context.Context, categoryID int, name string) error {
	cats, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	idx := categoryIndex(cats, categoryID)
	if idx < 0 {
		return fmt.Errorf("category %d: %w", categoryID, model.ErrNotFound)
	}
	if cats[idx].IsSystem {
		return fmt.Errorf("category %q is class-managed: %w", cats[idx].Name, model.ErrImmutable)
	}
	cats[idx].Name = name
	return store.Save(ctx, s.store, s.tenant, store.Categories, cats)
}

// DeleteCategory removes a category. It fails while any account still
// references it.
func (s *Service) DeleteCategory(ctx context.Context, categoryID int) error {
	cats, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	idx := categoryIndex(cats, categoryID)
	if idx < 0 {
		return fmt.Errorf("category %d: %w", categoryID, model.ErrNotFound)
	}

	inUse, err := s.categoryInUse(ctx, categoryID)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("category %q: %w", cats[idx].Name, model.ErrCategoryInUse)
	}

	cats = append(cats[:idx], cats[idx+1:]...)
	return store.Save(ctx, s.store, s.tenant, store.Categories, cats)
}

// AccountParams holds the operator-settable fields of an account.
type AccountParams struct {
	Name               string
	CategoryID         int
	OpeningBalance     decimal.Decimal
	OpeningBalanceType model.Side
}

// CreateAccount adds a user-managed account and returns it.
func (s *Service) CreateAccount(ctx context.Context, params AccountParams) (model.Account, error) {
	return s.createAccount(ctx, params, false, 0)
}

// EditAccount updates an account's operator-settable fields. Student accounts
// reject edits.
func (s *Service) EditAccount(ctx context.Context, accountID int, params AccountParams) error {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return err
	}
	idx := accountIndex(accounts, accountID)
	if idx < 0 {
		return fmt.Errorf("account %d: %w", accountID, model.ErrNotFound)
	}
	if accounts[idx].IsStudentAccount {
		return fmt.Errorf("account %q is student-managed: %w", accounts[idx].Name, model.ErrImmutable)
	}
	if err := s.checkCategory(ctx, params.CategoryID); err != nil {
		return err
	}

	accounts[idx].Name = params.Name
	accounts[idx].CategoryID = params.CategoryID
	accounts[idx].OpeningBalance = params.OpeningBalance
	accounts[idx].OpeningBalanceType = normalizeSide(params.OpeningBalanceType)
	return store.Save(ctx, s.store, s.tenant, store.Accounts, accounts)
}

// DeleteAccount removes a user-managed account. Postings that reference it
// are not touched; they become orphans that reports exclude.
func (s *Service) DeleteAccount(ctx context.Context, accountID int) error {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return err
	}
	idx := accountIndex(accounts, accountID)
	if idx < 0 {
		return fmt.Errorf("account %d: %w", accountID, model.ErrNotFound)
	}
	if accounts[idx].IsStudentAccount {
		return fmt.Errorf("account %q is student-managed: %w", accounts[idx].Name, model.ErrImmutable)
	}
	accounts = append(accounts[:idx], accounts[idx+1:]...)
	return store.Save(ctx, s.store, s.tenant, store.Accounts, accounts)
}

// FindAccountByName returns the first account with the given name.
func (s *Service) FindAccountByName(ctx context.Context, name string) (model.Account, bool, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return model.Account{}, false, err
	}
	for _, a := range accounts {
		if a.Name == name {
			return a, true, nil
		}
	}
	return model.Account{}, false, nil
}

// EnsureCategory returns the category with the given name, creating a
// user-managed one if absent. The importer files unknown accounts this way.
func (s *Service) EnsureCategory(ctx context.Context, name string) (model.AccountCategory, error) {
	cats, err := s.Categories(ctx)
	if err != nil {
		return model.AccountCategory{}, err
	}
	for _, c := range cats {
		if c.Name == name {
			return c, nil
		}
	}
	return s.CreateCategory(ctx, name)
}

func (s *Service) createAccount(ctx context.Context, params AccountParams, isStudent bool, studentID int) (model.Account, error) {
	if err := s.checkCategory(ctx, params.CategoryID); err != nil {
		return model.Account{}, err
	}
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return model.Account{}, err
	}
	acct := model.Account{
		ID:                 nextAccountID(accounts),
		Name:               params.Name,
		CategoryID:         params.CategoryID,
		IsStudentAccount:   isStudent,
		StudentID:          studentID,
		OpeningBalance:     params.OpeningBalance,
		OpeningBalanceType: normalizeSide(params.OpeningBalanceType),
	}
	if err := store.Save(ctx, s.store, s.tenant, store.Accounts, append(accounts, acct)); err != nil {
		return model.Account{}, err
	}
	return acct, nil
}

func (s *Service) checkCategory(ctx context.Context, categoryID int) error {
	cats, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	if categoryIndex(cats, categoryID) < 0 {
		return fmt.Errorf("category %d: %w", categoryID, model.ErrNotFound)
	}
	return nil
}

func (s *Service) categoryInUse(ctx context.Context, categoryID int) (bool, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return false, err
	}
	for _, a := range accounts {
		if a.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func categoryIndex(cats []model.AccountCategory, id int) int {
	for i, c := range cats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func accountIndex(accounts []model.Account, id int) int {
	for i, a := range accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func nextCategoryID(cats []model.AccountCategory) int {
	max := 0
	for _, c := range cats {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

func nextAccountID(accounts []model.Account) int {
	max := 0
	for _, a := range accounts {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}

func normalizeSide(side model.Side) model.Side {
	if side == model.Debit {
		return model.Debit
	}
	return model.Credit
}
