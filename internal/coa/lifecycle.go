package coa

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/model"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

// Lifecycle hooks driven by class and student CRUD. These bypass the
// Immutable guard because the registry, not the operator, is the caller.

// EnsureClassCategory returns the system category owned by the class,
// creating it when the class is new.
func (s *Service) EnsureClassCategory(ctx context.Context, classID int, className string) (model.AccountCategory, error) {
	cats, err := s.Categories(ctx)
	if err != nil {
		return model.AccountCategory{}, err
	}
	for _, c := range cats {
		if c.IsSystem && c.ClassID == classID {
			return c, nil
		}
	}
	cat := model.AccountCategory{
		ID:       nextCategoryID(cats),
		Name:     className,
		IsSystem: true,
		ClassID:  classID,
	}
	if err := store.Save(ctx, s.store, s.tenant, store.Categories, append(cats, cat)); err != nil {
		return model.AccountCategory{}, err
	}
	return cat, nil
}

// RenameClassCategory renames the class's system category in lockstep with a
// class rename. Missing category is not an error; the class may never have
// had accounts.
func (s *Service) RenameClassCategory(ctx context.Context, classID int, className string) error {
	cats, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range cats {
		if cats[i].IsSystem && cats[i].ClassID == classID {
			cats[i].Name = className
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return store.Save(ctx, s.store, s.tenant, store.Categories, cats)
}

// DeleteClassCategory removes the class's system category, but only when no
// account references it anymore. A still-referenced category survives its
// class as an ordinary orphan.
func (s *Service) DeleteClassCategory(ctx context.Context, classID int) error {
	cats, err := s.Categories(ctx)
	if err != nil {
		return err
	}
	kept := cats[:0]
	for _, c := range cats {
		if c.IsSystem && c.ClassID == classID {
			inUse, err := s.categoryInUse(ctx, c.ID)
			if err != nil {
				return err
			}
			if !inUse {
				continue
			}
		}
		kept = append(kept, c)
	}
	if len(kept) == len(cats) {
		return nil
	}
	return store.Save(ctx, s.store, s.tenant, store.Categories, kept)
}

// CreateStudentAccount creates the student's ledger account under the class
// category.
func (s *Service) CreateStudentAccount(ctx context.Context, studentID int, studentName string, categoryID int) (model.Account, error) {
	params := AccountParams{
		Name:               studentName,
		CategoryID:         categoryID,
		OpeningBalance:     decimal.Zero,
		OpeningBalanceType: model.Credit,
	}
	return s.createAccount(ctx, params, true, studentID)
}

// RenameStudentAccount renames the student's account in lockstep with a
// student rename.
func (s *Service) RenameStudentAccount(ctx context.Context, studentID int, studentName string) error {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].IsStudentAccount && accounts[i].StudentID == studentID {
			accounts[i].Name = studentName
			return store.Save(ctx, s.store, s.tenant, store.Accounts, accounts)
		}
	}
	return fmt.Errorf("student %d account: %w", studentID, model.ErrNotFound)
}

// DeleteStudentAccount removes the student's account when the student is
// deleted.
func (s *Service) DeleteStudentAccount(ctx context.Context, studentID int) error {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].IsStudentAccount && accounts[i].StudentID == studentID {
			accounts = append(accounts[:i], accounts[i+1:]...)
			return store.Save(ctx, s.store, s.tenant, store.Accounts, accounts)
		}
	}
	return fmt.Errorf("student %d account: %w", studentID, model.ErrNotFound)
}
