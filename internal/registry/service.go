// Package registry manages classes, students and fee payments. Its CRUD
// drives the chart of accounts (system categories, student accounts) and the
// ledger (fee-derived postings) so those stores never need to know about
// enrollment.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/coa"
	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/id"
	"github.com/schoolbooks-dev/schoolbooks/internal/ledger"
	"github.com/schoolbooks-dev/schoolbooks/internal/model"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

// AccountingModel selects how fee payments materialize in the ledger.
type AccountingModel string

const (
	// ModelSimple records fee payments as income entries.
	ModelSimple AccountingModel = "simple"
	// ModelDouble records fee payments as receipt vouchers against cash.
	ModelDouble AccountingModel = "double"
)

// Service provides registry operations for one tenant.
type Service struct {
	store         store.Store
	tenant        string
	coa           *coa.Service
	ledger        *ledger.Service
	model         AccountingModel
	cashAccountID int
}

// NewService creates a registry Service.
func NewService(s store.Store, tenant string, chart *coa.Service, led *ledger.Service, accountingModel AccountingModel, cashAccountID int) *Service {
	return &Service{
		store:         s,
		tenant:        tenant,
		coa:           chart,
		ledger:        led,
		model:         accountingModel,
		cashAccountID: cashAccountID,
	}
}

// Classes returns all classes.
func (s *Service) Classes(ctx context.Context) ([]model.Class, error) {
	return store.Load[model.Class](ctx, s.store, s.tenant, store.Classes)
}

// Students returns all students.
func (s *Service) Students(ctx context.Context) ([]model.Student, error) {
	return store.Load[model.Student](ctx, s.store, s.tenant, store.Students)
}

// FeePayments returns all fee payments.
func (s *Service) FeePayments(ctx context.Context) ([]model.FeePayment, error) {
	return store.Load[model.FeePayment](ctx, s.store, s.tenant, store.FeePayments)
}

// Student returns a student by ID.
func (s *Service) Student(ctx context.Context, studentID int) (model.Student, error) {
	students, err := s.Students(ctx)
	if err != nil {
		return model.Student{}, err
	}
	for _, st := range students {
		if st.ID == studentID {
			return st, nil
		}
	}
	return model.Student{}, fmt.Errorf("student %d: %w", studentID, model.ErrNotFound)
}

// CreateClass adds a class. Its system category appears lazily with the
// first student.
func (s *Service) CreateClass(ctx context.Context, name string) (model.Class, error) {
	classes, err := s.Classes(ctx)
	if err != nil {
		return model.Class{}, err
	}
	class := model.Class{ID: nextID(classes, func(c model.Class) int { return c.ID }), Name: name}
	if err := store.Save(ctx, s.store, s.tenant, store.Classes, append(classes, class)); err != nil {
		return model.Class{}, err
	}
	return class, nil
}

// RenameClass renames a class and its system category in lockstep.
func (s *Service) RenameClass(ctx context.Context, classID int, name string) error {
	classes, err := s.Classes(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range classes {
		if classes[i].ID == classID {
			classes[i].Name = name
			found = true
		}
	}
	if !found {
		return fmt.Errorf("class %d: %w", classID, model.ErrNotFound)
	}
	if err := store.Save(ctx, s.store, s.tenant, store.Classes, classes); err != nil {
		return err
	}
	return s.coa.RenameClassCategory(ctx, classID, name)
}

// DeleteClass removes a class with no enrolled students. Its system category
// is removed too unless accounts still reference it.
func (s *Service) DeleteClass(ctx context.Context, classID int) error {
	students, err := s.Students(ctx)
	if err != nil {
		return err
	}
	for _, st := range students {
		if st.ClassID == classID {
			return fmt.Errorf("class %d still has students", classID)
		}
	}

	classes, err := s.Classes(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, c := range classes {
		if c.ID == classID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("class %d: %w", classID, model.ErrNotFound)
	}
	classes = append(classes[:idx], classes[idx+1:]...)
	if err := store.Save(ctx, s.store, s.tenant, store.Classes, classes); err != nil {
		return err
	}
	return s.coa.DeleteClassCategory(ctx, classID)
}

// StudentParams holds the operator-settable fields of a student.
type StudentParams struct {
	Name    string
	ClassID int
	RollNo  string
}

// CreateStudent enrolls a student: the class system category is ensured, the
// student's ledger account is created under it, and the student record links
// to that account.
func (s *Service) CreateStudent(ctx context.Context, p StudentParams) (model.Student, error) {
	classes, err := s.Classes(ctx)
	if err != nil {
		return model.Student{}, err
	}
	var class model.Class
	found := false
	for _, c := range classes {
		if c.ID == p.ClassID {
			class, found = c, true
			break
		}
	}
	if !found {
		return model.Student{}, fmt.Errorf("class %d: %w", p.ClassID, model.ErrNotFound)
	}

	cat, err := s.coa.EnsureClassCategory(ctx, class.ID, class.Name)
	if err != nil {
		return model.Student{}, err
	}

	students, err := s.Students(ctx)
	if err != nil {
		return model.Student{}, err
	}
	student := model.Student{
		ID:      nextID(students, func(st model.Student) int { return st.ID }),
		Name:    p.Name,
		ClassID: p.ClassID,
		RollNo:  p.RollNo,
	}

	account, err := s.coa.CreateStudentAccount(ctx, student.ID, student.Name, cat.ID)
	if err != nil {
		return model.Student{}, err
	}
	student.AccountID = account.ID

	if err := store.Save(ctx, s.store, s.tenant, store.Students, append(students, student)); err != nil {
		return model.Student{}, err
	}
	return student, nil
}

// RenameStudent renames a student and the linked account in lockstep.
func (s *Service) RenameStudent(ctx context.Context, studentID int, name string) error {
	students, err := s.Students(ctx)
	if err != nil {
		return err
	}
	found := false
	for i := range students {
		if students[i].ID == studentID {
			students[i].Name = name
			found = true
		}
	}
	if !found {
		return fmt.Errorf("student %d: %w", studentID, model.ErrNotFound)
	}
	if err := store.Save(ctx, s.store, s.tenant, store.Students, students); err != nil {
		return err
	}
	return s.coa.RenameStudentAccount(ctx, studentID, name)
}

// DeleteStudent removes a student, their fee payments (with linked ledger
// records), and their account, in that order.
func (s *Service) DeleteStudent(ctx context.Context, studentID int) error {
	if _, err := s.Student(ctx, studentID); err != nil {
		return err
	}

	payments, err := s.FeePayments(ctx)
	if err != nil {
		return err
	}
	for _, p := range payments {
		if p.StudentID == studentID {
			if err := s.DeleteFeePayment(ctx, p.ID); err != nil {
				return err
			}
		}
	}

	students, err := s.Students(ctx)
	if err != nil {
		return err
	}
	for i, st := range students {
		if st.ID == studentID {
			students = append(students[:i], students[i+1:]...)
			break
		}
	}
	if err := store.Save(ctx, s.store, s.tenant, store.Students, students); err != nil {
		return err
	}
	return s.coa.DeleteStudentAccount(ctx, studentID)
}

// FeeParams holds the fields of a fee payment.
type FeeParams struct {
	StudentID int
	Date      date.Date
	Amount    decimal.Decimal
	Remarks   string
}

// RecordFeePayment records a fee received from a student and materializes it
// in the ledger per the active accounting model.
func (s *Service) RecordFeePayment(ctx context.Context, p FeeParams) (model.FeePayment, error) {
	if !p.Amount.IsPositive() {
		return model.FeePayment{}, fmt.Errorf("amount must be positive, got %s", p.Amount)
	}
	student, err := s.Student(ctx, p.StudentID)
	if err != nil {
		return model.FeePayment{}, err
	}

	payments, err := s.FeePayments(ctx)
	if err != nil {
		return model.FeePayment{}, err
	}
	payment := model.FeePayment{
		ID:        nextFeeID(payments, p.Date),
		Date:      p.Date,
		StudentID: p.StudentID,
		Amount:    p.Amount,
		Remarks:   p.Remarks,
	}

	switch s.model {
	case ModelDouble:
		narration := fmt.Sprintf("Fee received from %s", student.Name)
		if p.Remarks != "" {
			narration = p.Remarks
		}
		v, err := s.ledger.PostVoucher(ctx, ledger.VoucherParams{
			Date:      p.Date,
			Type:      model.VoucherReceipt,
			Narration: narration,
			Lines: []ledger.LineInput{
				{AccountID: s.cashAccountID, Debit: p.Amount},
				{AccountID: student.AccountID, Credit: p.Amount},
			},
		})
		if err != nil {
			return model.FeePayment{}, err
		}
		payment.VoucherID = v.ID
	default:
		entry, err := s.ledger.RecordFeeIncome(ctx, ledger.EntryParams{
			Date:      p.Date,
			AccountID: student.AccountID,
			Amount:    p.Amount,
			Remarks:   p.Remarks,
		}, payment.ID)
		if err != nil {
			return model.FeePayment{}, err
		}
		payment.EntryID = entry.ID
	}

	if err := store.Save(ctx, s.store, s.tenant, store.FeePayments, append(payments, payment)); err != nil {
		return model.FeePayment{}, err
	}
	return payment, nil
}

// DeleteFeePayment removes a fee payment, cascading to the linked voucher or
// income entry first.
func (s *Service) DeleteFeePayment(ctx context.Context, paymentID string) error {
	payments, err := s.FeePayments(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, p := range payments {
		if p.ID == paymentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("fee payment %s: %w", paymentID, model.ErrNotFound)
	}
	payment := payments[idx]

	if payment.VoucherID != "" {
		if err := s.ledger.RemoveLinkedVoucher(ctx, payment.VoucherID); err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}
	}
	if payment.EntryID != "" {
		if err := s.ledger.DeleteEntry(ctx, payment.EntryID); err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}
	}

	payments = append(payments[:idx], payments[idx+1:]...)
	return store.Save(ctx, s.store, s.tenant, store.FeePayments, payments)
}

func nextID[T any](items []T, idOf func(T) int) int {
	max := 0
	for _, it := range items {
		if v := idOf(it); v > max {
			max = v
		}
	}
	return max + 1
}

func nextFeeID(payments []model.FeePayment, on date.Date) string {
	maxSeq := 0
	for _, p := range payments {
		kind, y, m, seq, err := id.ParseEntryID(p.ID)
		if err != nil || kind != id.KindFeePayment || y != on.Year() || m != int(on.Month()) {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return id.FormatEntryID(id.KindFeePayment, on.Year(), int(on.Month()), maxSeq+1)
}
