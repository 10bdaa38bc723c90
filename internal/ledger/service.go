// Package ledger owns the transaction ledger store: simple income and
// expenditure postings, double-entry vouchers, and the opening-balance
// anchors. All validation happens before any collection is written back.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/id"
	"github.com/schoolbooks-dev/schoolbooks/internal/model"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

// Service provides ledger operations for one tenant.
type Service struct {
	store    store.Store
	tenant   string
	accounts AccountResolver
}

// NewService creates a ledger Service.
func NewService(s store.Store, tenant string, accounts AccountResolver) *Service {
	return &Service{store: s, tenant: tenant, accounts: accounts}
}

// EntryParams holds the fields of a simple posting.
type EntryParams struct {
	Date      date.Date
	AccountID int
	Amount    decimal.Decimal
	Remarks   string
}

func (s *Service) checkEntry(ctx context.Context, p EntryParams) error {
	if !p.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", p.Amount)
	}
	if p.Date.IsZero() {
		return errors.New("date is required")
	}
	ok, err := s.accounts.Exists(ctx, p.AccountID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("account %d: %w", p.AccountID, model.ErrUnresolvedAccount)
	}
	return nil
}

// RecordIncome validates and appends an income posting.
func (s *Service) RecordIncome(ctx context.Context, p EntryParams) (model.IncomeEntry, error) {
	return s.recordIncome(ctx, p, "")
}

// recordIncome also carries the owning fee payment id for fee-derived income.
func (s *Service) recordIncome(ctx context.Context, p EntryParams, feePaymentID string) (model.IncomeEntry, error) {
	if err := s.checkEntry(ctx, p); err != nil {
		return model.IncomeEntry{}, err
	}
	entries, err := s.Incomes(ctx)
	if err != nil {
		return model.IncomeEntry{}, err
	}
	entry := model.IncomeEntry{
		ID:           s.nextEntryID(id.KindIncome, p.Date, incomeIDs(entries)),
		Date:         p.Date,
		AccountID:    p.AccountID,
		Amount:       p.Amount,
		Remarks:      p.Remarks,
		FeePaymentID: feePaymentID,
	}
	if err := store.Save(ctx, s.store, s.tenant, store.Income, append(entries, entry)); err != nil {
		return model.IncomeEntry{}, err
	}
	return entry, nil
}

// RecordExpenditure validates and appends an expenditure posting.
func (s *Service) RecordExpenditure(ctx context.Context, p EntryParams) (model.Expenditure, error) {
	if err := s.checkEntry(ctx, p); err != nil {
		return model.Expenditure{}, err
	}
	entries, err := s.Expenditures(ctx)
	if err != nil {
		return model.Expenditure{}, err
	}
	entry := model.Expenditure{
		ID:        s.nextEntryID(id.KindExpenditure, p.Date, expenditureIDs(entries)),
		Date:      p.Date,
		AccountID: p.AccountID,
		Amount:    p.Amount,
		Remarks:   p.Remarks,
	}
	if err := store.Save(ctx, s.store, s.tenant, store.Expenditure, append(entries, entry)); err != nil {
		return model.Expenditure{}, err
	}
	return entry, nil
}

// DeleteEntry removes a simple posting (income or expenditure) by id.
func (s *Service) DeleteEntry(ctx context.Context, entryID string) error {
	incomes, err := s.Incomes(ctx)
	if err != nil {
		return err
	}
	for i, e := range incomes {
		if e.ID == entryID {
			incomes = append(incomes[:i], incomes[i+1:]...)
			return store.Save(ctx, s.store, s.tenant, store.Income, incomes)
		}
	}

	expenditures, err := s.Expenditures(ctx)
	if err != nil {
		return err
	}
	for i, e := range expenditures {
		if e.ID == entryID {
			expenditures = append(expenditures[:i], expenditures[i+1:]...)
			return store.Save(ctx, s.store, s.tenant, store.Expenditure, expenditures)
		}
	}

	return fmt.Errorf("entry %s: %w", entryID, model.ErrNotFound)
}

// VoucherParams holds the fields of a double-entry voucher before numbering.
type VoucherParams struct {
	Date      date.Date
	Type      model.VoucherType
	Narration string
	Lines     []LineInput
}

// PostVoucher validates the lines, assigns the next ledger-wide voucher
// number and appends the voucher.
func (s *Service) PostVoucher(ctx context.Context, p VoucherParams) (model.Voucher, error) {
	if p.Date.IsZero() {
		return model.Voucher{}, errors.New("date is required")
	}
	lines, err := ValidateLines(ctx, s.accounts, p.Lines)
	if err != nil {
		return model.Voucher{}, err
	}

	vouchers, err := s.Vouchers(ctx)
	if err != nil {
		return model.Voucher{}, err
	}
	number := nextVoucherNumber(vouchers)
	voucher := model.Voucher{
		ID:        id.FormatVoucherID(number),
		Date:      p.Date,
		Type:      p.Type,
		Number:    number,
		Narration: p.Narration,
		Lines:     lines,
	}
	if err := store.Save(ctx, s.store, s.tenant, store.Vouchers, append(vouchers, voucher)); err != nil {
		return model.Voucher{}, err
	}
	return voucher, nil
}

// DeleteVoucher removes a voucher by id. A voucher owned by a fee payment
// cannot be deleted directly; delete the payment and let it cascade. Posted
// vouchers are normally immutable in production bookkeeping, so callers gate
// this behind an explicit confirmation.
func (s *Service) DeleteVoucher(ctx context.Context, voucherID string) error {
	payments, err := store.Load[model.FeePayment](ctx, s.store, s.tenant, store.FeePayments)
	if err != nil {
		return err
	}
	for _, p := range payments {
		if p.VoucherID == voucherID {
			return fmt.Errorf("voucher %s is owned by fee payment %s: %w", voucherID, p.ID, model.ErrVoucherLinked)
		}
	}
	return s.removeVoucher(ctx, voucherID)
}

// RemoveLinkedVoucher removes a voucher as part of a fee-payment cascade,
// bypassing the linkage guard. Only the registry calls this.
func (s *Service) RemoveLinkedVoucher(ctx context.Context, voucherID string) error {
	return s.removeVoucher(ctx, voucherID)
}

// RecordFeeIncome appends an income entry owned by a fee payment.
// Only the registry calls this.
func (s *Service) RecordFeeIncome(ctx context.Context, p EntryParams, feePaymentID string) (model.IncomeEntry, error) {
	return s.recordIncome(ctx, p, feePaymentID)
}

func (s *Service) removeVoucher(ctx context.Context, voucherID string) error {
	vouchers, err := s.Vouchers(ctx)
	if err != nil {
		return err
	}
	for i, v := range vouchers {
		if v.ID == voucherID {
			vouchers = append(vouchers[:i], vouchers[i+1:]...)
			return store.Save(ctx, s.store, s.tenant, store.Vouchers, vouchers)
		}
	}
	return fmt.Errorf("voucher %s: %w", voucherID, model.ErrNotFound)
}

// SetOpeningBalance declares an anchor: the trusted balance at the start of
// the given date. A second declaration for the same date replaces the first.
func (s *Service) SetOpeningBalance(ctx context.Context, on date.Date, amount decimal.Decimal, side model.Side) error {
	if amount.IsNegative() {
		return fmt.Errorf("anchor amount must not be negative, got %s", amount)
	}
	overrides, err := s.Overrides(ctx)
	if err != nil {
		return err
	}
	next := model.OpeningBalanceOverride{Date: on, Amount: amount, Type: side}
	replaced := false
	for i, o := range overrides {
		if o.Date == on {
			overrides[i] = next
			replaced = true
			break
		}
	}
	if !replaced {
		overrides = append(overrides, next)
	}
	return store.Save(ctx, s.store, s.tenant, store.Overrides, overrides)
}

// RemoveOpeningBalance deletes the anchor for a date.
func (s *Service) RemoveOpeningBalance(ctx context.Context, on date.Date) error {
	overrides, err := s.Overrides(ctx)
	if err != nil {
		return err
	}
	for i, o := range overrides {
		if o.Date == on {
			overrides = append(overrides[:i], overrides[i+1:]...)
			return store.Save(ctx, s.store, s.tenant, store.Overrides, overrides)
		}
	}
	return fmt.Errorf("no anchor on %s: %w", on, model.ErrNotFound)
}

// Incomes returns all income entries.
func (s *Service) Incomes(ctx context.Context) ([]model.IncomeEntry, error) {
	return store.Load[model.IncomeEntry](ctx, s.store, s.tenant, store.Income)
}

// Expenditures returns all expenditure entries.
func (s *Service) Expenditures(ctx context.Context) ([]model.Expenditure, error) {
	return store.Load[model.Expenditure](ctx, s.store, s.tenant, store.Expenditure)
}

// Vouchers returns all vouchers.
func (s *Service) Vouchers(ctx context.Context) ([]model.Voucher, error) {
	return store.Load[model.Voucher](ctx, s.store, s.tenant, store.Vouchers)
}

// Overrides returns all opening-balance anchors.
func (s *Service) Overrides(ctx context.Context) ([]model.OpeningBalanceOverride, error) {
	return store.Load[model.OpeningBalanceOverride](ctx, s.store, s.tenant, store.Overrides)
}

// nextEntryID returns the next id for an entry kind within the entry's month.
func (s *Service) nextEntryID(kind string, on date.Date, existing []string) string {
	maxSeq := 0
	for _, existingID := range existing {
		k, y, m, seq, err := id.ParseEntryID(existingID)
		if err != nil || k != kind || y != on.Year() || m != int(on.Month()) {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return id.FormatEntryID(kind, on.Year(), int(on.Month()), maxSeq+1)
}

func nextVoucherNumber(vouchers []model.Voucher) int {
	max := 0
	for _, v := range vouchers {
		if v.Number > max {
			max = v.Number
		}
	}
	return max + 1
}

func incomeIDs(entries []model.IncomeEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func expenditureIDs(entries []model.Expenditure) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
