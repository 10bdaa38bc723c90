package model

import "errors"

// Engine error kinds. Services return these wrapped with context; callers
// test with errors.Is. Every validation failure is raised before any
// mutation is applied.
var (
	// ErrUnbalanced reports a voucher whose debit and credit totals differ
	// beyond tolerance, or whose total is zero.
	ErrUnbalanced = errors.New("voucher debits and credits do not balance")

	// ErrTooFewLines reports a voucher with fewer than two effective lines.
	ErrTooFewLines = errors.New("voucher needs at least two effective lines")

	// ErrCategoryInUse blocks deleting a category that accounts still reference.
	ErrCategoryInUse = errors.New("category is referenced by accounts")

	// ErrImmutable blocks manual mutation of system-managed categories and
	// student accounts.
	ErrImmutable = errors.New("system-managed record cannot be modified")

	// ErrVoucherLinked blocks deleting a voucher that a fee payment owns.
	ErrVoucherLinked = errors.New("voucher is linked to a fee payment")

	// ErrUnresolvedAccount reports a posting against a missing account.
	ErrUnresolvedAccount = errors.New("account does not exist")

	// ErrIntegrityFault reports a trial balance whose debit and credit totals
	// differ. Reportable, not blocking.
	ErrIntegrityFault = errors.New("trial balance debits and credits differ")

	// ErrPersistence wraps storage-layer failures. In-memory state is left
	// untouched when it is returned.
	ErrPersistence = errors.New("persistence failure")

	// ErrNotFound reports a lookup by id that matched nothing.
	ErrNotFound = errors.New("record not found")
)
