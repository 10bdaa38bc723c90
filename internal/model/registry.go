package model

import (
	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
)

// Class is a named group of students. Each class owns one system account
// category of the same name.
type Class struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Student enrollment record. Each student owns exactly one ledger account,
// categorized under its class.
type Student struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ClassID   int    `json:"classId"`
	RollNo    string `json:"rollNo,omitempty"`
	AccountID int    `json:"accountId"`
}

// FeePayment records a fee received from a student. It materializes in the
// ledger as either an income entry (simple model) or a receipt voucher
// (double-entry model); the link drives delete cascades and blocks direct
// deletion of the voucher.
type FeePayment struct {
	ID        string          `json:"id"`
	Date      date.Date       `json:"date"`
	StudentID int             `json:"studentId"`
	Amount    decimal.Decimal `json:"amount"`
	Remarks   string          `json:"remarks,omitempty"`
	EntryID   string          `json:"entryId,omitempty"`   // linked income entry, simple model
	VoucherID string          `json:"voucherId,omitempty"` // linked voucher, double-entry model
}
