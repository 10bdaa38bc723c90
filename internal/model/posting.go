package model

import (
	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
)

// EntryKind tags a simple posting as money in or money out.
type EntryKind string

const (
	KindIncome      EntryKind = "income"
	KindExpenditure EntryKind = "expenditure"
)

// IncomeEntry is a simple posting of money received against one account.
// FeePaymentID links entries materialized from a fee payment so the payment's
// deletion can cascade.
type IncomeEntry struct {
	ID           string          `json:"id"`
	Date         date.Date       `json:"date"`
	AccountID    int             `json:"accountId"`
	Amount       decimal.Decimal `json:"amount"`
	Remarks      string          `json:"remarks,omitempty"`
	FeePaymentID string          `json:"feePaymentId,omitempty"`
}

// Expenditure is a simple posting of money paid out against one account.
type Expenditure struct {
	ID        string          `json:"id"`
	Date      date.Date       `json:"date"`
	AccountID int             `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Remarks   string          `json:"remarks,omitempty"`
}

// OpeningBalanceOverride is a user-declared anchor: the trusted balance in
// force at the start of Date. At most one override exists per date; the date
// is the identity. Anchors always win over replayed history.
type OpeningBalanceOverride struct {
	Date   date.Date       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Type   Side            `json:"type"`
}

// Signed returns the override balance with credit positive.
func (o OpeningBalanceOverride) Signed() decimal.Decimal {
	if o.Type == Debit {
		return o.Amount.Neg()
	}
	return o.Amount
}
