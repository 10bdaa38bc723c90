package model

import "github.com/shopspring/decimal"

// Side distinguishes the two columns of an account book.
type Side string

const (
	Debit  Side = "debit"
	Credit Side = "credit"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

// AccountCategory groups accounts in the chart of accounts. System categories
// are created automatically, one per class, and follow the class through
// renames and deletion; they cannot be edited or removed by hand while any
// account still uses them.
type AccountCategory struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsSystem bool   `json:"isSystem"`
	ClassID  int    `json:"classId,omitempty"` // owning class for system categories
}

// Account is a row in the chart of accounts. Student accounts are managed by
// the student lifecycle and are immutable to operators.
type Account struct {
	ID                 int             `json:"id"`
	Name               string          `json:"name"`
	CategoryID         int             `json:"categoryId"`
	IsStudentAccount   bool            `json:"isStudentAccount"`
	StudentID          int             `json:"studentId,omitempty"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	OpeningBalanceType Side            `json:"openingBalanceType"`
}

// OpeningSigned returns the account's fixed opening balance with credit
// positive. Ledger statements run on this convention.
func (a Account) OpeningSigned() decimal.Decimal {
	if a.OpeningBalanceType == Debit {
		return a.OpeningBalance.Neg()
	}
	return a.OpeningBalance
}
