package model

import (
	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/date"
)

// VoucherType classifies double-entry vouchers.
type VoucherType string

const (
	VoucherPayment VoucherType = "payment"
	VoucherReceipt VoucherType = "receipt"
	VoucherJournal VoucherType = "journal"
	VoucherContra  VoucherType = "contra"
)

// VoucherLine is one side of a double-entry voucher. Exactly one of the two
// sides carries the amount; Side names which.
type VoucherLine struct {
	AccountID int             `json:"accountId"`
	Side      Side            `json:"side"`
	Amount    decimal.Decimal `json:"amount"`
}

// Signed returns the line amount with credit positive, the convention
// account statements accumulate in.
func (l VoucherLine) Signed() decimal.Decimal {
	if l.Side == Debit {
		return l.Amount.Neg()
	}
	return l.Amount
}

// Voucher is a balanced set of debit/credit lines recorded together.
// Number is assigned on posting and increases monotonically across the whole
// ledger, never per voucher type.
type Voucher struct {
	ID        string        `json:"id"`
	Date      date.Date     `json:"date"`
	Type      VoucherType   `json:"type"`
	Number    int           `json:"number"`
	Narration string        `json:"narration,omitempty"`
	Lines     []VoucherLine `json:"lines"`
}

// Totals returns the voucher's debit and credit sums.
func (v Voucher) Totals() (totalDebit, totalCredit decimal.Decimal) {
	for _, l := range v.Lines {
		if l.Side == Debit {
			totalDebit = totalDebit.Add(l.Amount)
		} else {
			totalCredit = totalCredit.Add(l.Amount)
		}
	}
	return totalDebit, totalCredit
}

// CashDelta returns the voucher's net movement on the given cash account,
// money in positive. This is what the day book and the opening-balance replay
// see of a voucher.
func (v Voucher) CashDelta(cashAccountID int) decimal.Decimal {
	delta := decimal.Zero
	for _, l := range v.Lines {
		if l.AccountID != cashAccountID {
			continue
		}
		if l.Side == Debit {
			delta = delta.Add(l.Amount)
		} else {
			delta = delta.Sub(l.Amount)
		}
	}
	return delta
}
