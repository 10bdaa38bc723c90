// Package id formats and parses the engine's record identifiers.
package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry kind prefixes.
const (
	KindIncome      = "inc"
	KindExpenditure = "exp"
	KindFeePayment  = "fee"
)

// FormatEntryID returns an entry ID like "inc-2024-03-001". The sequence is
// per kind and month.
func FormatEntryID(kind string, year, month, seq int) string {
	return fmt.Sprintf("%s-%04d-%02d-%03d", kind, year, month, seq)
}

// FormatVoucherID returns a voucher ID like "vch-000042" derived from the
// ledger-wide voucher number.
func FormatVoucherID(number int) string {
	return fmt.Sprintf("vch-%06d", number)
}

// ParseEntryID parses "inc-2024-03-001" into kind, year, month and sequence.
func ParseEntryID(id string) (kind string, year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 4)
	if len(parts) != 4 {
		return "", 0, 0, 0, fmt.Errorf("invalid entry ID format: %q", id)
	}

	kind = parts[0]
	switch kind {
	case KindIncome, KindExpenditure, KindFeePayment:
	default:
		return "", 0, 0, 0, fmt.Errorf("unknown entry kind in ID %q", id)
	}

	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid year in entry ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid month in entry ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[3])
	if err != nil {
		return "", 0, 0, 0, fmt.Errorf("invalid sequence in entry ID %q: %w", id, err)
	}

	return kind, year, month, seq, nil
}
