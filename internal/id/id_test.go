package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEntryID(t *testing.T) {
	assert.Equal(t, "inc-2024-03-001", FormatEntryID(KindIncome, 2024, 3, 1))
	assert.Equal(t, "exp-2024-12-042", FormatEntryID(KindExpenditure, 2024, 12, 42))
	assert.Equal(t, "fee-2025-01-100", FormatEntryID(KindFeePayment, 2025, 1, 100))
}

func TestFormatVoucherID(t *testing.T) {
	assert.Equal(t, "vch-000001", FormatVoucherID(1))
	assert.Equal(t, "vch-012345", FormatVoucherID(12345))
}

func TestParseEntryID(t *testing.T) {
	kind, year, month, seq, err := ParseEntryID("inc-2024-03-017")
	require.NoError(t, err)
	assert.Equal(t, KindIncome, kind)
	assert.Equal(t, 2024, year)
	assert.Equal(t, 3, month)
	assert.Equal(t, 17, seq)
}

func TestParseEntryID_Invalid(t *testing.T) {
	cases := []string{"", "inc-2024-03", "vch-000001", "xyz-2024-03-001", "inc-yyyy-03-001"}
	for _, c := range cases {
		_, _, _, _, err := ParseEntryID(c)
		assert.Error(t, err, c)
	}
}

func TestRoundTrip(t *testing.T) {
	id := FormatEntryID(KindExpenditure, 2024, 7, 9)
	kind, y, m, s, err := ParseEntryID(id)
	require.NoError(t, err)
	assert.Equal(t, KindExpenditure, kind)
	assert.Equal(t, [3]int{2024, 7, 9}, [3]int{y, m, s})
}
