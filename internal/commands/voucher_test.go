package commands

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolbooks-dev/schoolbooks/internal/model"
)

func TestParseLineSpec(t *testing.T) {
	line, err := parseLineSpec("4:500.25", model.Debit)
	require.NoError(t, err)
	assert.Equal(t, 4, line.AccountID)
	assert.True(t, line.Debit.Equal(decimal.RequireFromString("500.25")))
	assert.True(t, line.Credit.IsZero())

	line, err = parseLineSpec(" 1 : 500 ", model.Credit)
	require.NoError(t, err)
	assert.Equal(t, 1, line.AccountID)
	assert.True(t, line.Credit.Equal(decimal.NewFromInt(500)))
}

func TestParseLineSpec_Malformed(t *testing.T) {
	for _, spec := range []string{"500", "x:500", "4:lots", ""} {
		_, err := parseLineSpec(spec, model.Debit)
		assert.Error(t, err, "spec %q", spec)
	}
}

func TestParseVoucherType(t *testing.T) {
	vt, err := parseVoucherType("Receipt")
	require.NoError(t, err)
	assert.Equal(t, model.VoucherReceipt, vt)

	_, err = parseVoucherType("refund")
	require.Error(t, err)
}
