// Package importer loads spreadsheet exports into the ledger. Rows carry an
// account name, a DD/MM/YYYY date, an amount on exactly one side, and a
// narration. Malformed rows are skipped and reported, never fatal; storage
// failures are.
package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/coa"
	"github.com/schoolbooks-dev/schoolbooks/internal/date"
	"github.com/schoolbooks-dev/schoolbooks/internal/ledger"
)

// DefaultCategory is where accounts created by an import are filed.
const DefaultCategory = "Imported"

// RawRow is one unparsed import row.
type RawRow struct {
	AccountName string
	Date        string
	Debit       string
	Credit      string
	Narration   string
}

// SkippedRow records why a row was not imported. Line is 1-based over the
// data rows.
type SkippedRow struct {
	Line   int
	Reason string
}

// Result summarizes an import batch.
type Result struct {
	Imported int
	Skipped  []SkippedRow
}

// Importer appends import rows to the ledger, creating accounts on demand.
type Importer struct {
	chart  *coa.Service
	ledger *ledger.Service
}

// New creates an Importer.
func New(chart *coa.Service, led *ledger.Service) *Importer {
	return &Importer{chart: chart, ledger: led}
}

// Import processes rows in order. A debit amount becomes an expenditure, a
// credit an income entry, against the named account (created under the
// Imported category when unknown).
func (im *Importer) Import(ctx context.Context, rows []RawRow) (Result, error) {
	var res Result
	for i, row := range rows {
		line := i + 1
		skip := func(format string, args ...any) {
			res.Skipped = append(res.Skipped, SkippedRow{Line: line, Reason: fmt.Sprintf(format, args...)})
		}

		name := strings.TrimSpace(row.AccountName)
		if name == "" {
			skip("missing account name")
			continue
		}

		on, err := date.ParseDMY(strings.TrimSpace(row.Date))
		if err != nil {
			skip("bad date %q", row.Date)
			continue
		}

		debit, ok := parseAmount(row.Debit)
		if !ok {
			skip("bad debit amount %q", row.Debit)
			continue
		}
		credit, ok := parseAmount(row.Credit)
		if !ok {
			skip("bad credit amount %q", row.Credit)
			continue
		}
		if debit.IsPositive() == credit.IsPositive() {
			skip("exactly one of debit/credit must be set")
			continue
		}

		account, err := im.resolveAccount(ctx, name)
		if err != nil {
			return res, err
		}

		params := ledger.EntryParams{Date: on, AccountID: account, Remarks: row.Narration}
		if debit.IsPositive() {
			params.Amount = debit
			_, err = im.ledger.RecordExpenditure(ctx, params)
		} else {
			params.Amount = credit
			_, err = im.ledger.RecordIncome(ctx, params)
		}
		if err != nil {
			return res, fmt.Errorf("row %d: %w", line, err)
		}
		res.Imported++
	}
	return res, nil
}

func (im *Importer) resolveAccount(ctx context.Context, name string) (int, error) {
	account, found, err := im.chart.FindAccountByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if found {
		return account.ID, nil
	}

	cat, err := im.chart.EnsureCategory(ctx, DefaultCategory)
	if err != nil {
		return 0, err
	}
	created, err := im.chart.CreateAccount(ctx, coa.AccountParams{Name: name, CategoryID: cat.ID})
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
