package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

const (
	numFields  = 5
	colAccount = 0
	colDate    = 1
	colDebit   = 2
	colCredit  = 3
	colNarr    = 4
)

// ReadRows parses an import CSV: account,date,debit,credit,narration.
// A header row is recognized by its first cell and dropped.
func ReadRows(r io.Reader) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	if strings.EqualFold(strings.TrimSpace(records[0][colAccount]), "account") {
		records = records[1:]
	}

	rows := make([]RawRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, RawRow{
			AccountName: rec[colAccount],
			Date:        rec[colDate],
			Debit:       rec[colDebit],
			Credit:      rec[colCredit],
			Narration:   rec[colNarr],
		})
	}
	return rows, nil
}
