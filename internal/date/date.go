// Package date provides a day-granularity date value. Postings and balance
// anchors never carry a time of day, so the engine works in whole days only.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the canonical string form, ISO-8601.
const Format = "2006-01-02"

// importFormat is the day-first form used by spreadsheet imports.
const importFormat = "02/01/2006"

// Date is a calendar day with no time component. The zero value is invalid
// and reports IsZero.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month and day.
// Out-of-range components roll over the way time.Date does.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// FromTime truncates a time.Time to its calendar day.
func FromTime(t time.Time) Date { return New(t.Date()) }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Year returns the year.
func (d Date) Year() int { return d.y }

// Month returns the month.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Compare returns -1, 0 or +1 ordering d against x. Useful with slices.SortFunc.
func (d Date) Compare(x Date) int { return d.time().Compare(x.time()) }

// Add returns d shifted by the given number of days.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// String formats the date in its canonical form.
func (d Date) String() string { return d.time().Format(Format) }

// Parse reads a Date in canonical form.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want %q: %w", s, Format, err)
	}
	return FromTime(t), nil
}

// MustParse is like Parse but panics on error. For tests and literals.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// ParseDMY reads a DD/MM/YYYY date as produced by spreadsheet exports.
func ParseDMY(s string) (Date, error) {
	t, err := time.Parse(importFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want DD/MM/YYYY: %w", s, err)
	}
	return FromTime(t), nil
}

// MarshalJSON encodes the date as a canonical string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a canonical date string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
