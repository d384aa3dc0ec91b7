// Package date provides a calendar day, the granularity at which the ledger
// records transactions.
package date

import (
	"errors"
	"fmt"
	"time"
)

// DateFormat is the layout of a Date in the ledger file and in reports.
const DateFormat = "2006-01-02"

// lenientFormat also accepts single digit months and days, as in "2024-1-2".
const lenientFormat = "2006-1-2"

// Date is a calendar day, without time of day or location.
//
// The zero Date means "no date". Dates are comparable with ==.
type Date struct {
	year  int
	month time.Month
	day   int
}

// midnight is the day at 00:00 UTC, used for arithmetic and formatting.
func (d Date) midnight() time.Time { return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC) }

// New returns the Date for year, month and day. Out of range values are
// normalized, so New(2024, 1, 32) is February 1st.
func New(year int, month time.Month, day int) Date {
	y, m, dd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{year: y, month: m, day: dd}
}

// Today returns the current day in the local time zone.
func Today() Date { return New(time.Now().Date()) }

func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Before(x Date) bool { return d.midnight().Before(x.midnight()) }
func (d Date) After(x Date) bool  { return d.midnight().After(x.midnight()) }

// Add returns the Date days later, or earlier for a negative value.
func (d Date) Add(days int) Date { return New(d.year, d.month, d.day+days) }

// String returns the date as YYYY-MM-DD.
func (d Date) String() string { return d.midnight().Format(DateFormat) }

// Parse reads a YYYY-MM-DD date. Months and days may omit their leading zero.
func Parse(s string) (Date, error) {
	t, err := time.Parse(lenientFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format YYYY-MM-DD: %w", s, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error. It is meant for tests and
// constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalText writes the date as YYYY-MM-DD, which is also its JSON string.
// The zero Date has no such form and is an error.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return nil, errors.New("cannot write the zero date")
	}
	return []byte(d.String()), nil
}

// UnmarshalText reads a date accepted by Parse.
func (d *Date) UnmarshalText(b []byte) error {
	on, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = on
	return nil
}
