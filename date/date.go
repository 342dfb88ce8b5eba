// Package date handles calendar days, with no time component.
//
// Days are written YYYY-MM-DD, so that their string order is the calendar
// order, and read leniently: 2024-3-1 is the first of March.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	layout     = "2006-01-02"
	readLayout = "2006-1-2"
)

// Date is a calendar day. The zero Date is "no date".
type Date struct {
	y int
	m time.Month
	d int
}

// time is midnight UTC on d, comparable with ==.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns the day, normalized: New(2024, 2, 30) is 2024-03-01.
func New(year int, month time.Month, day int) Date {
	y, m, dd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, dd}
}

// Today returns the local current day.
func Today() Date { return New(time.Now().Date()) }

// FromUnix returns the UTC day of a unix timestamp.
func FromUnix(sec int64) Date { return New(time.Unix(sec, 0).UTC().Date()) }

// Parse reads a day in the YYYY-M-D layout, zero padding optional.
func Parse(str string) (Date, error) {
	t, err := time.Parse(readLayout, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", str)
	}
	return New(t.Date()), nil
}

func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool  { return d.time().After(x.time()) }
func (d Date) IsZero() bool       { return d == Date{} }

// Add returns the day i days later, or earlier when i is negative.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// Unix returns the unix time of midnight UTC.
func (d Date) Unix() int64 { return d.time().Unix() }

func (d Date) String() string { return d.time().Format(layout) }

// MarshalJSON writes the zero Date as "".
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON reads null and "" as the zero Date.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	v, err := Parse(*s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
