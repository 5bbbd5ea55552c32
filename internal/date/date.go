// Package date provides a Date type that parses and marshals as YYYY-MM-DD.
package date

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	format        = "2006-01-02"
	displayFormat = "Jan 2 2006"
)

// Date represents a calendar date without time or timezone.
type Date struct {
	time.Time
}

// New creates a Date from year, month, day.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Parse parses a YYYY-MM-DD string into a Date. Surrounding whitespace is
// ignored; anything else that deviates from the layout is rejected.
func Parse(s string) (Date, error) {
	t, err := time.Parse(format, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(format)
}

// Display returns the date in month-name form, e.g. "Oct 15 2023".
func (d Date) Display() string {
	return d.Format(displayFormat)
}

// Equal reports whether d and other name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.String() == other.String()
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
