package model

import (
	"encoding/json"
	"time"
)

// DateLayout is the ISO-8601 calendar date layout used on the wire and in storage.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day.
//
// Values read back from storage that do not parse keep their raw text so a
// single record can still be returned unchanged; Valid reports false for them.
type Date struct {
	t   time.Time
	raw string
}

// NewDate returns the date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate strictly parses an ISO calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// LenientDate parses s and falls back to keeping the raw string.
func LenientDate(s string) Date {
	if d, err := ParseDate(s); err == nil {
		return d
	}
	return Date{raw: s}
}

// Valid reports whether d holds a parsed calendar date.
func (d Date) Valid() bool { return d.raw == "" && !d.t.IsZero() }

// IsZero reports whether d was never set.
func (d Date) IsZero() bool { return d.raw == "" && d.t.IsZero() }

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	if d.raw != "" {
		return d.raw
	}
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Before and After compare parsed dates only; callers check Valid first.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) && d.raw == o.raw }

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON only accepts well-formed dates; malformed input is a client error.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return NewValidationError("date", "date must be a string in YYYY-MM-DD format")
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return NewValidationError("date", "invalid date "+s+", expected YYYY-MM-DD")
	}
	*d = parsed
	return nil
}
