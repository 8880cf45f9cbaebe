package domain

import (
	"strings"
	"time"
)

// DateLayout is the wire and storage layout of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day, encoded as YYYY-MM-DD.
type Date string

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// ParseDate validates and normalizes a YYYY-MM-DD string.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return "", WrapError(ErrCodeInvalid, "invalid date", err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return strings.TrimSpace(string(d)) == ""
}

// Valid reports whether the date parses.
func (d Date) Valid() bool {
	_, err := d.Time()
	return err == nil
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the whole number of calendar days from a to b.
// Exact over the whole 0000-9999 range.
func DaysBetween(a, b Date) (int, error) {
	at, err := a.Time()
	if err != nil {
		return 0, err
	}
	bt, err := b.Time()
	if err != nil {
		return 0, err
	}
	return int((bt.Unix() - at.Unix()) / secondsPerDay), nil
}
