package params

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	dateRegex     = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`)
	timeRegex     = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)(?::([0-5]\d))?$`)
	dateTimeRegex = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[T ](\d{2}:\d{2}(?::\d{2})?)$`)
)

// Date is a calendar date decomposed into its components.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ExtractDate parses a strict zero-padded YYYY-MM-DD string. Dates that match
// the pattern but do not exist in the calendar (2023-02-30) are rejected.
func ExtractDate(s string) (Date, error) {
	m := dateRegex.FindStringSubmatch(s)
	if m == nil {
		return Date{}, fmt.Errorf("%w: %q does not match YYYY-MM-DD", ErrInvalidDate, s)
	}
	d := Date{Year: atoi(m[1]), Month: atoi(m[2]), Day: atoi(m[3])}
	t := d.Time()
	if t.Year() != d.Year || int(t.Month()) != d.Month || t.Day() != d.Day {
		return Date{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidDate, s)
	}
	return d, nil
}

// String returns the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	return d.Time().Compare(other.Time())
}

// Time is a wall-clock time of day.
type Time struct {
	Hour       int
	Minute     int
	Second     int
	HasSeconds bool
}

// ExtractTime parses a strict HH:MM or HH:MM:SS string in 24-hour format.
func ExtractTime(s string) (Time, error) {
	m := timeRegex.FindStringSubmatch(s)
	if m == nil {
		return Time{}, fmt.Errorf("%w: %q does not match HH:MM[:SS]", ErrInvalidTime, s)
	}
	t := Time{Hour: atoi(m[1]), Minute: atoi(m[2])}
	if m[3] != "" {
		t.Second = atoi(m[3])
		t.HasSeconds = true
	}
	return t, nil
}

// String returns HH:MM, or HH:MM:SS when the source carried seconds.
func (t Time) String() string {
	if t.HasSeconds {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Seconds returns the number of seconds since midnight.
func (t Time) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or after other.
func (t Time) Compare(other Time) int {
	return compareInts(t.Seconds(), other.Seconds())
}

// DateTime is a date combined with a time of day.
type DateTime struct {
	Date Date
	Time Time
}

// ExtractDateTime parses "YYYY-MM-DDTHH:MM[:SS]"; a single space may replace the T.
func ExtractDateTime(s string) (DateTime, error) {
	m := dateTimeRegex.FindStringSubmatch(s)
	if m == nil {
		return DateTime{}, fmt.Errorf("%w: %q does not match YYYY-MM-DDTHH:MM[:SS]", ErrInvalidDateTime, s)
	}
	d, err := ExtractDate(m[1])
	if err != nil {
		return DateTime{}, errors.Join(ErrInvalidDateTime, err)
	}
	t, err := ExtractTime(m[2])
	if err != nil {
		return DateTime{}, errors.Join(ErrInvalidDateTime, err)
	}
	return DateTime{Date: d, Time: t}, nil
}

// String returns the canonical YYYY-MM-DDTHH:MM[:SS] form.
func (dt DateTime) String() string {
	return dt.Date.String() + "T" + dt.Time.String()
}

// Instant returns the date time as a UTC instant.
func (dt DateTime) Instant() time.Time {
	return dt.Date.Time().Add(time.Duration(dt.Time.Seconds()) * time.Second)
}

// Compare returns -1, 0 or +1 depending on whether dt is before, equal to or after other.
func (dt DateTime) Compare(other DateTime) int {
	return dt.Instant().Compare(other.Instant())
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
