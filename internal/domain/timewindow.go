package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	// DayLayout is the wire format of availability range bounds.
	DayLayout = "2006-01-02"

	canonicalLayout = "2006-01-02T15:04:05.000Z07:00"
)

var (
	errEmptyDay     = errors.New("date is required")
	errInvalidDay   = errors.New("date must be YYYY-MM-DD")
	errEmptyInstant = errors.New("timestamp is required")
)

// CanonicalInstant renders t as the slot identity string: UTC, millisecond
// precision, "Z" suffix.
func CanonicalInstant(t time.Time) string {
	return t.UTC().Format(canonicalLayout)
}

// ParseInstant parses an RFC 3339 timestamp and normalizes it to the slot
// grid precision (UTC, milliseconds).
func ParseInstant(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errEmptyInstant
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC().Truncate(time.Millisecond), nil
}

// ParseDay parses a calendar day and returns its start in loc. Full RFC 3339
// timestamps are accepted too; only their date in loc is kept.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errEmptyDay
	}
	if d, err := time.ParseInLocation(DayLayout, value, loc); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, errInvalidDay
	}
	return StartOfDay(t.In(loc)), nil
}

// StartOfDay returns local midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayRange converts the closed day range [from, to] into the instant window
// [start of from, last microsecond of to].
func DayRange(from, to time.Time) (time.Time, time.Time) {
	start := StartOfDay(from)
	y, m, d := to.Date()
	end := time.Date(y, m, d+1, 0, 0, 0, 0, to.Location()).Add(-time.Microsecond)
	return start, end
}

// DaysBetween counts calendar days in the closed range [from, to]. It is
// zero when to falls on an earlier day than from.
func DaysBetween(from, to time.Time) int {
	a := StartOfDay(from)
	b := StartOfDay(to)
	if b.Before(a) {
		return 0
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua)/(24*time.Hour)) + 1
}
