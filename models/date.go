package models

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the textual form exercise dates are stored and returned in
const DateLayout = "Mon Jan 02 2006"

// InvalidDate is stored in place of a date that could not be parsed
const InvalidDate = "Invalid Date"

var ErrInvalidDate = errors.New("invalid date")

// Layouts carrying a time zone or offset; these are converted to local time
// before the calendar date is taken.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// Layouts without a zone; the calendar date is taken as written.
var plainLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	DateLayout,
	"Mon Jan 2 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2006-01",
	"2006",
}

// ParseDate parses a calendar date and returns it as midnight UTC of that day
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateToDay(t.In(time.Local)), nil
		}
	}
	for _, layout := range plainLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateToDay(t), nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// FormatDate renders the calendar date of t in DateLayout
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NormalizeDate converts optional date input into its stored textual form.
// Empty input resolves to the calendar date of now; unparseable input is
// kept as InvalidDate rather than rejected.
func NormalizeDate(raw string, now time.Time) string {
	if strings.TrimSpace(raw) == "" {
		return FormatDate(now)
	}
	t, err := ParseDate(raw)
	if err != nil {
		return InvalidDate
	}
	return FormatDate(t)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
