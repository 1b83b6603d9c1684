package ledger

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar-date format every ledger date uses.
const DateLayout = "2006-01-02"

// Today returns the current calendar date in ISO form.
func Today() string {
	return time.Now().Format(DateLayout)
}

// NormalizeDate accepts the date shapes the remote store has been seen to
// return (plain ISO dates and timestamp variants) and reduces them to
// YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	for _, layout := range []string{DateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
}

// NextDay returns the ISO date one calendar day after the given one.
func NextDay(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.AddDate(0, 0, 1).Format(DateLayout), nil
}

// PreviousDay returns the ISO date one calendar day before the given one.
func PreviousDay(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.AddDate(0, 0, -1).Format(DateLayout), nil
}
