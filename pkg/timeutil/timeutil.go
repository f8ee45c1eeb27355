// Package timeutil holds the calendar arithmetic shared by the availability
// engine and the booking committer. All dates are normalized to UTC
// midnight; every component in the repo uses this single discipline.
package timeutil

import (
	"fmt"
	"time"

	apperrors "courtside/pkg/errors"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// MinutesPerDay bounds valid minute-of-day offsets: [0, 1440).
const MinutesPerDay = 24 * 60

var weekdayLabels = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// ParseDate parses a YYYY-MM-DD string into a normalized UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return Normalize(d), nil
}

// Normalize truncates a timestamp to UTC midnight.
func Normalize(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC day boundary.
func Today() time.Time {
	return Normalize(time.Now())
}

// DayOfWeek returns the three-letter uppercase weekday label for a
// normalized date: SUN, MON, TUE, WED, THU, FRI or SAT.
func DayOfWeek(t time.Time) string {
	return weekdayLabels[int(Normalize(t).Weekday())]
}

// DaysBetween returns the whole number of days from one normalized day to
// another. Positive when 'to' is later than 'from'.
func DaysBetween(from, to time.Time) int {
	return int(Normalize(to).Sub(Normalize(from)).Hours() / 24)
}

// ToMinutes converts an "HH:MM" string to a minute-of-day offset.
func ToMinutes(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid time %q, expected HH:MM", s))
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid time %q, expected HH:MM", s))
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FromMinutes converts a minute-of-day offset back to "HH:MM". It is the
// exact inverse of ToMinutes for every n in [0, 1440).
func FromMinutes(n int) string {
	return fmt.Sprintf("%02d:%02d", n/60, n%60)
}
