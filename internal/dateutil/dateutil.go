package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DayKeyFormat is the calendar-day layout used as the unit of
	// completion tracking (always UTC).
	DayKeyFormat = "2006-01-02"

	instantFormat       = "2006-01-02T15:04:05Z"
	instantFormatMillis = "2006-01-02T15:04:05.000Z"
)

var (
	// ErrInvalidFormat reports input that does not have the expected shape.
	ErrInvalidFormat = errors.New("invalid date format")
	// ErrInvalidValue reports well-formed input whose numeric parts do not
	// name a real calendar date.
	ErrInvalidValue = errors.New("invalid date value")
)

var (
	dayKeyRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	instantRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{3})?Z$`)
)

// DayKey extracts the calendar-day portion (YYYY-MM-DD) of a UTC ISO 8601
// instant.
func DayKey(isoInstant string) (string, error) {
	datePart, _, _ := strings.Cut(isoInstant, "T")
	if !dayKeyRe.MatchString(datePart) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, isoInstant)
	}
	return datePart, nil
}

// TodayKey returns the current UTC calendar day as YYYY-MM-DD.
func TodayKey() string {
	return TodayKeyAt(time.Now())
}

// TodayKeyAt returns the UTC calendar day of the given instant.
func TodayKeyAt(now time.Time) string {
	return now.UTC().Format(DayKeyFormat)
}

// YesterdayKey returns yesterday's UTC calendar day as YYYY-MM-DD.
func YesterdayKey() string {
	return YesterdayKeyAt(time.Now())
}

// YesterdayKeyAt returns the UTC calendar day before the given instant.
func YesterdayKeyAt(now time.Time) string {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day()-1, 0, 0, 0, 0, time.UTC).Format(DayKeyFormat)
}

// PreviousDayKey returns the calendar day immediately preceding the given
// day key, crossing month and year boundaries as needed. The input is
// validated by round-tripping the numeric parts through a UTC date
// construction: parts that get normalized (month 13, day 32) are rejected
// with ErrInvalidValue.
func PreviousDayKey(dayKey string) (string, error) {
	parts := strings.Split(dayKey, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, dayKey)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidFormat, dayKey)
		}
		nums[i] = n
	}
	year, month, day := nums[0], nums[1], nums[2]

	check := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if check.Year() != year || int(check.Month()) != month || check.Day() != day {
		return "", fmt.Errorf("%w: %q", ErrInvalidValue, dayKey)
	}

	prev := time.Date(year, time.Month(month), day-1, 0, 0, 0, 0, time.UTC)
	return prev.Format(DayKeyFormat), nil
}

// IsValidISO8601 reports whether s is a strict ISO 8601 UTC instant
// (YYYY-MM-DDTHH:mm:ss.sssZ, milliseconds optional). The string must match
// the shape exactly and survive a round trip through UTC parsing and
// re-serialization, which rejects offsets other than Z, out-of-range
// components, and syntactically plausible non-dates like 2025-02-30.
func IsValidISO8601(s string) bool {
	if !instantRe.MatchString(s) {
		return false
	}
	layout := instantFormat
	if strings.Contains(s, ".") {
		layout = instantFormatMillis
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return false
	}
	return t.UTC().Format(layout) == s
}
