package dateutil

import (
	"fmt"
	"time"
)

// DaysInMonth returns the number of days in the given month (1-12).
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayOfMonth returns the weekday of the first day of the given
// month (time.Sunday..time.Saturday).
func FirstWeekdayOfMonth(year, month int) time.Weekday {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// CalendarGrid returns a month view as a fixed 6x7 grid of UTC midnights.
// Weeks start on Sunday; leading and trailing cells come from the adjacent
// months so every row is complete.
func CalendarGrid(year, month int) [][]time.Time {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	cur := first.AddDate(0, 0, -int(first.Weekday()))

	grid := make([][]time.Time, 0, 6)
	for week := 0; week < 6; week++ {
		row := make([]time.Time, 0, 7)
		for day := 0; day < 7; day++ {
			row = append(row, cur)
			cur = cur.AddDate(0, 0, 1)
		}
		grid = append(grid, row)
	}
	return grid
}

// WeekStart returns the Sunday on or before the given instant, at UTC
// midnight.
func WeekStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day()-int(u.Weekday()), 0, 0, 0, 0, time.UTC)
}

// YearGrid returns an annual view as a 53x7 grid of UTC midnights, starting
// from the Sunday on or before January 1. 53 weeks covers every year.
func YearGrid(year int) [][]time.Time {
	cur := WeekStart(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))

	grid := make([][]time.Time, 0, 53)
	for week := 0; week < 53; week++ {
		row := make([]time.Time, 0, 7)
		for day := 0; day < 7; day++ {
			row = append(row, cur)
			cur = cur.AddDate(0, 0, 1)
		}
		grid = append(grid, row)
	}
	return grid
}

// IsDateInMonth reports whether an ISO 8601 instant falls within the given
// month and year, by its UTC date portion.
func IsDateInMonth(isoInstant string, year, month int) bool {
	key, err := DayKey(isoInstant)
	if err != nil {
		return false
	}
	t, err := time.Parse(DayKeyFormat, key)
	if err != nil {
		return false
	}
	return t.Year() == year && int(t.Month()) == month
}

// FormatMonthYear renders a month heading like "January 2025".
func FormatMonthYear(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}
