// Package habit derives time-based facts from a habit's completion list:
// completed-today, consecutive-day streaks, and the idempotent toggle
// operation. Everything here is pure and synchronous; all day arithmetic is
// UTC calendar days so stored data stays portable across timezones.
package habit

import (
	"sort"
	"time"

	"github.com/julianstephens/habitkeep/internal/dateutil"
)

// IsCompletedToday reports whether at least one completion falls on the
// current UTC calendar day.
func IsCompletedToday(completionDates []string) bool {
	return IsCompletedTodayAt(completionDates, time.Now())
}

// IsCompletedTodayAt is IsCompletedToday anchored at an explicit instant.
func IsCompletedTodayAt(completionDates []string, now time.Time) bool {
	return IsCompletedOn(completionDates, dateutil.TodayKeyAt(now))
}

// IsCompletedOn reports whether any completion's day-key equals the given
// YYYY-MM-DD day. Malformed entries never match.
func IsCompletedOn(completionDates []string, dayKey string) bool {
	for _, d := range completionDates {
		if key, err := dateutil.DayKey(d); err == nil && key == dayKey {
			return true
		}
	}
	return false
}

// CurrentStreak counts consecutive completed calendar days walking backward
// from today. A streak needs recent activity: if neither today nor
// yesterday is completed it is 0. Completing today is not required —
// yesterday keeps the streak alive for one more day — and multiple
// completions on the same day count once.
func CurrentStreak(completionDates []string) int {
	return CurrentStreakAt(completionDates, time.Now())
}

// CurrentStreakAt is CurrentStreak anchored at an explicit instant.
func CurrentStreakAt(completionDates []string, now time.Time) int {
	if len(completionDates) == 0 {
		return 0
	}

	days := dedupedDayKeys(completionDates)
	if len(days) == 0 {
		return 0
	}

	todayKey := dateutil.TodayKeyAt(now)
	yesterdayKey := dateutil.YesterdayKeyAt(now)

	if !days[todayKey] && !days[yesterdayKey] {
		return 0
	}

	// Anchor at today if completed, else yesterday, then walk backward one
	// calendar day at a time until the first gap.
	cur := todayKey
	if !days[todayKey] {
		cur = yesterdayKey
	}

	streak := 0
	for days[cur] {
		streak++
		prev, err := dateutil.PreviousDayKey(cur)
		if err != nil {
			break
		}
		cur = prev
	}

	return streak
}

// dedupedDayKeys collapses completions to their set of calendar days,
// skipping malformed entries.
func dedupedDayKeys(completionDates []string) map[string]bool {
	days := make(map[string]bool, len(completionDates))
	for _, d := range completionDates {
		if key, err := dateutil.DayKey(d); err == nil {
			days[key] = true
		}
	}
	return days
}

// CompletedDayKeys returns the de-duplicated day-keys of a completion list,
// sorted descending (most recent first).
func CompletedDayKeys(completionDates []string) []string {
	days := dedupedDayKeys(completionDates)
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}
