package habit

import (
	"time"

	"github.com/julianstephens/habitkeep/internal/dateutil"
	"github.com/julianstephens/habitkeep/internal/models"
)

// ToggleCompletion flips today's completion for a habit and returns a new
// record; the input is never mutated. If today is already completed, every
// entry falling on today's calendar day is removed (collapsing any same-day
// duplicates); otherwise a midnight-UTC instant for today is appended.
//
// Persisting the result is the caller's job (storage.Provider.Update). The
// compute and the write are not one transaction: a crash between them loses
// the toggle, which is acceptable because the operation is idempotent and
// safely retried.
func ToggleCompletion(h models.Habit) models.Habit {
	return ToggleCompletionAt(h, time.Now())
}

// ToggleCompletionAt is ToggleCompletion anchored at an explicit instant.
func ToggleCompletionAt(h models.Habit, now time.Time) models.Habit {
	todayKey := dateutil.TodayKeyAt(now)
	out := h.Clone()

	if IsCompletedOn(h.CompletionDates, todayKey) {
		kept := make([]string, 0, len(h.CompletionDates))
		for _, d := range h.CompletionDates {
			if key, err := dateutil.DayKey(d); err == nil && key == todayKey {
				continue
			}
			kept = append(kept, d)
		}
		out.CompletionDates = kept
		return out
	}

	out.CompletionDates = append(out.CompletionDates, todayKey+"T00:00:00.000Z")
	return out
}
