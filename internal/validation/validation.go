// Package validation gates habit records before they reach storage. Checks
// run in a fixed order and fail fast with a taxonomy VALIDATION_ERROR whose
// user message names the offending field.
package validation

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/dateutil"
	"github.com/julianstephens/habitkeep/internal/models"
)

const (
	MaxNameLength        = 255
	MaxDescriptionLength = 5000
	// MaxHabitSize caps the JSON-serialized size of a record, in bytes.
	MaxHabitSize = 100000
)

// ValidateHabit checks a habit record for persistence. Pure; no I/O.
func ValidateHabit(h models.Habit) error {
	if strings.TrimSpace(h.ID) == "" {
		return apperr.New(apperr.CodeValidation, "Habit must have a non-empty string id")
	}

	if strings.TrimSpace(h.CreatedDate) == "" {
		return apperr.New(apperr.CodeValidation, "Habit must have a non-empty string createdDate")
	}
	if !dateutil.IsValidISO8601(h.CreatedDate) {
		return apperr.New(apperr.CodeValidation, "Habit createdDate must be a valid ISO 8601 date string")
	}

	if h.CompletionDates == nil {
		return apperr.New(apperr.CodeValidation, "Habit must have a completionDates array")
	}
	for _, d := range h.CompletionDates {
		if !dateutil.IsValidISO8601(d) {
			return apperr.New(apperr.CodeValidation, "All completionDates must be valid ISO 8601 date strings").
				WithContext(apperr.Context{"value": d})
		}
	}

	if utf8.RuneCountInString(h.Name) > MaxNameLength {
		return apperr.Newf(apperr.CodeValidation, "Habit name must not exceed %d characters", MaxNameLength)
	}
	if utf8.RuneCountInString(h.Description) > MaxDescriptionLength {
		return apperr.Newf(apperr.CodeValidation, "Habit description must not exceed %d characters", MaxDescriptionLength)
	}

	data, err := json.Marshal(h)
	if err != nil {
		return apperr.New(apperr.CodeValidation, "Habit could not be serialized").WithDetails(err.Error())
	}
	if len(data) > MaxHabitSize {
		return apperr.New(apperr.CodeValidation, "Habit data exceeds maximum size")
	}

	return nil
}

// ValidateID checks a habit id before read/update/delete by id.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.New(apperr.CodeValidation, "Habit id must be a non-empty string")
	}
	return nil
}

// ParseHabit decodes untrusted bytes into a validated habit record. The
// storage layer uses it to guard rows on the way out of the engine against
// corrupted or hand-edited data.
func ParseHabit(data []byte) (models.Habit, error) {
	var h models.Habit
	if err := json.Unmarshal(data, &h); err != nil {
		return models.Habit{}, apperr.New(apperr.CodeValidation, "Habit must be a valid JSON object").
			WithDetails(err.Error())
	}
	if err := ValidateHabit(h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}
