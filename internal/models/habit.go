package models

// Habit is the one persisted entity: a recurring practice and the UTC
// instants on which it was completed. CompletionDates may contain several
// entries for the same calendar day; derived computations collapse them to
// one logical completion per day.
type Habit struct {
	ID              string   `json:"id"`
	Name            string   `json:"name,omitempty"`
	Description     string   `json:"description,omitempty"`
	CreatedDate     string   `json:"createdDate"`
	CompletionDates []string `json:"completionDates"`
}

// Clone returns a deep copy. Callers of the storage layer receive and submit
// copies, never shared references into the store.
func (h Habit) Clone() Habit {
	out := h
	if h.CompletionDates != nil {
		out.CompletionDates = make([]string, len(h.CompletionDates))
		copy(out.CompletionDates, h.CompletionDates)
	}
	return out
}
