package apperr

import (
	"sync"
	"time"
)

// MaxStoredErrors caps the diagnostic error buffer.
const MaxStoredErrors = 20

// StoredError is a snapshot of a logged error, kept for later inspection.
// Not a stable contract.
type StoredError struct {
	Code             Code      `json:"code"`
	UserMessage      string    `json:"userMessage"`
	TechnicalDetails string    `json:"technicalDetails,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
	Context          Context   `json:"context,omitempty"`
}

var errorStore = struct {
	mu      sync.Mutex
	entries []StoredError
}{}

// storeError pushes an error onto the most-recent-first ring buffer,
// dropping the oldest entry once the cap is reached. It must never fail:
// any panic is swallowed so diagnostics can't take down the operation that
// was being logged.
func storeError(e *Error) {
	defer func() { _ = recover() }()
	if e == nil {
		return
	}

	entry := StoredError{
		Code:             e.Code,
		UserMessage:      e.UserMessage,
		TechnicalDetails: e.TechnicalDetails,
		Timestamp:        e.Timestamp,
		Context:          e.Context,
	}

	errorStore.mu.Lock()
	defer errorStore.mu.Unlock()
	errorStore.entries = append([]StoredError{entry}, errorStore.entries...)
	if len(errorStore.entries) > MaxStoredErrors {
		errorStore.entries = errorStore.entries[:MaxStoredErrors]
	}
}

// StoredErrors returns a copy of the buffered errors, most recent first.
func StoredErrors() []StoredError {
	errorStore.mu.Lock()
	defer errorStore.mu.Unlock()
	out := make([]StoredError, len(errorStore.entries))
	copy(out, errorStore.entries)
	return out
}

// ClearStoredErrors empties the buffer (test isolation, diagnostics reset).
func ClearStoredErrors() {
	errorStore.mu.Lock()
	defer errorStore.mu.Unlock()
	errorStore.entries = nil
}
