package apperr

import (
	"errors"
	"testing"
)

func TestIsQuotaExceeded(t *testing.T) {
	quota := []error{
		errors.New("database or disk is full (13)"),
		errors.New("write failed: disk is full"),
		errors.New("No space left on device"),
		errors.New("storage quota exceeded"),
	}
	for _, err := range quota {
		if !IsQuotaExceeded(err) {
			t.Errorf("IsQuotaExceeded(%q) = false, want true", err)
		}
	}

	other := []error{
		nil,
		errors.New("UNIQUE constraint failed: habits.id"),
		errors.New("database is locked"),
	}
	for _, err := range other {
		if IsQuotaExceeded(err) {
			t.Errorf("IsQuotaExceeded(%v) = true, want false", err)
		}
	}
}

func TestClassifyStorage_Quota(t *testing.T) {
	raw := errors.New("database or disk is full (13)")
	got := ClassifyStorage(raw, CodeStorageOperationFailed, "Failed to add habit", Context{"id": "1"})

	if got.Code != CodeStorageQuotaExceeded {
		t.Errorf("expected quota code, got %s", got.Code)
	}
	if got.UserMessage != QuotaUserMessage {
		t.Errorf("expected quota user message, got %q", got.UserMessage)
	}
	if got.TechnicalDetails != raw.Error() {
		t.Errorf("expected raw detail preserved, got %q", got.TechnicalDetails)
	}
}

func TestClassifyStorage_Fallback(t *testing.T) {
	raw := errors.New("UNIQUE constraint failed: habits.id")
	got := ClassifyStorage(raw, CodeStorageOperationFailed, "Failed to add habit", nil)

	if got.Code != CodeStorageOperationFailed {
		t.Errorf("expected fallback code, got %s", got.Code)
	}
	if got.UserMessage != "Failed to add habit" {
		t.Errorf("expected given user message, got %q", got.UserMessage)
	}
}

func TestClassifyStorage_PassThrough(t *testing.T) {
	orig := New(CodeValidation, "already classified")
	if got := ClassifyStorage(orig, CodeStorageOperationFailed, "x", nil); got != orig {
		t.Error("expected taxonomy error to pass through unchanged")
	}
}

func TestClassifyStorage_Nil(t *testing.T) {
	if ClassifyStorage(nil, CodeStorageOperationFailed, "x", nil) != nil {
		t.Error("ClassifyStorage(nil) should be nil")
	}
}
