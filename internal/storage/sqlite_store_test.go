package storage

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/habit"
	"github.com/julianstephens/habitkeep/internal/models"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	s := NewService(filepath.Join(t.TempDir(), "habitkeep.db"))
	if err := s.Open(); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(s.Reset)
	return s
}

func testHabit() models.Habit {
	return models.Habit{
		ID:              uuid.New().String(),
		Name:            "Morning meditation",
		Description:     "Ten minutes before coffee",
		CreatedDate:     "2025-01-15T08:00:00.000Z",
		CompletionDates: []string{"2025-01-15T08:10:00.000Z", "2025-01-16T07:55:00.000Z"},
	}
}

func TestOpen_Idempotent(t *testing.T) {
	s := setupTestService(t)
	if err := s.Open(); err != nil {
		t.Fatalf("second open failed: %v", err)
	}
}

func TestOpen_Unavailable(t *testing.T) {
	// A directory path is not a usable database file.
	dir := t.TempDir()
	s := NewService(dir)
	err := s.Open()
	if err == nil {
		s.Reset()
		t.Fatal("expected open against a directory to fail")
	}
	if got := apperr.CodeOf(err); got != apperr.CodeStorageUnavailable {
		t.Errorf("expected %s, got %s", apperr.CodeStorageUnavailable, got)
	}
}

func TestAddGet_RoundTrip(t *testing.T) {
	s := setupTestService(t)
	h := testHabit()

	id, err := s.Add(h)
	if err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if id != h.ID {
		t.Errorf("expected returned id %q, got %q", h.ID, id)
	}

	got, err := s.Get(h.ID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if got == nil {
		t.Fatal("expected habit, got nil")
	}
	if !reflect.DeepEqual(*got, h) {
		t.Errorf("round trip mismatch:\n add: %+v\n get: %+v", h, *got)
	}
}

func TestGet_Missing(t *testing.T) {
	s := setupTestService(t)
	got, err := s.Get("no-such-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing id, got %+v", got)
	}
}

func TestAdd_DuplicateID(t *testing.T) {
	s := setupTestService(t)
	h := testHabit()

	if _, err := s.Add(h); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	_, err := s.Add(h)
	if err == nil {
		t.Fatal("expected duplicate add to fail")
	}
	appErr, ok := apperr.As(err)
	if !ok {
		t.Fatalf("expected a taxonomy error, got %T: %v", err, err)
	}
	if appErr.Code != apperr.CodeStorageOperationFailed {
		t.Errorf("expected %s, got %s", apperr.CodeStorageOperationFailed, appErr.Code)
	}
	if appErr.UserMessage == "" || appErr.UserMessage == appErr.TechnicalDetails {
		t.Error("expected a user-safe message distinct from the raw engine error")
	}
}

func TestAdd_ValidationBeforeIO(t *testing.T) {
	s := setupTestService(t)
	h := testHabit()
	h.CreatedDate = "not-a-date"

	_, err := s.Add(h)
	if got := apperr.CodeOf(err); got != apperr.CodeValidation {
		t.Fatalf("expected %s, got %v", apperr.CodeValidation, err)
	}

	// Nothing was written.
	all, err := s.GetAll()
	if err != nil {
		t.Fatalf("failed to get all: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty store, got %d records", len(all))
	}
}

func TestUpdate_Upserts(t *testing.T) {
	s := setupTestService(t)
	h := testHabit()

	// Update of a record that does not exist inserts it.
	if _, err := s.Update(h); err != nil {
		t.Fatalf("upsert-insert failed: %v", err)
	}

	h.Name = "Evening meditation"
	h.CompletionDates = append(h.CompletionDates, "2025-01-17T08:00:00.000Z")
	if _, err := s.Update(h); err != nil {
		t.Fatalf("upsert-replace failed: %v", err)
	}

	got, err := s.Get(h.ID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if got.Name != "Evening meditation" || len(got.CompletionDates) != 3 {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestGetAll(t *testing.T) {
	s := setupTestService(t)

	all, err := s.GetAll()
	if err != nil {
		t.Fatalf("failed to get all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty store, got %d", len(all))
	}

	a := testHabit()
	a.CreatedDate = "2025-01-10T08:00:00.000Z"
	b := testHabit()
	b.CreatedDate = "2025-01-20T08:00:00.000Z"
	for _, h := range []models.Habit{b, a} {
		if _, err := s.Add(h); err != nil {
			t.Fatalf("failed to add: %v", err)
		}
	}

	all, err = s.GetAll()
	if err != nil {
		t.Fatalf("failed to get all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
	if all[0].ID != a.ID || all[1].ID != b.ID {
		t.Error("expected records ordered by created_date")
	}
}

func TestDelete(t *testing.T) {
	s := setupTestService(t)
	h := testHabit()
	if _, err := s.Add(h); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	if err := s.Delete(h.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	got, err := s.Get(h.ID)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if got != nil {
		t.Error("expected habit gone after delete")
	}

	// Deleting a non-existent id is not an error.
	if err := s.Delete("no-such-id"); err != nil {
		t.Errorf("expected deleting missing id to succeed, got %v", err)
	}
}

func TestCloseAndReopen_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitkeep.db")
	s := NewService(path)
	h := testHabit()

	if _, err := s.Add(h); err != nil { // lazy open
		t.Fatalf("failed to add: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	s2 := NewService(path)
	t.Cleanup(s2.Reset)
	got, err := s2.Get(h.ID)
	if err != nil {
		t.Fatalf("failed to get after reopen: %v", err)
	}
	if got == nil || !reflect.DeepEqual(*got, h) {
		t.Errorf("record did not survive reopen: %+v", got)
	}
}

func TestEndToEnd_ToggleTwiceSameDay(t *testing.T) {
	s := setupTestService(t)
	h := models.Habit{
		ID:              "1",
		CreatedDate:     "2025-01-15T08:00:00.000Z",
		CompletionDates: []string{},
	}
	if _, err := s.Add(h); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	for i := 0; i < 2; i++ {
		cur, err := s.Get(h.ID)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if _, err := s.Update(habit.ToggleCompletion(*cur)); err != nil {
			t.Fatalf("failed to persist toggle: %v", err)
		}
	}

	all, err := s.GetAll()
	if err != nil {
		t.Fatalf("failed to get all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
	if len(all[0].CompletionDates) != 0 {
		t.Errorf("expected empty completionDates after on-then-off toggle, got %v",
			all[0].CompletionDates)
	}
}

func TestCallersGetCopies(t *testing.T) {
	s := setupTestService(t)
	h := testHabit()
	if _, err := s.Add(h); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	first, err := s.Get(h.ID)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	first.CompletionDates[0] = "mutated"

	second, err := s.Get(h.ID)
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if second.CompletionDates[0] == "mutated" {
		t.Error("caller mutation leaked into the store")
	}
}
