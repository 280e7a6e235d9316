// Package storage owns the durable habit store: a single SQLite table keyed
// by id, opened lazily and held for the life of the Service instance.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/migration"
	"github.com/julianstephens/habitkeep/internal/models"
	"github.com/julianstephens/habitkeep/internal/validation"
	"github.com/julianstephens/habitkeep/migrations"
)

// Service is the persistence service for habit records. Construct one
// instance at process start and share it; Open is lazy and idempotent, so
// production code never needs to call Close.
//
// Concurrency note: operations run in their own transactions, but the
// service does not group read-modify-write sequences (such as toggling a
// completion and persisting it) into one atomic step. Two concurrent
// toggles for the same habit race with last-write-wins semantics; callers
// needing strict consistency must serialize per habit id themselves.
type Service struct {
	path string
	db   *sql.DB
}

// NewService creates a service over the database file at path. No I/O
// happens until Open (or the first operation).
func NewService(path string) *Service {
	return &Service{path: path}
}

// Path returns the database file path.
func (s *Service) Path() string {
	return s.path
}

// Open opens the database, provisioning the schema on first use. Idempotent:
// once open, further calls are no-ops against the cached connection.
func (s *Service) Open() error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return s.fail(err, apperr.CodeStorageUnavailable, "Storage is not available", nil)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return s.fail(err, apperr.CodeStorageUnavailable, "Storage is not available", nil)
	}
	// sql.Open is lazy; ping so an unusable engine surfaces here, not on
	// the first operation.
	if err := db.Ping(); err != nil {
		db.Close()
		return s.fail(err, apperr.CodeStorageUnavailable, "Storage is not available", nil)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return s.fail(err, apperr.CodeStorageUnavailable, "Storage could not be initialized", nil)
	}

	s.db = db
	return nil
}

// Close releases the connection and clears the cached handle.
func (s *Service) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return s.fail(err, apperr.CodeStorageOperationFailed, "Failed to close storage", nil)
	}
	return nil
}

// Reset tears the connection down ignoring errors. Primarily for test
// isolation.
func (s *Service) Reset() {
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
}

func runMigrations(db *sql.DB) error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	_, err = migration.NewRunner(db, subFS).Apply()
	return err
}

// Add validates then inserts a habit. Inserting an id that already exists
// fails (STORAGE_OPERATION_FAILED); use Update for insert-or-replace.
func (s *Service) Add(h models.Habit) (string, error) {
	if err := validation.ValidateHabit(h); err != nil {
		return "", s.warn(err)
	}
	if err := s.Open(); err != nil {
		return "", err
	}

	dates, err := json.Marshal(h.CompletionDates)
	if err != nil {
		return "", s.fail(err, apperr.CodeStorageOperationFailed, "Failed to add habit", apperr.Context{"id": h.ID})
	}

	err = s.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO habits (id, name, description, created_date, completion_dates)
			VALUES (?, ?, ?, ?, ?)`,
			h.ID, h.Name, h.Description, h.CreatedDate, string(dates))
		return err
	})
	if err != nil {
		return "", s.fail(err, apperr.CodeStorageOperationFailed, "Failed to add habit", apperr.Context{"id": h.ID})
	}

	return h.ID, nil
}

// Get returns the habit with the given id, or nil when absent.
func (s *Service) Get(id string) (*models.Habit, error) {
	if err := validation.ValidateID(id); err != nil {
		return nil, s.warn(err)
	}
	if err := s.Open(); err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		SELECT id, name, description, created_date, completion_dates
		FROM habits WHERE id = ?`, id)

	h, err := scanHabit(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail(err, apperr.CodeStorageOperationFailed, "Failed to get habit", apperr.Context{"id": id})
	}
	return &h, nil
}

// GetAll returns every habit, ordered by creation date. The whole store is
// materialized at once; there is no pagination. That is a known scaling
// limitation of the stored format, kept on purpose.
func (s *Service) GetAll() ([]models.Habit, error) {
	if err := s.Open(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, name, description, created_date, completion_dates
		FROM habits ORDER BY created_date`)
	if err != nil {
		return nil, s.fail(err, apperr.CodeStorageOperationFailed, "Failed to get all habits", nil)
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, s.fail(err, apperr.CodeStorageOperationFailed, "Failed to get all habits", nil)
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(err, apperr.CodeStorageOperationFailed, "Failed to get all habits", nil)
	}

	return habits, nil
}

// Update validates then upserts a habit by id.
func (s *Service) Update(h models.Habit) (string, error) {
	if err := validation.ValidateHabit(h); err != nil {
		return "", s.warn(err)
	}
	if err := s.Open(); err != nil {
		return "", err
	}

	dates, err := json.Marshal(h.CompletionDates)
	if err != nil {
		return "", s.fail(err, apperr.CodeStorageOperationFailed, "Failed to update habit", apperr.Context{"id": h.ID})
	}

	err = s.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO habits (id, name, description, created_date, completion_dates)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				description = excluded.description,
				created_date = excluded.created_date,
				completion_dates = excluded.completion_dates`,
			h.ID, h.Name, h.Description, h.CreatedDate, string(dates))
		return err
	})
	if err != nil {
		return "", s.fail(err, apperr.CodeStorageOperationFailed, "Failed to update habit", apperr.Context{"id": h.ID})
	}

	return h.ID, nil
}

// Delete removes the habit with the given id. Deleting an id that does not
// exist is not an error.
func (s *Service) Delete(id string) error {
	if err := validation.ValidateID(id); err != nil {
		return s.warn(err)
	}
	if err := s.Open(); err != nil {
		return err
	}

	err := s.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM habits WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return s.fail(err, apperr.CodeStorageOperationFailed, "Failed to delete habit", apperr.Context{"id": id})
	}
	return nil
}

// inTx runs fn inside its own transaction. Commit failures surface as
// STORAGE_TRANSACTION_FAILED.
func (s *Service) inTx(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return apperr.ClassifyStorage(err, apperr.CodeStorageTransactionFailed, "Storage transaction failed", nil)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperr.ClassifyStorage(err, apperr.CodeStorageTransactionFailed, "Storage transaction failed", nil)
	}
	return nil
}

func scanHabit(scan func(dest ...any) error) (models.Habit, error) {
	var h models.Habit
	var dates string
	if err := scan(&h.ID, &h.Name, &h.Description, &h.CreatedDate, &dates); err != nil {
		return models.Habit{}, err
	}
	if err := json.Unmarshal([]byte(dates), &h.CompletionDates); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse completion_dates for habit %s: %w", h.ID, err)
	}
	if h.CompletionDates == nil {
		h.CompletionDates = []string{}
	}
	return h, nil
}

// fail reclassifies an engine error into the taxonomy, logs it, and returns
// it. Raw driver errors stop here.
func (s *Service) fail(err error, fallback apperr.Code, userMessage string, ctx apperr.Context) error {
	appErr := apperr.ClassifyStorage(err, fallback, userMessage, ctx)
	apperr.LogError(appErr)
	return appErr
}

// warn logs a validation failure and returns it unchanged. Validation runs
// before any I/O and is never coerced into a storage code.
func (s *Service) warn(err error) error {
	apperr.LogWarning(apperr.Wrap(err))
	return err
}
