package storage

import "github.com/julianstephens/habitkeep/internal/models"

// Provider is the persistence surface consumed by callers of the habit
// store. All errors returned through it carry a taxonomy code; raw engine
// errors never leak.
type Provider interface {
	// Lifecycle
	Open() error
	Close() error

	// Habits
	Add(models.Habit) (string, error)
	Get(id string) (*models.Habit, error)
	GetAll() ([]models.Habit, error)
	Update(models.Habit) (string, error)
	Delete(id string) error

	// Utils
	Path() string
}
