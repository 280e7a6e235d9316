// Package cli implements the habitkeep command surface. Commands are thin
// callers of the persistence service and the pure streak engine; everything
// they print is derived through those two layers.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/logger"
	"github.com/julianstephens/habitkeep/internal/storage"
)

// Context is shared state passed to every command's Run.
type Context struct {
	Store storage.Provider
}

var (
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	streakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	todayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true).Underline(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Fatal prints a user-facing error and exits. Taxonomy errors print their
// user-safe message; the technical detail stays in the log.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	if appErr, ok := apperr.As(err); ok {
		fmt.Fprintf(os.Stderr, "Error: %s\n", appErr.UserMessage)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

// streakBadge renders the streak count for list output, or an empty string
// for a zero streak.
func streakBadge(streak int) string {
	if streak <= 0 {
		return ""
	}
	unit := "days"
	if streak == 1 {
		unit = "day"
	}
	return streakStyle.Render(fmt.Sprintf("▲ %d %s", streak, unit))
}
