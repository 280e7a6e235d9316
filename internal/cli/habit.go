package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkeep/internal/habit"
	"github.com/julianstephens/habitkeep/internal/models"
	"github.com/julianstephens/habitkeep/internal/validation"
)

type AddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Optional description." default:""`
}

func (c *AddCmd) Run(ctx *Context) error {
	h := models.Habit{
		ID:              uuid.New().String(),
		Name:            c.Name,
		Description:     c.Description,
		CreatedDate:     time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		CompletionDates: []string{},
	}

	id, err := ctx.Store.Add(h)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit %q (%s)\n", c.Name, id)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAll()
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		check := "[ ]"
		if habit.IsCompletedToday(h.CompletionDates) {
			check = doneStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", check, h.Name)
		if badge := streakBadge(habit.CurrentStreak(h.CompletionDates)); badge != "" {
			line += "  " + badge
		}
		line += "  " + faintStyle.Render(h.ID)
		fmt.Println(line)
	}

	return nil
}

type DoneCmd struct {
	ID string `arg:"" help:"Habit id."`
}

// Run toggles today's completion: done on a completed habit takes today
// back off. The toggle and the write are separate steps, so a concurrent
// toggle for the same habit is last-write-wins.
func (c *DoneCmd) Run(ctx *Context) error {
	h, err := ctx.Store.Get(c.ID)
	if err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("habit %q not found", c.ID)
	}

	toggled := habit.ToggleCompletion(*h)
	if _, err := ctx.Store.Update(toggled); err != nil {
		return err
	}

	if habit.IsCompletedToday(toggled.CompletionDates) {
		fmt.Printf("Marked %q done for today\n", h.Name)
	} else {
		fmt.Printf("Unmarked %q for today\n", h.Name)
	}
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Habit id."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Delete(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit %s\n", c.ID)
	return nil
}

type ShowCmd struct {
	ID string `arg:"" help:"Habit id."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	h, err := ctx.Store.Get(c.ID)
	if err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("habit %q not found", c.ID)
	}

	fmt.Printf("Name:        %s\n", h.Name)
	if h.Description != "" {
		fmt.Printf("Description: %s\n", h.Description)
	}
	fmt.Printf("Created:     %s\n", h.CreatedDate)
	fmt.Printf("Completions: %d days\n", len(habit.CompletedDayKeys(h.CompletionDates)))
	fmt.Printf("Streak:      %d\n", habit.CurrentStreak(h.CompletionDates))
	return nil
}

type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON file containing a habit record."`
}

// Run imports a raw habit record, validating it the same way a write
// through the API is validated.
func (c *ImportCmd) Run(ctx *Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	h, err := validation.ParseHabit(data)
	if err != nil {
		return err
	}

	id, err := ctx.Store.Update(h)
	if err != nil {
		return err
	}

	fmt.Printf("Imported habit %s\n", id)
	return nil
}
