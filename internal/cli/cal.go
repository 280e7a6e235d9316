package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitkeep/internal/dateutil"
	"github.com/julianstephens/habitkeep/internal/habit"
)

type CalCmd struct {
	ID    string `arg:"" help:"Habit id."`
	Year  int    `help:"Year to show (default: current)." default:"0"`
	Month int    `help:"Month to show, 1-12 (default: current)." default:"0"`
}

// Run prints a month calendar with completed days highlighted.
func (c *CalCmd) Run(ctx *Context) error {
	h, err := ctx.Store.Get(c.ID)
	if err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("habit %q not found", c.ID)
	}

	now := time.Now().UTC()
	year, month := c.Year, c.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month: %d", month)
	}

	todayKey := dateutil.TodayKey()

	fmt.Printf("%s — %s\n", h.Name, dateutil.FormatMonthYear(year, month))
	fmt.Println(faintStyle.Render("Su Mo Tu We Th Fr Sa"))

	for _, week := range dateutil.CalendarGrid(year, month) {
		cells := make([]string, 0, 7)
		for _, day := range week {
			key := day.Format(dateutil.DayKeyFormat)
			cell := fmt.Sprintf("%2d", day.Day())
			switch {
			case habit.IsCompletedOn(h.CompletionDates, key):
				cell = doneStyle.Render(cell)
			case key == todayKey:
				cell = todayStyle.Render(cell)
			case int(day.Month()) != month:
				cell = faintStyle.Render(cell)
			}
			cells = append(cells, cell)
		}
		fmt.Println(strings.Join(cells, " "))
	}

	return nil
}

type LogCmd struct {
	ID   string `arg:"" help:"Habit id."`
	Year int    `help:"Year to show (default: current)." default:"0"`
}

// Run prints an annual heat map, one column per week starting from the
// Sunday on or before January 1.
func (c *LogCmd) Run(ctx *Context) error {
	h, err := ctx.Store.Get(c.ID)
	if err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("habit %q not found", c.ID)
	}

	year := c.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	grid := dateutil.YearGrid(year)

	fmt.Printf("%s — %d\n", h.Name, year)
	// Transpose: rows are weekdays, columns are weeks.
	for weekday := 0; weekday < 7; weekday++ {
		var row strings.Builder
		for _, week := range grid {
			day := week[weekday]
			key := day.Format(dateutil.DayKeyFormat)
			switch {
			case day.Year() != year:
				row.WriteString(" ")
			case habit.IsCompletedOn(h.CompletionDates, key):
				row.WriteString(doneStyle.Render("■"))
			default:
				row.WriteString(faintStyle.Render("·"))
			}
		}
		fmt.Println(row.String())
	}
	fmt.Printf("%d days completed\n", len(habit.CompletedDayKeys(h.CompletionDates)))

	return nil
}
