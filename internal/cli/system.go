package cli

import (
	"fmt"

	"github.com/julianstephens/habitkeep/internal/apperr"
)

type InitCmd struct{}

// Run opens the store, provisioning the schema if this is the first run.
// Opening is otherwise lazy, so this exists for explicit setup and health
// checking.
func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Open(); err != nil {
		return err
	}
	fmt.Printf("Storage ready at %s\n", ctx.Store.Path())
	return nil
}

type ErrorsCmd struct {
	Clear bool `help:"Clear the stored errors."`
}

// Run dumps the diagnostic error buffer (most recent first, capped at 20
// entries for this process).
func (c *ErrorsCmd) Run(ctx *Context) error {
	if c.Clear {
		apperr.ClearStoredErrors()
		fmt.Println("Cleared stored errors.")
		return nil
	}

	stored := apperr.StoredErrors()
	if len(stored) == 0 {
		fmt.Println("No errors recorded.")
		return nil
	}

	for _, e := range stored {
		fmt.Printf("%s %s %s\n",
			faintStyle.Render(e.Timestamp.Format("15:04:05")),
			errStyle.Render(fmt.Sprintf("[%s]", e.Code)),
			e.UserMessage)
		if e.TechnicalDetails != "" {
			fmt.Printf("    %s\n", faintStyle.Render(e.TechnicalDetails))
		}
	}
	return nil
}
