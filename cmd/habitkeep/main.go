package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitkeep/internal/apperr"
	"github.com/julianstephens/habitkeep/internal/cli"
	"github.com/julianstephens/habitkeep/internal/logger"
	"github.com/julianstephens/habitkeep/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Database file path." type:"path" default:"~/.local/share/habitkeep/habitkeep.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize habit storage."`
	Add    cli.AddCmd    `cmd:"" help:"Add a new habit."`
	List   cli.ListCmd   `cmd:"" help:"List habits with today's status and streaks." default:"1"`
	Done   cli.DoneCmd   `cmd:"" help:"Toggle today's completion for a habit."`
	Show   cli.ShowCmd   `cmd:"" help:"Show a habit's details."`
	Delete cli.DeleteCmd `cmd:"" help:"Delete a habit."`
	Cal    cli.CalCmd    `cmd:"" help:"Show a month calendar for a habit."`
	Log    cli.LogCmd    `cmd:"" help:"Show an annual heat map for a habit."`
	Import cli.ImportCmd `cmd:"" help:"Import a habit record from a JSON file."`
	Errors cli.ErrorsCmd `cmd:"" help:"Show recorded errors (diagnostics)."`
}

func main() {
	// A panic anywhere below must still surface as a taxonomy error with a
	// user-safe message, never a raw value.
	defer func() {
		if r := recover(); r != nil {
			appErr := apperr.FromRecovered(r)
			apperr.LogError(appErr)
			fmt.Fprintf(os.Stderr, "Error: %s\n", appErr.UserMessage)
			os.Exit(1)
		}
	}()

	ctx := kong.Parse(&CLI,
		kong.Name("habitkeep"),
		kong.Description("Local habit tracker with day-keyed streaks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:   CLI.Debug,
		DataDir: filepath.Dir(CLI.DB),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	store := storage.NewService(CLI.DB)
	appCtx := &cli.Context{Store: store}

	if err := ctx.Run(appCtx); err != nil {
		cli.Fatal(err)
	}
}
