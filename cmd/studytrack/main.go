package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/studytrack/studytrack/internal/cli"
	"github.com/studytrack/studytrack/internal/constants"
	"github.com/studytrack/studytrack/internal/logger"
	"github.com/studytrack/studytrack/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging."`
	Config  string `help:"Store file path. A .db or .sqlite extension selects the SQLite backend, anything else the JSON backend." type:"path" default:"~/.config/studytrack/studytrack.json"`

	Init      cli.InitCmd      `cmd:"" help:"Initialize studytrack storage."`
	Tui       cli.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Subject   cli.SubjectCmd   `cmd:"" help:"Manage subjects."`
	Concept   cli.ConceptCmd   `cmd:"" help:"Manage concepts in a subject."`
	Completed cli.CompletedCmd `cmd:"" help:"Manage the completion archive."`
	Timetable cli.TimetableCmd `cmd:"" help:"Manage the weekly study timetable."`
	Streak    cli.StreakCmd    `cmd:"" help:"Show the current study streak."`
	Remind    cli.RemindCmd    `cmd:"" help:"Run the daily reminder loop."`
	Settings  cli.SettingsCmd  `cmd:"" help:"Manage application settings."`
	Backup    cli.BackupCmd    `cmd:"" help:"Manage store backups."`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Scan persisted data for conflicts."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Offline-first personal study tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	var store storage.Provider
	switch strings.ToLower(filepath.Ext(CLI.Config)) {
	case ".db", ".sqlite":
		store = storage.NewSQLiteStore(CLI.Config)
	default:
		store = storage.NewJSONStore(CLI.Config)
	}
	defer store.Close()

	appCtx := &cli.Context{Store: store}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
