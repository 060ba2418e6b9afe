package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studytrack/studytrack/internal/backup"
	"github.com/studytrack/studytrack/internal/tui"
	"github.com/studytrack/studytrack/internal/validation"
)

type InitCmd struct {
	Force bool `help:"Reinitialize even if storage already exists."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		if err := os.Remove(ctx.Store.GetConfigPath()); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	fmt.Printf("Initialized studytrack storage at %s\n", ctx.Store.GetConfigPath())
	return nil
}

type DoctorCmd struct{}

// Run checks the persisted data for anomalies: load recovery warnings,
// duplicate names, malformed or overlapping timetable entries.
func (c *DoctorCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	root, err := ctx.Store.GetRoot()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.GetTimetable()
	if err != nil {
		return err
	}

	for _, w := range ctx.Store.LoadWarnings() {
		fmt.Printf("Load warning: %s\n", w.Error())
	}

	validator := validation.New()
	rootResult := validator.ValidateRoot(root)
	timetableResult := validator.ValidateTimetable(entries)

	conflicts := append(rootResult.Conflicts, timetableResult.Conflicts...)
	if len(conflicts) == 0 && len(ctx.Store.LoadWarnings()) == 0 {
		fmt.Println("No conflicts detected.")
		return nil
	}

	for _, conflict := range conflicts {
		fmt.Printf("Conflict: %s\n", conflict.Description)
	}
	return nil
}

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" default:"1" help:"Create a manual backup."`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := mgr.CreateBackup()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	for _, info := range backups {
		fmt.Printf("%s  %8d bytes  %s\n", info.Timestamp.Format("2006-01-02 15:04"), info.Size, info.Path)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" type:"existingfile" help:"Backup file to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	if err := mgr.RestoreBackup(c.Path); err != nil {
		return err
	}
	fmt.Printf("Restored store from %s\n", c.Path)
	return nil
}

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	model := tui.NewModel(ctx.Store, t, ctx.StreakEngine(), settings)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
