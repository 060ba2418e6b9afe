package cli

import (
	"errors"
	"fmt"

	"github.com/studytrack/studytrack/internal/backup"
	apperrors "github.com/studytrack/studytrack/internal/errors"
	"github.com/studytrack/studytrack/internal/logger"
	"github.com/studytrack/studytrack/internal/notifier"
	"github.com/studytrack/studytrack/internal/storage"
	"github.com/studytrack/studytrack/internal/streak"
	"github.com/studytrack/studytrack/internal/tracker"
)

type Context struct {
	Store storage.Provider
}

// Notify delivers a desktop notification, degrading silently when the
// tray companion is unavailable.
func Notify(title, text string) {
	if err := notifier.New().Notify(title, text); err != nil {
		if errors.Is(err, apperrors.ErrNotSupported) {
			logger.Debug("Notifications unavailable", "error", err)
			return
		}
		logger.Warn("Failed to send notification", "error", err)
	}
}

// StreakEngine builds the streak engine over the loaded store.
func (c *Context) StreakEngine() *streak.Engine {
	return streak.New(c.Store, func(message string) {
		Notify("Study streak", message)
	})
}

// Tracker loads the store and builds the domain tracker over it.
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	return tracker.New(c.Store, c.StreakEngine())
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ReportPersistence prints the durability warning for a mutation that was
// applied in memory but could not be written. Any other error is passed
// through unchanged.
func ReportPersistence(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsPersistence(err) {
		fmt.Printf("Warning: change applied but not saved: %v\n", err)
		return nil
	}
	return err
}
