package storage

import (
	"github.com/studytrack/studytrack/internal/errors"
	"github.com/studytrack/studytrack/internal/models"
)

// Provider is the persistence boundary. Each Save replaces the entire
// relevant record; there is no partial or delta persistence.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// LoadWarnings reports structural anomalies found during Load.
	// Offending records were dropped; loading itself never fails for them.
	LoadWarnings() []*errors.LoadWarning

	// Application root (subjects tree + selection)
	GetRoot() (models.Root, error)
	SaveRoot(models.Root) error

	// Timetable
	GetTimetable() ([]models.TimetableEntry, error)
	SaveTimetable([]models.TimetableEntry) error

	// Streak
	GetStreak() (models.StreakRecord, error)
	SaveStreak(models.StreakRecord) error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Utils
	GetConfigPath() string
}
