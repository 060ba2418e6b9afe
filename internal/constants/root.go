package constants

import "time"

// Theme represents the persisted color theme preference
type Theme string

// SortKey selects an ordering for concept lists
type SortKey string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName           = "studytrack"
	DefaultConfigPath = "~/.config/studytrack/studytrack.json"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Streak thresholds, measured in wall-clock hours since the last
	// recorded activity rather than calendar-day boundaries.
	StreakWarningHours = 20.0
	StreakBrokenHours  = 24.0

	// StreakIncrementWindow is the minimum gap between two activities for
	// the second one to count as a new streak increment.
	StreakIncrementWindow = time.Hour

	// StreakCheckInterval is how often the running app re-evaluates the streak.
	StreakCheckInterval = 5 * time.Minute

	// MaxAttachmentBytes bounds a single attached image (raw file size).
	MaxAttachmentBytes = 2 * 1024 * 1024

	// MaxStoreBytes bounds the serialized JSON store, mirroring the bounded
	// capacity of the key-value stores this data model is designed for.
	MaxStoreBytes = 5 * 1024 * 1024

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "studytrack-"

	// Notify constants
	NotifierLockfileName   = "studytrack-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.studytrack.tray"

	// Default settings
	DefaultMorningReminder = "09:00"
	DefaultEveningReminder = "20:00"

	// Themes
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	// Sort keys
	SortNameAsc  SortKey = "name-asc"
	SortNameDesc SortKey = "name-desc"
	SortStatus   SortKey = "status"
	SortDateDesc SortKey = "date-desc"
	SortDateAsc  SortKey = "date-asc"

	// FilterAll passes every concept regardless of status.
	FilterAll = "all"
)

// Session states
const (
	StateSubjects SessionState = iota
	StateConcepts
	StateTimetable
	StateStreak
	StateSettings
	StateAddSubject
	StateAddConcept
	StateAddTimetableEntry
	StateEditSettings
	StateConfirmDeleteSubject
	StateConfirmDeleteConcept
	StateConfirmDeleteCompleted
)
