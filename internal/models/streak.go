package models

import "time"

// StreakRecord is the single persisted record behind the day-streak
// counter. Streak states (active, warning, broken) are derived from it at
// evaluation time, never stored.
type StreakRecord struct {
	LastActivity     *time.Time `json:"last_activity,omitempty"`
	Streak           int        `json:"streak"`
	WarningDismissed bool       `json:"warning_dismissed"`
}
