package models

import (
	"fmt"
	"time"

	"github.com/studytrack/studytrack/internal/constants"
)

// Settings holds the persisted application preferences.
type Settings struct {
	Theme                constants.Theme `json:"theme"`
	NotificationsEnabled bool            `json:"notifications_enabled"`
	MorningReminder      string          `json:"morning_reminder"` // HH:MM format
	EveningReminder      string          `json:"evening_reminder"` // HH:MM format
	Timezone             string          `json:"timezone,omitempty"`
}

// DefaultSettings returns the settings written by `studytrack init`.
func DefaultSettings() Settings {
	return Settings{
		Theme:                constants.ThemeDark,
		NotificationsEnabled: true,
		MorningReminder:      constants.DefaultMorningReminder,
		EveningReminder:      constants.DefaultEveningReminder,
	}
}

func (s *Settings) Validate() error {
	if s.Theme != constants.ThemeLight && s.Theme != constants.ThemeDark {
		return fmt.Errorf("unknown theme %q (expected light or dark)", s.Theme)
	}
	for _, t := range []string{s.MorningReminder, s.EveningReminder} {
		if _, err := time.Parse(constants.TimeFormat, t); err != nil {
			return fmt.Errorf("invalid reminder time %q (expected HH:MM): %w", t, err)
		}
	}
	if s.Timezone != "" && s.Timezone != "Local" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", s.Timezone, err)
		}
	}
	return nil
}

// ReminderTimes returns the two daily reminder times in firing order.
func (s *Settings) ReminderTimes() []string {
	return []string{s.MorningReminder, s.EveningReminder}
}
