package models

import (
	"testing"
	"time"

	"github.com/studytrack/studytrack/internal/constants"
)

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(s *Settings) {}},
		{name: "light theme", mutate: func(s *Settings) { s.Theme = constants.ThemeLight }},
		{name: "explicit timezone", mutate: func(s *Settings) { s.Timezone = "UTC" }},
		{name: "unknown theme", mutate: func(s *Settings) { s.Theme = "solarized" }, wantErr: true},
		{name: "bad morning time", mutate: func(s *Settings) { s.MorningReminder = "9am" }, wantErr: true},
		{name: "bad evening time", mutate: func(s *Settings) { s.EveningReminder = "25:00" }, wantErr: true},
		{name: "bad timezone", mutate: func(s *Settings) { s.Timezone = "Mars/Olympus" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(&settings)
			err := settings.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRevisionDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "today", date: "2026-03-10"},
		{name: "past", date: "2025-12-31"},
		{name: "tomorrow", date: "2026-03-11", wantErr: true},
		{name: "malformed", date: "10.03.2026", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRevisionDate(tt.date, now)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRevisionDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
		})
	}
}
