package cli

import (
	"fmt"

	"github.com/studytrack/studytrack/internal/constants"
	apperrors "github.com/studytrack/studytrack/internal/errors"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" default:"1" help:"Show current settings."`
	Set  SettingsSetCmd  `cmd:"" help:"Change a setting."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	fmt.Printf("theme:                 %s\n", settings.Theme)
	fmt.Printf("notifications-enabled: %v\n", settings.NotificationsEnabled)
	fmt.Printf("morning-reminder:      %s\n", settings.MorningReminder)
	fmt.Printf("evening-reminder:      %s\n", settings.EveningReminder)
	if settings.Timezone != "" {
		fmt.Printf("timezone:              %s\n", settings.Timezone)
	}
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" enum:"theme,notifications-enabled,morning-reminder,evening-reminder,timezone" help:"Setting name."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	switch c.Key {
	case "theme":
		settings.Theme = constants.Theme(c.Value)
	case "notifications-enabled":
		settings.NotificationsEnabled = c.Value == "true"
	case "morning-reminder":
		settings.MorningReminder = c.Value
	case "evening-reminder":
		settings.EveningReminder = c.Value
	case "timezone":
		settings.Timezone = c.Value
	}

	if err := settings.Validate(); err != nil {
		return apperrors.NewValidation("settings", "%v", err)
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return ReportPersistence(apperrors.NewPersistence("save settings", err))
	}

	fmt.Printf("Set %s to %s\n", c.Key, c.Value)
	return nil
}
