package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/studytrack/studytrack/internal/scheduler"
	"github.com/studytrack/studytrack/internal/utils"
)

type RemindCmd struct {
	DryRun bool `help:"Print the computed schedule instead of running the loop."`
}

// Run arms the two daily reminders from settings and blocks until
// interrupted. Schedules are not persisted; the loop is rebuilt from
// settings on every start.
func (c *RemindCmd) Run(cliCtx *Context) error {
	if err := cliCtx.Store.Load(); err != nil {
		return err
	}

	settings, err := cliCtx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled {
		fmt.Println("Notifications are disabled in settings.")
		return nil
	}

	// Reminder times are interpreted in the configured timezone, not
	// wherever the process happens to run.
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return err
	}
	loc := now.Location()

	reminders := []scheduler.Reminder{
		{Time: settings.MorningReminder, Message: "Time to study! Keep your streak going."},
		{Time: settings.EveningReminder, Message: "Evening revision time. A quick review counts."},
	}

	sched := scheduler.New(func(title, text string) error {
		Notify(title, text)
		return nil
	})
	sched.SetClock(func() time.Time { return time.Now().In(loc) })

	if c.DryRun {
		for _, r := range reminders {
			delay, err := scheduler.NextFire(now, r.Time)
			if err != nil {
				return err
			}
			fmt.Printf("%s fires in %s: %s\n", r.Time, delay.Round(time.Second), r.Message)
		}
		return nil
	}

	fmt.Printf("Reminder loop running (%s and %s). Ctrl-C to stop.\n",
		settings.MorningReminder, settings.EveningReminder)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = sched.Run(ctx, reminders)
	if err == context.Canceled {
		return nil
	}
	return err
}
