package cli

import (
	"fmt"
	"strings"
)

type TimetableCmd struct {
	Add    TimetableAddCmd    `cmd:"" help:"Add a timetable entry."`
	Delete TimetableDeleteCmd `cmd:"" help:"Delete a timetable entry."`
	List   TimetableListCmd   `cmd:"" help:"Show the weekly timetable."`
}

type TimetableAddCmd struct {
	Day      string `arg:"" help:"Day of the week (e.g. monday)."`
	Time     string `arg:"" help:"Start time in HH:MM format."`
	Task     string `arg:"" help:"What to study."`
	Duration int    `help:"Duration in minutes." default:"30"`
}

func (c *TimetableAddCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	entry, err := t.AddTimetableEntry(c.Day, c.Time, c.Task, c.Duration)
	if err := ReportPersistence(err); err != nil {
		return err
	}

	fmt.Printf("Added timetable entry: %s %s — %s (%d min)\n", entry.Day, entry.Time, entry.Task, entry.DurationMin)
	return nil
}

type TimetableDeleteCmd struct {
	Task string `arg:"" help:"Task text of the entry to delete."`
	Day  string `help:"Disambiguate by day when the same task appears twice."`
}

func (c *TimetableDeleteCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	entries, err := t.Timetable()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !strings.EqualFold(entry.Task, c.Task) {
			continue
		}
		if c.Day != "" && !strings.EqualFold(entry.Day, c.Day) {
			continue
		}
		if err := ReportPersistence(t.DeleteTimetableEntry(entry.ID)); err != nil {
			return err
		}
		fmt.Printf("Deleted timetable entry: %s %s — %s\n", entry.Day, entry.Time, entry.Task)
		return nil
	}

	return fmt.Errorf("no timetable entry matching %q", c.Task)
}

func capitalizeDay(day string) string {
	day = strings.ToLower(strings.TrimSpace(day))
	if day == "" {
		return day
	}
	return strings.ToUpper(day[:1]) + day[1:]
}

type TimetableListCmd struct{}

func (c *TimetableListCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	entries, err := t.Timetable()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("Timetable is empty.")
		return nil
	}

	lastDay := ""
	for _, entry := range entries {
		if entry.Day != lastDay {
			fmt.Printf("\n%s\n", capitalizeDay(entry.Day))
			lastDay = entry.Day
		}
		fmt.Printf("  %s  %-28s %d min\n", entry.Time, entry.Task, entry.DurationMin)
	}

	return nil
}
