package cli

import (
	"fmt"
	"time"

	"github.com/studytrack/studytrack/internal/streak"
)

type StreakCmd struct {
	Dismiss bool `help:"Dismiss the current streak warning."`
}

func (c *StreakCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	engine := ctx.StreakEngine()

	if c.Dismiss {
		if err := ReportPersistence(engine.DismissWarning()); err != nil {
			return err
		}
		fmt.Println("Streak warning dismissed until tomorrow.")
		return nil
	}

	eval, err := engine.CheckNow()
	if err != nil {
		return err
	}

	record, err := engine.Record()
	if err != nil {
		return err
	}

	if record.LastActivity == nil {
		fmt.Println("No streak yet. Study something today to start one!")
		return nil
	}

	fmt.Printf("Current streak: %d day(s) [%s]\n", record.Streak, evaluationLabel(eval))
	fmt.Printf("Last activity: %s\n", record.LastActivity.Format("2006-01-02 15:04"))

	switch {
	case eval.Broken:
		fmt.Println("Your streak is broken. Study something today to start a new one.")
	case eval.Warning:
		remaining := 24*time.Hour - time.Since(*record.LastActivity)
		fmt.Printf("Warning: your streak expires in about %d minutes. (--dismiss to silence)\n",
			int(remaining.Minutes()))
	}

	return nil
}

// evaluationLabel names the derived streak state for display.
func evaluationLabel(eval streak.Evaluation) string {
	switch {
	case eval.Broken:
		return "broken"
	case eval.Warning:
		return "warning"
	default:
		return "active"
	}
}
