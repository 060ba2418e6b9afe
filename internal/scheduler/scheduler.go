// Package scheduler arms daily reminder notifications. Each reminder time
// gets a one-shot timer that re-arms itself for the following day after it
// fires, for the lifetime of the running process. Nothing is persisted: a
// missed fire while the app is not running is simply lost.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/studytrack/studytrack/internal/constants"
	"github.com/studytrack/studytrack/internal/logger"
)

// NotifyFunc delivers one reminder. Errors are logged, never retried.
type NotifyFunc func(title, text string) error

type Reminder struct {
	Time    string // HH:MM format
	Message string
}

type Scheduler struct {
	notify NotifyFunc
	now    func() time.Time
}

func New(notify NotifyFunc) *Scheduler {
	return &Scheduler{
		notify: notify,
		now:    time.Now,
	}
}

// SetClock overrides the scheduler's clock. Used by tests.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// NextFire computes the delay until the next occurrence of an HH:MM time:
// later today if the time is still ahead, otherwise the same time
// tomorrow.
func NextFire(now time.Time, hhmm string) (time.Duration, error) {
	t, err := time.Parse(constants.TimeFormat, hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid reminder time %q: %w", hhmm, err)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now), nil
}

// Run arms every reminder and blocks until the context is cancelled.
// Cancellation is the only way to stop a reminder; an armed timer cannot
// be neutralized individually, it just never re-arms.
func (s *Scheduler) Run(ctx context.Context, reminders []Reminder) error {
	for _, r := range reminders {
		if _, err := NextFire(s.now(), r.Time); err != nil {
			return err
		}
	}

	for _, r := range reminders {
		go s.loop(ctx, r)
	}

	<-ctx.Done()
	return ctx.Err()
}

func (s *Scheduler) loop(ctx context.Context, r Reminder) {
	for {
		delay, err := NextFire(s.now(), r.Time)
		if err != nil {
			logger.Error("Dropping unschedulable reminder", "time", r.Time, "error", err)
			return
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := s.notify("Study reminder", r.Message); err != nil {
				logger.Debug("Reminder not delivered", "time", r.Time, "error", err)
			}
		}
	}
}
