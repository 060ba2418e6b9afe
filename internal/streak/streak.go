// Package streak implements the day-streak state machine: a single
// persisted record evaluated against elapsed wall-clock time. Using
// elapsed hours rather than calendar-day boundaries avoids timezone
// transition bugs, at the cost of a known quirk: two activities on
// different calendar days but within the one-hour increment window do not
// bump the streak.
package streak

import (
	"time"

	"github.com/studytrack/studytrack/internal/constants"
	apperrors "github.com/studytrack/studytrack/internal/errors"
	"github.com/studytrack/studytrack/internal/logger"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/storage"
)

// Evaluation is the derived state of the streak at a point in time.
type Evaluation struct {
	Broken  bool
	Warning bool
}

// Evaluate derives the streak state from elapsed hours since the last
// activity. Boundaries are inclusive on the warning/broken side: exactly
// 20.0h is a warning, exactly 24.0h is broken.
func Evaluate(now time.Time, record models.StreakRecord) Evaluation {
	if record.LastActivity == nil {
		return Evaluation{}
	}
	elapsed := now.Sub(*record.LastActivity).Hours()
	switch {
	case elapsed >= constants.StreakBrokenHours:
		return Evaluation{Broken: true}
	case elapsed >= constants.StreakWarningHours:
		return Evaluation{Warning: true}
	default:
		return Evaluation{}
	}
}

// Engine owns the persisted streak record. It is the only writer.
type Engine struct {
	store  storage.Provider
	notify func(message string)
	now    func() time.Time
}

// New creates an engine. notify may be nil; notifications are then
// silently skipped.
func New(store storage.Provider, notify func(message string)) *Engine {
	return &Engine{
		store:  store,
		notify: notify,
		now:    time.Now,
	}
}

// SetClock overrides the engine's clock. Used by tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

func (e *Engine) send(message string) {
	if e.notify != nil {
		e.notify(message)
	}
}

// Record returns the current persisted streak record.
func (e *Engine) Record() (models.StreakRecord, error) {
	return e.store.GetStreak()
}

// RecordActivity is the single mutating entry point, invoked after
// qualifying user actions. Activities within one hour of each other do
// not double-increment the streak.
func (e *Engine) RecordActivity() (models.StreakRecord, error) {
	record, err := e.store.GetStreak()
	if err != nil {
		return record, err
	}

	now := e.now()
	eval := Evaluate(now, record)

	switch {
	case eval.Broken:
		record.Streak = 1
		e.send("Your study streak was broken. Starting over at day 1.")
	case record.LastActivity == nil:
		record.Streak = 1
	case now.Sub(*record.LastActivity) >= constants.StreakIncrementWindow:
		record.Streak++
	}

	record.LastActivity = &now
	record.WarningDismissed = false

	if err := e.store.SaveStreak(record); err != nil {
		return record, apperrors.NewPersistence("streak update", err)
	}
	return record, nil
}

// CheckNow evaluates the streak without recording activity. It is called
// once at startup and every five minutes while the app is open. A broken
// streak with a non-zero count is reset to zero and announced exactly
// once; further checks while still broken do nothing. The returned
// evaluation has Warning set only when the user has not dismissed it.
func (e *Engine) CheckNow() (Evaluation, error) {
	record, err := e.store.GetStreak()
	if err != nil {
		return Evaluation{}, err
	}

	eval := Evaluate(e.now(), record)

	if eval.Broken {
		if record.Streak > 0 {
			record.Streak = 0
			record.WarningDismissed = false
			if err := e.store.SaveStreak(record); err != nil {
				return eval, apperrors.NewPersistence("streak reset", err)
			}
			e.send("Your study streak has ended. Study something today to start a new one!")
		}
		return eval, nil
	}

	if eval.Warning {
		eval.Warning = !record.WarningDismissed
		return eval, nil
	}

	// Non-warning evaluation clears a stale dismissal so the next warning
	// window surfaces again.
	if record.WarningDismissed {
		record.WarningDismissed = false
		if err := e.store.SaveStreak(record); err != nil {
			logger.Warn("Failed to clear streak warning dismissal", "error", err)
		}
	}

	return eval, nil
}

// DismissWarning suppresses the current warning until the next
// non-warning evaluation.
func (e *Engine) DismissWarning() error {
	record, err := e.store.GetStreak()
	if err != nil {
		return err
	}
	record.WarningDismissed = true
	if err := e.store.SaveStreak(record); err != nil {
		return apperrors.NewPersistence("warning dismissal", err)
	}
	return nil
}
