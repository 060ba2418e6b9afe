package streak

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/storage"
)

func newTestStore(t *testing.T) *storage.JSONStore {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "store.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return store
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestEvaluate(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		elapsed     time.Duration
		wantBroken  bool
		wantWarning bool
	}{
		{name: "recent activity", elapsed: 2 * time.Hour},
		{name: "just under warning", elapsed: 20*time.Hour - time.Minute},
		{name: "exactly at warning boundary", elapsed: 20 * time.Hour, wantWarning: true},
		{name: "deep in warning window", elapsed: 23 * time.Hour, wantWarning: true},
		{name: "just under broken", elapsed: 24*time.Hour - time.Minute, wantWarning: true},
		{name: "exactly at broken boundary", elapsed: 24 * time.Hour, wantBroken: true},
		{name: "long gone", elapsed: 72 * time.Hour, wantBroken: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := base.Add(-tt.elapsed)
			eval := Evaluate(base, models.StreakRecord{LastActivity: &last, Streak: 3})
			if eval.Broken != tt.wantBroken {
				t.Errorf("Evaluate() Broken = %v, want %v", eval.Broken, tt.wantBroken)
			}
			if eval.Warning != tt.wantWarning {
				t.Errorf("Evaluate() Warning = %v, want %v", eval.Warning, tt.wantWarning)
			}
		})
	}
}

func TestEvaluate_NoActivity(t *testing.T) {
	eval := Evaluate(time.Now(), models.StreakRecord{})
	if eval.Broken || eval.Warning {
		t.Errorf("Evaluate() with no activity = %+v, want neither broken nor warning", eval)
	}
}

func TestRecordActivity_FirstActivity(t *testing.T) {
	store := newTestStore(t)
	engine := New(store, nil)

	record, err := engine.RecordActivity()
	if err != nil {
		t.Fatalf("RecordActivity() error = %v", err)
	}
	if record.Streak != 1 {
		t.Errorf("Streak = %d, want 1", record.Streak)
	}
	if record.LastActivity == nil {
		t.Error("LastActivity not set")
	}
}

func TestRecordActivity_WithinIncrementWindow(t *testing.T) {
	store := newTestStore(t)
	engine := New(store, nil)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	engine.SetClock(fixedClock(base))
	if _, err := engine.RecordActivity(); err != nil {
		t.Fatalf("RecordActivity() error = %v", err)
	}

	// 59 minutes later is inside the window: no double increment.
	engine.SetClock(fixedClock(base.Add(59 * time.Minute)))
	record, err := engine.RecordActivity()
	if err != nil {
		t.Fatalf("RecordActivity() error = %v", err)
	}
	if record.Streak != 1 {
		t.Errorf("Streak = %d, want 1 (activity inside increment window)", record.Streak)
	}
	if !record.LastActivity.Equal(base.Add(59 * time.Minute)) {
		t.Error("LastActivity should advance even when the streak does not")
	}
}

func TestRecordActivity_Increments(t *testing.T) {
	store := newTestStore(t)
	engine := New(store, nil)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	engine.SetClock(fixedClock(base))
	if _, err := engine.RecordActivity(); err != nil {
		t.Fatalf("RecordActivity() error = %v", err)
	}

	engine.SetClock(fixedClock(base.Add(5 * time.Hour)))
	record, err := engine.RecordActivity()
	if err != nil {
		t.Fatalf("RecordActivity() error = %v", err)
	}
	if record.Streak != 2 {
		t.Errorf("Streak = %d, want 2", record.Streak)
	}
}

func TestRecordActivity_AfterBrokenStartsOver(t *testing.T) {
	store := newTestStore(t)
	var messages []string
	engine := New(store, func(msg string) { messages = append(messages, msg) })

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	engine.SetClock(fixedClock(base))
	if _, err := engine.RecordActivity(); err != nil {
		t.Fatalf("RecordActivity() error = %v", err)
	}

	engine.SetClock(fixedClock(base.Add(30 * time.Hour)))
	record, err := engine.RecordActivity()
	if err != nil {
		t.Fatalf("RecordActivity() error = %v", err)
	}
	if record.Streak != 1 {
		t.Errorf("Streak = %d, want 1 after break", record.Streak)
	}
	if len(messages) != 1 {
		t.Errorf("got %d notifications, want 1", len(messages))
	}
}

func TestCheckNow_BrokenResetsOnce(t *testing.T) {
	store := newTestStore(t)
	var messages []string
	engine := New(store, func(msg string) { messages = append(messages, msg) })

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	last := base.Add(-30 * time.Hour)
	if err := store.SaveStreak(models.StreakRecord{LastActivity: &last, Streak: 7}); err != nil {
		t.Fatalf("SaveStreak() error = %v", err)
	}
	engine.SetClock(fixedClock(base))

	eval, err := engine.CheckNow()
	if err != nil {
		t.Fatalf("CheckNow() error = %v", err)
	}
	if !eval.Broken {
		t.Error("expected broken evaluation")
	}
	record, _ := store.GetStreak()
	if record.Streak != 0 {
		t.Errorf("Streak = %d, want 0 after reset", record.Streak)
	}
	if len(messages) != 1 {
		t.Fatalf("got %d notifications, want 1", len(messages))
	}

	// A second check while still broken must stay silent.
	if _, err := engine.CheckNow(); err != nil {
		t.Fatalf("CheckNow() error = %v", err)
	}
	if len(messages) != 1 {
		t.Errorf("got %d notifications after second check, want 1", len(messages))
	}
}

func TestCheckNow_WarningDismissal(t *testing.T) {
	store := newTestStore(t)
	engine := New(store, nil)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	last := base.Add(-21 * time.Hour)
	if err := store.SaveStreak(models.StreakRecord{LastActivity: &last, Streak: 4}); err != nil {
		t.Fatalf("SaveStreak() error = %v", err)
	}
	engine.SetClock(fixedClock(base))

	eval, err := engine.CheckNow()
	if err != nil {
		t.Fatalf("CheckNow() error = %v", err)
	}
	if !eval.Warning {
		t.Fatal("expected warning evaluation")
	}

	if err := engine.DismissWarning(); err != nil {
		t.Fatalf("DismissWarning() error = %v", err)
	}
	eval, err = engine.CheckNow()
	if err != nil {
		t.Fatalf("CheckNow() error = %v", err)
	}
	if eval.Warning {
		t.Error("warning should be masked after dismissal")
	}
}

func TestCheckNow_ActivityClearsDismissal(t *testing.T) {
	store := newTestStore(t)
	engine := New(store, nil)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	last := base.Add(-21 * time.Hour)
	if err := store.SaveStreak(models.StreakRecord{LastActivity: &last, Streak: 4, WarningDismissed: true}); err != nil {
		t.Fatalf("SaveStreak() error = %v", err)
	}
	engine.SetClock(fixedClock(base))

	// Fresh activity moves the evaluation out of the warning window and
	// clears the stale dismissal.
	if _, err := engine.RecordActivity(); err != nil {
		t.Fatalf("RecordActivity() error = %v", err)
	}
	record, _ := store.GetStreak()
	if record.WarningDismissed {
		t.Error("WarningDismissed should be cleared by activity")
	}

	// Back in a later warning window, the warning surfaces again.
	engine.SetClock(fixedClock(base.Add(21 * time.Hour)))
	eval, err := engine.CheckNow()
	if err != nil {
		t.Fatalf("CheckNow() error = %v", err)
	}
	if !eval.Warning {
		t.Error("warning should resurface after dismissal was cleared")
	}
}
