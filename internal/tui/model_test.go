package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studytrack/studytrack/internal/constants"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/storage"
	"github.com/studytrack/studytrack/internal/streak"
	"github.com/studytrack/studytrack/internal/tracker"
)

func newTestModel(t *testing.T) (Model, *storage.JSONStore) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "store.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	engine := streak.New(store, nil)
	tr, err := tracker.New(store, engine)
	if err != nil {
		t.Fatalf("tracker.New() error = %v", err)
	}
	return NewModel(store, tr, engine, models.DefaultSettings()), store
}

// The periodic streak check must run inside Update itself, not in a
// command goroutine: the store has a single owner and a background check
// would race user mutations going through the tracker.
func TestStreakTickEvaluatesInsideUpdate(t *testing.T) {
	m, store := newTestModel(t)
	if m.streakEval.Warning {
		t.Fatal("fresh store must not start in a warning state")
	}

	last := time.Now().Add(-21 * time.Hour)
	if err := store.SaveStreak(models.StreakRecord{LastActivity: &last, Streak: 3}); err != nil {
		t.Fatalf("SaveStreak() error = %v", err)
	}

	updated, cmd := m.Update(streakTickMsg(time.Now()))
	got, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", updated)
	}
	if !got.streakEval.Warning {
		t.Error("warning not visible when Update returned; the check must be synchronous")
	}
	if cmd == nil {
		t.Error("tick handler must re-arm the next tick")
	}
}

func TestNewModel_ChecksStreakAtStartup(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "store.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	last := time.Now().Add(-21 * time.Hour)
	if err := store.SaveStreak(models.StreakRecord{LastActivity: &last, Streak: 2}); err != nil {
		t.Fatalf("SaveStreak() error = %v", err)
	}

	engine := streak.New(store, nil)
	tr, err := tracker.New(store, engine)
	if err != nil {
		t.Fatalf("tracker.New() error = %v", err)
	}

	m := NewModel(store, tr, engine, models.DefaultSettings())
	if !m.streakEval.Warning {
		t.Error("startup model should already carry the warning evaluation")
	}
	if m.streakRecord.Streak != 2 {
		t.Errorf("streakRecord.Streak = %d, want 2", m.streakRecord.Streak)
	}
}

func TestStylesFollowTheme(t *testing.T) {
	dark := newStyles(constants.ThemeDark)
	light := newStyles(constants.ThemeLight)

	if dark.activeTab.GetForeground() == light.activeTab.GetForeground() {
		t.Error("active tab accent must differ between themes")
	}
	if dark.warningBanner.GetBackground() == light.warningBanner.GetBackground() {
		t.Error("warning banner background must differ between themes")
	}
}

func TestApplyForm_SettingsSwitchTheme(t *testing.T) {
	m, _ := newTestModel(t)
	m.state = constants.StateEditSettings
	m.settingsForm = &SettingsFormModel{
		Theme:                string(constants.ThemeLight),
		NotificationsEnabled: true,
		MorningReminder:      "08:00",
		EveningReminder:      "20:00",
	}

	if err := m.applyForm(); err != nil {
		t.Fatalf("applyForm() error = %v", err)
	}
	if m.settings.Theme != constants.ThemeLight {
		t.Errorf("Theme = %q, want light", m.settings.Theme)
	}
	want := newStyles(constants.ThemeLight)
	if m.styles.activeTab.GetForeground() != want.activeTab.GetForeground() {
		t.Error("styles were not rebuilt for the new theme")
	}
}
