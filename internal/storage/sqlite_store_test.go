package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/studytrack/studytrack/internal/models"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "store.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLite_InitWritesDefaultSettings(t *testing.T) {
	store := newSQLiteStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("GetSettings() = %+v, want defaults", settings)
	}
}

func TestSQLite_RootRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	completedAt := time.Date(2026, 3, 9, 18, 30, 0, 0, time.UTC)
	root := models.Root{
		Subjects: []models.Subject{{
			ID:   "s1",
			Name: "Physics",
			Concepts: []models.Concept{
				{ID: "c1", Name: "Optics", Status: models.StatusLearning, LastRevised: "2026-03-08",
					Images: []models.Attachment{{Data: "data:image/png;base64,AAAA", Name: "lens.png", AddedAt: completedAt}}},
				{ID: "c2", Name: "Waves", Status: models.StatusNotStarted},
			},
			CompletedConcepts: []models.CompletedConcept{{
				Concept:     models.Concept{ID: "c3", Name: "Kinematics", Status: models.StatusConfident},
				CompletedAt: completedAt,
			}},
		}},
		SelectedSubjectID: "s1",
	}

	if err := store.SaveRoot(root); err != nil {
		t.Fatalf("SaveRoot() error = %v", err)
	}

	got, err := store.GetRoot()
	if err != nil {
		t.Fatalf("GetRoot() error = %v", err)
	}
	if len(got.Subjects) != 1 {
		t.Fatalf("got %d subjects, want 1", len(got.Subjects))
	}
	subject := got.Subjects[0]
	if len(subject.Concepts) != 2 || len(subject.CompletedConcepts) != 1 {
		t.Fatalf("got %d active / %d completed, want 2/1", len(subject.Concepts), len(subject.CompletedConcepts))
	}
	if subject.Concepts[0].Images[0].Name != "lens.png" {
		t.Errorf("attachment did not survive the round trip: %+v", subject.Concepts[0].Images)
	}
	if !subject.CompletedConcepts[0].CompletedAt.Equal(completedAt) {
		t.Errorf("CompletedAt = %v, want %v", subject.CompletedConcepts[0].CompletedAt, completedAt)
	}
	if got.SelectedSubjectID != "s1" {
		t.Errorf("SelectedSubjectID = %q, want s1", got.SelectedSubjectID)
	}

	// Replacing the root drops everything not re-submitted.
	if err := store.SaveRoot(models.Root{Subjects: []models.Subject{}}); err != nil {
		t.Fatalf("SaveRoot() error = %v", err)
	}
	got, err = store.GetRoot()
	if err != nil {
		t.Fatalf("GetRoot() error = %v", err)
	}
	if len(got.Subjects) != 0 || got.SelectedSubjectID != "" {
		t.Errorf("GetRoot() after wipe = %+v, want empty", got)
	}
}

func TestSQLite_StreakRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	if record, err := store.GetStreak(); err != nil || record.Streak != 0 {
		t.Fatalf("GetStreak() on fresh store = %+v, %v", record, err)
	}

	last := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if err := store.SaveStreak(models.StreakRecord{LastActivity: &last, Streak: 5, WarningDismissed: true}); err != nil {
		t.Fatalf("SaveStreak() error = %v", err)
	}

	record, err := store.GetStreak()
	if err != nil {
		t.Fatalf("GetStreak() error = %v", err)
	}
	if record.Streak != 5 || !record.WarningDismissed {
		t.Errorf("GetStreak() = %+v", record)
	}
	if record.LastActivity == nil || !record.LastActivity.Equal(last) {
		t.Errorf("LastActivity = %v, want %v", record.LastActivity, last)
	}
}

func TestSQLite_TimetableRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)

	entries := []models.TimetableEntry{
		{ID: "t1", Day: "monday", Time: "18:00", Task: "Revise optics", DurationMin: 45},
		{ID: "t2", Day: "friday", Time: "07:30", Task: "Flashcards", DurationMin: 15},
	}
	if err := store.SaveTimetable(entries); err != nil {
		t.Fatalf("SaveTimetable() error = %v", err)
	}

	got, err := store.GetTimetable()
	if err != nil {
		t.Fatalf("GetTimetable() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "t1" || got[1].Task != "Flashcards" {
		t.Errorf("GetTimetable() = %+v", got)
	}
}
