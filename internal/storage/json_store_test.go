package storage

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/studytrack/studytrack/internal/models"
)

func newInitializedStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "store.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return store
}

func TestInit_RefusesExistingStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := NewJSONStore(path).Init(); err == nil {
		t.Error("Init() on existing store should fail")
	}
}

func TestLoad_NotInitialized(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("Load() without init should fail")
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	last := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	root := models.Root{
		Subjects: []models.Subject{{
			ID:   "s1",
			Name: "Algebra",
			Concepts: []models.Concept{
				{ID: "c1", Name: "Groups", Status: models.StatusLearning, LastRevised: "2026-03-09"},
			},
			CompletedConcepts: []models.CompletedConcept{},
		}},
		SelectedSubjectID: "s1",
	}
	if err := store.SaveRoot(root); err != nil {
		t.Fatalf("SaveRoot() error = %v", err)
	}
	if err := store.SaveTimetable([]models.TimetableEntry{
		{ID: "t1", Day: "monday", Time: "18:00", Task: "Revise", DurationMin: 30},
	}); err != nil {
		t.Fatalf("SaveTimetable() error = %v", err)
	}
	if err := store.SaveStreak(models.StreakRecord{LastActivity: &last, Streak: 3}); err != nil {
		t.Fatalf("SaveStreak() error = %v", err)
	}

	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	gotRoot, err := reloaded.GetRoot()
	if err != nil {
		t.Fatalf("GetRoot() error = %v", err)
	}
	if len(gotRoot.Subjects) != 1 || gotRoot.Subjects[0].Name != "Algebra" {
		t.Errorf("GetRoot() = %+v", gotRoot)
	}
	if gotRoot.SelectedSubjectID != "s1" {
		t.Errorf("SelectedSubjectID = %q, want s1", gotRoot.SelectedSubjectID)
	}

	entries, _ := reloaded.GetTimetable()
	if len(entries) != 1 || entries[0].Task != "Revise" {
		t.Errorf("GetTimetable() = %+v", entries)
	}

	streak, _ := reloaded.GetStreak()
	if streak.Streak != 3 || streak.LastActivity == nil || !streak.LastActivity.Equal(last) {
		t.Errorf("GetStreak() = %+v", streak)
	}
	if len(reloaded.LoadWarnings()) != 0 {
		t.Errorf("LoadWarnings() = %v, want none", reloaded.LoadWarnings())
	}
}

func TestSave_CapacityExceeded(t *testing.T) {
	store := newInitializedStore(t)
	store.SetMaxBytes(128)

	err := store.SaveRoot(models.Root{Subjects: []models.Subject{{
		ID:   "s1",
		Name: "A subject with a long enough name to overflow a tiny capacity limit",
	}}})
	if err == nil {
		t.Fatal("SaveRoot() should fail when over capacity")
	}
}

func TestGetters_RequireLoad(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "store.json"))
	if _, err := store.GetRoot(); err == nil {
		t.Error("GetRoot() before Load() should fail")
	}
	if err := store.SaveRoot(models.Root{}); err == nil {
		t.Error("SaveRoot() before Load() should fail")
	}
}

func TestDecodeRoot(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantSubjects int
		wantWarnings int
		wantSelected string
	}{
		{
			name:         "empty raw yields empty root",
			raw:          "",
			wantSubjects: 0,
			wantWarnings: 0,
		},
		{
			name:         "unrecognized shape falls back to empty root",
			raw:          `"just a string"`,
			wantSubjects: 0,
			wantWarnings: 1,
		},
		{
			name:         "subject missing id is dropped, others survive",
			raw:          `{"subjects":[{"id":"s1","name":"Kept"},{"name":"No ID"}]}`,
			wantSubjects: 1,
			wantWarnings: 1,
		},
		{
			name:         "non-object subject is dropped",
			raw:          `{"subjects":[42,{"id":"s1","name":"Kept"}]}`,
			wantSubjects: 1,
			wantWarnings: 1,
		},
		{
			name:         "dangling selection is dropped",
			raw:          `{"subjects":[{"id":"s1","name":"Kept"}],"selected_subject_id":"ghost"}`,
			wantSubjects: 1,
			wantWarnings: 1,
		},
		{
			name:         "valid selection survives",
			raw:          `{"subjects":[{"id":"s1","name":"Kept"}],"selected_subject_id":"s1"}`,
			wantSubjects: 1,
			wantWarnings: 0,
			wantSelected: "s1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, warnings := DecodeRoot(json.RawMessage(tt.raw))
			if len(root.Subjects) != tt.wantSubjects {
				t.Errorf("got %d subjects, want %d", len(root.Subjects), tt.wantSubjects)
			}
			if len(warnings) != tt.wantWarnings {
				t.Errorf("got %d warnings (%v), want %d", len(warnings), warnings, tt.wantWarnings)
			}
			if root.SelectedSubjectID != tt.wantSelected {
				t.Errorf("SelectedSubjectID = %q, want %q", root.SelectedSubjectID, tt.wantSelected)
			}
		})
	}
}
