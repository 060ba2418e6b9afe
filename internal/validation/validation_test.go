package validation

import (
	"testing"

	"github.com/studytrack/studytrack/internal/models"
)

func TestValidateRoot(t *testing.T) {
	tests := []struct {
		name      string
		root      models.Root
		wantTypes []ConflictType
	}{
		{
			name: "clean tree",
			root: models.Root{Subjects: []models.Subject{
				{ID: "s1", Name: "Maths", Concepts: []models.Concept{
					{ID: "c1", Name: "Algebra", Status: models.StatusLearning},
				}},
			}},
		},
		{
			name: "duplicate subject names differ only in case",
			root: models.Root{Subjects: []models.Subject{
				{ID: "s1", Name: "Maths"},
				{ID: "s2", Name: "maths"},
			}},
			wantTypes: []ConflictType{ConflictDuplicateSubjectName},
		},
		{
			name: "duplicate concepts within a subject",
			root: models.Root{Subjects: []models.Subject{
				{ID: "s1", Name: "Maths", Concepts: []models.Concept{
					{ID: "c1", Name: "Algebra", Status: models.StatusLearning},
					{ID: "c2", Name: "algebra", Status: models.StatusConfident},
				}},
			}},
			wantTypes: []ConflictType{ConflictDuplicateConceptName},
		},
		{
			name: "unknown status",
			root: models.Root{Subjects: []models.Subject{
				{ID: "s1", Name: "Maths", Concepts: []models.Concept{
					{ID: "c1", Name: "Algebra", Status: "mastered"},
				}},
			}},
			wantTypes: []ConflictType{ConflictInvalidStatus},
		},
	}

	validator := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.ValidateRoot(tt.root)
			if len(result.Conflicts) != len(tt.wantTypes) {
				t.Fatalf("got %d conflicts (%+v), want %d", len(result.Conflicts), result.Conflicts, len(tt.wantTypes))
			}
			for i, want := range tt.wantTypes {
				if result.Conflicts[i].Type != want {
					t.Errorf("conflict %d type = %s, want %s", i, result.Conflicts[i].Type, want)
				}
			}
		})
	}
}

func TestValidateTimetable(t *testing.T) {
	validator := New()

	t.Run("overlapping entries on the same day", func(t *testing.T) {
		result := validator.ValidateTimetable([]models.TimetableEntry{
			{ID: "1", Day: "monday", Time: "18:00", Task: "Algebra", DurationMin: 60},
			{ID: "2", Day: "monday", Time: "18:30", Task: "Latin", DurationMin: 60},
		})
		if len(result.Conflicts) != 1 || result.Conflicts[0].Type != ConflictOverlappingEntries {
			t.Errorf("conflicts = %+v, want one overlap", result.Conflicts)
		}
	})

	t.Run("same times on different days do not overlap", func(t *testing.T) {
		result := validator.ValidateTimetable([]models.TimetableEntry{
			{ID: "1", Day: "monday", Time: "18:00", Task: "Algebra", DurationMin: 60},
			{ID: "2", Day: "tuesday", Time: "18:00", Task: "Latin", DurationMin: 60},
		})
		if result.HasConflicts() {
			t.Errorf("conflicts = %+v, want none", result.Conflicts)
		}
	})

	t.Run("zero duration never overlaps", func(t *testing.T) {
		result := validator.ValidateTimetable([]models.TimetableEntry{
			{ID: "1", Day: "monday", Time: "18:00", Task: "Algebra"},
			{ID: "2", Day: "monday", Time: "18:00", Task: "Latin"},
		})
		if result.HasConflicts() {
			t.Errorf("conflicts = %+v, want none", result.Conflicts)
		}
	})

	t.Run("invalid time is reported", func(t *testing.T) {
		result := validator.ValidateTimetable([]models.TimetableEntry{
			{ID: "1", Day: "monday", Time: "6 o'clock", Task: "Algebra"},
		})
		if len(result.Conflicts) != 1 || result.Conflicts[0].Type != ConflictInvalidTime {
			t.Errorf("conflicts = %+v, want one invalid time", result.Conflicts)
		}
	})
}

func TestFormatReport(t *testing.T) {
	var empty Result
	if empty.FormatReport() != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", empty.FormatReport())
	}

	result := Result{Conflicts: []Conflict{{Type: ConflictInvalidTime, Description: "bad time"}}}
	report := result.FormatReport()
	if report == "" || !result.HasConflicts() {
		t.Error("report for conflicts should not be empty")
	}
}
