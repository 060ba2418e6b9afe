package stats

import (
	"testing"

	"github.com/studytrack/studytrack/internal/constants"
	"github.com/studytrack/studytrack/internal/models"
)

func TestFilterByStatus(t *testing.T) {
	concepts := []models.Concept{
		{ID: "1", Name: "A", Status: models.StatusLearning},
		{ID: "2", Name: "B", Status: models.StatusConfident},
		{ID: "3", Name: "C", Status: models.StatusLearning},
	}

	tests := []struct {
		name   string
		filter string
		want   int
	}{
		{name: "all", filter: constants.FilterAll, want: 3},
		{name: "learning", filter: "learning", want: 2},
		{name: "confident", filter: "confident", want: 1},
		{name: "no match", filter: "need-revision", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByStatus(concepts, tt.filter)
			if len(got) != tt.want {
				t.Errorf("FilterByStatus(%q) returned %d concepts, want %d", tt.filter, len(got), tt.want)
			}
		})
	}
}

func TestSortConcepts(t *testing.T) {
	concepts := []models.Concept{
		{ID: "1", Name: "banana", Status: models.StatusConfident, LastRevised: "2026-02-01"},
		{ID: "2", Name: "Apple", Status: models.StatusNotStarted},
		{ID: "3", Name: "cherry", Status: models.StatusLearning, LastRevised: "2026-03-01"},
	}

	tests := []struct {
		name  string
		key   constants.SortKey
		order []string
	}{
		{name: "name ascending is case-insensitive", key: constants.SortNameAsc, order: []string{"2", "1", "3"}},
		{name: "name descending", key: constants.SortNameDesc, order: []string{"3", "1", "2"}},
		{name: "status ordinal", key: constants.SortStatus, order: []string{"2", "3", "1"}},
		{name: "date desc puts undated last", key: constants.SortDateDesc, order: []string{"3", "1", "2"}},
		{name: "date asc puts undated last", key: constants.SortDateAsc, order: []string{"1", "3", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortConcepts(concepts, tt.key)
			for i, id := range tt.order {
				if got[i].ID != id {
					t.Fatalf("SortConcepts(%s) position %d = %s, want %s", tt.key, i, got[i].ID, id)
				}
			}
		})
	}

	// The input must be left untouched.
	if concepts[0].ID != "1" {
		t.Error("SortConcepts mutated its input")
	}
}

func TestComputeProgress(t *testing.T) {
	concepts := []models.Concept{
		{Status: models.StatusConfident},
		{Status: models.StatusConfident},
		{Status: models.StatusLearning},
		{Status: models.StatusNeedRevision},
	}

	p := ComputeProgress(concepts)
	want := Progress{Total: 4, Learning: 1, NeedRevision: 1, Confident: 2, Percentage: 50}
	if p != want {
		t.Errorf("ComputeProgress() = %+v, want %+v", p, want)
	}
}

func TestComputeProgress_Empty(t *testing.T) {
	p := ComputeProgress(nil)
	if p.Total != 0 || p.Percentage != 0 {
		t.Errorf("ComputeProgress(nil) = %+v, want zero values", p)
	}
	if p.Summary() != "No concepts yet." {
		t.Errorf("Summary() = %q", p.Summary())
	}
}

func TestComputeProgress_Rounding(t *testing.T) {
	concepts := []models.Concept{
		{Status: models.StatusConfident},
		{Status: models.StatusLearning},
		{Status: models.StatusLearning},
	}
	if p := ComputeProgress(concepts); p.Percentage != 33 {
		t.Errorf("Percentage = %d, want 33", p.Percentage)
	}
}
