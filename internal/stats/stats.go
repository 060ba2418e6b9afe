// Package stats derives view-ready statistics and ordered lists from a
// subject's concepts. Everything here is a pure function: no side effects,
// no persistence.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/studytrack/studytrack/internal/constants"
	"github.com/studytrack/studytrack/internal/models"
)

// Progress holds per-status counts for a concept list.
type Progress struct {
	Total        int
	NotStarted   int
	Learning     int
	NeedRevision int
	Confident    int
	Percentage   int
}

// FilterByStatus returns the concepts matching the filter. The filter
// "all" passes everything; otherwise it must equal a concept's status
// exactly.
func FilterByStatus(concepts []models.Concept, filter string) []models.Concept {
	if filter == constants.FilterAll {
		return concepts
	}
	out := make([]models.Concept, 0, len(concepts))
	for _, c := range concepts {
		if string(c.Status) == filter {
			out = append(out, c)
		}
	}
	return out
}

// SortConcepts returns a sorted copy of the concepts. Name ordering is
// case-insensitive. For date ordering, concepts without a revision date
// sort strictly last regardless of direction.
func SortConcepts(concepts []models.Concept, key constants.SortKey) []models.Concept {
	out := make([]models.Concept, len(concepts))
	copy(out, concepts)

	switch key {
	case constants.SortNameAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case constants.SortNameDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) > strings.ToLower(out[j].Name)
		})
	case constants.SortStatus:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Status.Ordinal() < out[j].Status.Ordinal()
		})
	case constants.SortDateDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return compareDates(out[i].LastRevised, out[j].LastRevised, true)
		})
	case constants.SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return compareDates(out[i].LastRevised, out[j].LastRevised, false)
		})
	}

	return out
}

// compareDates orders two YYYY-MM-DD strings, pushing absent dates last in
// both directions. Lexicographic comparison is sufficient for this format.
func compareDates(a, b string, desc bool) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	if desc {
		return a > b
	}
	return a < b
}

// ComputeProgress counts concepts per status. Percentage is the rounded
// share of confident concepts, 0 for an empty list.
func ComputeProgress(concepts []models.Concept) Progress {
	p := Progress{Total: len(concepts)}
	for _, c := range concepts {
		switch c.Status {
		case models.StatusNotStarted:
			p.NotStarted++
		case models.StatusLearning:
			p.Learning++
		case models.StatusNeedRevision:
			p.NeedRevision++
		case models.StatusConfident:
			p.Confident++
		}
	}
	if p.Total > 0 {
		p.Percentage = int(math.Round(100 * float64(p.Confident) / float64(p.Total)))
	}
	return p
}

// Summary renders a one-line progress description from the counts.
func (p Progress) Summary() string {
	if p.Total == 0 {
		return "No concepts yet."
	}
	return fmt.Sprintf("%d%% confident (%d/%d) · %d learning · %d need revision · %d not started",
		p.Percentage, p.Confident, p.Total, p.Learning, p.NeedRevision, p.NotStarted)
}
