// Package validation scans persisted data for conflicts that slipped past
// the write-time checks, e.g. records edited by hand or written by an
// older version. Conflicts are reported, never fatal.
package validation

import (
	"fmt"
	"strings"

	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateSubjectName ConflictType = "duplicate_subject_name"
	ConflictDuplicateConceptName ConflictType = "duplicate_concept_name"
	ConflictInvalidStatus        ConflictType = "invalid_status"
	ConflictInvalidTime          ConflictType = "invalid_time"
	ConflictOverlappingEntries   ConflictType = "overlapping_entries"
)

// Conflict represents a detected conflict in subjects or the timetable
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Names of the records involved
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates subjects and timetable entries for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateRoot checks the subjects tree for duplicate names and unknown
// statuses.
func (v *Validator) ValidateRoot(root models.Root) Result {
	var result Result

	seenSubjects := make(map[string][]string)
	for _, subject := range root.Subjects {
		folded := strings.ToLower(subject.Name)
		seenSubjects[folded] = append(seenSubjects[folded], subject.Name)

		seenConcepts := make(map[string][]string)
		for _, concept := range subject.Concepts {
			key := strings.ToLower(concept.Name)
			seenConcepts[key] = append(seenConcepts[key], concept.Name)

			if !concept.Status.Valid() {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidStatus,
					Description: fmt.Sprintf("Concept %q in subject %q has unknown status %q", concept.Name, subject.Name, concept.Status),
					Items:       []string{concept.Name},
				})
			}
		}
		for _, names := range seenConcepts {
			if len(names) > 1 {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateConceptName,
					Description: fmt.Sprintf("Subject %q has %d concepts named %q", subject.Name, len(names), names[0]),
					Items:       names,
				})
			}
		}
	}

	for _, names := range seenSubjects {
		if len(names) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateSubjectName,
				Description: fmt.Sprintf("%d subjects share the name %q", len(names), names[0]),
				Items:       names,
			})
		}
	}

	return result
}

// ValidateTimetable checks entries for malformed times and overlapping
// sessions on the same day.
func (v *Validator) ValidateTimetable(entries []models.TimetableEntry) Result {
	var result Result

	type span struct {
		entry models.TimetableEntry
		start int
		end   int
	}
	byDay := make(map[string][]span)

	for _, entry := range entries {
		start, err := utils.ParseTimeToMinutes(entry.Time)
		if err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Timetable entry %q has invalid time %q", entry.Task, entry.Time),
				Items:       []string{entry.Task},
			})
			continue
		}
		day := strings.ToLower(strings.TrimSpace(entry.Day))
		byDay[day] = append(byDay[day], span{entry: entry, start: start, end: start + entry.DurationMin})
	}

	for _, spans := range byDay {
		for i := 0; i < len(spans); i++ {
			for j := i + 1; j < len(spans); j++ {
				a, b := spans[i], spans[j]
				if a.start < b.end && b.start < a.end && a.entry.DurationMin > 0 && b.entry.DurationMin > 0 {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type: ConflictOverlappingEntries,
						Description: fmt.Sprintf("Timetable entries %q and %q overlap on %s",
							a.entry.Task, b.entry.Task, a.entry.Day),
						Items: []string{a.entry.Task, b.entry.Task},
					})
				}
			}
		}
	}

	return result
}
