package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/studytrack/studytrack/internal/constants"
)

// Status is the revision status of a concept
type Status string

const (
	StatusNotStarted   Status = "not-started"
	StatusLearning     Status = "learning"
	StatusNeedRevision Status = "need-revision"
	StatusConfident    Status = "confident"
)

// statusOrder gives each status its ordinal position for sorting.
var statusOrder = map[Status]int{
	StatusNotStarted:   0,
	StatusLearning:     1,
	StatusNeedRevision: 2,
	StatusConfident:    3,
}

// Valid reports whether s is a known revision status.
func (s Status) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// Ordinal returns the sort position of the status (not-started first).
func (s Status) Ordinal() int {
	return statusOrder[s]
}

// AllStatuses lists every status in ordinal order.
func AllStatuses() []Status {
	return []Status{StatusNotStarted, StatusLearning, StatusNeedRevision, StatusConfident}
}

// Attachment is an inline-encoded image belonging to a concept
type Attachment struct {
	Data    string    `json:"data"` // base64 data URI
	Name    string    `json:"name"` // original filename
	AddedAt time.Time `json:"added_at"`
}

// Concept is a trackable unit of study within a subject
type Concept struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Status      Status       `json:"status"`
	LastRevised string       `json:"last_revised,omitempty"` // YYYY-MM-DD format
	Images      []Attachment `json:"images,omitempty"`
}

// CompletedConcept is a concept snapshot moved into the subject's archive
type CompletedConcept struct {
	Concept
	CompletedAt time.Time `json:"completed_at"`
}

// Subject is a top-level grouping of concepts
type Subject struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Color             string             `json:"color,omitempty"`
	Concepts          []Concept          `json:"concepts"`
	CompletedConcepts []CompletedConcept `json:"completed_concepts"`
}

// Root is the application state root: every subject plus the current
// selection. It is persisted in full after every mutating operation.
type Root struct {
	Subjects          []Subject `json:"subjects"`
	SelectedSubjectID string    `json:"selected_subject_id,omitempty"`
}

// SubjectByID returns a pointer into the root's subject slice, or nil.
func (r *Root) SubjectByID(id string) *Subject {
	for i := range r.Subjects {
		if r.Subjects[i].ID == id {
			return &r.Subjects[i]
		}
	}
	return nil
}

// SelectedSubject returns the currently selected subject, or nil if the
// selection is absent.
func (r *Root) SelectedSubject() *Subject {
	if r.SelectedSubjectID == "" {
		return nil
	}
	return r.SubjectByID(r.SelectedSubjectID)
}

// ConceptByID returns a pointer into the subject's active concept slice, or nil.
func (s *Subject) ConceptByID(id string) *Concept {
	for i := range s.Concepts {
		if s.Concepts[i].ID == id {
			return &s.Concepts[i]
		}
	}
	return nil
}

// CompletedByID returns a pointer into the subject's archive, or nil.
func (s *Subject) CompletedByID(id string) *CompletedConcept {
	for i := range s.CompletedConcepts {
		if s.CompletedConcepts[i].ID == id {
			return &s.CompletedConcepts[i]
		}
	}
	return nil
}

// HasConceptNamed reports whether an active concept with the given name
// already exists in the subject. Comparison is case-insensitive; excludeID
// skips one concept (used when renaming).
func (s *Subject) HasConceptNamed(name, excludeID string) bool {
	folded := strings.ToLower(strings.TrimSpace(name))
	for _, c := range s.Concepts {
		if c.ID != excludeID && strings.ToLower(c.Name) == folded {
			return true
		}
	}
	return false
}

// HasSubjectNamed reports whether a subject with the given name already
// exists. Comparison is case-insensitive; excludeID skips one subject.
func (r *Root) HasSubjectNamed(name, excludeID string) bool {
	folded := strings.ToLower(strings.TrimSpace(name))
	for _, s := range r.Subjects {
		if s.ID != excludeID && strings.ToLower(s.Name) == folded {
			return true
		}
	}
	return false
}

// ValidateRevisionDate checks a YYYY-MM-DD revision date and rejects dates
// strictly after today.
func ValidateRevisionDate(date string, now time.Time) error {
	d, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.After(today) {
		return fmt.Errorf("revision date %s is in the future", date)
	}
	return nil
}
