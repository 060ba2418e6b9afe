// Package tracker owns the in-memory application root and is the only
// writer to it. Every mutating operation validates its input, applies the
// change in memory, then persists the full root. A persistence failure is
// reported as a PersistenceError but does not roll back the in-memory
// change: "mutation applied" and "mutation durable" are separate
// guarantees here.
package tracker

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studytrack/studytrack/internal/constants"
	apperrors "github.com/studytrack/studytrack/internal/errors"
	"github.com/studytrack/studytrack/internal/logger"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/storage"
	"github.com/studytrack/studytrack/internal/streak"
)

type Tracker struct {
	store  storage.Provider
	engine *streak.Engine
	root   models.Root
	now    func() time.Time
	newID  func() string
}

// New creates a tracker over an already-loaded store. engine may be nil;
// streak recording is then skipped.
func New(store storage.Provider, engine *streak.Engine) (*Tracker, error) {
	root, err := store.GetRoot()
	if err != nil {
		return nil, err
	}

	for _, w := range store.LoadWarnings() {
		logger.Warn("Recovered from corrupt record", "warning", w.Error())
	}

	return &Tracker{
		store:  store,
		engine: engine,
		root:   root,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}, nil
}

// SetClock overrides the tracker's clock. Used by tests.
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
	if t.engine != nil {
		t.engine.SetClock(now)
	}
}

// Root returns a snapshot of the application root.
func (t *Tracker) Root() models.Root {
	return t.root
}

// Subjects returns the current subject list.
func (t *Tracker) Subjects() []models.Subject {
	return t.root.Subjects
}

// SubjectByID looks up a subject, returning a ValidationError when absent.
func (t *Tracker) SubjectByID(id string) (*models.Subject, error) {
	subject := t.root.SubjectByID(id)
	if subject == nil {
		return nil, apperrors.NewValidation("subject", "no subject with id %s", id)
	}
	return subject, nil
}

// SubjectByName looks up a subject by name, case-insensitively.
func (t *Tracker) SubjectByName(name string) (*models.Subject, error) {
	folded := strings.ToLower(strings.TrimSpace(name))
	for i := range t.root.Subjects {
		if strings.ToLower(t.root.Subjects[i].Name) == folded {
			return &t.root.Subjects[i], nil
		}
	}
	return nil, apperrors.NewValidation("subject", "no subject named %q", name)
}

// SelectedSubject returns the selected subject or nil.
func (t *Tracker) SelectedSubject() *models.Subject {
	return t.root.SelectedSubject()
}

func (t *Tracker) persist(op string) error {
	if err := t.store.SaveRoot(t.root); err != nil {
		err = apperrors.NewPersistence(op, err)
		logger.Warn("Mutation applied but not durable", "op", op, "error", err)
		return err
	}
	return nil
}

// recordActivity feeds the streak engine after a qualifying mutation.
// A streak failure never fails the mutation that triggered it.
func (t *Tracker) recordActivity() {
	if t.engine == nil {
		return
	}
	if _, err := t.engine.RecordActivity(); err != nil {
		logger.Warn("Failed to record streak activity", "error", err)
	}
}

// AddSubject creates a subject with an empty concept list.
func (t *Tracker) AddSubject(name, color string) (models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Subject{}, apperrors.NewValidation("subject", "name cannot be empty")
	}
	if t.root.HasSubjectNamed(name, "") {
		return models.Subject{}, apperrors.NewValidation("subject", "a subject named %q already exists", name)
	}

	subject := models.Subject{
		ID:                t.newID(),
		Name:              name,
		Color:             color,
		Concepts:          []models.Concept{},
		CompletedConcepts: []models.CompletedConcept{},
	}
	t.root.Subjects = append(t.root.Subjects, subject)

	err := t.persist("add subject")
	t.recordActivity()
	return subject, err
}

// RenameSubject changes a subject's name, enforcing uniqueness.
func (t *Tracker) RenameSubject(id, name string) error {
	subject, err := t.SubjectByID(id)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidation("subject", "name cannot be empty")
	}
	if t.root.HasSubjectNamed(name, id) {
		return apperrors.NewValidation("subject", "a subject named %q already exists", name)
	}

	subject.Name = name
	return t.persist("rename subject")
}

// DeleteSubject removes a subject and everything it contains. A selection
// pointing at the deleted subject is cleared.
func (t *Tracker) DeleteSubject(id string) error {
	idx := -1
	for i := range t.root.Subjects {
		if t.root.Subjects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.NewValidation("subject", "no subject with id %s", id)
	}

	t.root.Subjects = append(t.root.Subjects[:idx], t.root.Subjects[idx+1:]...)
	if t.root.SelectedSubjectID == id {
		t.root.SelectedSubjectID = ""
	}
	return t.persist("delete subject")
}

// SelectSubject sets the current selection; an empty id clears it.
func (t *Tracker) SelectSubject(id string) error {
	if id != "" && t.root.SubjectByID(id) == nil {
		return apperrors.NewValidation("subject", "no subject with id %s", id)
	}
	t.root.SelectedSubjectID = id
	return t.persist("select subject")
}

// AddConcept creates a not-started concept in the given subject.
func (t *Tracker) AddConcept(subjectID, name string) (models.Concept, error) {
	subject, err := t.SubjectByID(subjectID)
	if err != nil {
		return models.Concept{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Concept{}, apperrors.NewValidation("concept", "name cannot be empty")
	}
	if subject.HasConceptNamed(name, "") {
		return models.Concept{}, apperrors.NewValidation("concept", "a concept named %q already exists in %s", name, subject.Name)
	}

	concept := models.Concept{
		ID:     t.newID(),
		Name:   name,
		Status: models.StatusNotStarted,
	}
	subject.Concepts = append(subject.Concepts, concept)

	persistErr := t.persist("add concept")
	t.recordActivity()
	return concept, persistErr
}

// RenameConcept changes a concept's name within its subject.
func (t *Tracker) RenameConcept(subjectID, conceptID, name string) error {
	subject, err := t.SubjectByID(subjectID)
	if err != nil {
		return err
	}
	concept := subject.ConceptByID(conceptID)
	if concept == nil {
		return apperrors.NewValidation("concept", "no concept with id %s", conceptID)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidation("concept", "name cannot be empty")
	}
	if subject.HasConceptNamed(name, conceptID) {
		return apperrors.NewValidation("concept", "a concept named %q already exists in %s", name, subject.Name)
	}

	concept.Name = name
	return t.persist("rename concept")
}

// DeleteConcept removes an active concept.
func (t *Tracker) DeleteConcept(subjectID, conceptID string) error {
	subject, err := t.SubjectByID(subjectID)
	if err != nil {
		return err
	}
	for i := range subject.Concepts {
		if subject.Concepts[i].ID == conceptID {
			subject.Concepts = append(subject.Concepts[:i], subject.Concepts[i+1:]...)
			return t.persist("delete concept")
		}
	}
	return apperrors.NewValidation("concept", "no concept with id %s", conceptID)
}

// SetStatus updates a concept's revision status.
func (t *Tracker) SetStatus(subjectID, conceptID string, status models.Status) error {
	subject, err := t.SubjectByID(subjectID)
	if err != nil {
		return err
	}
	concept := subject.ConceptByID(conceptID)
	if concept == nil {
		return apperrors.NewValidation("concept", "no concept with id %s", conceptID)
	}
	if !status.Valid() {
		return apperrors.NewValidation("status", "unknown status %q", status)
	}

	concept.Status = status
	persistErr := t.persist("set status")
	t.recordActivity()
	return persistErr
}

// SetLastRevised records when a concept was last revised. Future dates
// are rejected and the prior value is left unchanged. Marking a concept
// as revised today counts as streak activity.
func (t *Tracker) SetLastRevised(subjectID, conceptID, date string) error {
	subject, err := t.SubjectByID(subjectID)
	if err != nil {
		return err
	}
	concept := subject.ConceptByID(conceptID)
	if concept == nil {
		return apperrors.NewValidation("concept", "no concept with id %s", conceptID)
	}

	now := t.now()
	if err := models.ValidateRevisionDate(date, now); err != nil {
		return apperrors.NewValidation("date", "%v", err)
	}

	concept.LastRevised = date
	persistErr := t.persist("set revision date")
	if date == now.Format(constants.DateFormat) {
		t.recordActivity()
	}
	return persistErr
}

// CompleteConcept moves a concept into the subject's completion archive,
// stamping the completion time.
func (t *Tracker) CompleteConcept(subjectID, conceptID string) error {
	subject, err := t.SubjectByID(subjectID)
	if err != nil {
		return err
	}
	for i := range subject.Concepts {
		if subject.Concepts[i].ID == conceptID {
			completed := models.CompletedConcept{
				Concept:     subject.Concepts[i],
				CompletedAt: t.now(),
			}
			subject.Concepts = append(subject.Concepts[:i], subject.Concepts[i+1:]...)
			subject.CompletedConcepts = append(subject.CompletedConcepts, completed)
			return t.persist("complete concept")
		}
	}
	return apperrors.NewValidation("concept", "no concept with id %s", conceptID)
}

// RestoreConcept moves a completed concept back into the active list,
// dropping its completion timestamp. The active list must not already
// hold a concept with the same name.
func (t *Tracker) RestoreConcept(subjectID, conceptID string) error {
	subject, err := t.SubjectByID(subjectID)
	if err != nil {
		return err
	}
	for i := range subject.CompletedConcepts {
		if subject.CompletedConcepts[i].ID == conceptID {
			if subject.HasConceptNamed(subject.CompletedConcepts[i].Name, "") {
				return apperrors.NewValidation("concept",
					"an active concept named %q already exists in %s", subject.CompletedConcepts[i].Name, subject.Name)
			}
			concept := subject.CompletedConcepts[i].Concept
			subject.CompletedConcepts = append(subject.CompletedConcepts[:i], subject.CompletedConcepts[i+1:]...)
			subject.Concepts = append(subject.Concepts, concept)
			return t.persist("restore concept")
		}
	}
	return apperrors.NewValidation("concept", "no completed concept with id %s", conceptID)
}

// DeleteCompleted permanently removes a concept from the archive. There
// is no undo beyond an explicit store backup.
func (t *Tracker) DeleteCompleted(subjectID, conceptID string) error {
	subject, err := t.SubjectByID(subjectID)
	if err != nil {
		return err
	}
	for i := range subject.CompletedConcepts {
		if subject.CompletedConcepts[i].ID == conceptID {
			subject.CompletedConcepts = append(subject.CompletedConcepts[:i], subject.CompletedConcepts[i+1:]...)
			return t.persist("delete completed concept")
		}
	}
	return apperrors.NewValidation("concept", "no completed concept with id %s", conceptID)
}

// AttachImages appends already-encoded attachments to a concept. The
// caller encodes the whole batch first, so a partial selection is never
// committed.
func (t *Tracker) AttachImages(subjectID, conceptID string, attachments []models.Attachment) error {
	subject, err := t.SubjectByID(subjectID)
	if err != nil {
		return err
	}
	concept := subject.ConceptByID(conceptID)
	if concept == nil {
		return apperrors.NewValidation("concept", "no concept with id %s", conceptID)
	}
	if len(attachments) == 0 {
		return apperrors.NewValidation("image", "no attachments given")
	}

	concept.Images = append(concept.Images, attachments...)
	return t.persist("attach images")
}

// DetachImage removes one attachment by position.
func (t *Tracker) DetachImage(subjectID, conceptID string, index int) error {
	subject, err := t.SubjectByID(subjectID)
	if err != nil {
		return err
	}
	concept := subject.ConceptByID(conceptID)
	if concept == nil {
		return apperrors.NewValidation("concept", "no concept with id %s", conceptID)
	}
	if index < 0 || index >= len(concept.Images) {
		return apperrors.NewValidation("image", "no attachment at index %d", index)
	}

	concept.Images = append(concept.Images[:index], concept.Images[index+1:]...)
	return t.persist("detach image")
}
