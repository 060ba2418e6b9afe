package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studytrack/studytrack/internal/constants"
	apperrors "github.com/studytrack/studytrack/internal/errors"
	"github.com/studytrack/studytrack/internal/models"
)

// Store is the on-disk shape of the JSON backend. The whole struct is
// rewritten on every mutation.
type Store struct {
	Version   int                     `json:"version"`
	Settings  models.Settings         `json:"settings"`
	Root      json.RawMessage         `json:"root"`
	Timetable []models.TimetableEntry `json:"timetable"`
	Streak    models.StreakRecord     `json:"streak"`
}

type JSONStore struct {
	path     string
	maxBytes int

	settings  models.Settings
	root      models.Root
	timetable []models.TimetableEntry
	streak    models.StreakRecord
	warnings  []*apperrors.LoadWarning
	loaded    bool
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path:     configPath,
		maxBytes: constants.MaxStoreBytes,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.settings = models.DefaultSettings()
	s.root = models.Root{Subjects: []models.Subject{}}
	s.timetable = []models.TimetableEntry{}
	s.streak = models.StreakRecord{}
	s.loaded = true

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'studytrack init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	s.settings = store.Settings
	if s.settings.Theme == "" {
		s.settings = models.DefaultSettings()
	}
	s.timetable = store.Timetable
	if s.timetable == nil {
		s.timetable = []models.TimetableEntry{}
	}
	s.streak = store.Streak
	s.root, s.warnings = DecodeRoot(store.Root)
	s.loaded = true

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) LoadWarnings() []*apperrors.LoadWarning {
	return s.warnings
}

// DecodeRoot deserializes the application root with best-effort recovery:
// a subject that is not an object or is missing its id or name is dropped
// with a warning, and an unrecognized top-level shape falls back to an
// empty root rather than failing the whole load.
func DecodeRoot(raw json.RawMessage) (models.Root, []*apperrors.LoadWarning) {
	empty := models.Root{Subjects: []models.Subject{}}
	if len(raw) == 0 {
		return empty, nil
	}

	var shape struct {
		Subjects          []json.RawMessage `json:"subjects"`
		SelectedSubjectID string            `json:"selected_subject_id"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil || shape.Subjects == nil {
		return empty, []*apperrors.LoadWarning{
			{Record: "application root", Reason: "unrecognized top-level shape"},
		}
	}

	root := models.Root{Subjects: make([]models.Subject, 0, len(shape.Subjects))}
	var warnings []*apperrors.LoadWarning

	for i, rawSubject := range shape.Subjects {
		var subject models.Subject
		if err := json.Unmarshal(rawSubject, &subject); err != nil {
			warnings = append(warnings, &apperrors.LoadWarning{
				Record: fmt.Sprintf("subject at index %d", i),
				Reason: "not an object",
			})
			continue
		}
		if subject.ID == "" || subject.Name == "" {
			warnings = append(warnings, &apperrors.LoadWarning{
				Record: fmt.Sprintf("subject at index %d", i),
				Reason: "missing id or name",
			})
			continue
		}
		if subject.Concepts == nil {
			subject.Concepts = []models.Concept{}
		}
		if subject.CompletedConcepts == nil {
			subject.CompletedConcepts = []models.CompletedConcept{}
		}
		root.Subjects = append(root.Subjects, subject)
	}

	// A dangling selection is treated like any other anomaly: drop it.
	if shape.SelectedSubjectID != "" {
		if root.SubjectByID(shape.SelectedSubjectID) != nil {
			root.SelectedSubjectID = shape.SelectedSubjectID
		} else {
			warnings = append(warnings, &apperrors.LoadWarning{
				Record: "subject selection",
				Reason: "references a missing subject",
			})
		}
	}

	return root, warnings
}

func (s *JSONStore) save() error {
	rootData, err := json.Marshal(s.root)
	if err != nil {
		return fmt.Errorf("failed to serialize root: %w", err)
	}

	store := &Store{
		Version:   1,
		Settings:  s.settings,
		Root:      rootData,
		Timetable: s.timetable,
		Streak:    s.streak,
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if len(data) > s.maxBytes {
		return fmt.Errorf("store capacity exceeded: %d bytes (limit %d)", len(data), s.maxBytes)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetRoot() (models.Root, error) {
	if !s.loaded {
		return models.Root{}, fmt.Errorf("storage not loaded")
	}
	return s.root, nil
}

func (s *JSONStore) SaveRoot(root models.Root) error {
	if !s.loaded {
		return fmt.Errorf("storage not loaded")
	}
	s.root = root
	return s.save()
}

func (s *JSONStore) GetTimetable() ([]models.TimetableEntry, error) {
	if !s.loaded {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.timetable, nil
}

func (s *JSONStore) SaveTimetable(entries []models.TimetableEntry) error {
	if !s.loaded {
		return fmt.Errorf("storage not loaded")
	}
	s.timetable = entries
	return s.save()
}

func (s *JSONStore) GetStreak() (models.StreakRecord, error) {
	if !s.loaded {
		return models.StreakRecord{}, fmt.Errorf("storage not loaded")
	}
	return s.streak, nil
}

func (s *JSONStore) SaveStreak(record models.StreakRecord) error {
	if !s.loaded {
		return fmt.Errorf("storage not loaded")
	}
	s.streak = record
	return s.save()
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if !s.loaded {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if !s.loaded {
		return fmt.Errorf("storage not loaded")
	}
	s.settings = settings
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// SetMaxBytes overrides the capacity limit. Used by tests to simulate a
// full store.
func (s *JSONStore) SetMaxBytes(n int) {
	s.maxBytes = n
}
