package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/studytrack/studytrack/internal/constants"
	apperrors "github.com/studytrack/studytrack/internal/errors"
	"github.com/studytrack/studytrack/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS subjects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS concepts (
	id TEXT PRIMARY KEY,
	subject_id TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	status TEXT NOT NULL,
	last_revised TEXT NOT NULL DEFAULT '',
	completed_at TEXT,
	images TEXT NOT NULL DEFAULT '[]',
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS timetable (
	id TEXT PRIMARY KEY,
	day TEXT NOT NULL,
	time TEXT NOT NULL,
	task TEXT NOT NULL,
	duration_min INTEGER NOT NULL,
	position INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS streak (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	last_activity TEXT,
	streak INTEGER NOT NULL DEFAULT 0,
	warning_dismissed INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type SQLiteStore struct {
	path     string
	db       *sql.DB
	warnings []*apperrors.LoadWarning
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'studytrack init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	ok, err := s.tableExists("subjects")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("storage at %s has no studytrack schema", s.path)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) LoadWarnings() []*apperrors.LoadWarning {
	return s.warnings
}

// tableExists checks if a table exists in the SQLite database.
// The check is case-insensitive to match SQLite's behavior.
func (s *SQLiteStore) tableExists(tableName string) (bool, error) {
	var count int
	row := s.db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", tableName)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLiteStore) GetRoot() (models.Root, error) {
	root := models.Root{Subjects: []models.Subject{}}
	s.warnings = nil

	rows, err := s.db.Query("SELECT id, name, color FROM subjects ORDER BY position")
	if err != nil {
		return root, err
	}
	defer rows.Close()

	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Color); err != nil {
			return root, err
		}
		subject.Concepts = []models.Concept{}
		subject.CompletedConcepts = []models.CompletedConcept{}
		root.Subjects = append(root.Subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return root, err
	}

	for i := range root.Subjects {
		if err := s.loadConcepts(&root.Subjects[i]); err != nil {
			return root, err
		}
	}

	if value, err := s.getSetting("selected_subject_id"); err == nil && value != "" {
		if root.SubjectByID(value) != nil {
			root.SelectedSubjectID = value
		} else {
			s.warnings = append(s.warnings, &apperrors.LoadWarning{
				Record: "subject selection",
				Reason: "references a missing subject",
			})
		}
	}

	return root, nil
}

func (s *SQLiteStore) loadConcepts(subject *models.Subject) error {
	rows, err := s.db.Query(
		"SELECT id, name, status, last_revised, completed_at, images FROM concepts WHERE subject_id = ? ORDER BY position",
		subject.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var concept models.Concept
		var completedAt sql.NullString
		var images string
		if err := rows.Scan(&concept.ID, &concept.Name, &concept.Status, &concept.LastRevised, &completedAt, &images); err != nil {
			return err
		}

		if images != "" && images != "[]" {
			if err := json.Unmarshal([]byte(images), &concept.Images); err != nil {
				// Attachments are droppable; the concept itself survives.
				s.warnings = append(s.warnings, &apperrors.LoadWarning{
					Record: fmt.Sprintf("attachments of concept %s", concept.ID),
					Reason: "malformed image data",
				})
				concept.Images = nil
			}
		}

		if completedAt.Valid && completedAt.String != "" {
			ts, err := time.Parse(time.RFC3339, completedAt.String)
			if err != nil {
				s.warnings = append(s.warnings, &apperrors.LoadWarning{
					Record: fmt.Sprintf("completed concept %s", concept.ID),
					Reason: "malformed completion timestamp",
				})
				continue
			}
			subject.CompletedConcepts = append(subject.CompletedConcepts, models.CompletedConcept{
				Concept:     concept,
				CompletedAt: ts,
			})
		} else {
			subject.Concepts = append(subject.Concepts, concept)
		}
	}
	return rows.Err()
}

// SaveRoot replaces the whole subjects tree in one transaction, matching
// the full-record persistence model of the JSON backend.
func (s *SQLiteStore) SaveRoot(root models.Root) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM concepts"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM subjects"); err != nil {
		return err
	}

	subjectStmt, err := tx.Prepare("INSERT INTO subjects (id, name, color, position) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer subjectStmt.Close()

	conceptStmt, err := tx.Prepare(
		"INSERT INTO concepts (id, subject_id, name, status, last_revised, completed_at, images, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer conceptStmt.Close()

	for si, subject := range root.Subjects {
		if _, err := subjectStmt.Exec(subject.ID, subject.Name, subject.Color, si); err != nil {
			return err
		}
		for ci, concept := range subject.Concepts {
			images, err := encodeImages(concept.Images)
			if err != nil {
				return err
			}
			if _, err := conceptStmt.Exec(concept.ID, subject.ID, concept.Name, string(concept.Status), concept.LastRevised, nil, images, ci); err != nil {
				return err
			}
		}
		for ci, completed := range subject.CompletedConcepts {
			images, err := encodeImages(completed.Images)
			if err != nil {
				return err
			}
			completedAt := completed.CompletedAt.UTC().Format(time.RFC3339)
			if _, err := conceptStmt.Exec(completed.ID, subject.ID, completed.Name, string(completed.Status), completed.LastRevised, completedAt, images, len(subject.Concepts)+ci); err != nil {
				return err
			}
		}
	}

	if err := setSettingTx(tx, "selected_subject_id", root.SelectedSubjectID); err != nil {
		return err
	}

	return tx.Commit()
}

func encodeImages(images []models.Attachment) (string, error) {
	if len(images) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("failed to serialize attachments: %w", err)
	}
	return string(data), nil
}

func (s *SQLiteStore) GetTimetable() ([]models.TimetableEntry, error) {
	rows, err := s.db.Query("SELECT id, day, time, task, duration_min FROM timetable ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.TimetableEntry{}
	for rows.Next() {
		var entry models.TimetableEntry
		if err := rows.Scan(&entry.ID, &entry.Day, &entry.Time, &entry.Task, &entry.DurationMin); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) SaveTimetable(entries []models.TimetableEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM timetable"); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO timetable (id, day, time, task, duration_min, position) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, entry := range entries {
		if _, err := stmt.Exec(entry.ID, entry.Day, entry.Time, entry.Task, entry.DurationMin, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetStreak() (models.StreakRecord, error) {
	var record models.StreakRecord
	var lastActivity sql.NullString
	var dismissed int

	row := s.db.QueryRow("SELECT last_activity, streak, warning_dismissed FROM streak WHERE id = 1")
	if err := row.Scan(&lastActivity, &record.Streak, &dismissed); err != nil {
		if err == sql.ErrNoRows {
			return models.StreakRecord{}, nil
		}
		return models.StreakRecord{}, err
	}

	record.WarningDismissed = dismissed != 0
	if lastActivity.Valid && lastActivity.String != "" {
		ts, err := time.Parse(time.RFC3339, lastActivity.String)
		if err != nil {
			return models.StreakRecord{}, fmt.Errorf("malformed streak timestamp: %w", err)
		}
		record.LastActivity = &ts
	}

	return record, nil
}

func (s *SQLiteStore) SaveStreak(record models.StreakRecord) error {
	var lastActivity interface{}
	if record.LastActivity != nil {
		lastActivity = record.LastActivity.UTC().Format(time.RFC3339)
	}
	dismissed := 0
	if record.WarningDismissed {
		dismissed = 1
	}

	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO streak (id, last_activity, streak, warning_dismissed) VALUES (1, ?, ?, ?)",
		lastActivity, record.Streak, dismissed)
	return err
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "theme":
			settings.Theme = constants.Theme(value)
		case "notifications_enabled":
			settings.NotificationsEnabled = value == "true"
		case "morning_reminder":
			settings.MorningReminder = value
		case "evening_reminder":
			settings.EveningReminder = value
		case "timezone":
			settings.Timezone = value
		default:
			continue
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	pairs := map[string]string{
		"theme":                 string(settings.Theme),
		"notifications_enabled": fmt.Sprintf("%v", settings.NotificationsEnabled),
		"morning_reminder":      settings.MorningReminder,
		"evening_reminder":      settings.EveningReminder,
		"timezone":              settings.Timezone,
	}
	for key, value := range pairs {
		if err := setSettingTx(tx, key, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) getSetting(key string) (string, error) {
	var value string
	row := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key)
	if err := row.Scan(&value); err != nil {
		return "", err
	}
	return value, nil
}

func setSettingTx(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
