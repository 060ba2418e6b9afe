package tracker

import (
	"github.com/studytrack/studytrack/internal/models"

	apperrors "github.com/studytrack/studytrack/internal/errors"
)

// Timetable returns all entries sorted by weekday (Monday first, unknown
// day names last), then time ascending.
func (t *Tracker) Timetable() ([]models.TimetableEntry, error) {
	entries, err := t.store.GetTimetable()
	if err != nil {
		return nil, err
	}
	models.SortTimetable(entries)
	return entries, nil
}

// AddTimetableEntry validates and stores a new entry.
func (t *Tracker) AddTimetableEntry(day, timeStr, task string, durationMin int) (models.TimetableEntry, error) {
	entry := models.TimetableEntry{
		ID:          t.newID(),
		Day:         day,
		Time:        timeStr,
		Task:        task,
		DurationMin: durationMin,
	}
	if err := entry.Validate(); err != nil {
		return models.TimetableEntry{}, apperrors.NewValidation("timetable", "%v", err)
	}

	entries, err := t.store.GetTimetable()
	if err != nil {
		return models.TimetableEntry{}, err
	}
	entries = append(entries, entry)
	if err := t.store.SaveTimetable(entries); err != nil {
		return entry, apperrors.NewPersistence("add timetable entry", err)
	}
	return entry, nil
}

// DeleteTimetableEntry removes an entry by id.
func (t *Tracker) DeleteTimetableEntry(id string) error {
	entries, err := t.store.GetTimetable()
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			if err := t.store.SaveTimetable(entries); err != nil {
				return apperrors.NewPersistence("delete timetable entry", err)
			}
			return nil
		}
	}
	return apperrors.NewValidation("timetable", "no entry with id %s", id)
}
