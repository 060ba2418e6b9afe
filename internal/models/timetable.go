package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/studytrack/studytrack/internal/constants"
)

// weekdayIndex maps day names to their timetable position, Monday first.
var weekdayIndex = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// TimetableEntry is a scheduled day/time/task record, independent of
// subjects and concepts.
type TimetableEntry struct {
	ID          string `json:"id"`
	Day         string `json:"day"`
	Time        string `json:"time"` // HH:MM format
	Task        string `json:"task"`
	DurationMin int    `json:"duration_min"`
}

func (e *TimetableEntry) Validate() error {
	if strings.TrimSpace(e.Task) == "" {
		return fmt.Errorf("timetable task cannot be empty")
	}
	if _, err := time.Parse(constants.TimeFormat, e.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}
	if e.DurationMin < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	return nil
}

// WeekdayIndex returns the entry's weekday position (Monday=0 ... Sunday=6).
// Unrecognized day names sort after every real weekday.
func (e *TimetableEntry) WeekdayIndex() int {
	if idx, ok := weekdayIndex[strings.ToLower(strings.TrimSpace(e.Day))]; ok {
		return idx
	}
	return len(weekdayIndex)
}

// SortTimetable orders entries by weekday index, then by time ascending.
// The sort is stable so entries at the same day and time keep their
// insertion order.
func SortTimetable(entries []TimetableEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].WeekdayIndex(), entries[j].WeekdayIndex()
		if di != dj {
			return di < dj
		}
		return entries[i].Time < entries[j].Time
	})
}
