package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/studytrack/studytrack/internal/constants"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/storage"
	"github.com/studytrack/studytrack/internal/streak"
	"github.com/studytrack/studytrack/internal/tracker"
	"github.com/studytrack/studytrack/internal/tui/components/concepts"
	"github.com/studytrack/studytrack/internal/tui/components/subjects"
	"github.com/studytrack/studytrack/internal/tui/components/timetable"
)

type SubjectFormModel struct {
	Name  string
	Color string
}

type ConceptFormModel struct {
	Name string
}

type TimetableFormModel struct {
	Day      string
	Time     string
	Task     string
	Duration string
}

type SettingsFormModel struct {
	Theme                string
	NotificationsEnabled bool
	MorningReminder      string
	EveningReminder      string
	Timezone             string
}

// streakTickMsg drives the periodic re-evaluation of the streak while the
// app is open.
type streakTickMsg time.Time

type Model struct {
	store          storage.Provider
	tracker        *tracker.Tracker
	engine         *streak.Engine
	settings       models.Settings
	state          constants.SessionState
	keys           KeyMap
	styles         styles
	help           help.Model
	subjectsModel  subjects.Model
	conceptsModel  concepts.Model
	timetableModel timetable.Model
	form           *huh.Form
	subjectForm    *SubjectFormModel
	conceptForm    *ConceptFormModel
	timetableForm  *TimetableFormModel
	settingsForm   *SettingsFormModel
	streakRecord   models.StreakRecord
	streakEval     streak.Evaluation
	formError      string
	statusMessage  string
	width          int
	height         int
	quitting       bool

	subjectToDeleteID   string
	conceptToDeleteID   string
	completedToDeleteID string
}

func NewModel(store storage.Provider, t *tracker.Tracker, engine *streak.Engine, settings models.Settings) Model {
	root := t.Root()

	entries, err := t.Timetable()
	if err != nil {
		entries = []models.TimetableEntry{}
	}

	cm := concepts.New(0, 0)
	cm.SetSubject(t.SelectedSubject())

	m := Model{
		store:          store,
		tracker:        t,
		engine:         engine,
		settings:       settings,
		state:          constants.StateSubjects,
		keys:           DefaultKeyMap(),
		styles:         newStyles(settings.Theme),
		help:           help.New(),
		subjectsModel:  subjects.New(root.Subjects, root.SelectedSubjectID, 0, 0),
		conceptsModel:  cm,
		timetableModel: timetable.New(entries, 0, 0),
	}

	m.checkStreak()

	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.streakEval.Warning {
		keys = append(keys, m.keys.Dismiss)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Dismiss},
	}
}

func (m Model) Init() tea.Cmd {
	return streakTickCmd()
}

func streakTickCmd() tea.Cmd {
	return tea.Tick(constants.StreakCheckInterval, func(t time.Time) tea.Msg {
		return streakTickMsg(t)
	})
}

// checkStreak re-evaluates the streak. It runs on the update loop, never
// in a command goroutine: the engine and the store are single-threaded,
// and a check racing a user mutation would corrupt both.
func (m *Model) checkStreak() {
	eval, err := m.engine.CheckNow()
	if err != nil {
		m.reportErr(err)
		return
	}
	m.streakEval = eval
	if record, err := m.engine.Record(); err == nil {
		m.streakRecord = record
	}
}

// refreshData re-reads tracker state into every component after a mutation.
func (m *Model) refreshData() {
	root := m.tracker.Root()
	m.subjectsModel.SetSubjects(root.Subjects, root.SelectedSubjectID)
	m.conceptsModel.SetSubject(m.tracker.SelectedSubject())
	if entries, err := m.tracker.Timetable(); err == nil {
		m.timetableModel.SetEntries(entries)
	}
}
