package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/studytrack/studytrack/internal/constants"
	apperrors "github.com/studytrack/studytrack/internal/errors"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/tui/components/concepts"
	"github.com/studytrack/studytrack/internal/tui/components/subjects"
	"github.com/studytrack/studytrack/internal/tui/components/timetable"
)

// tabOrder is the cycle order of the top-level tabs.
var tabOrder = []constants.SessionState{
	constants.StateSubjects,
	constants.StateConcepts,
	constants.StateTimetable,
	constants.StateStreak,
	constants.StateSettings,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - 6
		if contentHeight < 1 {
			contentHeight = 1
		}
		m.subjectsModel.SetSize(msg.Width-4, contentHeight)
		m.conceptsModel.SetSize(msg.Width-4, contentHeight)
		m.timetableModel.SetSize(msg.Width-4, contentHeight)
		return m, nil

	case streakTickMsg:
		m.checkStreak()
		return m, streakTickCmd()

	case subjects.AddSubjectMsg:
		m.subjectForm = &SubjectFormModel{}
		m.form = newSubjectForm(m.subjectForm)
		m.state = constants.StateAddSubject
		return m, m.form.Init()

	case subjects.SelectSubjectMsg:
		m.reportErr(m.tracker.SelectSubject(msg.ID))
		m.refreshData()
		m.state = constants.StateConcepts
		return m, nil

	case subjects.DeleteSubjectMsg:
		m.subjectToDeleteID = msg.ID
		m.state = constants.StateConfirmDeleteSubject
		return m, nil

	case concepts.AddConceptMsg:
		if m.tracker.SelectedSubject() == nil {
			m.statusMessage = "Select a subject first."
			return m, nil
		}
		m.conceptForm = &ConceptFormModel{}
		m.form = newConceptForm(m.conceptForm)
		m.state = constants.StateAddConcept
		return m, m.form.Init()

	case concepts.CycleStatusMsg:
		if subject := m.tracker.SelectedSubject(); subject != nil {
			if concept := subject.ConceptByID(msg.ID); concept != nil {
				m.reportErr(m.tracker.SetStatus(subject.ID, msg.ID, nextStatus(concept.Status)))
				m.refreshData()
			}
		}
		return m, nil

	case concepts.MarkRevisedMsg:
		if subject := m.tracker.SelectedSubject(); subject != nil {
			today := time.Now().Format(constants.DateFormat)
			m.reportErr(m.tracker.SetLastRevised(subject.ID, msg.ID, today))
			m.refreshData()
		}
		return m, nil

	case concepts.CompleteConceptMsg:
		if subject := m.tracker.SelectedSubject(); subject != nil {
			m.reportErr(m.tracker.CompleteConcept(subject.ID, msg.ID))
			m.refreshData()
		}
		return m, nil

	case concepts.RestoreConceptMsg:
		if subject := m.tracker.SelectedSubject(); subject != nil {
			m.reportErr(m.tracker.RestoreConcept(subject.ID, msg.ID))
			m.refreshData()
		}
		return m, nil

	case concepts.DeleteConceptMsg:
		if msg.Completed {
			m.completedToDeleteID = msg.ID
			m.state = constants.StateConfirmDeleteCompleted
		} else {
			m.conceptToDeleteID = msg.ID
			m.state = constants.StateConfirmDeleteConcept
		}
		return m, nil

	case timetable.AddEntryMsg:
		m.timetableForm = &TimetableFormModel{}
		m.form = newTimetableForm(m.timetableForm)
		m.state = constants.StateAddTimetableEntry
		return m, m.form.Init()

	case timetable.DeleteEntryMsg:
		m.reportErr(m.tracker.DeleteTimetableEntry(msg.ID))
		m.refreshData()
		return m, nil
	}

	switch m.state {
	case constants.StateAddSubject, constants.StateAddConcept,
		constants.StateAddTimetableEntry, constants.StateEditSettings:
		return m.updateForm(msg)
	case constants.StateConfirmDeleteSubject, constants.StateConfirmDeleteConcept,
		constants.StateConfirmDeleteCompleted:
		return m.updateConfirm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, model, cmd := m.handleGlobalKey(msg); handled {
			return model, cmd
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateSubjects:
		m.subjectsModel, cmd = m.subjectsModel.Update(msg)
	case constants.StateConcepts:
		m.conceptsModel, cmd = m.conceptsModel.Update(msg)
	case constants.StateTimetable:
		m.timetableModel, cmd = m.timetableModel.Update(msg)
	case constants.StateSettings:
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "e" {
			m.settingsForm = &SettingsFormModel{
				Theme:                string(m.settings.Theme),
				NotificationsEnabled: m.settings.NotificationsEnabled,
				MorningReminder:      m.settings.MorningReminder,
				EveningReminder:      m.settings.EveningReminder,
				Timezone:             m.settings.Timezone,
			}
			m.form = newSettingsForm(m.settingsForm)
			m.state = constants.StateEditSettings
			return m, m.form.Init()
		}
	}
	return m, cmd
}

func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	// Text entered into a list filter must not trigger global keys.
	filtering := false
	switch m.state {
	case constants.StateSubjects:
		filtering = m.subjectsModel.Filtering()
	case constants.StateConcepts:
		filtering = m.conceptsModel.Filtering()
	case constants.StateTimetable:
		filtering = m.timetableModel.Filtering()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if filtering && msg.String() != "ctrl+c" {
			return false, m, nil
		}
		m.quitting = true
		return true, m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.state = nextTab(m.state, 1)
		m.statusMessage = ""
		return true, m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = nextTab(m.state, -1)
		m.statusMessage = ""
		return true, m, nil
	case key.Matches(msg, m.keys.Help):
		if filtering {
			return false, m, nil
		}
		m.help.ShowAll = !m.help.ShowAll
		return true, m, nil
	case key.Matches(msg, m.keys.Dismiss):
		if m.streakEval.Warning && !filtering {
			m.reportErr(m.engine.DismissWarning())
			m.streakEval.Warning = false
			return true, m, nil
		}
	}
	return false, m, nil
}

func nextTab(state constants.SessionState, delta int) constants.SessionState {
	for i, tab := range tabOrder {
		if tab == state {
			return tabOrder[(i+delta+len(tabOrder))%len(tabOrder)]
		}
	}
	return constants.StateSubjects
}

func nextStatus(s models.Status) models.Status {
	all := models.AllStatuses()
	for i, status := range all {
		if status == s {
			return all[(i+1)%len(all)]
		}
	}
	return models.StatusNotStarted
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	returnState := m.formReturnState()

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = returnState
		m.formError = ""
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.applyForm(); err != nil {
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.formError = ""
		m.refreshData()
		m.state = returnState
	case huh.StateAborted:
		m.formError = ""
		m.state = returnState
	}
	return m, cmd
}

func (m Model) formReturnState() constants.SessionState {
	switch m.state {
	case constants.StateAddSubject:
		return constants.StateSubjects
	case constants.StateAddConcept:
		return constants.StateConcepts
	case constants.StateAddTimetableEntry:
		return constants.StateTimetable
	case constants.StateEditSettings:
		return constants.StateSettings
	}
	return constants.StateSubjects
}

// applyForm commits the active form. Validation failures keep the form
// open; a persistence failure closes it since the change is already
// applied in memory.
func (m *Model) applyForm() error {
	switch m.state {
	case constants.StateAddSubject:
		_, err := m.tracker.AddSubject(m.subjectForm.Name, m.subjectForm.Color)
		if apperrors.IsValidation(err) {
			return err
		}
		m.reportErr(err)

	case constants.StateAddConcept:
		subject := m.tracker.SelectedSubject()
		if subject == nil {
			return apperrors.NewValidation("subject", "no subject selected")
		}
		_, err := m.tracker.AddConcept(subject.ID, m.conceptForm.Name)
		if apperrors.IsValidation(err) {
			return err
		}
		m.reportErr(err)

	case constants.StateAddTimetableEntry:
		duration := 0
		if s := strings.TrimSpace(m.timetableForm.Duration); s != "" {
			d, err := strconv.Atoi(s)
			if err != nil {
				return apperrors.NewValidation("timetable", "duration must be a number")
			}
			duration = d
		}
		_, err := m.tracker.AddTimetableEntry(m.timetableForm.Day, m.timetableForm.Time, m.timetableForm.Task, duration)
		if apperrors.IsValidation(err) {
			return err
		}
		m.reportErr(err)

	case constants.StateEditSettings:
		updated := m.settings
		updated.Theme = constants.Theme(m.settingsForm.Theme)
		updated.NotificationsEnabled = m.settingsForm.NotificationsEnabled
		updated.MorningReminder = m.settingsForm.MorningReminder
		updated.EveningReminder = m.settingsForm.EveningReminder
		updated.Timezone = strings.TrimSpace(m.settingsForm.Timezone)
		if err := updated.Validate(); err != nil {
			return apperrors.NewValidation("settings", "%v", err)
		}
		if err := m.store.SaveSettings(updated); err != nil {
			m.reportErr(apperrors.NewPersistence("save settings", err))
		}
		m.settings = updated
		m.styles = newStyles(updated.Theme)
	}
	return nil
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		switch m.state {
		case constants.StateConfirmDeleteSubject:
			m.reportErr(m.tracker.DeleteSubject(m.subjectToDeleteID))
			m.subjectToDeleteID = ""
			m.state = constants.StateSubjects
		case constants.StateConfirmDeleteConcept:
			if subject := m.tracker.SelectedSubject(); subject != nil {
				m.reportErr(m.tracker.DeleteConcept(subject.ID, m.conceptToDeleteID))
			}
			m.conceptToDeleteID = ""
			m.state = constants.StateConcepts
		case constants.StateConfirmDeleteCompleted:
			if subject := m.tracker.SelectedSubject(); subject != nil {
				m.reportErr(m.tracker.DeleteCompleted(subject.ID, m.completedToDeleteID))
			}
			m.completedToDeleteID = ""
			m.state = constants.StateConcepts
		}
		m.refreshData()
	case "n", "N", "esc":
		switch m.state {
		case constants.StateConfirmDeleteSubject:
			m.subjectToDeleteID = ""
			m.state = constants.StateSubjects
		default:
			m.conceptToDeleteID = ""
			m.completedToDeleteID = ""
			m.state = constants.StateConcepts
		}
	}
	return m, nil
}

// reportErr records a mutation error for the status line. Persistence
// errors are surfaced but do not undo the change; everything else shows
// its message as-is.
func (m *Model) reportErr(err error) {
	if err == nil {
		return
	}
	if apperrors.IsPersistence(err) {
		m.statusMessage = "Warning: change applied but not saved (" + err.Error() + ")"
		return
	}
	m.statusMessage = err.Error()
}

func newSubjectForm(f *SubjectFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject name").
				Value(&f.Name),
			huh.NewInput().
				Title("Color (optional)").
				Placeholder("e.g. #7c3aed").
				Value(&f.Color),
		),
	)
}

func newConceptForm(f *ConceptFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Concept name").
				Value(&f.Name),
		),
	)
}

func newTimetableForm(f *TimetableFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Day").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Tuesday", "tuesday"),
					huh.NewOption("Wednesday", "wednesday"),
					huh.NewOption("Thursday", "thursday"),
					huh.NewOption("Friday", "friday"),
					huh.NewOption("Saturday", "saturday"),
					huh.NewOption("Sunday", "sunday"),
				).
				Value(&f.Day),
			huh.NewInput().
				Title("Time (HH:MM)").
				Placeholder("18:30").
				Value(&f.Time),
			huh.NewInput().
				Title("Task").
				Value(&f.Task),
			huh.NewInput().
				Title("Duration (minutes, optional)").
				Value(&f.Duration),
		),
	)
}

func newSettingsForm(f *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Dark", string(constants.ThemeDark)),
					huh.NewOption("Light", string(constants.ThemeLight)),
				).
				Value(&f.Theme),
			huh.NewConfirm().
				Title("Notifications enabled").
				Value(&f.NotificationsEnabled),
			huh.NewInput().
				Title("Morning reminder (HH:MM)").
				Value(&f.MorningReminder),
			huh.NewInput().
				Title("Evening reminder (HH:MM)").
				Value(&f.EveningReminder),
			huh.NewInput().
				Title("Timezone (optional, IANA name)").
				Placeholder("Europe/Berlin").
				Value(&f.Timezone),
		),
	)
}
