package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/studytrack/studytrack/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateSubjects:
		content = m.styles.doc.Render(m.subjectsModel.View())
	case constants.StateConcepts:
		content = m.styles.doc.Render(m.conceptsModel.View())
	case constants.StateTimetable:
		content = m.styles.doc.Render(m.timetableModel.View())
	case constants.StateStreak:
		content = m.viewStreak()
	case constants.StateSettings:
		content = m.viewSettings()
	case constants.StateAddSubject, constants.StateAddConcept,
		constants.StateAddTimetableEntry, constants.StateEditSettings:
		content = m.viewForm()
	case constants.StateConfirmDeleteSubject:
		content = m.viewConfirm("Delete this subject and every concept in it?")
	case constants.StateConfirmDeleteConcept:
		content = m.viewConfirm("Delete this concept?")
	case constants.StateConfirmDeleteCompleted:
		content = m.viewConfirm("Permanently delete this completed concept? There is no undo.")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewStreakBanner(),
		content,
		m.viewStatusLine(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	titles := []string{"Subjects", "Concepts", "Timetable", "Streak", "Settings"}
	var tabs []string
	for i, title := range titles {
		if m.state == tabOrder[i] {
			tabs = append(tabs, m.styles.activeTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.inactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewStreakBanner surfaces an undismissed warning on every tab.
func (m Model) viewStreakBanner() string {
	if !m.streakEval.Warning {
		return ""
	}
	remaining := m.streakHoursRemaining()
	return m.styles.warningBanner.Render(
		fmt.Sprintf("⚠ Streak at risk: study within %s or your %d-day streak breaks ('x' dismisses)",
			remaining, m.streakRecord.Streak))
}

func (m Model) streakHoursRemaining() string {
	if m.streakRecord.LastActivity == nil {
		return "24h"
	}
	left := constants.StreakBrokenHours*float64(time.Hour) - float64(time.Since(*m.streakRecord.LastActivity))
	if left < 0 {
		left = 0
	}
	return time.Duration(left).Truncate(time.Minute).String()
}

func (m Model) viewStreak() string {
	var state string
	switch {
	case m.streakRecord.LastActivity == nil:
		state = "No activity recorded yet. Add or revise a concept to start a streak."
	case m.streakEval.Broken:
		state = m.styles.danger.Render("Streak broken. Study something today to start over.")
	case m.streakEval.Warning:
		state = m.styles.warningBanner.Render("Warning: study soon to keep the streak alive.")
	default:
		state = "Streak active. Keep it up!"
	}

	lines := []string{
		"",
		m.styles.streakCount.Render(fmt.Sprintf("🔥 %d day streak", m.streakRecord.Streak)),
		"",
		state,
	}
	if m.streakRecord.LastActivity != nil {
		lines = append(lines, "",
			fmt.Sprintf("Last activity: %s", m.streakRecord.LastActivity.Format("2006-01-02 15:04")))
	}

	return m.styles.doc.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewSettings() string {
	timezone := m.settings.Timezone
	if timezone == "" {
		timezone = "Local"
	}
	return m.styles.doc.Render(lipgloss.JoinVertical(lipgloss.Left,
		"Settings",
		"",
		fmt.Sprintf("Theme:            %s", m.settings.Theme),
		fmt.Sprintf("Notifications:    %v", m.settings.NotificationsEnabled),
		fmt.Sprintf("Morning reminder: %s", m.settings.MorningReminder),
		fmt.Sprintf("Evening reminder: %s", m.settings.EveningReminder),
		fmt.Sprintf("Timezone:         %s", timezone),
		"",
		"Press 'e' to edit.",
	))
}

func (m Model) viewForm() string {
	if m.formError != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.styles.danger.Render("Error: "+m.formError),
			m.form.View(),
		)
	}
	return m.form.View()
}

func (m Model) viewConfirm(question string) string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.danger.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewStatusLine() string {
	if m.statusMessage == "" {
		return ""
	}
	return m.styles.danger.Render(m.statusMessage)
}
