package timetable

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studytrack/studytrack/internal/models"
)

type AddEntryMsg struct{}

type DeleteEntryMsg struct {
	ID string
}

type Item struct {
	Entry models.TimetableEntry
}

func (i Item) Title() string {
	day := i.Entry.Day
	if day != "" {
		day = strings.ToUpper(day[:1]) + day[1:]
	}
	return fmt.Sprintf("%s %s · %s", day, i.Entry.Time, i.Entry.Task)
}

func (i Item) Description() string {
	if i.Entry.DurationMin <= 0 {
		return "no duration set"
	}
	return fmt.Sprintf("%d min", i.Entry.DurationMin)
}

func (i Item) FilterValue() string { return i.Entry.Task }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(entries []models.TimetableEntry, width, height int) Model {
	m := Model{keys: DefaultKeyMap()}

	l := list.New(itemsFrom(entries), list.NewDefaultDelegate(), width, height)
	l.Title = "Timetable"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{m.keys.Add, m.keys.Delete}
	}
	m.list = l
	return m
}

func itemsFrom(entries []models.TimetableEntry) []list.Item {
	sorted := make([]models.TimetableEntry, len(entries))
	copy(sorted, entries)
	models.SortTimetable(sorted)
	items := make([]list.Item, 0, len(sorted))
	for _, e := range sorted {
		items = append(items, Item{Entry: e})
	}
	return items
}

func (m *Model) SetEntries(entries []models.TimetableEntry) {
	m.list.SetItems(itemsFrom(entries))
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list filter prompt is capturing input.
func (m Model) Filtering() bool {
	return m.list.SettingFilter()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEntryMsg{} }
		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.list.SelectedItem().(Item); ok {
				id := item.Entry.ID
				return m, func() tea.Msg { return DeleteEntryMsg{ID: id} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
