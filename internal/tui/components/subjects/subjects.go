package subjects

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/stats"
)

type AddSubjectMsg struct{}

type SelectSubjectMsg struct {
	ID string
}

type DeleteSubjectMsg struct {
	ID string
}

type Item struct {
	Subject    models.Subject
	IsSelected bool
}

func (i Item) Title() string {
	if i.IsSelected {
		return "● " + i.Subject.Name
	}
	return "○ " + i.Subject.Name
}

func (i Item) Description() string {
	progress := stats.ComputeProgress(i.Subject.Concepts)
	desc := progress.Summary()
	if len(i.Subject.CompletedConcepts) > 0 {
		desc += " · archive holds more"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Subject.Name }

type KeyMap struct {
	Add    key.Binding
	Select key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
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

func New(subjectList []models.Subject, selectedID string, width, height int) Model {
	m := Model{keys: DefaultKeyMap()}

	l := list.New(itemsFrom(subjectList, selectedID), list.NewDefaultDelegate(), width, height)
	l.Title = "Subjects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{m.keys.Add, m.keys.Select, m.keys.Delete}
	}
	m.list = l
	return m
}

func itemsFrom(subjectList []models.Subject, selectedID string) []list.Item {
	items := make([]list.Item, 0, len(subjectList))
	for _, s := range subjectList {
		items = append(items, Item{Subject: s, IsSelected: s.ID == selectedID})
	}
	return items
}

// SetSubjects replaces the list contents after a mutation.
func (m *Model) SetSubjects(subjectList []models.Subject, selectedID string) {
	m.list.SetItems(itemsFrom(subjectList, selectedID))
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list filter prompt is capturing input.
func (m Model) Filtering() bool {
	return m.list.SettingFilter()
}

// Selected returns the subject under the cursor, or nil.
func (m Model) Selected() *models.Subject {
	item, ok := m.list.SelectedItem().(Item)
	if !ok {
		return nil
	}
	return &item.Subject
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddSubjectMsg{} }
		case key.Matches(msg, m.keys.Select):
			if subject := m.Selected(); subject != nil {
				id := subject.ID
				return m, func() tea.Msg { return SelectSubjectMsg{ID: id} }
			}
		case key.Matches(msg, m.keys.Delete):
			if subject := m.Selected(); subject != nil {
				id := subject.ID
				return m, func() tea.Msg { return DeleteSubjectMsg{ID: id} }
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
