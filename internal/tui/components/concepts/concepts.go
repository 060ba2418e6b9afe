package concepts

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studytrack/studytrack/internal/constants"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/stats"
)

type AddConceptMsg struct{}

type CycleStatusMsg struct {
	ID string
}

type MarkRevisedMsg struct {
	ID string
}

type CompleteConceptMsg struct {
	ID string
}

type RestoreConceptMsg struct {
	ID string
}

type DeleteConceptMsg struct {
	ID        string
	Completed bool
}

var statusIcons = map[models.Status]string{
	models.StatusNotStarted:   "·",
	models.StatusLearning:     "◐",
	models.StatusNeedRevision: "!",
	models.StatusConfident:    "✓",
}

type Item struct {
	Concept     models.Concept
	CompletedAt string
}

func (i Item) completed() bool { return i.CompletedAt != "" }

func (i Item) Title() string {
	if i.completed() {
		return "✔ " + i.Concept.Name
	}
	return statusIcons[i.Concept.Status] + " " + i.Concept.Name
}

func (i Item) Description() string {
	if i.completed() {
		return "completed " + i.CompletedAt + " · 'r' restores"
	}
	desc := string(i.Concept.Status)
	if i.Concept.LastRevised != "" {
		desc += " · last revised " + i.Concept.LastRevised
	}
	if n := len(i.Concept.Images); n == 1 {
		desc += " · 1 image"
	} else if n > 1 {
		desc += fmt.Sprintf(" · %d images", n)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Concept.Name }

type KeyMap struct {
	Add         key.Binding
	CycleStatus key.Binding
	Revised     key.Binding
	Complete    key.Binding
	Restore     key.Binding
	Delete      key.Binding
	Filter      key.Binding
	Sort        key.Binding
	Archive     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle status"),
		),
		Revised: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "revised today"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "cycle sort"),
		),
		Archive: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "toggle archive"),
		),
	}
}

var filterCycle = []string{
	constants.FilterAll,
	string(models.StatusNotStarted),
	string(models.StatusLearning),
	string(models.StatusNeedRevision),
	string(models.StatusConfident),
}

var sortCycle = []constants.SortKey{
	constants.SortNameAsc,
	constants.SortNameDesc,
	constants.SortStatus,
	constants.SortDateDesc,
	constants.SortDateAsc,
}

type Model struct {
	list        list.Model
	keys        KeyMap
	concepts    []models.Concept
	completed   []models.CompletedConcept
	subjectName string
	filterIdx   int
	sortIdx     int
	showArchive bool
}

func New(width, height int) Model {
	m := Model{keys: DefaultKeyMap()}

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	l.Title = "Concepts"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{m.keys.Add, m.keys.CycleStatus, m.keys.Complete, m.keys.Filter, m.keys.Sort}
	}
	m.list = l
	return m
}

// SetSubject points the list at a subject's concepts. A nil subject empties
// the list.
func (m *Model) SetSubject(subject *models.Subject) {
	if subject == nil {
		m.concepts = nil
		m.completed = nil
		m.subjectName = ""
	} else {
		m.concepts = subject.Concepts
		m.completed = subject.CompletedConcepts
		m.subjectName = subject.Name
	}
	m.refresh()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list filter prompt is capturing input.
func (m Model) Filtering() bool {
	return m.list.SettingFilter()
}

// FilterLabel reports the active status filter for the tab header.
func (m Model) FilterLabel() string { return filterCycle[m.filterIdx] }

// SortLabel reports the active sort order for the tab header.
func (m Model) SortLabel() string { return string(sortCycle[m.sortIdx]) }

func (m Model) ShowingArchive() bool { return m.showArchive }

func (m *Model) refresh() {
	if m.showArchive {
		items := make([]list.Item, 0, len(m.completed))
		for _, c := range m.completed {
			items = append(items, Item{
				Concept:     c.Concept,
				CompletedAt: c.CompletedAt.Format(constants.DateFormat),
			})
		}
		m.list.SetItems(items)
		m.list.Title = m.subjectName + " · completed"
		return
	}

	visible := stats.SortConcepts(stats.FilterByStatus(m.concepts, filterCycle[m.filterIdx]), sortCycle[m.sortIdx])
	items := make([]list.Item, 0, len(visible))
	for _, c := range visible {
		items = append(items, Item{Concept: c})
	}
	m.list.SetItems(items)
	if m.subjectName == "" {
		m.list.Title = "Concepts"
	} else {
		m.list.Title = m.subjectName
	}
}

func (m Model) selected() (Item, bool) {
	item, ok := m.list.SelectedItem().(Item)
	return item, ok
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch {
		case key.Matches(msg, m.keys.Add):
			if !m.showArchive {
				return m, func() tea.Msg { return AddConceptMsg{} }
			}
		case key.Matches(msg, m.keys.CycleStatus):
			if item, ok := m.selected(); ok && !item.completed() {
				id := item.Concept.ID
				return m, func() tea.Msg { return CycleStatusMsg{ID: id} }
			}
		case key.Matches(msg, m.keys.Revised):
			if item, ok := m.selected(); ok && !item.completed() {
				id := item.Concept.ID
				return m, func() tea.Msg { return MarkRevisedMsg{ID: id} }
			}
		case key.Matches(msg, m.keys.Complete):
			if item, ok := m.selected(); ok && !item.completed() {
				id := item.Concept.ID
				return m, func() tea.Msg { return CompleteConceptMsg{ID: id} }
			}
		case key.Matches(msg, m.keys.Restore):
			if item, ok := m.selected(); ok && item.completed() {
				id := item.Concept.ID
				return m, func() tea.Msg { return RestoreConceptMsg{ID: id} }
			}
		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.selected(); ok {
				id := item.Concept.ID
				completed := item.completed()
				return m, func() tea.Msg { return DeleteConceptMsg{ID: id, Completed: completed} }
			}
		case key.Matches(msg, m.keys.Filter):
			if !m.showArchive {
				m.filterIdx = (m.filterIdx + 1) % len(filterCycle)
				m.refresh()
				return m, nil
			}
		case key.Matches(msg, m.keys.Sort):
			if !m.showArchive {
				m.sortIdx = (m.sortIdx + 1) % len(sortCycle)
				m.refresh()
				return m, nil
			}
		case key.Matches(msg, m.keys.Archive):
			m.showArchive = !m.showArchive
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
