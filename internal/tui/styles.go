package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/studytrack/studytrack/internal/constants"
)

// palette holds the colors that differ between the light and dark themes.
type palette struct {
	accent    lipgloss.Color
	muted     lipgloss.Color
	tabBg     lipgloss.Color
	danger    lipgloss.Color
	warningFg lipgloss.Color
	warningBg lipgloss.Color
}

func paletteFor(theme constants.Theme) palette {
	if theme == constants.ThemeLight {
		return palette{
			accent:    lipgloss.Color("161"),
			muted:     lipgloss.Color("245"),
			tabBg:     lipgloss.Color("254"),
			danger:    lipgloss.Color("124"),
			warningFg: lipgloss.Color("232"),
			warningBg: lipgloss.Color("220"),
		}
	}
	return palette{
		accent:    lipgloss.Color("205"),
		muted:     lipgloss.Color("240"),
		tabBg:     lipgloss.Color("236"),
		danger:    lipgloss.Color("196"),
		warningFg: lipgloss.Color("0"),
		warningBg: lipgloss.Color("214"),
	}
}

type styles struct {
	activeTab     lipgloss.Style
	inactiveTab   lipgloss.Style
	danger        lipgloss.Style
	warningBanner lipgloss.Style
	streakCount   lipgloss.Style
	doc           lipgloss.Style
}

func newStyles(theme constants.Theme) styles {
	p := paletteFor(theme)
	return styles{
		activeTab: lipgloss.NewStyle().
			Foreground(p.accent).
			Background(p.tabBg).
			Padding(0, 1).
			Bold(true),
		inactiveTab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),
		danger: lipgloss.NewStyle().
			Foreground(p.danger).
			Bold(true),
		warningBanner: lipgloss.NewStyle().
			Foreground(p.warningFg).
			Background(p.warningBg).
			Bold(true).
			Padding(0, 1),
		streakCount: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		doc: lipgloss.NewStyle().Padding(1, 2),
	}
}
