package workspace

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	section    lipgloss.Style
	sectionGap lipgloss.Style
	draft      lipgloss.Style
	persisted  lipgloss.Style
	generating lipgloss.Style
	detail     lipgloss.Style
	feedback   lipgloss.Style
	dislike    lipgloss.Style
	empty      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		section:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		sectionGap: lipgloss.NewStyle().MarginTop(1),
		draft:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		persisted:  lipgloss.NewStyle().Foreground(lipgloss.Color("77")),
		generating: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		feedback:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		dislike:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		empty:      lipgloss.NewStyle().Faint(true),
	}
}
