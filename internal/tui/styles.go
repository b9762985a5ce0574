package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/studytrack/internal/absence"
	"github.com/sadopc/studytrack/internal/model"
)

// Interface colours
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorSecondary = lipgloss.Color("#2EC4B6")
	colorMuted     = lipgloss.Color("#666666")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Absence status colours, shared by the lesson list, the chart and the
// closest-to-limit table.
var statusColors = map[absence.Status]lipgloss.Color{
	absence.Safe:    lipgloss.Color("#2ECC71"),
	absence.Warning: lipgloss.Color("#F39C12"),
	absence.Danger:  lipgloss.Color("#E74C3C"),
}

// Note stripe colours; pink is the default note colour.
var noteColors = map[model.NoteColor]lipgloss.Color{
	model.NotePink:   lipgloss.Color("#FF79C6"),
	model.NoteAccent: lipgloss.Color("#FF6B6B"),
}

func statusColor(s absence.Status) lipgloss.Color {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return statusColors[absence.Safe]
}

func statusStyle(s absence.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(statusColor(s))
}

func noteStyle(c model.NoteColor) lipgloss.Style {
	col, ok := noteColors[c]
	if !ok {
		col = noteColors[model.NotePink]
	}
	return lipgloss.NewStyle().Foreground(col)
}

// Styles
var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = panelStyle.
				BorderForeground(colorPrimary)

	// Dashboard numbers and the profile initials badge.
	statValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	avatarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg).
			Background(colorPrimary).
			Padding(0, 1)

	// A finished task's check box.
	doneStyle = statusStyle(absence.Safe).Bold(true)

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	subtitleStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)
	secondaryStyle = lipgloss.NewStyle().Foreground(colorSecondary)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	normalItemStyle   = lipgloss.NewStyle().Foreground(colorFg)
)
