package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/scansec/scansec/models"
)

var (
	red    = lipgloss.Color("#EF4444")
	yellow = lipgloss.Color("#F59E0B")
	blue   = lipgloss.Color("#38BDF8")
	slate  = lipgloss.Color("#94A3B8")
	teal   = lipgloss.Color("#14B8A6")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(teal)

	criticalStyle = lipgloss.NewStyle().Bold(true).Foreground(red)
	highStyle     = lipgloss.NewStyle().Bold(true).Foreground(yellow)
	mediumStyle   = lipgloss.NewStyle().Foreground(blue)
	lowStyle      = lipgloss.NewStyle().Foreground(slate)
)

func severityStyle(s models.Severity) lipgloss.Style {
	switch s {
	case models.SeverityCritical:
		return criticalStyle
	case models.SeverityHigh:
		return highStyle
	case models.SeverityMedium:
		return mediumStyle
	default:
		return lowStyle
	}
}
