package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	// change highlights of the itinerary
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	movedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Strikethrough(true)
	pendingStyle = lipgloss.NewStyle().Faint(true).Italic(true)
	authorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)
