package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	// map layers
	limbFg    = lipgloss.Color("#3B82F6")
	gridFg    = lipgloss.Color("#374151")
	overlayFg = lipgloss.Color("#9CA3AF")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	modeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0B0F14")).Background(accentFg).Bold(true).Padding(0, 1)
)
