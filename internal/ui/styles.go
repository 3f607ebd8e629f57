package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan: headings, designations
	colorAccent  = lipgloss.Color("#FFD700") // Gold: warnings
	colorSuccess = lipgloss.Color("#00E676") // Green: completed actions
	colorDanger  = lipgloss.Color("#FF5252") // Red: errors, hazardous bodies
	colorMuted   = lipgloss.Color("#636363") // Gray: de-emphasized detail
)

var (
	styleHeading = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleName    = lipgloss.NewStyle().Foreground(colorPrimary)
	styleWarn    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(colorSuccess)
	styleError   = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	styleHazard  = lipgloss.NewStyle().Foreground(colorDanger)
	styleDim     = lipgloss.NewStyle().Foreground(colorMuted)
)

// Status icons.
const (
	iconDone   = "✓"
	iconFailed = "✗"
	iconWarn   = "⚠"
	iconBody   = "◆"
	iconDot    = "·"
)
