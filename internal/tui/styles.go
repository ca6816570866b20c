package tui

import (
	"github.com/charmbracelet/lipgloss"

	"monthcal/internal/calendar"
)

// Color palette
var (
	colorPrimary = lipgloss.Color("#6366F1")
	colorMuted   = lipgloss.Color("#666666")
	colorFg      = lipgloss.Color("#C0CAF5")
	colorSubtle  = lipgloss.Color("#414868")
	colorToday   = lipgloss.Color("#34D399")
	colorWarning = lipgloss.Color("#FDE047")
	colorError   = lipgloss.Color("#EF4444")
)

// swatches maps event colors to terminal colors.
var swatches = map[calendar.Color]lipgloss.Color{
	calendar.ColorIndigo:   lipgloss.Color("#6366F1"),
	calendar.ColorBlue:     lipgloss.Color("#3B82F6"),
	calendar.ColorGreen:    lipgloss.Color("#22C55E"),
	calendar.ColorPurple:   lipgloss.Color("#A855F7"),
	calendar.ColorPink:     lipgloss.Color("#EC4899"),
	calendar.ConflictColor: colorError,
}

func eventStyle(c calendar.Color) lipgloss.Style {
	bg, ok := swatches[c]
	if !ok {
		bg = colorSubtle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(bg)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg).
			Padding(0, 1)

	weekdayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMuted).
			Align(lipgloss.Center)

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle)

	selectedCellStyle = cellStyle.
				BorderForeground(colorPrimary)

	todayCellStyle = cellStyle.
			BorderForeground(colorToday)

	otherMonthStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Faint(true)

	dayNumberStyle = lipgloss.NewStyle().
			Bold(true)

	todayNumberStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorError)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Italic(true)

	conflictStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)
)
