package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"monthcal/internal/calendar"
)

// viewState represents what the main area shows.
type viewState int

const (
	viewMonth viewState = iota
	viewDay
	viewEvent
)

// --- Helpers ---

// The cursor sits at noon of its day. Noon exists on every date, so clock
// shifts at midnight never move the cursor onto a neighbouring day.
const cursorHour = 12

// dayOf returns the cursor position for t's calendar day.
func dayOf(t time.Time) time.Time {
	return addDays(t, 0)
}

// addDays moves t by n calendar days.
func addDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, cursorHour, 0, 0, 0, t.Location())
}

// shiftMonth moves t by n months, clamping the day to the target month's
// length so Jan 31 + 1 month lands on the last day of February.
func shiftMonth(t time.Time, n int) time.Time {
	m := calendar.MonthOf(t)
	for ; n > 0; n-- {
		m = m.Next()
	}
	for ; n < 0; n++ {
		m = m.Prev()
	}
	last := time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return time.Date(m.Year, m.Month, min(t.Day(), last), cursorHour, 0, 0, 0, t.Location())
}

// truncate cuts s to at most w terminal cells, marking the cut with "…".
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
