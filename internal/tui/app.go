package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"monthcal/internal/calendar"
	"monthcal/internal/model"
)

const conflictMessage = "This event overlaps with another one."

// App is the root Bubble Tea model. It holds the loaded events and a
// cursor day; everything shown is recomputed from those on render.
type App struct {
	events []model.Event
	clock  model.Clock
	width  int
	height int

	cursor      time.Time
	activeView  viewState
	eventCursor int
	showHelp    bool

	help help.Model
}

func NewApp(events []model.Event, clock model.Clock) App {
	if clock == nil {
		clock = model.SystemClock{}
	}
	h := help.New()
	h.ShowAll = false

	return App{
		events:     events,
		clock:      clock,
		cursor:     dayOf(clock.Now()),
		activeView: viewMonth,
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

// Month returns the month currently on screen.
func (a App) Month() calendar.Month {
	return calendar.MonthOf(a.cursor)
}

// Cursor returns the selected day.
func (a App) Cursor() time.Time {
	return a.cursor
}

func (a App) dayEvents() []model.AnnotatedEvent {
	return calendar.ResolveDay(a.cursor, a.events)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		}

		switch a.activeView {
		case viewDay:
			return a.updateDay(msg)
		case viewEvent:
			if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Enter) {
				a.activeView = viewDay
			}
			return a, nil
		}
		return a.updateMonth(msg)
	}

	return a, nil
}

func (a App) updateMonth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		a.cursor = addDays(a.cursor, -1)
	case key.Matches(msg, keys.Right):
		a.cursor = addDays(a.cursor, 1)
	case key.Matches(msg, keys.Up):
		a.cursor = addDays(a.cursor, -7)
	case key.Matches(msg, keys.Down):
		a.cursor = addDays(a.cursor, 7)
	case key.Matches(msg, keys.PrevMonth):
		a.cursor = shiftMonth(a.cursor, -1)
	case key.Matches(msg, keys.NextMonth):
		a.cursor = shiftMonth(a.cursor, 1)
	case key.Matches(msg, keys.Today):
		a.cursor = dayOf(a.clock.Now())
	case key.Matches(msg, keys.Enter):
		a.activeView = viewDay
		a.eventCursor = 0
	}
	return a, nil
}

func (a App) updateDay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(a.dayEvents())
	switch {
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Left):
		if a.eventCursor > 0 {
			a.eventCursor--
		}
	case key.Matches(msg, keys.Down), key.Matches(msg, keys.Right):
		if a.eventCursor < n-1 {
			a.eventCursor++
		}
	case key.Matches(msg, keys.Enter):
		if n > 0 {
			a.activeView = viewEvent
		}
	case key.Matches(msg, keys.Back):
		a.activeView = viewMonth
	}
	return a, nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := footerStyle.Render(a.help.View(keys))

	var content string
	switch a.activeView {
	case viewDay:
		content = a.renderDay()
	case viewEvent:
		content = a.renderEvent()
	default:
		content = a.renderMonth(a.height - lipgloss.Height(header) - lipgloss.Height(footer))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	return titleStyle.Render("📅 " + a.Month().String())
}

func (a App) renderMonth(available int) string {
	today := a.clock.Now()
	cells := calendar.BuildMonth(a.cursor, today, a.events)
	weeks := len(cells) / 7

	// Two border columns per cell.
	inner := max(a.width/7-2, 6)
	// One row for weekday labels, two border rows per week.
	lines := max((available-1)/max(weeks, 1)-2, 2)

	labels := make([]string, 0, 7)
	for _, l := range calendar.WeekdayLabels {
		labels = append(labels, weekdayStyle.Width(inner+2).Render(l))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, labels...)}

	for w := 0; w < weeks; w++ {
		boxes := make([]string, 0, 7)
		for _, c := range cells[w*7 : w*7+7] {
			boxes = append(boxes, a.renderCell(c, inner, lines))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a App) renderCell(c model.CalendarCell, width, lines int) string {
	num := dayNumberStyle.Render(fmt.Sprintf("%2d", c.Date.Day()))
	if c.IsToday {
		num = todayNumberStyle.Render(fmt.Sprintf("%2d", c.Date.Day()))
	}

	body := []string{num}
	for i, ev := range c.Events {
		if len(body) == lines-1 && len(c.Events)-i > 1 {
			body = append(body, mutedStyle.Render(fmt.Sprintf("+%d more", len(c.Events)-i)))
			break
		}
		if len(body) >= lines {
			break
		}
		d := calendar.Decorate(ev)
		body = append(body, eventStyle(d.Color).Render(truncate(d.Icon+" "+ev.Title, width)))
	}

	content := strings.Join(body, "\n")
	if !c.IsCurrentMonth {
		content = otherMonthStyle.Render(content)
	}

	style := cellStyle
	switch {
	case calendar.SameDay(c.Date, a.cursor):
		style = selectedCellStyle
	case c.IsToday:
		style = todayCellStyle
	}
	return style.Width(width).Height(lines).Render(content)
}

func (a App) renderDay() string {
	events := a.dayEvents()
	rows := []string{titleStyle.Render(a.cursor.Format("Monday, January 2, 2006")), ""}
	if len(events) == 0 {
		rows = append(rows, mutedStyle.Render("  No events"))
	}
	for i, ev := range events {
		d := calendar.Decorate(ev)
		line := fmt.Sprintf("%s %s  %s • %s", d.Icon, ev.Title, ev.Time, ev.Duration)
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == a.eventCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := cursor + eventStyle(d.Color).Render(" ") + " " + style.Render(line)
		if ev.Conflict {
			row += " " + warningStyle.Render("⚠ Conflict")
		}
		rows = append(rows, row)
	}
	return panelStyle.Width(max(a.width-4, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) renderEvent() string {
	events := a.dayEvents()
	if a.eventCursor >= len(events) {
		return a.renderDay()
	}
	ev := events[a.eventCursor]
	d := calendar.Decorate(ev)

	rows := []string{
		titleStyle.Render(d.Icon + " " + ev.Title),
		"",
		"📅 Date:     " + ev.Date,
		"⏰ Time:     " + ev.Time,
		"⏳ Duration: " + ev.Duration,
	}
	if ev.Conflict {
		rows = append(rows, "", conflictStyle.Render("⚠ "+conflictMessage))
	}
	return panelStyle.Width(max(a.width-4, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
