package calendar

import (
	"fmt"
	"strings"

	"monthcal/internal/model"
)

// Color names a swatch of the event palette. Presentation layers map it to
// their own concrete representation.
type Color string

const (
	ColorIndigo Color = "indigo"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"

	// ConflictColor overrides the palette for conflicting events.
	ConflictColor Color = "red"
)

// Palette is cycled by an event's index within its day.
var Palette = [...]Color{ColorIndigo, ColorBlue, ColorGreen, ColorPurple, ColorPink}

const DefaultIcon = "📅"

// iconRules are checked in order; the first keyword found wins.
var iconRules = []struct {
	keyword string
	icon    string
}{
	{"call", "📞"},
	{"meeting", "👥"},
	{"review", "📝"},
	{"workshop", "🧠"},
}

// IconFor picks the icon for a title by case-insensitive keyword match.
func IconFor(title string) string {
	t := strings.ToLower(title)
	for _, r := range iconRules {
		if strings.Contains(t, r.keyword) {
			return r.icon
		}
	}
	return DefaultIcon
}

// ColorFor picks the swatch for the event at index within its day.
func ColorFor(index int, conflict bool) Color {
	if conflict {
		return ConflictColor
	}
	n := len(Palette)
	return Palette[((index%n)+n)%n]
}

// Tooltip is the hover text of an event, e.g. "Standup (09:00, 15m)".
func Tooltip(ev model.Event) string {
	return fmt.Sprintf("%s (%s, %s)", ev.Title, ev.Time, ev.Duration)
}

// Display holds everything a view needs to draw one event.
type Display struct {
	Icon    string `json:"icon"`
	Color   Color  `json:"color"`
	Tooltip string `json:"tooltip"`
}

// Decorate derives the display attributes of a resolved event.
func Decorate(ev model.AnnotatedEvent) Display {
	return Display{
		Icon:    IconFor(ev.Title),
		Color:   ColorFor(ev.Index, ev.Conflict),
		Tooltip: Tooltip(ev.Event),
	}
}
