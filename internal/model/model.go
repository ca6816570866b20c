package model

import "time"

// Event is a single calendar entry as supplied by the event source.
// Events are loaded once at startup and never mutated afterwards.
type Event struct {
	Title string `json:"title" yaml:"title"`

	// Date is the calendar day in YYYY-MM-DD form, without a time component.
	Date string `json:"date" yaml:"date"`

	// Time is the wall-clock start, either 24h ("14:30") or 12h ("2:30 PM").
	Time string `json:"time" yaml:"time"`

	// Duration encodes hours and/or minutes, e.g. "1h30m", "45m", "2h".
	Duration string `json:"duration" yaml:"duration"`
}

// AnnotatedEvent is an Event resolved for one specific day.
//
// Conflict and Index are derived on every resolution and never stored.
type AnnotatedEvent struct {
	Event

	// Index is the position of the event within its day's filtered list.
	Index int `json:"index"`

	// Conflict reports whether the event overlaps another event on the same day.
	Conflict bool `json:"conflict"`
}

// CalendarCell is one day box of a month grid.
type CalendarCell struct {
	Date           time.Time        `json:"date"`
	IsCurrentMonth bool             `json:"is_current_month"`
	IsToday        bool             `json:"is_today"`
	Events         []AnnotatedEvent `json:"events"`
}

// Clock supplies "now" so that today-highlighting can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type FixedClock struct {
	FixedNow time.Time
}

func (c FixedClock) Now() time.Time {
	return c.FixedNow
}
