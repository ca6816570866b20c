package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"monthcal/internal/model"
)

// ErrUnparseableDateTime is returned when an event's date and time do not
// form a recognizable local date-time.
var ErrUnparseableDateTime = errors.New("unparseable event date/time")

const dateLayout = "2006-01-02"

// timeLayouts are tried in order against the upper-cased time text.
var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

// Interval is the half-open span [Start, End) an event occupies.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether iv and other share any instant. Touching
// intervals do not overlap, so an empty interval never overlaps itself or
// anything that starts or ends at its instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// Duration returns End - Start.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// BuildInterval combines the event's date, time and duration into a
// concrete interval in time.Local. No zone conversion is applied.
func BuildInterval(ev model.Event) (Interval, error) {
	start, err := parseStart(ev.Date, ev.Time)
	if err != nil {
		return Interval{}, err
	}

	end := start.Add(ParseDuration(ev.Duration).Duration())
	return Interval{Start: start, End: end}, nil
}

func parseStart(date, clock string) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.ToUpper(strings.TrimSpace(clock))

	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrUnparseableDateTime, date)
	}
	if clock == "" {
		return day, nil
	}

	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, clock)
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
	}
	return time.Time{}, fmt.Errorf("%w: time %q on %s", ErrUnparseableDateTime, clock, date)
}
