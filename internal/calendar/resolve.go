package calendar

import (
	"time"

	"monthcal/internal/model"
)

// ResolveDay returns the events dated on day, in source order, each
// flagged when it overlaps any other event of that day.
//
// The scan is pairwise over the day's events only, so events on adjacent
// days are never compared even if one runs past midnight. An event whose
// interval cannot be built is still listed but takes no part in conflict
// detection and reports Conflict=false.
func ResolveDay(day time.Time, events []model.Event) []model.AnnotatedEvent {
	key := day.Format(dateLayout)

	out := make([]model.AnnotatedEvent, 0)
	intervals := make([]Interval, 0)
	valid := make([]bool, 0)

	for _, ev := range events {
		if ev.Date != key {
			continue
		}
		iv, err := BuildInterval(ev)
		out = append(out, model.AnnotatedEvent{Event: ev, Index: len(out)})
		intervals = append(intervals, iv)
		valid = append(valid, err == nil)
	}

	for i := range out {
		if !valid[i] {
			continue
		}
		for j := range out {
			if i == j || !valid[j] {
				continue
			}
			if intervals[i].Overlaps(intervals[j]) {
				out[i].Conflict = true
				break
			}
		}
	}

	return out
}

// BuildMonth lays out the grid for the month containing ref. Each cell
// carries its resolved events; today marks the highlighted cell.
func BuildMonth(ref, today time.Time, events []model.Event) []model.CalendarCell {
	month := MonthOf(ref)
	days := MonthGrid(ref)

	cells := make([]model.CalendarCell, 0, len(days))
	for _, d := range days {
		cells = append(cells, model.CalendarCell{
			Date:           d,
			IsCurrentMonth: month.Contains(d),
			IsToday:        SameDay(d, today),
			Events:         ResolveDay(d, events),
		})
	}
	return cells
}
