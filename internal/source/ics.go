package source

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"monthcal/internal/calendar"
	appLog "monthcal/internal/log"
	"monthcal/internal/model"
)

// ParseICS converts the VEVENTs of an iCalendar payload into events.
//
//   - Start and end are converted to local wall-clock time.
//   - All-day events (VALUE=DATE or a DTSTART without 'T') become
//     zero-length events at 00:00 so they are listed without ever
//     conflicting with timed events.
//   - RRULE is ignored: only the first occurrence is imported.
//   - VEVENTs that fail to convert are logged and skipped.
func ParseICS(body []byte) ([]model.Event, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, 0)
	for _, comp := range cal.Events() {
		ev, perr := convertVEvent(comp)
		if perr != nil {
			// Log and skip this event, but keep parsing others.
			appLog.Error("ics vevent conversion failed", perr, "uid", propValue(comp, ical.ComponentPropertyUniqueId))
			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

func convertVEvent(ve *ical.VEvent) (model.Event, error) {
	var out model.Event
	out.Title = propValue(ve, ical.ComponentPropertySummary)

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil || dtStart.Value == "" {
		return out, errors.New("missing DTSTART")
	}

	if rrule := propValue(ve, ical.ComponentPropertyRrule); rrule != "" {
		appLog.Warn("recurring ics event imported as a single occurrence", "title", out.Title, "rrule", rrule)
	}

	if isAllDay(dtStart) {
		day, err := time.ParseInLocation("20060102", dtStart.Value[:min(8, len(dtStart.Value))], time.Local)
		if err != nil {
			return out, err
		}
		out.Date = day.Format("2006-01-02")
		out.Time = "00:00"
		out.Duration = calendar.ParsedDuration{}.String()
		return out, nil
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, err
	}
	start = start.In(time.Local)

	dur := calendar.ParsedDuration{}
	if end, err := ve.GetEndAt(); err == nil {
		dur = calendar.DurationOf(end.In(time.Local).Sub(start))
	}

	out.Date = start.Format("2006-01-02")
	out.Time = start.Format("15:04")
	out.Duration = dur.String()
	return out, nil
}

// isAllDay inspects VALUE=DATE or a date-only value.
func isAllDay(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func propValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return p.Value
	}
	return ""
}
