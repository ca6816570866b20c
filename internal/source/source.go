// Package source loads the static event list the calendar is drawn from.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"monthcal/internal/calendar"
	appLog "monthcal/internal/log"
	"monthcal/internal/model"
)

// ErrUnsupportedFormat is returned for files whose extension is not one of
// .json, .yaml, .yml or .ics.
var ErrUnsupportedFormat = errors.New("unsupported event file format")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

// FormatOf derives the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".ics", ".ical":
		return FormatICS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Load reads and parses the event file at path. Events whose date/time
// cannot be interpreted are kept (the calendar lists them without
// conflict detection) but logged once here.
func Load(path string) ([]model.Event, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events file: %w", err)
	}

	events, err := Parse(format, body)
	if err != nil {
		return nil, fmt.Errorf("parse %s events from %s: %w", format, path, err)
	}

	invalid := Validate(events)
	appLog.Info("events loaded", "path", path, "format", string(format), "event_count", len(events), "invalid_count", invalid)
	return events, nil
}

// Parse decodes body in the given format.
func Parse(format Format, body []byte) ([]model.Event, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(body)
	case FormatYAML:
		return ParseYAML(body)
	case FormatICS:
		return ParseICS(body)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Validate logs every event whose interval cannot be built and returns
// how many there were.
func Validate(events []model.Event) int {
	invalid := 0
	for i, ev := range events {
		if _, err := calendar.BuildInterval(ev); err != nil {
			invalid++
			appLog.Warn("event has unparseable date/time; it will never be flagged as a conflict",
				"index", i,
				"title", ev.Title,
				"date", ev.Date,
				"time", ev.Time,
				"err", err,
			)
		}
	}
	return invalid
}
