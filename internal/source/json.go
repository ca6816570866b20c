package source

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"monthcal/internal/model"
)

// ParseJSON decodes a JSON array of events:
//
//	[{"title": "Standup", "date": "2025-07-10", "time": "09:00", "duration": "15m"}]
func ParseJSON(body []byte) ([]model.Event, error) {
	var events []model.Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// ParseYAML decodes a YAML sequence of events with the same keys as the
// JSON form.
func ParseYAML(body []byte) ([]model.Event, error) {
	var events []model.Event
	if err := yaml.Unmarshal(body, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}
