package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monthcal/internal/model"
)

func ev(title, clock, duration string) model.Event {
	return model.Event{Title: title, Date: "2025-07-10", Time: clock, Duration: duration}
}

func TestEventsOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b model.Event
		want bool
	}{
		{"partial overlap", ev("A", "09:00", "1h"), ev("B", "09:30", "1h"), true},
		{"touching is not overlap", ev("A", "09:00", "1h"), ev("B", "10:00", "1h"), false},
		{"disjoint", ev("A", "09:00", "1h"), ev("B", "14:00", "1h"), false},
		{"contained", ev("A", "09:00", "3h"), ev("B", "10:00", "30m"), true},
		{"identical", ev("A", "09:00", "1h"), ev("B", "09:00", "1h"), true},
		{"zero length against itself", ev("A", "09:00", "0m"), ev("A", "09:00", "0m"), false},
		{"zero length inside another still overlaps", ev("A", "09:30", "xyz"), ev("B", "09:00", "1h"), true},
		{"zero length at other's start", ev("A", "09:00", "0m"), ev("B", "09:00", "1h"), false},
		{"different days", ev("A", "09:00", "1h"), model.Event{Date: "2025-07-11", Time: "09:00", Duration: "1h"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab, err := EventsOverlap(tt.a, tt.b)
			require.NoError(t, err)
			ba, err := EventsOverlap(tt.b, tt.a)
			require.NoError(t, err)

			assert.Equal(t, tt.want, ab)
			assert.Equal(t, ab, ba, "overlap must be symmetric")
		})
	}
}

func TestEventsOverlap_BadEvent(t *testing.T) {
	bad := model.Event{Title: "Broken", Date: "not-a-date", Time: "09:00", Duration: "1h"}

	got, err := EventsOverlap(ev("A", "09:00", "1h"), bad)
	assert.False(t, got)
	assert.ErrorIs(t, err, ErrUnparseableDateTime)
}
