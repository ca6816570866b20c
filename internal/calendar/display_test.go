package calendar

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monthcal/internal/model"
)

func TestIconFor(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Client Call", "📞"},
		{"Team Meeting", "👥"},
		{"Code review", "📝"},
		{"Go WORKSHOP", "🧠"},
		{"Team Meeting Call", "📞"},
		{"Review the workshop", "📝"},
		{"Lunch", DefaultIcon},
		{"", DefaultIcon},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, IconFor(tt.title))
		})
	}
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, ConflictColor, ColorFor(0, true))
	assert.Equal(t, ConflictColor, ColorFor(7, true))
	assert.Equal(t, ColorIndigo, ColorFor(0, false))
	assert.Equal(t, ColorPink, ColorFor(4, false))
	assert.Equal(t, ColorFor(0, false), ColorFor(5, false))
}

func TestDecorate_ColorCyclesPerDay(t *testing.T) {
	events := make([]model.Event, 0, 7)
	for i := 0; i < 7; i++ {
		events = append(events, ev(fmt.Sprintf("Slot %d", i), fmt.Sprintf("%02d:00", 8+i), "1h"))
	}

	resolved := ResolveDay(day, events)
	require.Len(t, resolved, 7)

	colors := make([]Color, len(resolved))
	for i, e := range resolved {
		require.False(t, e.Conflict)
		colors[i] = Decorate(e).Color
	}
	assert.Equal(t, colors[0], colors[5])
	assert.Equal(t, colors[1], colors[6])
	assert.ElementsMatch(t, Palette[:], colors[:5])
}

func TestDecorate(t *testing.T) {
	got := Decorate(model.AnnotatedEvent{
		Event:    model.Event{Title: "Design review", Time: "10:00", Duration: "1h30m"},
		Index:    2,
		Conflict: true,
	})

	assert.Equal(t, Display{Icon: "📝", Color: ConflictColor, Tooltip: "Design review (10:00, 1h30m)"}, got)
}
