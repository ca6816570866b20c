package log

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   Level
		wantOK bool
	}{
		{"debug", LevelDebug, true},
		{" INFO ", LevelInfo, true},
		{"warning", LevelWarn, true},
		{"Error", LevelError, true},
		{"verbose", LevelInfo, false},
		{"", LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestFields(t *testing.T) {
	got := fields("a", 1, 2, "skipped", "b", "two", "dangling")

	assert.Equal(t, logrus.Fields{"a": 1, "b": "two"}, got)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetLevel(LevelInfo)
		SetOutput(os.Stderr)
	})

	SetLevel(LevelError)
	Info("hidden", "k", "v")
	assert.Empty(t, buf.String())

	Error("shown", errors.New("boom"), "events_path", "events.json")
	out := buf.String()
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "events_path=events.json")
}
