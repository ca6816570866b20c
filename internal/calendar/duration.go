// Package calendar lays out a month of events: it builds the visible day
// grid, resolves which events fall on each day, flags overlapping events
// and picks the icon and color each event is drawn with.
//
// Every function here is pure. The event list is passed in explicitly and
// nothing is cached between calls.
package calendar

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

var (
	hoursPattern   = regexp.MustCompile(`(\d+)h`)
	minutesPattern = regexp.MustCompile(`(\d+)m`)
)

// ParsedDuration is the hour and minute content of a duration string.
type ParsedDuration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// ParseDuration extracts "<n>h" and "<n>m" from s independently.
//
// A missing component is 0. Text matching neither pattern yields a zero
// duration rather than an error.
func ParseDuration(s string) ParsedDuration {
	return ParsedDuration{
		Hours:   firstInt(hoursPattern, s),
		Minutes: firstInt(minutesPattern, s),
	}
}

func firstInt(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Only overflow can get here; treat it like an absent component.
		return 0
	}
	return n
}

// maxDurationPart bounds each component so hours plus minutes never
// overflow time.Duration. It is a little over 146 years.
const maxDurationPart = time.Duration(math.MaxInt64 / 2)

// Duration converts d to a time.Duration. Each component is capped at
// maxDurationPart, so the result is never negative.
func (d ParsedDuration) Duration() time.Duration {
	return capped(d.Hours, time.Hour) + capped(d.Minutes, time.Minute)
}

func capped(n int, unit time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}
	if int64(n) > int64(maxDurationPart/unit) {
		return maxDurationPart
	}
	return time.Duration(n) * unit
}

// DurationOf splits d into whole hours and minutes, dropping seconds.
// Negative durations become zero.
func DurationOf(d time.Duration) ParsedDuration {
	if d < 0 {
		return ParsedDuration{}
	}
	total := int(d / time.Minute)
	return ParsedDuration{Hours: total / 60, Minutes: total % 60}
}

// String renders d in the form ParseDuration reads back, e.g. "1h30m",
// "45m", "2h". A zero duration is "0m".
func (d ParsedDuration) String() string {
	switch {
	case d.Hours > 0 && d.Minutes > 0:
		return fmt.Sprintf("%dh%dm", d.Hours, d.Minutes)
	case d.Hours > 0:
		return fmt.Sprintf("%dh", d.Hours)
	default:
		return fmt.Sprintf("%dm", d.Minutes)
	}
}
