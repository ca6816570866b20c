package calendar

import (
	"fmt"
	"time"
)

// WeekdayLabels are the column headers of the grid. Weeks start on Sunday.
var WeekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Month identifies a displayed calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth accepts "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// First returns midnight of the first day of m in time.Local.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.Local)
}

func (m Month) Next() Month {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

func (m Month) Prev() Month {
	return MonthOf(m.First().AddDate(0, -1, 0))
}

// Contains reports whether t falls within m.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Key is the "YYYY-MM" form accepted by ParseMonth.
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// String formats m as a heading, e.g. "October 2026".
func (m Month) String() string {
	return m.First().Format("January 2006")
}

// MonthGrid returns every date shown for the month containing ref, padded
// backwards to the preceding Sunday and forwards to the following Saturday.
// The result is ascending, its length is a multiple of 7 and it always
// contains the whole month. Dates are midnights in ref's location; where
// midnight does not exist the cell holds the first instant of that date.
func MonthGrid(ref time.Time) []time.Time {
	// Day arithmetic runs in UTC, which has no clock shifts.
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))
	n := int(end.Sub(start)/(24*time.Hour)) + 1

	loc := ref.Location()
	days := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc))
	}
	return days
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
