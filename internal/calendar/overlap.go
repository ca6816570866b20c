package calendar

import "monthcal/internal/model"

// EventsOverlap reports whether a and b occupy a common instant.
//
// It is symmetric. If either event's interval cannot be built the result
// is false together with the build error.
func EventsOverlap(a, b model.Event) (bool, error) {
	ia, err := BuildInterval(a)
	if err != nil {
		return false, err
	}
	ib, err := BuildInterval(b)
	if err != nil {
		return false, err
	}
	return ia.Overlaps(ib), nil
}
