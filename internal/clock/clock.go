// Package clock provides the "today" used by deadline checks, injectable so
// the logic layer can be tested with a fixed date.
package clock

import "time"

// Clock yields the current date.
type Clock interface {
	// Today returns the current date truncated to midnight.
	Today() time.Time
}

// New returns the wall clock.
func New() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Today() time.Time {
	return Truncate(time.Now())
}

// Fixed returns a clock stuck on the given date.
func Fixed(t time.Time) Clock {
	return fixedClock(Truncate(t))
}

type fixedClock time.Time

func (f fixedClock) Today() time.Time {
	return time.Time(f)
}

// Truncate drops the time-of-day part of t.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
