// Package clock lets services read the current time through an interface so
// date arithmetic can be pinned in tests.
package clock

import (
	"time"

	"nutrisur/shared/timezone"
)

type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct{}

// New returns a clock reading the wall time in the application timezone.
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return timezone.Now()
}

func (systemClock) Location() *time.Location {
	return timezone.GetLocation()
}

type fixedClock struct {
	now time.Time
}

// Fixed returns a clock that always reports now, in now's location.
func Fixed(now time.Time) Clock {
	return fixedClock{now: now}
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func (c fixedClock) Location() *time.Location {
	return c.now.Location()
}
