package clock

import "time"

// Clocker abstracts the wall clock so expiry logic stays testable.
type Clocker interface {
	Now() time.Time
}

// SystemClock reads time from the operating system.
type SystemClock struct{}

// New returns the production clock.
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current system time.
func (*SystemClock) Now() time.Time {
	return time.Now()
}
