package clock

import "time"

// Clock is the injectable time source used when stamping new games, so
// tests can pin game datetimes.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New returns a system-clock backed Clock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
