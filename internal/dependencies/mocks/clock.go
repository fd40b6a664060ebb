package mocks

import "time"

// Clock is a controllable clock for tests
type Clock struct {
	Current time.Time
}

// NewClock creates a mock clock starting at the given time
func NewClock(start time.Time) *Clock {
	return &Clock{Current: start}
}

// Now returns the mock's current time
func (c *Clock) Now() time.Time {
	return c.Current
}

// Advance moves the mock clock forward
func (c *Clock) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}
