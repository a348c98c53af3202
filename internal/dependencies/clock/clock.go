package clock

import "time"

// Clock provides the current instant for session bookkeeping.
// Implementations can be swapped for a mock in tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current wall-clock time in UTC.
// The monotonic reading is dropped so persisted instants compare equal after a reload.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Round(0)
}
