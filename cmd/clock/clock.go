// Package clock provides the monotonic playback clock.
package clock

import (
	"errors"
	"time"
)

var ErrClockNotStarted = errors.New("clock not started")

// Clock measures elapsed playback time since the last Start.
// The zero value is not usable; create one with New or NewWithSource.
type Clock struct {
	now     func() time.Time
	started time.Time
	running bool
}

// New creates a clock backed by the system monotonic clock.
func New() *Clock {
	return NewWithSource(time.Now)
}

// NewWithSource creates a clock that reads the current instant from now.
func NewWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Start records the reference instant. Calling it again resets the clock and
// discards any previously elapsed time.
func (c *Clock) Start() {
	c.started = c.now()
	c.running = true
}

// Started reports whether Start has been called.
func (c *Clock) Started() bool {
	return c.running
}

// Elapsed returns the time since the last Start.
func (c *Clock) Elapsed() (time.Duration, error) {
	return c.ElapsedAt(c.now())
}

// ElapsedAt returns the time between the last Start and instant.
func (c *Clock) ElapsedAt(instant time.Time) (time.Duration, error) {
	if !c.running {
		return 0, ErrClockNotStarted
	}
	return instant.Sub(c.started), nil
}
