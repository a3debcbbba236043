// Package clock provides the monotonic simulation clock that drives
// the movement controller's two cadences. Time only moves when the
// game loop advances it, so a paused game freezes every timestamp and
// fixed-seed runs stay reproducible.
package clock

import "fmt"

// SimClock is a loop-driven monotonic clock. It is not safe for
// concurrent use; the single-threaded tick loop owns it.
type SimClock struct {
	now      float64
	fixed    float64
	variable float64
}

// NewSimClock returns a clock with the given fixed physics step in
// seconds.
func NewSimClock(fixedDelta float64) (*SimClock, error) {
	if fixedDelta <= 0 {
		return nil, fmt.Errorf("clock: fixed delta must be positive, got %v", fixedDelta)
	}
	return &SimClock{fixed: fixedDelta, variable: fixedDelta}, nil
}

// Now returns seconds of simulation time since the clock was created.
func (c *SimClock) Now() float64 { return c.now }

// FixedDelta returns the fixed physics step in seconds.
func (c *SimClock) FixedDelta() float64 { return c.fixed }

// VariableDelta returns the last frame delta in seconds.
func (c *SimClock) VariableDelta() float64 { return c.variable }

// AdvanceFixed moves simulation time forward by one fixed step. The
// loop calls it once per physics tick.
func (c *SimClock) AdvanceFixed() { c.now += c.fixed }

// SetVariableDelta records the current frame's delta for consumers of
// the variable cadence.
func (c *SimClock) SetVariableDelta(dt float64) {
	if dt < 0 {
		dt = 0
	}
	c.variable = dt
}
