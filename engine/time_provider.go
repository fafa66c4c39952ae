package engine

import "time"

// TimeProvider abstracts the wall clock feeding frame deltas
type TimeProvider interface {
	Now() time.Time
}

// SystemTime reads the monotonic system clock
type SystemTime struct{}

// Now returns the current time with monotonic clock reading
func (SystemTime) Now() time.Time {
	return time.Now()
}

// FrameClock measures elapsed wall time between successive frames
type FrameClock struct {
	tp   TimeProvider
	last time.Time
}

// NewFrameClock starts measuring from the provider's current time
func NewFrameClock(tp TimeProvider) *FrameClock {
	return &FrameClock{tp: tp, last: tp.Now()}
}

// Tick returns time since the previous Tick (or construction)
func (c *FrameClock) Tick() time.Duration {
	now := c.tp.Now()
	d := now.Sub(c.last)
	c.last = now
	return d
}

// Reset discards time accumulated since the last Tick, used after pauses
func (c *FrameClock) Reset() {
	c.last = c.tp.Now()
}
