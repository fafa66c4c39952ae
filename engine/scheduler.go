package engine

import (
	"time"
)

// Frame reports what one Advance call did
type Frame struct {
	Steps   int
	Dropped time.Duration // Accumulated time discarded by the step cap
	Alpha   float64       // Leftover fraction of a step, in [0, 1)
}

// Scheduler is a fixed-step accumulator with a per-frame step cap
// Across calls, sum(frame) == steps*Step + dropped + remaining accumulator
type Scheduler struct {
	Step     time.Duration
	MaxSteps int

	accumulator time.Duration
}

// NewScheduler creates a scheduler; MaxSteps <= 0 disables the cap
func NewScheduler(step time.Duration, maxSteps int) *Scheduler {
	return &Scheduler{Step: step, MaxSteps: maxSteps}
}

// Advance adds frame to the accumulator and runs step once per whole fixed step
func (s *Scheduler) Advance(frame time.Duration, step func()) Frame {
	if frame > 0 {
		s.accumulator += frame
	}

	n := int(s.accumulator / s.Step)
	var dropped time.Duration
	if s.MaxSteps > 0 && n > s.MaxSteps {
		dropped = time.Duration(n-s.MaxSteps) * s.Step
		n = s.MaxSteps
	}

	for i := 0; i < n; i++ {
		step()
	}

	s.accumulator -= time.Duration(n)*s.Step + dropped

	return Frame{
		Steps:   n,
		Dropped: dropped,
		Alpha:   float64(s.accumulator) / float64(s.Step),
	}
}

// Accumulator returns the unsimulated remainder
func (s *Scheduler) Accumulator() time.Duration {
	return s.accumulator
}
