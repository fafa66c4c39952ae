package parameter

import (
	"time"
)

// Fixed-step scheduler
const (
	// FixedStep is the simulated duration of one physics/gameplay step
	FixedStep = time.Second / 60

	// MaxStepsPerFrame caps catch-up work; excess accumulated time is dropped
	MaxStepsPerFrame = 5

	// VelocityIterations is the solver velocity iteration count per step
	VelocityIterations = 8

	// PositionIterations is the solver position iteration count per step
	PositionIterations = 3
)

// World
const (
	// Gravity is the vertical world gravity (units/sec²)
	Gravity = -9.8

	// TerrainFriction is applied uniformly to every static terrain edge
	TerrainFriction = 0.8

	// ContactNormalThreshold is the minimum axis component for a contact normal to classify
	ContactNormalThreshold = 0.5
)
