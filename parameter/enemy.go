package parameter

import (
	"time"
)

// Shared enemy body
const (
	EnemyHalfSize      = 0.5
	EnemyDensity       = 55.0
	EnemyLinearDamping = 1.4

	// EnemyMuzzleOffset is the projectile spawn distance toward the player
	EnemyMuzzleOffset = 0.5
)

// RedCube: ground enemy, chases and shoots
const (
	RedCubeHealth       = 150
	RedCubeSpeed        = 1.1
	RedCubeAttackPeriod = 2 * time.Second
	RedCubeShootRange   = 8.0
	RedCubeDetectRange  = 15.0
)

// Fly: gravity-free enemy
const (
	FlyHealth       = 50
	FlySpeed        = 1.5
	FlyAttackPeriod = 5 * time.Second
	FlyShootRange   = 4.0
	FlyDetectRange  = 10.0
)

// Reinforcement spawned by enemy projectiles striking the player
const (
	// ReinforcementChance is the probability of a spawn per player hit
	ReinforcementChance = 0.5

	// ReinforcementOffsetY lifts the spawn above the impact point
	ReinforcementOffsetY = 1.0
)
