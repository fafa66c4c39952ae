package component

import (
	"time"
)

// EnemyComponent holds targeting and attack timers of an enemy entity
type EnemyComponent struct {
	AttackTimer  time.Duration // Remaining cooldown, attack allowed at <= 0
	AttackPeriod time.Duration
	ShootRange   float64
	DetectRange  float64
	Weapon       WeaponType
	Flying       bool // Gravity scale forced to zero every step
}
