package parameter

import (
	"time"
)

// Player body
const (
	PlayerHalfSize      = 0.5
	PlayerDensity       = 100.0
	PlayerLinearDamping = 1.4
	PlayerSpeed         = 7.0
	PlayerStartHealth   = 100
)

// Player movement
const (
	// PlayerImpulseDivisor scales move impulse to dir * speed * mass / divisor
	PlayerImpulseDivisor = 10.0

	// PlayerAirSpeedFactor scales move impulse while not grounded
	PlayerAirSpeedFactor = 0.7

	// PlayerGroundDrag is the horizontal velocity decay rate on ground (1/sec)
	PlayerGroundDrag = 2.0

	// PlayerDragSnap zeroes horizontal ground velocity below this magnitude
	PlayerDragSnap = 0.01

	// PlayerJumpHeight is the nominal jump apex height in tiles
	PlayerJumpHeight = 8.0

	// PlayerFallGravityScale applies while the player moves downward
	PlayerFallGravityScale = 2.5

	// PlayerDashImpulse is multiplied by mass and move direction
	PlayerDashImpulse = 50.0

	// PlayerDashCooldown is the time between dashes
	PlayerDashCooldown = 2 * time.Second

	// PlayerDashInitialCooldown applies on level start
	PlayerDashInitialCooldown = 200 * time.Millisecond

	// PlayerMuzzleOffset is the spawn distance of blaster/revolver bullets along aim
	PlayerMuzzleOffset = 0.75

	// PlayerShotgunMuzzleOffset is the pellet spawn distance along aim
	PlayerShotgunMuzzleOffset = 0.35

	// ShotgunRecoilRange is the max wall distance for shotgun recoil push
	ShotgunRecoilRange = 5.0

	// RaycastMaxDistance bounds tile raycasts
	RaycastMaxDistance = 36.0

	// MeleeImpulse is multiplied by target mass and horizontal direction sign
	MeleeImpulse = 50.0
)

// Revolver alt-fire fan
const (
	RevolverFanWindow   = 1200 * time.Millisecond
	RevolverFanInterval = 200 * time.Millisecond
	// RevolverFanSpread is the aim jitter half-width of fan shots
	RevolverFanSpread = 0.25
)
