package core

// SoundType represents different sound effects
type SoundType int

const (
	SoundGun         SoundType = iota // Blaster, revolver and enemy shots
	SoundShotgun                      // Pellet fan
	SoundDash                         // Player dash
	SoundSwordSwing                   // Melee swing
	SoundDamageEnemy                  // Projectile damage on an actor
	SoundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundGun:
		return "gun"
	case SoundShotgun:
		return "shotgun"
	case SoundDash:
		return "dash"
	case SoundSwordSwing:
		return "sword"
	case SoundDamageEnemy:
		return "damage"
	}
	return "unknown"
}
