package component

import (
	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/vmath"
)

// HitKind classifies what a projectile struck during the last physics step
type HitKind uint8

const (
	HitNone HitKind = iota
	HitTerrain
	HitActor
)

// HitTarget is the recorded strike of a projectile, consumed once by resolution
type HitTarget struct {
	Kind   HitKind
	Entity core.Handle // Set for HitActor
	Actor  Kind        // Variant of Entity at record time
}

// Record merges a new strike: first actor wins, actor overrides terrain,
// terrain never overrides anything
func (h *HitTarget) Record(t HitTarget) {
	switch h.Kind {
	case HitNone:
		*h = t
	case HitTerrain:
		if t.Kind == HitActor {
			*h = t
		}
	}
}

// BulletComponent marks a projectile entity
type BulletComponent struct {
	Weapon    WeaponType
	Source    core.Handle // Entity that fired; never struck by its own projectile
	Origin    vmath.Vec2  // Spawn position for range cutoff
	Direction vmath.Vec2  // Unit travel direction
	Sensor    bool        // Passes through bodies, hits are reported only
	Hit       HitTarget
}
