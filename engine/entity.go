package engine

import (
	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/physics"
	"github.com/lixenwraith/cubit/vmath"
)

// Entity is one registry record, a tagged variant on Kind
// Exactly one of Player, Enemy, Bullet is set, matching Kind
type Entity struct {
	Handle core.Handle
	Kind   component.Kind

	Position vmath.Vec2 // Post-step physics position
	Prev     vmath.Vec2 // Position before the last step
	Render   vmath.Vec2 // Interpolated between Prev and Position
	Size     vmath.Vec2 // Half extents; bullets use X as radius

	Body     physics.Body
	Contacts component.ContactComponent

	Health        int
	StartHealth   int
	Speed         float64
	Density       float64
	LinearDamping float64

	Player *component.PlayerComponent
	Enemy  *component.EnemyComponent
	Bullet *component.BulletComponent

	dying bool // Counted by the death sweep
}

// Alive reports positive health for actors; projectiles are always alive until destroyed
func (e *Entity) Alive() bool {
	if !e.Kind.IsActor() {
		return true
	}
	return e.Health > 0
}

// Damage subtracts amount clamped at zero and returns the health actually removed
func (e *Entity) Damage(amount int) int {
	if amount <= 0 || e.Health <= 0 {
		return 0
	}
	if amount > e.Health {
		amount = e.Health
	}
	e.Health -= amount
	return amount
}

// Dying reports whether the death sweep already claimed e
func (e *Entity) Dying() bool {
	return e.dying
}

// MarkDying claims e for the death sweep, false when already claimed
func (e *Entity) MarkDying() bool {
	if e.dying {
		return false
	}
	e.dying = true
	return true
}

// bodyDef derives the physics description from the entity variant
func (e *Entity) bodyDef() physics.BodyDef {
	def := physics.BodyDef{
		Position:      e.Position,
		Density:       e.Density,
		LinearDamping: e.LinearDamping,
		GravityScale:  1,
		FixedRotation: true,
		Tag:           physics.Tag{Kind: physics.TagEntity, Handle: e.Handle},
	}

	switch {
	case e.Kind == component.KindBullet:
		def.Shape = physics.ShapeCircle
		def.Radius = e.Size.X
		def.GravityScale = 0
		def.Bullet = true
		if e.Bullet != nil {
			def.Sensor = e.Bullet.Sensor
		}
	case e.Kind.IsCharacter():
		def.Shape = physics.ShapeBox
		def.HalfExtents = e.Size
		if e.Enemy != nil && e.Enemy.Flying {
			def.GravityScale = 0
		}
	}
	return def
}
