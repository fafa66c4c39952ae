package system

import (
	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/engine"
	"github.com/lixenwraith/cubit/parameter"
	"github.com/lixenwraith/cubit/vmath"
)

// BulletSystem keeps projectiles at constant velocity and resolves their hits
// Each projectile ends in exactly one way per step: terrain, actor, range, or keeps flying
type BulletSystem struct{}

func NewBulletSystem() engine.System {
	return &BulletSystem{}
}

func (s *BulletSystem) Name() string  { return "bullet" }
func (s *BulletSystem) Priority() int { return parameter.PriorityBullet }

func (s *BulletSystem) Update(session *engine.Session, phase engine.Phase) {
	reg := session.Registry()

	switch phase {
	case engine.PhaseImpulse:
		reg.Each(func(e *engine.Entity) {
			if e.Kind == component.KindBullet {
				e.Body.SetVelocity(e.Bullet.Direction.Scale(e.Speed))
			}
		})

	case engine.PhaseResolve:
		reg.Each(func(e *engine.Entity) {
			if e.Kind != component.KindBullet || reg.Marked(e.Handle) {
				return
			}
			s.resolve(session, e)
		})
	}
}

func (s *BulletSystem) resolve(session *engine.Session, e *engine.Entity) {
	reg := session.Registry()
	b := e.Bullet
	spec := session.Arsenal().Spec(b.Weapon)

	switch b.Hit.Kind {
	case component.HitTerrain:
		reg.MarkDestroy(e.Handle)

	case component.HitActor:
		reg.MarkDestroy(e.Handle)
		target := reg.Get(b.Hit.Entity)
		if target == nil || !target.Alive() {
			return
		}
		if spec.Projectile == component.ProjectileRedCircle {
			// Enemy fire only hurts the player
			if target.Kind != component.KindPlayer {
				return
			}
			target.Damage(spec.Damage)
			session.Sound().Play(core.SoundDamageEnemy)
			s.reinforce(session, e.Position)
			return
		}
		if target.Kind.IsEnemy() {
			target.Damage(spec.Damage)
			session.Sound().Play(core.SoundDamageEnemy)
		}

	default:
		if vmath.Distance(b.Origin, e.Position) > spec.Range {
			reg.MarkDestroy(e.Handle)
		}
	}
}

// reinforce rolls the chance of a RedCube appearing above an enemy hit on the player
func (s *BulletSystem) reinforce(session *engine.Session, at vmath.Vec2) {
	if !session.Rand().Chance(parameter.ReinforcementChance) {
		return
	}
	pos := at.Add(vmath.V2(0, parameter.ReinforcementOffsetY))
	if _, err := session.SpawnEnemy(component.KindRedCube, pos); err != nil {
		session.Logger().WithError(err).Error("reinforcement spawn failed")
		return
	}
	session.Logger().WithField("position", pos).Debug("reinforcement spawned")
}
