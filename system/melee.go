package system

import (
	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/engine"
	"github.com/lixenwraith/cubit/parameter"
	"github.com/lixenwraith/cubit/vmath"
)

// MeleeSystem swings the melee weapon, knocking back and damaging every enemy in range
// There is no line-of-sight test; walls do not block the swing
type MeleeSystem struct{}

func NewMeleeSystem() engine.System {
	return &MeleeSystem{}
}

func (s *MeleeSystem) Name() string  { return "melee" }
func (s *MeleeSystem) Priority() int { return parameter.PriorityMelee }

func (s *MeleeSystem) Update(session *engine.Session, phase engine.Phase) {
	if phase != engine.PhaseImpulse {
		return
	}
	p := session.Player()
	if p == nil || !p.Alive() || !session.Intent().Melee || !p.Player.CanMelee() {
		return
	}

	slot := p.Player.MeleeSlot
	spec := session.Arsenal().Spec(slot)
	session.Sound().Play(core.SoundSwordSwing)

	session.Registry().Each(func(e *engine.Entity) {
		if !e.Kind.IsEnemy() || !e.Alive() {
			return
		}
		if vmath.Distance(e.Position, p.Position) >= spec.Range {
			return
		}
		dx := vmath.Sign(e.Position.X - p.Position.X)
		e.Body.ApplyImpulse(vmath.V2(dx*parameter.MeleeImpulse*e.Body.Mass(), 0))
		if e.Damage(spec.Damage) > 0 {
			session.Sound().Play(core.SoundDamageEnemy)
		}
	})

	p.Player.Weapons[slot].Timer = spec.FireRate
}
