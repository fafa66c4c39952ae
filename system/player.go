package system

import (
	"math"

	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/engine"
	"github.com/lixenwraith/cubit/parameter"
	"github.com/lixenwraith/cubit/vmath"
)

// PlayerSystem applies movement, jump, dash, ground drag and weapon selection
type PlayerSystem struct{}

func NewPlayerSystem() engine.System {
	return &PlayerSystem{}
}

func (s *PlayerSystem) Name() string  { return "player" }
func (s *PlayerSystem) Priority() int { return parameter.PriorityPlayer }

func (s *PlayerSystem) Update(session *engine.Session, phase engine.Phase) {
	if phase != engine.PhaseImpulse {
		return
	}
	p := session.Player()
	if p == nil || !p.Alive() {
		return
	}
	pc := p.Player
	body := p.Body
	in := session.Intent()
	dt := session.StepDuration()

	pc.Tick(dt)

	if in.MoveDir != 0 {
		pc.MoveDir = vmath.Sign(in.MoveDir)
	}

	switch {
	case in.Swap:
		if pc.Equipped == pc.Primary {
			pc.Equipped = pc.Secondary
		} else {
			pc.Equipped = pc.Primary
		}
	case in.SelectPrimary:
		pc.Equipped = pc.Primary
	case in.SelectSecondary:
		pc.Equipped = pc.Secondary
	}

	grounded := p.Contacts.Grounded()
	mass := body.Mass()

	if in.MoveDir != 0 {
		impulse := pc.MoveDir * p.Speed * mass / parameter.PlayerImpulseDivisor
		if !grounded {
			impulse *= parameter.PlayerAirSpeedFactor
		}
		body.ApplyImpulse(vmath.V2(impulse, 0))

		if in.Dash && pc.DashCooldown <= 0 {
			body.ApplyImpulse(vmath.V2(parameter.PlayerDashImpulse*mass*pc.MoveDir, 0))
			pc.DashCooldown = parameter.PlayerDashCooldown
			session.Sound().Play(core.SoundDash)
		}
	}

	if grounded {
		body.SetGravityScale(1)
		pc.JumpForce = jumpForce(body.GravityScale(), p.LinearDamping, mass)

		if in.Jump {
			body.ApplyImpulse(vmath.V2(0, pc.JumpForce))
		}

		v := body.Velocity()
		v.X -= parameter.PlayerGroundDrag * v.X * dt.Seconds()
		if math.Abs(v.X) < parameter.PlayerDragSnap {
			v.X = 0
		}
		body.SetVelocity(v)
	}

	if body.Velocity().Y < 0 {
		body.SetGravityScale(parameter.PlayerFallGravityScale)
	}
}

// jumpForce is the impulse reaching PlayerJumpHeight under gravity and damping
func jumpForce(gravityScale, damping, mass float64) float64 {
	return math.Sqrt(parameter.PlayerJumpHeight*parameter.Gravity*gravityScale*-(2+damping)) * mass
}
