package system

import (
	"github.com/lixenwraith/cubit/engine"
	"github.com/lixenwraith/cubit/parameter"
	"github.com/lixenwraith/cubit/vmath"
)

// EnemySystem chases the player inside detect range and shoots inside shoot range
type EnemySystem struct{}

func NewEnemySystem() engine.System {
	return &EnemySystem{}
}

func (s *EnemySystem) Name() string  { return "enemy" }
func (s *EnemySystem) Priority() int { return parameter.PriorityEnemy }

func (s *EnemySystem) Update(session *engine.Session, phase engine.Phase) {
	if phase != engine.PhaseImpulse {
		return
	}
	player := session.Player()
	if player == nil {
		return
	}
	dt := session.StepDuration()

	session.Registry().Each(func(e *engine.Entity) {
		if !e.Kind.IsEnemy() {
			return
		}
		ec := e.Enemy
		if ec.AttackTimer > 0 {
			ec.AttackTimer -= dt
		}
		if ec.Flying {
			e.Body.SetGravityScale(0)
		}
		if !e.Alive() || !player.Alive() {
			return
		}

		dist := vmath.Distance(player.Position, e.Position)
		if dist < ec.DetectRange {
			dir := 1.0
			if e.Position.X > player.Position.X {
				dir = -1
			}
			e.Body.ApplyImpulse(vmath.V2(dir*e.Speed, 0))
		}

		if dist < ec.ShootRange && ec.AttackTimer <= 0 {
			aim := player.Position.Sub(e.Position).Normalize()
			if aim.IsZero() {
				return
			}
			pos := e.Position.Add(aim.Scale(parameter.EnemyMuzzleOffset))
			spawnBullet(session, ec.Weapon, e.Handle, pos, aim)
			ec.AttackTimer = ec.AttackPeriod
		}
	})
}
