package system

import (
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/cubit/engine"
	"github.com/lixenwraith/cubit/parameter"
)

// DeathSystem removes dead enemies after every damage source has run
// Player death is terminal and handled by the session outcome check
type DeathSystem struct{}

func NewDeathSystem() engine.System {
	return &DeathSystem{}
}

func (s *DeathSystem) Name() string  { return "death" }
func (s *DeathSystem) Priority() int { return parameter.PriorityDeath }

func (s *DeathSystem) Update(session *engine.Session, phase engine.Phase) {
	if phase != engine.PhaseResolve {
		return
	}
	reg := session.Registry()
	reg.Each(func(e *engine.Entity) {
		if !e.Kind.IsEnemy() || e.Alive() {
			return
		}
		if !e.MarkDying() {
			return
		}
		reg.MarkDestroy(e.Handle)
		session.EnemyKilled()
		session.Logger().WithFields(logrus.Fields{
			"entity": e.Handle,
			"kind":   e.Kind,
		}).Debug("enemy killed")
	})
}
