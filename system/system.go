// Package system holds the per-step gameplay rules run by engine.Session
package system

import (
	"github.com/lixenwraith/cubit/engine"
)

// Defaults returns every gameplay system, unordered
func Defaults() []engine.System {
	return []engine.System{
		NewPlayerSystem(),
		NewWeaponSystem(),
		NewMeleeSystem(),
		NewEnemySystem(),
		NewBulletSystem(),
		NewDeathSystem(),
	}
}

// Register adds every gameplay system to session
func Register(session *engine.Session) {
	for _, sys := range Defaults() {
		session.AddSystem(sys)
	}
}
