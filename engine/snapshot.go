package engine

import (
	"time"

	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/tile"
	"github.com/lixenwraith/cubit/vmath"
)

// EntityView is the render-facing copy of one entity
type EntityView struct {
	Handle      core.Handle
	Kind        component.Kind
	Position    vmath.Vec2 // Interpolated
	Size        vmath.Vec2
	Health      int
	StartHealth int
}

// PlayerView is the HUD-facing copy of the player state
type PlayerView struct {
	Health      int
	StartHealth int
	Equipped    component.WeaponType
	Magazine    int
	Ammo        int
	Grounded    bool
	DashReady   bool
}

// Snapshot is a read-only frame of the session for renderers
type Snapshot struct {
	State      State
	LevelTime  time.Duration
	EnemyCount int
	Grid       *tile.Grid // Shared, callers must not mutate
	Tileset    *tile.Tileset
	Player     PlayerView
	Entities   []EntityView // Registry order, player first
}

// Snapshot copies the current render state without mutating the session
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:      s.state,
		LevelTime:  s.levelTime,
		EnemyCount: s.enemies,
		Grid:       s.grid,
		Tileset:    s.tileset,
		Entities:   make([]EntityView, 0, len(s.reg.entities)),
	}
	for _, e := range s.reg.entities {
		snap.Entities = append(snap.Entities, EntityView{
			Handle:      e.Handle,
			Kind:        e.Kind,
			Position:    e.Render,
			Size:        e.Size,
			Health:      e.Health,
			StartHealth: e.StartHealth,
		})
	}

	if p := s.reg.Player(); p != nil {
		w := p.Player.Current()
		snap.Player = PlayerView{
			Health:      p.Health,
			StartHealth: p.StartHealth,
			Equipped:    p.Player.Equipped,
			Magazine:    w.Magazine,
			Ammo:        w.Ammo,
			Grounded:    p.Contacts.Grounded(),
			DashReady:   p.Player.DashCooldown <= 0,
		}
	}
	return snap
}
