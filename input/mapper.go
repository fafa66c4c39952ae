package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cubit/engine"
	"github.com/lixenwraith/cubit/vmath"
)

// DefaultHold covers the gap between a key press and the terminal's first auto-repeat
const DefaultHold = 300 * time.Millisecond

// Mapper turns key events into engine intent
// Not safe for concurrent use; owned by the tick goroutine
type Mapper struct {
	table *KeyTable
	hold  time.Duration

	expiry [ActionCount]time.Time // Held actions stay active until their expiry
	edges  engine.Intent          // Latched edges, cleared by Intent
}

// NewMapper creates a mapper; nil table selects DefaultKeyTable, hold <= 0 selects DefaultHold
func NewMapper(table *KeyTable, hold time.Duration) *Mapper {
	if table == nil {
		table = DefaultKeyTable()
	}
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Mapper{table: table, hold: hold}
}

// Handle applies one key event and returns its action
// Session-level actions are only reported; the caller acts on them
func (m *Mapper) Handle(ev *tcell.EventKey, now time.Time) Action {
	a := m.table.Lookup(ev)
	m.Apply(a, now)
	return a
}

// Apply records a bound action as if its key was pressed at now
func (m *Mapper) Apply(a Action, now time.Time) {
	switch a {
	case ActionMoveLeft:
		m.expiry[ActionMoveRight] = time.Time{}
		m.expiry[a] = now.Add(m.hold)
	case ActionMoveRight:
		m.expiry[ActionMoveLeft] = time.Time{}
		m.expiry[a] = now.Add(m.hold)
	case ActionAimUp:
		m.expiry[ActionAimDown] = time.Time{}
		m.expiry[a] = now.Add(m.hold)
	case ActionAimDown:
		m.expiry[ActionAimUp] = time.Time{}
		m.expiry[a] = now.Add(m.hold)
	case ActionFire:
		m.expiry[a] = now.Add(m.hold)
	case ActionJump:
		m.edges.Jump = true
	case ActionAltFire:
		m.edges.AltFire = true
	case ActionReload:
		m.edges.Reload = true
	case ActionMelee:
		m.edges.Melee = true
	case ActionDash:
		m.edges.Dash = true
	case ActionSelectPrimary:
		m.edges.SelectPrimary = true
	case ActionSelectSecondary:
		m.edges.SelectSecondary = true
	case ActionSwap:
		m.edges.Swap = true
	}
}

// Intent builds the intent for now and clears latched edges
func (m *Mapper) Intent(now time.Time) engine.Intent {
	in := m.edges
	m.edges = engine.Intent{}

	switch {
	case m.active(ActionMoveLeft, now):
		in.MoveDir = -1
	case m.active(ActionMoveRight, now):
		in.MoveDir = 1
	}

	// Zero aim falls back to the facing direction
	switch {
	case m.active(ActionAimUp, now):
		in.Aim = vmath.V2(in.MoveDir, 1).Normalize()
	case m.active(ActionAimDown, now):
		in.Aim = vmath.V2(in.MoveDir, -1).Normalize()
	}

	in.Fire = m.active(ActionFire, now)
	return in
}

// Reset drops all held and latched input
func (m *Mapper) Reset() {
	m.expiry = [ActionCount]time.Time{}
	m.edges = engine.Intent{}
}

func (m *Mapper) active(a Action, now time.Time) bool {
	return now.Before(m.expiry[a])
}
