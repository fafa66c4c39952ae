package input

import (
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cubit/engine"
	"github.com/lixenwraith/cubit/vmath"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func specialKey(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestParseAction(t *testing.T) {
	for a := ActionNone; a < ActionCount; a++ {
		got, ok := ParseAction(a.String())
		require.True(t, ok, a.String())
		assert.Equal(t, a, got)
	}
	_, ok := ParseAction("teleport")
	assert.False(t, ok)

	assert.True(t, ActionRestart.IsSession())
	assert.True(t, ActionQuit.IsSession())
	assert.False(t, ActionFire.IsSession())
}

func TestHeldMoveExpires(t *testing.T) {
	m := NewMapper(nil, 100*time.Millisecond)

	assert.Equal(t, ActionMoveRight, m.Handle(runeKey('d'), t0))
	assert.Equal(t, 1.0, m.Intent(t0.Add(50*time.Millisecond)).MoveDir)

	// Auto-repeat refreshes the hold
	m.Handle(runeKey('d'), t0.Add(90*time.Millisecond))
	assert.Equal(t, 1.0, m.Intent(t0.Add(150*time.Millisecond)).MoveDir)

	assert.Zero(t, m.Intent(t0.Add(200*time.Millisecond)).MoveDir)
}

func TestOppositeMoveCancels(t *testing.T) {
	m := NewMapper(nil, time.Second)
	m.Handle(specialKey(tcell.KeyRight), t0)
	m.Handle(specialKey(tcell.KeyLeft), t0.Add(10*time.Millisecond))
	assert.Equal(t, -1.0, m.Intent(t0.Add(20*time.Millisecond)).MoveDir)
}

func TestEdgesLatchOnce(t *testing.T) {
	m := NewMapper(nil, 0)
	m.Handle(runeKey(' '), t0)
	m.Handle(runeKey('e'), t0)
	m.Handle(runeKey('s'), t0)
	m.Handle(specialKey(tcell.KeyTab), t0)

	in := m.Intent(t0)
	assert.True(t, in.Jump)
	assert.True(t, in.Reload)
	assert.True(t, in.Dash)
	assert.True(t, in.Swap)

	assert.Equal(t, engine.Intent{}, m.Intent(t0), "edges are consumed")
}

func TestAimCombinesWithMove(t *testing.T) {
	m := NewMapper(nil, time.Second)

	m.Handle(runeKey('k'), t0)
	assert.Equal(t, vmath.V2(0, 1), m.Intent(t0).Aim)

	m.Handle(runeKey('a'), t0)
	aim := m.Intent(t0).Aim
	assert.InDelta(t, -math.Sqrt2/2, aim.X, 1e-9)
	assert.InDelta(t, math.Sqrt2/2, aim.Y, 1e-9)

	m.Handle(runeKey('j'), t0)
	assert.Negative(t, m.Intent(t0).Aim.Y, "aim down cancels aim up")

	m.Reset()
	assert.Equal(t, engine.Intent{}, m.Intent(t0))
}

func TestFireIsHeld(t *testing.T) {
	m := NewMapper(nil, 100*time.Millisecond)
	m.Handle(runeKey('f'), t0)
	assert.True(t, m.Intent(t0).Fire)
	assert.True(t, m.Intent(t0.Add(50*time.Millisecond)).Fire)
	assert.False(t, m.Intent(t0.Add(100*time.Millisecond)).Fire)
}

func TestSessionActionsPassThrough(t *testing.T) {
	m := NewMapper(nil, 0)
	assert.Equal(t, ActionRestart, m.Handle(runeKey('r'), t0))
	assert.Equal(t, ActionQuit, m.Handle(specialKey(tcell.KeyEscape), t0))
	assert.Equal(t, ActionNone, m.Handle(runeKey('z'), t0))
	assert.Equal(t, engine.Intent{}, m.Intent(t0))
}

func TestLoadKeyConfig(t *testing.T) {
	data := []byte(`
runes:
  space: fire
  x: melee
  a: none
keys:
  up: jump
  ctrl-s: none
`)
	override, err := LoadKeyConfig(data)
	require.NoError(t, err)
	assert.Equal(t, ActionFire, override.Runes[' '])
	assert.Equal(t, ActionJump, override.Keys[tcell.KeyUp])

	kt := MergeKeyTable(DefaultKeyTable(), override)
	assert.Equal(t, ActionFire, kt.Runes[' '])
	assert.Equal(t, ActionMelee, kt.Runes['x'])
	assert.NotContains(t, kt.Runes, 'a')
	assert.NotContains(t, kt.Keys, tcell.KeyCtrlS)
	assert.Equal(t, ActionMoveRight, kt.Runes['d'], "unlisted bindings are kept")

	assert.Equal(t, ActionMoveLeft, DefaultKeyTable().Runes['a'], "defaults are not mutated")
}

func TestLoadKeyConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown action", "runes:\n  x: teleport\n"},
		{"multi rune key", "runes:\n  xy: fire\n"},
		{"unknown key name", "keys:\n  hyper: fire\n"},
		{"bad yaml", "runes: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadKeyConfig([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
