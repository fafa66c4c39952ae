package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/level"
	"github.com/lixenwraith/cubit/physics"
	"github.com/lixenwraith/cubit/physics/physicstest"
	"github.com/lixenwraith/cubit/tile"
	"github.com/lixenwraith/cubit/vmath"
)

func testLevel(t *testing.T, enemies ...level.Placement) *level.Level {
	t.Helper()
	g, err := tile.NewGrid(12, 6, 1)
	require.NoError(t, err)
	g.Fill(0, 0, 11, 0, 0, tile.Block)

	placements := append([]level.Placement{{Kind: component.KindPlayer, Position: vmath.V2(2, 1)}}, enemies...)
	return &level.Level{Name: "test", Grid: g, Placements: placements}
}

func newTestSession(t *testing.T, enemies ...level.Placement) (*Session, *physicstest.World) {
	t.Helper()
	world := physicstest.NewWorld(vmath.Vec2{})
	s, err := NewSession(Options{Level: testLevel(t, enemies...), Simulator: world, Seed: 1})
	require.NoError(t, err)
	return s, world
}

type phaseCall struct {
	name  string
	phase Phase
	steps int
}

type recordingSystem struct {
	name     string
	priority int
	world    *physicstest.World
	calls    *[]phaseCall
}

func (r *recordingSystem) Name() string  { return r.name }
func (r *recordingSystem) Priority() int { return r.priority }
func (r *recordingSystem) Update(s *Session, phase Phase) {
	*r.calls = append(*r.calls, phaseCall{name: r.name, phase: phase, steps: r.world.Steps})
}

func TestNewSession(t *testing.T) {
	s, world := newTestSession(t,
		level.Placement{Kind: component.KindRedCube, Position: vmath.V2(8, 1)},
		level.Placement{Kind: component.KindFly, Position: vmath.V2(6, 4)},
	)

	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, 2, s.EnemyCount())
	assert.Equal(t, 3, s.Registry().Len())
	assert.Equal(t, component.KindPlayer, s.Player().Kind)
	assert.Equal(t, vmath.V2(2, 1), s.Player().Position)
	assert.Len(t, world.Segments, 4, "floor strip merges into one rectangle")

	fly := s.Registry().At(2)
	require.Equal(t, component.KindFly, fly.Kind)
	assert.True(t, fly.Enemy.Flying)
	assert.Zero(t, fly.Body.GravityScale())

	_, err := NewSession(Options{})
	assert.ErrorIs(t, err, ErrNoLevel)
}

func TestSessionRoutesContactsToBridge(t *testing.T) {
	s, world := newTestSession(t)
	p := s.Player()
	require.Zero(t, s.Bridge().Active())

	world.QueueBegin(physics.Contact{
		A:      physics.Tag{Kind: physics.TagTerrain},
		B:      physics.Tag{Kind: physics.TagEntity, Handle: p.Handle},
		Normal: vmath.V2(0, 1),
	})
	s.Update(s.StepDuration())

	assert.Equal(t, 1, s.Bridge().Active())
	assert.True(t, p.Contacts.Grounded())
}

func TestSessionStepOrder(t *testing.T) {
	s, world := newTestSession(t, level.Placement{Kind: component.KindRedCube, Position: vmath.V2(8, 1)})

	var calls []phaseCall
	s.AddSystem(&recordingSystem{name: "late", priority: 50, world: world, calls: &calls})
	s.AddSystem(&recordingSystem{name: "early", priority: 10, world: world, calls: &calls})

	f := s.Update(s.StepDuration())
	require.Equal(t, 1, f.Steps)

	want := []phaseCall{
		{"early", PhaseImpulse, 0},
		{"late", PhaseImpulse, 0},
		{"early", PhaseResolve, 1},
		{"late", PhaseResolve, 1},
	}
	assert.Equal(t, want, calls)
	assert.Equal(t, s.StepDuration(), s.LevelTime())
	assert.Equal(t, uint64(1), s.Steps())
}

func TestSessionInterpolatesRenderPosition(t *testing.T) {
	s, _ := newTestSession(t, level.Placement{Kind: component.KindRedCube, Position: vmath.V2(8, 1)})
	p := s.Player()
	p.Body.SetVelocity(vmath.V2(6, 0))

	f := s.Update(s.StepDuration() + s.StepDuration()/2)
	require.Equal(t, 1, f.Steps)
	assert.InDelta(t, 0.5, f.Alpha, 1e-6)

	assert.Greater(t, p.Position.X, p.Prev.X)
	want := vmath.Lerp(p.Prev, p.Position, f.Alpha)
	assert.InDelta(t, want.X, p.Render.X, 1e-9)
	assert.InDelta(t, want.Y, p.Render.Y, 1e-9)
}

func TestSessionWinsWithoutEnemies(t *testing.T) {
	s, world := newTestSession(t)
	s.Update(3 * s.StepDuration())

	assert.Equal(t, StateWon, s.State())
	assert.Equal(t, 1, world.Steps, "steps after the outcome are skipped")

	f := s.Update(s.StepDuration())
	assert.Equal(t, Frame{}, f)
	assert.Equal(t, 1, world.Steps)
}

func TestSessionLosesOnPlayerDeath(t *testing.T) {
	s, _ := newTestSession(t, level.Placement{Kind: component.KindRedCube, Position: vmath.V2(8, 1)})
	s.Player().Damage(1000)

	s.Update(s.StepDuration())
	assert.Equal(t, StateLost, s.State())

	before := s.Steps()
	s.Update(10 * s.StepDuration())
	assert.Equal(t, before, s.Steps(), "lost is terminal")
}

func TestSessionIntentEdgesLatch(t *testing.T) {
	s, _ := newTestSession(t, level.Placement{Kind: component.KindRedCube, Position: vmath.V2(8, 1)})

	s.SetIntent(Intent{Jump: true, Fire: true})
	s.SetIntent(Intent{MoveDir: 1})
	in := s.Intent()
	assert.True(t, in.Jump, "edge survives a frame without steps")
	assert.False(t, in.Fire, "held input is replaced")
	assert.Equal(t, 1.0, in.MoveDir)

	s.Update(s.StepDuration())
	in = s.Intent()
	assert.False(t, in.Jump)
	assert.Equal(t, 1.0, in.MoveDir)
}

func TestSessionSnapshot(t *testing.T) {
	s, _ := newTestSession(t, level.Placement{Kind: component.KindRedCube, Position: vmath.V2(8, 1)})

	snap := s.Snapshot()
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, 1, snap.EnemyCount)
	require.Len(t, snap.Entities, 2)
	assert.Equal(t, component.KindPlayer, snap.Entities[0].Kind)
	assert.Equal(t, component.KindRedCube, snap.Entities[1].Kind)
	assert.Equal(t, component.WeaponBlaster, snap.Player.Equipped)
	assert.Equal(t, 15, snap.Player.Magazine)
	assert.Equal(t, 60, snap.Player.Ammo)
	assert.Same(t, s.Grid(), snap.Grid)

	snap.Entities[0].Health = 0
	assert.Equal(t, 100, s.Player().Health, "snapshot is a copy")
}

func TestSessionSpawnBullet(t *testing.T) {
	s, world := newTestSession(t, level.Placement{Kind: component.KindRedCube, Position: vmath.V2(8, 1)})

	b, err := s.SpawnBullet(component.WeaponBlaster, s.Player().Handle, vmath.V2(3, 1), vmath.V2(2, 0))
	require.NoError(t, err)
	assert.Equal(t, vmath.V2(1, 0), b.Bullet.Direction)
	assert.Equal(t, vmath.V2(25, 0), b.Body.Velocity())

	def := world.BodyOf(b.Body.Tag()).Def()
	assert.True(t, def.Sensor)
	assert.Equal(t, 0.25, def.Radius)
	assert.Zero(t, def.GravityScale)
	assert.Equal(t, 1, s.EnemyCount(), "projectiles are not enemies")

	_, err = s.SpawnEnemy(component.KindBullet, vmath.Vec2{})
	assert.ErrorIs(t, err, ErrNoVariant)
}

func ExampleState_String() {
	fmt.Println(StatePlaying, StateWon, StateLost)
	// Output: playing won lost
}
