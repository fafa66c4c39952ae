package system

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/engine"
	"github.com/lixenwraith/cubit/level"
	"github.com/lixenwraith/cubit/parameter"
	"github.com/lixenwraith/cubit/physics"
	"github.com/lixenwraith/cubit/physics/physicstest"
	"github.com/lixenwraith/cubit/tile"
	"github.com/lixenwraith/cubit/vmath"
)

type recordingSound struct {
	played []core.SoundType
}

func (r *recordingSound) Play(s core.SoundType) { r.played = append(r.played, s) }

func (r *recordingSound) count(s core.SoundType) int {
	n := 0
	for _, p := range r.played {
		if p == s {
			n++
		}
	}
	return n
}

type harness struct {
	t       *testing.T
	session *engine.Session
	world   *physicstest.World
	sound   *recordingSound
}

type harnessOption func(*engine.Options)

func withArsenal(a component.Arsenal) harnessOption {
	return func(o *engine.Options) { o.Arsenal = &a }
}

// newHarness builds a 20x8 room with a floor, the player at (2,1) and the given enemies
func newHarness(t *testing.T, enemies []level.Placement, systems []engine.System, opts ...harnessOption) *harness {
	t.Helper()
	g, err := tile.NewGrid(20, 8, 1)
	require.NoError(t, err)
	g.Fill(0, 0, 19, 0, 0, tile.Block)

	placements := append([]level.Placement{{Kind: component.KindPlayer, Position: vmath.V2(2, 1)}}, enemies...)
	h := &harness{
		t:     t,
		world: physicstest.NewWorld(vmath.Vec2{}),
		sound: &recordingSound{},
	}
	o := engine.Options{
		Level:     &level.Level{Name: "test", Grid: g, Placements: placements},
		Simulator: h.world,
		Sound:     h.sound,
		Seed:      7,
	}
	for _, fn := range opts {
		fn(&o)
	}
	h.session, err = engine.NewSession(o)
	require.NoError(t, err)
	for _, sys := range systems {
		h.session.AddSystem(sys)
	}
	return h
}

func cubeAt(x, y float64) level.Placement {
	return level.Placement{Kind: component.KindRedCube, Position: vmath.V2(x, y)}
}

func (h *harness) steps(n int) {
	for i := 0; i < n; i++ {
		f := h.session.Update(h.session.StepDuration())
		require.Equal(h.t, 1, f.Steps)
	}
}

func (h *harness) bullets() []*engine.Entity {
	var out []*engine.Entity
	h.session.Registry().Each(func(e *engine.Entity) {
		if e.Kind == component.KindBullet {
			out = append(out, e)
		}
	})
	return out
}

func (h *harness) impulses(e *engine.Entity) []vmath.Vec2 {
	return h.world.BodyOf(e.Body.Tag()).Impulses
}

func tagOf(e *engine.Entity) physics.Tag {
	return physics.Tag{Kind: physics.TagEntity, Handle: e.Handle}
}

func TestBulletDamageAppliedExactlyOnce(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(8, 1)}, Defaults()[4:])
	reg := h.session.Registry()
	cube := reg.At(1)

	bullet, err := h.session.SpawnBullet(component.WeaponBlaster, h.session.Player().Handle, vmath.V2(7, 1), vmath.V2(1, 0))
	require.NoError(t, err)

	// Overlap reported twice in the same step, then again on the next
	h.world.QueueBegin(physics.Contact{A: tagOf(bullet), B: tagOf(cube)})
	h.world.QueueBegin(physics.Contact{A: tagOf(cube), B: tagOf(bullet)})
	h.steps(1)

	assert.Equal(t, parameter.RedCubeHealth-30, cube.Health)
	assert.Nil(t, reg.Get(bullet.Handle), "bullet destroyed in the pass that applied damage")

	h.world.QueueBegin(physics.Contact{A: tagOf(bullet), B: tagOf(cube)})
	h.steps(3)
	assert.Equal(t, parameter.RedCubeHealth-30, cube.Health)
	assert.Equal(t, 1, h.sound.count(core.SoundDamageEnemy))
}

func TestBulletTerrainHitDestroys(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(8, 1)}, Defaults()[4:])
	bullet, err := h.session.SpawnBullet(component.WeaponBlaster, h.session.Player().Handle, vmath.V2(3, 1), vmath.V2(0, -1))
	require.NoError(t, err)

	h.world.QueueBegin(physics.Contact{A: physics.Tag{Kind: physics.TagTerrain}, B: tagOf(bullet)})
	h.steps(1)
	assert.Nil(t, h.session.Registry().Get(bullet.Handle))
	assert.Equal(t, parameter.RedCubeHealth, h.session.Registry().At(1).Health)
}

func TestDeathRemovesEnemyAndWins(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(8, 1), cubeAt(12, 1)}, Defaults()[4:])
	reg := h.session.Registry()
	first, second := reg.At(1), reg.At(2)
	first.Health = 10

	bullet, err := h.session.SpawnBullet(component.WeaponBlaster, h.session.Player().Handle, vmath.V2(7, 1), vmath.V2(1, 0))
	require.NoError(t, err)
	h.world.QueueBegin(physics.Contact{A: tagOf(bullet), B: tagOf(first)})
	h.steps(1)

	assert.Nil(t, reg.Get(first.Handle), "dead enemy removed in the same pass")
	assert.Equal(t, 1, h.session.EnemyCount())
	assert.Equal(t, engine.StatePlaying, h.session.State())
	assert.Equal(t, 2, reg.Len())

	second.Damage(second.Health)
	h.steps(1)
	assert.Zero(t, h.session.EnemyCount())
	assert.Equal(t, engine.StateWon, h.session.State())
}

func TestBulletRangeCutoff(t *testing.T) {
	arsenal := component.DefaultArsenal()
	arsenal[component.WeaponBlaster].BulletSpeed = 30
	arsenal[component.WeaponBlaster].Range = 4.75

	h := newHarness(t, []level.Placement{cubeAt(18, 6)}, Defaults()[4:], withArsenal(arsenal))
	bullet, err := h.session.SpawnBullet(component.WeaponBlaster, h.session.Player().Handle, vmath.V2(2, 4), vmath.V2(1, 0))
	require.NoError(t, err)

	// 0.5 units per step: 4.5 after nine steps, 5.0 after ten
	h.steps(9)
	require.NotNil(t, h.session.Registry().Get(bullet.Handle))
	assert.InDelta(t, 6.5, bullet.Position.X, 1e-3)

	h.steps(1)
	assert.Nil(t, h.session.Registry().Get(bullet.Handle))
}

func TestEnemyBulletOnlyHurtsPlayer(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(8, 1), cubeAt(10, 1)}, Defaults()[4:])
	reg := h.session.Registry()
	shooter, other := reg.At(1), reg.At(2)

	bullet, err := h.session.SpawnBullet(component.WeaponRedBlaster, shooter.Handle, vmath.V2(9, 1), vmath.V2(1, 0))
	require.NoError(t, err)
	h.world.QueueBegin(physics.Contact{A: tagOf(bullet), B: tagOf(other)})
	h.steps(1)

	assert.Nil(t, reg.Get(bullet.Handle))
	assert.Equal(t, parameter.RedCubeHealth, other.Health)
}

func TestReinforcementOnPlayerHit(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(8, 1)}, Defaults()[4:])
	reg := h.session.Registry()
	player := h.session.Player()
	shooter := reg.At(1)

	const hits = 16
	for i := 0; i < hits; i++ {
		bullet, err := h.session.SpawnBullet(component.WeaponRedBlaster, shooter.Handle, vmath.V2(3, 1), vmath.V2(-1, 0))
		require.NoError(t, err)
		h.world.QueueBegin(physics.Contact{A: tagOf(player), B: tagOf(bullet)})
		h.steps(1)
		require.Nil(t, reg.Get(bullet.Handle))
	}

	assert.Equal(t, parameter.PlayerStartHealth-hits*5, player.Health)

	cubes := 0
	reg.Each(func(e *engine.Entity) {
		if e.Kind == component.KindRedCube {
			cubes++
		}
	})
	assert.Equal(t, cubes, h.session.EnemyCount(), "every reinforcement is counted")
	assert.Greater(t, cubes, 1, "sixteen fair rolls produce at least one reinforcement")
	assert.Less(t, cubes, hits+1)
}

func TestReloadToFull(t *testing.T) {
	spec := component.DefaultArsenal().Spec(component.WeaponBlaster)

	w := component.WeaponState{Magazine: 0, Ammo: 10}
	require.True(t, Reload(&w, spec))
	assert.Equal(t, min(spec.MaxMag, 10), w.Magazine)
	assert.Zero(t, w.Ammo)
	assert.Equal(t, spec.ReloadSpeed, w.Timer)

	w = component.WeaponState{Magazine: 5, Ammo: 100}
	require.True(t, Reload(&w, spec))
	assert.Equal(t, spec.MaxMag, w.Magazine)
	assert.Equal(t, 90, w.Ammo)

	full := component.WeaponState{Magazine: spec.MaxMag, Ammo: 3}
	assert.False(t, Reload(&full, spec))
	assert.Equal(t, component.WeaponState{Magazine: spec.MaxMag, Ammo: 3}, full)

	dry := component.WeaponState{Magazine: 2}
	assert.False(t, Reload(&dry, spec))
	assert.Equal(t, 2, dry.Magazine)
}

func TestReloadByOne(t *testing.T) {
	spec := component.DefaultArsenal().Spec(component.WeaponRevolver)
	w := component.WeaponState{Magazine: 0, Ammo: 5}

	require.True(t, Reload(&w, spec))
	assert.Equal(t, 1, w.Magazine)
	assert.Equal(t, 4, w.Ammo)
	assert.Equal(t, spec.ReloadSpeed, w.ReloadTimer)

	w.Timer = 0
	assert.False(t, Reload(&w, spec), "gated by the reload timer")
	assert.Equal(t, 1, w.Magazine)
	assert.Equal(t, spec.ReloadSpeed, w.Timer, "gated reload still holds the trigger")

	w.ReloadTimer = 0
	require.True(t, Reload(&w, spec))
	assert.Equal(t, 2, w.Magazine)
}

func TestFireSpawnsAndConsumes(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(18, 1)}, []engine.System{NewWeaponSystem()})
	pc := h.session.Player().Player

	h.session.SetIntent(engine.Intent{Fire: true, Aim: vmath.V2(1, 0)})
	h.steps(1)

	bullets := h.bullets()
	require.Len(t, bullets, 1)
	assert.Equal(t, component.WeaponBlaster, bullets[0].Bullet.Weapon)
	assert.Equal(t, h.session.Player().Handle, bullets[0].Bullet.Source)
	assert.InDelta(t, 2+parameter.PlayerMuzzleOffset, bullets[0].Bullet.Origin.X, 1e-9)
	assert.Equal(t, 14, pc.Current().Magazine)
	assert.Equal(t, 300*time.Millisecond, pc.Current().Timer)
	assert.Equal(t, 1, h.sound.count(core.SoundGun))

	// Timer never ticks without the player system, so the held trigger stays gated
	h.steps(5)
	assert.Len(t, h.bullets(), 1)
}

func TestFireWithEmptyMagazineIsNoop(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(18, 1)}, []engine.System{NewWeaponSystem()})
	pc := h.session.Player().Player
	pc.Current().Magazine = 0
	pc.Current().Ammo = 10

	h.session.SetIntent(engine.Intent{Fire: true, Aim: vmath.V2(1, 0)})
	h.steps(3)

	assert.Empty(t, h.bullets())
	assert.Zero(t, pc.Current().Magazine)
	assert.Equal(t, 10, pc.Current().Ammo, "reserve untouched")
	assert.Zero(t, pc.Current().Timer)
	assert.Empty(t, h.sound.played)

	spec := h.session.Arsenal().Spec(pc.Equipped)
	require.False(t, spec.ReloadByOne)
	require.True(t, Reload(pc.Current(), spec))
	assert.Equal(t, min(spec.MaxMag, 10), pc.Current().Magazine)
	assert.Equal(t, 10-pc.Current().Magazine, pc.Current().Ammo)
}

func TestShotgunPelletFanAndRecoil(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(18, 1)}, []engine.System{NewWeaponSystem()})
	p := h.session.Player()
	p.Player.Equipped = component.WeaponShotgun
	p.Player.JumpForce = 100

	// Aim straight down at the floor one tile below: recoil pushes up
	aim := vmath.V2(0, -1)
	h.session.SetIntent(engine.Intent{Fire: true, Aim: aim})
	h.steps(1)

	pellets := h.bullets()
	require.Len(t, pellets, 10)
	for _, b := range pellets {
		assert.Greater(t, b.Bullet.Direction.Dot(aim), 0.0, "pellets stay on the aim hemisphere")
		assert.InDelta(t, 1.0, b.Bullet.Direction.Mag(), 1e-9)
	}
	assert.Equal(t, 3, p.Player.Current().Magazine)

	imp := h.impulses(p)
	require.Len(t, imp, 1)
	assert.Zero(t, imp[0].X)
	assert.InDelta(t, 200, imp[0].Y, 1e-9, "wall closer than one unit applies full recoil")
	assert.Equal(t, 1, h.sound.count(core.SoundShotgun))
}

func TestRevolverFan(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(18, 1)}, []engine.System{NewPlayerSystem(), NewWeaponSystem()})
	pc := h.session.Player().Player
	pc.Equipped = component.WeaponRevolver

	h.session.SetIntent(engine.Intent{AltFire: true, Aim: vmath.V2(1, 0)})
	h.steps(1)
	assert.Len(t, h.bullets(), 1, "fan fires on the activating step")
	assert.Equal(t, 5, pc.Current().Magazine)

	h.steps(80)
	assert.Len(t, h.bullets(), 6, "one round per interval until the magazine runs dry")
	assert.Zero(t, pc.Current().Magazine)
}

func TestMeleeHitsOnlyEnemiesInRange(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(5, 1), cubeAt(30, 1)}, []engine.System{NewMeleeSystem()})
	reg := h.session.Registry()
	near, far := reg.At(1), reg.At(2)

	h.session.SetIntent(engine.Intent{Melee: true})
	h.steps(1)

	assert.Equal(t, parameter.RedCubeHealth-50, near.Health)
	assert.Equal(t, parameter.RedCubeHealth, far.Health)
	imp := h.impulses(near)
	require.Len(t, imp, 1)
	assert.InDelta(t, parameter.MeleeImpulse*near.Body.Mass(), imp[0].X, 1e-9)
	assert.Empty(t, h.impulses(far))

	// Cooldown blocks an immediate second swing
	h.session.SetIntent(engine.Intent{Melee: true})
	h.steps(1)
	assert.Equal(t, parameter.RedCubeHealth-50, near.Health)
	assert.Equal(t, 1, h.sound.count(core.SoundSwordSwing))
}

func TestEnemyChasesAndShoots(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(6, 1)}, []engine.System{NewEnemySystem()})
	cube := h.session.Registry().At(1)

	h.steps(1)
	imp := h.impulses(cube)
	require.Len(t, imp, 1)
	assert.Equal(t, vmath.V2(-parameter.RedCubeSpeed, 0), imp[0], "moves toward the player on its left")
	assert.Empty(t, h.bullets(), "attack timer starts armed at the full period")

	cube.Enemy.AttackTimer = 0
	h.steps(1)
	bullets := h.bullets()
	require.Len(t, bullets, 1)
	b := bullets[0].Bullet
	assert.Equal(t, component.WeaponRedBlaster, b.Weapon)
	assert.Equal(t, cube.Handle, b.Source)
	assert.Less(t, b.Direction.X, 0.0)
	assert.Equal(t, parameter.RedCubeAttackPeriod, cube.Enemy.AttackTimer)
}

func TestEnemyOutOfRangeIdles(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(19, 1)}, []engine.System{NewEnemySystem()})
	cube := h.session.Registry().At(1)
	cube.Enemy.AttackTimer = 0

	h.steps(2)
	assert.Empty(t, h.impulses(cube))
	assert.Empty(t, h.bullets())
}

func TestFlyStaysWeightless(t *testing.T) {
	h := newHarness(t, []level.Placement{{Kind: component.KindFly, Position: vmath.V2(10, 5)}}, []engine.System{NewEnemySystem()})
	fly := h.session.Registry().At(1)
	fly.Body.SetGravityScale(1)

	h.steps(1)
	assert.Zero(t, fly.Body.GravityScale())
}

func TestPlayerMovement(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(18, 1)}, []engine.System{NewPlayerSystem()})
	p := h.session.Player()
	mass := p.Body.Mass()

	t.Run("air move is scaled", func(t *testing.T) {
		h.session.SetIntent(engine.Intent{MoveDir: 1})
		h.steps(1)
		imp := h.impulses(p)
		require.NotEmpty(t, imp)
		assert.InDelta(t, parameter.PlayerSpeed*mass/10*parameter.PlayerAirSpeedFactor, imp[len(imp)-1].X, 1e-9)
	})

	t.Run("grounded jump", func(t *testing.T) {
		p.Contacts.Add(component.DirDown)
		h.session.SetIntent(engine.Intent{Jump: true})
		h.steps(1)

		want := math.Sqrt(parameter.PlayerJumpHeight*-parameter.Gravity*(2+parameter.PlayerLinearDamping)) * mass
		assert.InDelta(t, want, p.Player.JumpForce, 1e-9)
		imp := h.impulses(p)
		assert.InDelta(t, want, imp[len(imp)-1].Y, 1e-9)
		p.Contacts.Reset()
	})

	t.Run("no jump in the air", func(t *testing.T) {
		n := len(h.impulses(p))
		h.session.SetIntent(engine.Intent{Jump: true})
		h.steps(1)
		assert.Len(t, h.impulses(p), n)
	})

	t.Run("dash respects cooldown", func(t *testing.T) {
		p.Player.DashCooldown = 0
		h.session.SetIntent(engine.Intent{MoveDir: -1, Dash: true})
		h.steps(1)
		imp := h.impulses(p)
		assert.InDelta(t, -parameter.PlayerDashImpulse*mass, imp[len(imp)-1].X, 1e-9)
		assert.Equal(t, 1, h.sound.count(core.SoundDash))

		h.session.SetIntent(engine.Intent{MoveDir: -1, Dash: true})
		h.steps(1)
		assert.Equal(t, 1, h.sound.count(core.SoundDash))
		assert.Equal(t, -1.0, p.Player.MoveDir)
	})

	t.Run("falling raises gravity", func(t *testing.T) {
		h.session.SetIntent(engine.Intent{})
		p.Body.SetVelocity(vmath.V2(0, -1))
		h.steps(1)
		assert.Equal(t, parameter.PlayerFallGravityScale, p.Body.GravityScale())
	})

	t.Run("ground drag snaps to rest", func(t *testing.T) {
		p.Contacts.Add(component.DirDown)
		p.Body.SetVelocity(vmath.V2(0.005, 0))
		h.steps(1)
		assert.Zero(t, p.Body.Velocity().X)
		assert.Equal(t, 1.0, p.Body.GravityScale())
	})
}

func TestPlayerWeaponSelection(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(18, 1)}, []engine.System{NewPlayerSystem()})
	pc := h.session.Player().Player

	h.session.SetIntent(engine.Intent{Swap: true})
	h.steps(1)
	assert.Equal(t, component.WeaponRevolver, pc.Equipped)

	h.session.SetIntent(engine.Intent{Swap: true})
	h.steps(1)
	assert.Equal(t, component.WeaponBlaster, pc.Equipped)

	h.session.SetIntent(engine.Intent{SelectSecondary: true})
	h.steps(1)
	assert.Equal(t, component.WeaponRevolver, pc.Equipped)

	h.session.SetIntent(engine.Intent{SelectPrimary: true})
	h.steps(1)
	assert.Equal(t, component.WeaponBlaster, pc.Equipped)
}

func TestRegisterOrdersByPriority(t *testing.T) {
	h := newHarness(t, []level.Placement{cubeAt(18, 1)}, nil)
	Register(h.session)

	systems := h.session.Systems()
	require.Len(t, systems, 6)
	names := make([]string, len(systems))
	for i, s := range systems {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{"player", "weapon", "melee", "enemy", "bullet", "death"}, names)
}
