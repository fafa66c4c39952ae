package system

import (
	"math"

	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/engine"
	"github.com/lixenwraith/cubit/parameter"
	"github.com/lixenwraith/cubit/vmath"
)

// WeaponSystem fires, alt-fires and reloads the equipped player weapon
type WeaponSystem struct{}

func NewWeaponSystem() engine.System {
	return &WeaponSystem{}
}

func (s *WeaponSystem) Name() string  { return "weapon" }
func (s *WeaponSystem) Priority() int { return parameter.PriorityWeapon }

func (s *WeaponSystem) Update(session *engine.Session, phase engine.Phase) {
	if phase != engine.PhaseImpulse {
		return
	}
	p := session.Player()
	if p == nil || !p.Alive() {
		return
	}
	pc := p.Player
	in := session.Intent()
	spec := session.Arsenal().Spec(pc.Equipped)
	w := pc.Current()
	aim := aimDirection(in, pc)

	if in.Reload {
		Reload(w, spec)
	}

	if in.Fire && pc.CanShoot() {
		s.fire(session, p, spec, aim)
		w.Magazine--
		w.Timer = spec.FireRate
	}

	if in.AltFire && pc.CanShoot() {
		w.Timer = spec.AltFireRate
		if spec.Projectile == component.ProjectileRevolver {
			w.AltFireTimer = parameter.RevolverFanWindow
			w.Timer = 0
			session.Sound().Play(core.SoundGun)
		}
	}

	// Revolver fan: one round per interval while the window is open
	if spec.Projectile == component.ProjectileRevolver && w.AltFireTimer > 0 && pc.CanShoot() {
		dir := jitter(session.Rand(), aim, parameter.RevolverFanSpread)
		pos := p.Position.Add(aim.Scale(parameter.PlayerMuzzleOffset))
		spawnBullet(session, pc.Equipped, p.Handle, pos, dir)
		w.Magazine--
		w.Timer = parameter.RevolverFanInterval
	}
}

func (s *WeaponSystem) fire(session *engine.Session, p *engine.Entity, spec component.WeaponSpec, aim vmath.Vec2) {
	weapon := p.Player.Equipped
	rng := session.Rand()

	switch spec.Projectile {
	case component.ProjectileShotgun:
		origin := p.Position.Add(aim.Scale(parameter.PlayerShotgunMuzzleOffset))

		if t, hit := session.Grid().Raycast(session.Tileset(), origin, aim, parameter.RaycastMaxDistance); hit && t <= parameter.ShotgunRecoilRange {
			inv := 1 / math.Max(t, 1)
			p.Body.ApplyImpulse(aim.Scale(-p.Player.JumpForce * 2 * inv * inv))
		}

		pellets := max(spec.Pellets, 1)
		for i := 0; i < pellets; i++ {
			spawnBullet(session, weapon, p.Handle, origin, jitter(rng, aim, spec.Spread))
		}
		session.Sound().Play(core.SoundShotgun)

	case component.ProjectileRevolver:
		pos := p.Position.Add(aim.Scale(parameter.PlayerMuzzleOffset))
		spawnBullet(session, weapon, p.Handle, pos, jitter(rng, aim, spec.Spread))
		session.Sound().Play(core.SoundGun)

	default:
		pos := p.Position.Add(aim.Scale(parameter.PlayerMuzzleOffset))
		spawnBullet(session, weapon, p.Handle, pos, aim)
		session.Sound().Play(core.SoundGun)
	}
}

// Reload applies one reload action to w under spec's policy and reports whether ammo moved
// By-one moves a single round when ReloadTimer allows; otherwise the magazine fills at once
func Reload(w *component.WeaponState, spec component.WeaponSpec) bool {
	if w.Magazine >= spec.MaxMag || w.Ammo <= 0 {
		return false
	}

	if spec.ReloadByOne {
		// Holding reload keeps the trigger blocked between rounds
		w.Timer = spec.ReloadSpeed
		if w.ReloadTimer > 0 {
			return false
		}
		w.Magazine++
		w.Ammo--
		w.ReloadTimer = spec.ReloadSpeed
		return true
	}

	n := min(spec.MaxMag-w.Magazine, w.Ammo)
	w.Magazine += n
	w.Ammo -= n
	w.Timer = spec.ReloadSpeed
	return true
}

// aimDirection falls back to the facing direction when no aim is given
func aimDirection(in engine.Intent, pc *component.PlayerComponent) vmath.Vec2 {
	if aim := in.Aim.Normalize(); !aim.IsZero() {
		return aim
	}
	return vmath.V2(pc.MoveDir, 0)
}

// jitter perturbs aim by a uniform offset in [-spread, spread] per axis, kept on the aim hemisphere
func jitter(rng *vmath.FastRand, aim vmath.Vec2, spread float64) vmath.Vec2 {
	if spread <= 0 {
		return aim
	}
	v := aim.Add(vmath.V2(rng.Range(-spread, spread), rng.Range(-spread, spread))).Normalize()
	if v.IsZero() {
		return aim
	}
	return vmath.OnHemisphere(aim, v)
}

func spawnBullet(session *engine.Session, w component.WeaponType, source core.Handle, pos, dir vmath.Vec2) {
	if _, err := session.SpawnBullet(w, source, pos, dir); err != nil {
		session.Logger().WithError(err).WithField("weapon", w).Error("bullet spawn failed")
	}
}
