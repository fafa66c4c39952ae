package engine

import (
	"fmt"

	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/parameter"
	"github.com/lixenwraith/cubit/vmath"
)

// SpawnPlayer creates the player with the stock loadout; only valid once per session
func (s *Session) SpawnPlayer(pos vmath.Vec2) (*Entity, error) {
	pc := component.NewPlayerComponent(&s.arsenal)
	pc.DashCooldown = parameter.PlayerDashInitialCooldown

	e := &Entity{
		Kind:          component.KindPlayer,
		Position:      pos,
		Size:          vmath.V2(parameter.PlayerHalfSize, parameter.PlayerHalfSize),
		Health:        parameter.PlayerStartHealth,
		StartHealth:   parameter.PlayerStartHealth,
		Speed:         parameter.PlayerSpeed,
		Density:       parameter.PlayerDensity,
		LinearDamping: parameter.PlayerLinearDamping,
		Player:        pc,
	}
	if _, err := s.reg.Spawn(e); err != nil {
		return nil, err
	}
	return e, nil
}

// SpawnEnemy creates a RedCube or Fly and counts it toward the win condition
func (s *Session) SpawnEnemy(kind component.Kind, pos vmath.Vec2) (*Entity, error) {
	e := &Entity{
		Kind:          kind,
		Position:      pos,
		Size:          vmath.V2(parameter.EnemyHalfSize, parameter.EnemyHalfSize),
		Density:       parameter.EnemyDensity,
		LinearDamping: parameter.EnemyLinearDamping,
	}

	switch kind {
	case component.KindRedCube:
		e.Health = parameter.RedCubeHealth
		e.Speed = parameter.RedCubeSpeed
		e.Enemy = &component.EnemyComponent{
			AttackTimer:  parameter.RedCubeAttackPeriod,
			AttackPeriod: parameter.RedCubeAttackPeriod,
			ShootRange:   parameter.RedCubeShootRange,
			DetectRange:  parameter.RedCubeDetectRange,
			Weapon:       component.WeaponRedBlaster,
		}
	case component.KindFly:
		e.Health = parameter.FlyHealth
		e.Speed = parameter.FlySpeed
		e.Enemy = &component.EnemyComponent{
			AttackTimer:  parameter.FlyAttackPeriod,
			AttackPeriod: parameter.FlyAttackPeriod,
			ShootRange:   parameter.FlyShootRange,
			DetectRange:  parameter.FlyDetectRange,
			Weapon:       component.WeaponRedBlaster,
			Flying:       true,
		}
	default:
		return nil, fmt.Errorf("spawn enemy %s: %w", kind, ErrNoVariant)
	}
	e.StartHealth = e.Health

	if _, err := s.reg.Spawn(e); err != nil {
		return nil, err
	}
	s.enemies++
	return e, nil
}

// SpawnBullet creates a projectile of weapon w fired by source along dir
func (s *Session) SpawnBullet(w component.WeaponType, source core.Handle, pos, dir vmath.Vec2) (*Entity, error) {
	spec := s.arsenal.Spec(w)
	dir = dir.Normalize()

	e := &Entity{
		Kind:     component.KindBullet,
		Position: pos,
		Size:     vmath.V2(spec.BulletSize, spec.BulletSize),
		Speed:    spec.BulletSpeed,
		Bullet: &component.BulletComponent{
			Weapon:    w,
			Source:    source,
			Origin:    pos,
			Direction: dir,
			Sensor:    spec.BulletSensor,
		},
	}
	if _, err := s.reg.Spawn(e); err != nil {
		return nil, err
	}
	e.Body.SetVelocity(dir.Scale(spec.BulletSpeed))
	return e, nil
}
