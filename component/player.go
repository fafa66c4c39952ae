package component

import (
	"time"
)

// PlayerComponent holds loadout and cooldown state of the player entity
type PlayerComponent struct {
	Weapons [WeaponCount]WeaponState

	Primary   WeaponType
	Secondary WeaponType
	MeleeSlot WeaponType
	Equipped  WeaponType

	DashCooldown time.Duration
	JumpForce    float64 // Last computed jump impulse, reused for shotgun recoil
	MoveDir      float64 // Last nonzero horizontal input, -1 or 1
}

// NewPlayerComponent returns the stock loadout with full magazines and starting reserves
func NewPlayerComponent(arsenal *Arsenal) *PlayerComponent {
	p := &PlayerComponent{
		Primary:   WeaponBlaster,
		Secondary: WeaponRevolver,
		MeleeSlot: WeaponSword,
		Equipped:  WeaponBlaster,
		MoveDir:   1,
	}
	for i := range p.Weapons {
		spec := arsenal.Spec(WeaponType(i))
		p.Weapons[i].Magazine = spec.MaxMag
		p.Weapons[i].Ammo = spec.Reserve
	}
	return p
}

// Current returns the equipped slot state
func (p *PlayerComponent) Current() *WeaponState {
	return &p.Weapons[p.Equipped]
}

// CanShoot reports whether the equipped weapon may fire this step
func (p *PlayerComponent) CanShoot() bool {
	w := p.Current()
	return w.Timer <= 0 && w.Magazine > 0
}

// CanMelee reports whether the melee cooldown has expired
func (p *PlayerComponent) CanMelee() bool {
	return p.Weapons[p.MeleeSlot].Timer <= 0
}

// Tick decrements every weapon and dash timer by dt
func (p *PlayerComponent) Tick(dt time.Duration) {
	for i := range p.Weapons {
		w := &p.Weapons[i]
		if w.Timer > 0 {
			w.Timer -= dt
		}
		if w.AltFireTimer > 0 {
			w.AltFireTimer -= dt
		}
		if w.ReloadTimer > 0 {
			w.ReloadTimer -= dt
		}
	}
	if p.DashCooldown > 0 {
		p.DashCooldown -= dt
	}
}
