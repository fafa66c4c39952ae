package component

import (
	"time"
)

// WeaponType indexes the Arsenal
type WeaponType uint8

const (
	WeaponBlaster WeaponType = iota
	WeaponLaser
	WeaponRevolver
	WeaponShotgun
	WeaponRedBlaster
	WeaponSword
	WeaponCount
)

var weaponNames = [WeaponCount]string{
	WeaponBlaster:    "Blaster",
	WeaponLaser:      "Laser",
	WeaponRevolver:   "Revolver",
	WeaponShotgun:    "Shotgun",
	WeaponRedBlaster: "RedBlaster",
	WeaponSword:      "Sword",
}

func (w WeaponType) String() string {
	if w < WeaponCount {
		return weaponNames[w]
	}
	return "Unknown"
}

// ParseWeapon resolves a weapon name used in config files
func ParseWeapon(name string) (WeaponType, bool) {
	for i, n := range weaponNames {
		if n == name {
			return WeaponType(i), true
		}
	}
	return WeaponCount, false
}

// WeaponClass groups weapons by loadout slot
type WeaponClass uint8

const (
	ClassPrimary WeaponClass = iota
	ClassSecondary
	ClassMelee
	ClassEnemy
)

// ProjectileKind selects projectile resolution rules
type ProjectileKind uint8

const (
	ProjectileNone ProjectileKind = iota
	ProjectileBlaster
	ProjectileRevolver
	ProjectileShotgun
	ProjectileRedCircle
)

// WeaponSpec is the static, read-only description of a weapon type
type WeaponSpec struct {
	Class      WeaponClass    `yaml:"-"`
	Projectile ProjectileKind `yaml:"-"`
	Melee      bool           `yaml:"-"`

	Damage      int           `yaml:"damage"`
	FireRate    time.Duration `yaml:"fire_rate"`
	AltFireRate time.Duration `yaml:"alt_fire_rate"`

	MaxMag      int           `yaml:"max_mag"`
	Reserve     int           `yaml:"reserve"` // Starting reserve ammo on level load
	ReloadByOne bool          `yaml:"reload_by_one"`
	ReloadSpeed time.Duration `yaml:"reload_speed"`

	BulletSpeed  float64 `yaml:"bullet_speed"`
	BulletSize   float64 `yaml:"bullet_size"` // Projectile radius
	BulletSensor bool    `yaml:"bullet_sensor"`
	Range        float64 `yaml:"range"`

	Pellets int     `yaml:"pellets"` // Projectiles per shot, 0 or 1 for single
	Spread  float64 `yaml:"spread"`  // Uniform jitter half-width added to the aim
}

// Arsenal is the weapon table, populated once and shared by value
type Arsenal [WeaponCount]WeaponSpec

// Spec returns the spec for t by value; unknown types yield the zero spec
func (a Arsenal) Spec(t WeaponType) WeaponSpec {
	if t >= WeaponCount {
		return WeaponSpec{}
	}
	return a[t]
}

// DefaultArsenal returns the stock weapon table
func DefaultArsenal() Arsenal {
	var a Arsenal

	a[WeaponBlaster] = WeaponSpec{
		Class:        ClassPrimary,
		Projectile:   ProjectileBlaster,
		Damage:       30,
		FireRate:     300 * time.Millisecond,
		MaxMag:       15,
		Reserve:      60,
		ReloadSpeed:  1500 * time.Millisecond,
		Range:        50,
		BulletSpeed:  25,
		BulletSize:   0.25,
		BulletSensor: true,
	}

	a[WeaponLaser] = WeaponSpec{
		Class:        ClassPrimary,
		Projectile:   ProjectileBlaster,
		Damage:       60,
		FireRate:     1500 * time.Millisecond,
		MaxMag:       5,
		ReloadSpeed:  2500 * time.Millisecond,
		Range:        50,
		BulletSpeed:  25,
		BulletSize:   0.25,
		BulletSensor: true,
	}

	a[WeaponRevolver] = WeaponSpec{
		Class:        ClassSecondary,
		Projectile:   ProjectileRevolver,
		Damage:       25,
		FireRate:     time.Second,
		AltFireRate:  1500 * time.Millisecond,
		MaxMag:       6,
		Reserve:      24,
		ReloadByOne:  true,
		ReloadSpeed:  500 * time.Millisecond,
		Range:        25,
		BulletSpeed:  25,
		BulletSize:   0.1,
		BulletSensor: true,
		Spread:       0.1,
	}

	a[WeaponShotgun] = WeaponSpec{
		Class:        ClassSecondary,
		Projectile:   ProjectileShotgun,
		Damage:       18,
		FireRate:     1100 * time.Millisecond,
		MaxMag:       4,
		Reserve:      12,
		ReloadByOne:  true,
		ReloadSpeed:  500 * time.Millisecond,
		Range:        2.5,
		BulletSpeed:  25,
		BulletSize:   0.1,
		BulletSensor: true,
		Pellets:      10,
		Spread:       0.35,
	}

	a[WeaponRedBlaster] = WeaponSpec{
		Class:        ClassEnemy,
		Projectile:   ProjectileRedCircle,
		Damage:       5,
		FireRate:     300 * time.Millisecond,
		Range:        50,
		BulletSpeed:  25,
		BulletSize:   0.25,
		BulletSensor: true,
	}

	a[WeaponSword] = WeaponSpec{
		Class:    ClassMelee,
		Melee:    true,
		Damage:   50,
		FireRate: 2500 * time.Millisecond,
		Range:    15,
	}

	return a
}

// WeaponState is the per-slot mutable weapon bookkeeping of the player
type WeaponState struct {
	Timer        time.Duration // Fire-rate / reload lockout
	AltFireTimer time.Duration // Revolver fan window
	ReloadTimer  time.Duration // Reload-by-one per-round gate
	Ammo         int           // Reserve
	Magazine     int
}
