package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/cubit/component"
)

// ErrUnknownWeapon reports a weapon name the arsenal has no slot for
var ErrUnknownWeapon = errors.New("config: unknown weapon")

// LoadArsenal reads YAML weapon overrides from path on top of base
// An empty path returns base unchanged
func LoadArsenal(path string, base component.Arsenal) (component.Arsenal, error) {
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("weapons: %w", err)
	}
	return DecodeArsenal(data, base)
}

// DecodeArsenal applies overrides keyed by weapon name; only listed fields change
//
//	Blaster:
//	  damage: 40
//	  fire_rate: 250ms
func DecodeArsenal(data []byte, base component.Arsenal) (component.Arsenal, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return base, fmt.Errorf("weapons parse: %w", err)
	}

	out := base
	for name, node := range raw {
		w, ok := component.ParseWeapon(name)
		if !ok {
			return base, fmt.Errorf("%w: %q", ErrUnknownWeapon, name)
		}
		spec := out[w]
		if err := node.Decode(&spec); err != nil {
			return base, fmt.Errorf("weapons %s: %w", name, err)
		}
		if err := validateSpec(spec); err != nil {
			return base, fmt.Errorf("weapons %s: %w", name, err)
		}
		out[w] = spec
	}
	return out, nil
}

func validateSpec(s component.WeaponSpec) error {
	switch {
	case s.Damage < 0:
		return errors.New("damage is negative")
	case s.FireRate < 0 || s.AltFireRate < 0 || s.ReloadSpeed < 0:
		return errors.New("timing is negative")
	case s.MaxMag < 0 || s.Reserve < 0:
		return errors.New("ammo is negative")
	case s.BulletSpeed < 0 || s.BulletSize < 0 || s.Range < 0:
		return errors.New("projectile value is negative")
	case s.Pellets < 0 || s.Spread < 0:
		return errors.New("pellet value is negative")
	}
	return nil
}
