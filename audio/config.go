package audio

import (
	"fmt"

	"github.com/lixenwraith/cubit/core"
)

// AudioConfig holds playback settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0 to 1.0
	SampleRate    int
	EffectVolumes map[core.SoundType]float64
}

// DefaultAudioConfig returns audio enabled at half volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
		EffectVolumes: map[core.SoundType]float64{
			core.SoundGun:         0.6,
			core.SoundShotgun:     0.8,
			core.SoundDash:        0.5,
			core.SoundSwordSwing:  0.7,
			core.SoundDamageEnemy: 0.6,
		},
	}
}

// SetEffectVolumes applies per-cue volumes keyed by cue name ("gun", "dash", ...)
func (c *AudioConfig) SetEffectVolumes(volumes map[string]float64) error {
	for name, v := range volumes {
		st, ok := parseSoundType(name)
		if !ok {
			return fmt.Errorf("unknown sound %q", name)
		}
		c.EffectVolumes[st] = clamp01(v)
	}
	return nil
}

// SetMasterVolume sets the master volume from a 0-100 percentage
func (c *AudioConfig) SetMasterVolume(percent int) {
	c.MasterVolume = clamp01(float64(percent) / 100.0)
}

func parseSoundType(name string) (core.SoundType, bool) {
	for st := core.SoundType(0); st < core.SoundTypeCount; st++ {
		if st.String() == name {
			return st, true
		}
	}
	return 0, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
