package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/cubit/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Cue timings
const (
	gunDuration     = 90 * time.Millisecond
	gunAttack       = 2 * time.Millisecond
	gunRelease      = 70 * time.Millisecond
	shotgunDuration = 220 * time.Millisecond
	shotgunAttack   = 3 * time.Millisecond
	shotgunRelease  = 180 * time.Millisecond
	dashDuration    = 160 * time.Millisecond
	dashAttack      = 20 * time.Millisecond
	dashRelease     = 100 * time.Millisecond
	swingDuration   = 120 * time.Millisecond
	swingAttack     = 30 * time.Millisecond
	swingRelease    = 80 * time.Millisecond
	damageNote1     = 50 * time.Millisecond
	damageNote2     = 80 * time.Millisecond
	damageAttack    = 2 * time.Millisecond
	damageRelease   = 40 * time.Millisecond
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	sweep    float64 // Hz per second, applied linearly
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

// NewSweep creates an oscillator whose frequency moves linearly from one value to another
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		sweep:    (to - from) / duration.Seconds(),
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq + o.sweep*float64(o.position)/float64(o.rate)
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = math.Max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func cueVolume(cfg *AudioConfig, st core.SoundType) float64 {
	return cfg.EffectVolumes[st] * cfg.MasterVolume
}

// CreateGunSound generates a short descending square chirp
func CreateGunSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewSweep(900, 300, gunDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, gunDuration, gunAttack, gunRelease, rate)

	return newVolume(shaped, cueVolume(cfg, core.SoundGun))
}

// CreateShotgunSound generates a noise burst over a low thump
func CreateShotgunSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, shotgunDuration, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, shotgunDuration, shotgunAttack, shotgunRelease, rate)

	thump := NewSweep(140, 50, shotgunDuration, WaveSine, rate)
	thumpShaped := NewEnvelope(thump, shotgunDuration, shotgunAttack, shotgunRelease, rate)

	mixed := beep.Mix(
		newVolume(noiseShaped, 0.6),
		newVolume(thumpShaped, 0.4),
	)
	return newVolume(mixed, cueVolume(cfg, core.SoundShotgun))
}

// CreateDashSound generates a rising whoosh
func CreateDashSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, dashDuration, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, dashDuration, dashAttack, dashRelease, rate)

	rise := NewSweep(200, 600, dashDuration, WaveSine, rate)
	riseShaped := NewEnvelope(rise, dashDuration, dashAttack, dashRelease, rate)

	mixed := beep.Mix(
		newVolume(noiseShaped, 0.5),
		newVolume(riseShaped, 0.3),
	)
	return newVolume(mixed, cueVolume(cfg, core.SoundDash))
}

// CreateSwingSound generates a falling saw swish
func CreateSwingSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewSweep(500, 150, swingDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, swingDuration, swingAttack, swingRelease, rate)

	return newVolume(shaped, cueVolume(cfg, core.SoundSwordSwing))
}

// CreateDamageSound generates a two-note hit blip
func CreateDamageSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	n1 := NewOscillator(440, damageNote1, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, damageNote1, damageAttack, damageRelease, rate)

	n2 := NewOscillator(220, damageNote2, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, damageNote2, damageAttack, damageRelease, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), cueVolume(cfg, core.SoundDamageEnemy))
}

// GetSoundEffect returns the streamer for a cue, nil for unknown types
func GetSoundEffect(st core.SoundType, cfg *AudioConfig) beep.Streamer {
	switch st {
	case core.SoundGun:
		return CreateGunSound(cfg)
	case core.SoundShotgun:
		return CreateShotgunSound(cfg)
	case core.SoundDash:
		return CreateDashSound(cfg)
	case core.SoundSwordSwing:
		return CreateSwingSound(cfg)
	case core.SoundDamageEnemy:
		return CreateDamageSound(cfg)
	default:
		return nil
	}
}
