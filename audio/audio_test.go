package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cubit/core"
)

// drain streams s to exhaustion and returns the sample count
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		total += n
		for _, v := range buf[:n] {
			require.LessOrEqual(t, v[0], 1.0)
			require.GreaterOrEqual(t, v[0], -1.0)
		}
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never ended")
	return 0
}

func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, rate)
		assert.Equal(t, rate.N(100*time.Millisecond), drain(t, osc))
		assert.NoError(t, osc.Err())
	}
}

func TestOscillatorSquareLevels(t *testing.T) {
	osc := NewOscillator(220, 10*time.Millisecond, WaveSquare, beep.SampleRate(44100))
	buf := make([][2]float64, 64)
	n, ok := osc.Stream(buf)
	require.True(t, ok)
	for _, v := range buf[:n] {
		assert.Contains(t, []float64{-1, 1}, v[0])
	}
}

func TestEnvelopeShapesEdges(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate) // phase stays 0: constant 1.0
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, 100)
	n, _ := env.Stream(buf)
	require.Equal(t, 100, n)
	assert.Zero(t, buf[0][0], "attack starts silent")
	assert.Equal(t, 1.0, buf[50][0], "sustain is full")
	assert.InDelta(t, 0.1, buf[99][0], 1e-9, "release ramps down")
}

func TestEveryCueTerminates(t *testing.T) {
	cfg := DefaultAudioConfig()
	for st := core.SoundType(0); st < core.SoundTypeCount; st++ {
		t.Run(st.String(), func(t *testing.T) {
			s := GetSoundEffect(st, cfg)
			require.NotNil(t, s)
			assert.Positive(t, drain(t, s))
		})
	}
	assert.Nil(t, GetSoundEffect(core.SoundTypeCount, cfg))
}

func TestConfigVolumes(t *testing.T) {
	cfg := DefaultAudioConfig()
	require.Len(t, cfg.EffectVolumes, int(core.SoundTypeCount))

	require.NoError(t, cfg.SetEffectVolumes(map[string]float64{"dash": 2, "gun": 0.25}))
	assert.Equal(t, 1.0, cfg.EffectVolumes[core.SoundDash])
	assert.Equal(t, 0.25, cfg.EffectVolumes[core.SoundGun])
	assert.Error(t, cfg.SetEffectVolumes(map[string]float64{"bell": 1}))

	cfg.SetMasterVolume(150)
	assert.Equal(t, 1.0, cfg.MasterVolume)
	cfg.SetMasterVolume(-5)
	assert.Zero(t, cfg.MasterVolume)
}

func TestPlayerUninitializedIsSilent(t *testing.T) {
	p := NewPlayer(nil, nil)
	assert.NotPanics(t, func() {
		p.Play(core.SoundGun)
		p.Cleanup()
	})
	assert.Zero(t, p.Pending())
}

func TestPlayerDisabledSkipsSpeaker(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	p := NewPlayer(cfg, nil)
	require.NoError(t, p.Initialize())
	p.Play(core.SoundGun)
	assert.Zero(t, p.Pending())
}

func TestPlayerMixesCues(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	p := NewPlayer(nil, log)
	p.initialized = true // mixer without a speaker attached

	p.Play(core.SoundGun)
	p.Play(core.SoundDamageEnemy)
	assert.Equal(t, 2, p.Pending())

	p.Play(core.SoundTypeCount)
	assert.Equal(t, 2, p.Pending())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "unknown sound cue", hook.LastEntry().Message)

	assert.False(t, p.ToggleMute())
	p.Play(core.SoundDash)
	assert.Equal(t, 2, p.Pending())
	assert.True(t, p.ToggleMute())

	// Mixer drops finished streamers as it streams
	buf := make([][2]float64, 1024)
	for i := 0; i < 100 && p.Pending() > 0; i++ {
		p.mixer.Stream(buf)
	}
	assert.Zero(t, p.Pending())

	p.Cleanup()
	p.Play(core.SoundGun)
	assert.Zero(t, p.Pending())
}
