package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/cubit/core"
)

// Player mixes one-shot cues onto the speaker; it satisfies engine.SoundSink
type Player struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	log         logrus.FieldLogger
	mixer       *beep.Mixer
	initialized bool
	speaker     bool // mixer is owned by the speaker goroutine
	muted       bool
}

// NewPlayer creates a player; nothing is audible until Initialize succeeds
func NewPlayer(cfg *AudioConfig, log logrus.FieldLogger) *Player {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Player{
		cfg:   cfg,
		log:   log,
		mixer: &beep.Mixer{},
		muted: !cfg.Enabled,
	}
}

// Initialize opens the speaker. Failure leaves the player silent; callers may keep running
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(p.mixer)

	p.initialized = true
	p.speaker = true
	p.log.WithField("sample_rate", p.cfg.SampleRate).Debug("audio initialized")
	return nil
}

// Play queues a cue; dropped when uninitialized, muted or unknown
func (p *Player) Play(st core.SoundType) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}

	s := GetSoundEffect(st, p.cfg)
	if s == nil {
		p.log.WithField("sound", int(st)).Warn("unknown sound cue")
		return
	}

	if p.speaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(s)
}

// ToggleMute flips mute, returns true if sound is now audible
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return !p.muted
}

// Pending returns the number of cues still mixing
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.speaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Cleanup stops all playback and closes the speaker
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	if p.speaker {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
		speaker.Close()
	} else {
		p.mixer.Clear()
	}
	p.initialized = false
	p.speaker = false
}
