package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/level"
	"github.com/lixenwraith/cubit/mesh"
	"github.com/lixenwraith/cubit/parameter"
	"github.com/lixenwraith/cubit/physics"
	"github.com/lixenwraith/cubit/tile"
	"github.com/lixenwraith/cubit/vmath"
)

var ErrNoLevel = errors.New("engine: session requires a level")

// State is the session outcome
type State uint8

const (
	StatePlaying State = iota
	StateWon
	StateLost
)

func (s State) String() string {
	switch s {
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	}
	return "playing"
}

// Phase is the half of a fixed step a system runs in
type Phase uint8

const (
	PhaseImpulse Phase = iota // Before the physics step: forces, spawns, timers
	PhaseResolve              // After it: contact consumption, damage, death
)

// System is a gameplay rule run every fixed step, ascending by Priority
type System interface {
	Name() string
	Priority() int
	Update(s *Session, phase Phase)
}

// SoundSink receives one-shot sound cues
type SoundSink interface {
	Play(sound core.SoundType)
}

type silentSink struct{}

func (silentSink) Play(core.SoundType) {}

// Intent is the player input for upcoming steps
// MoveDir, Aim and Fire are held state; the rest are edges consumed by one step
type Intent struct {
	MoveDir float64    // -1, 0 or 1
	Aim     vmath.Vec2 // Unit aim direction
	Fire    bool

	AltFire         bool
	Reload          bool
	Melee           bool
	Dash            bool
	Jump            bool
	SelectPrimary   bool
	SelectSecondary bool
	Swap            bool
}

// Options configures NewSession; zero values select parameter defaults
type Options struct {
	Level     *level.Level
	Tileset   *tile.Tileset
	Arsenal   *component.Arsenal
	Simulator physics.Simulator
	Sound     SoundSink
	Logger    logrus.FieldLogger
	Seed      uint64
	Step      time.Duration
	MaxSteps  int
}

// Session is the explicit context of one level run
// Owns every simulation resource; not safe for concurrent use
type Session struct {
	grid    *tile.Grid
	tileset *tile.Tileset
	arsenal component.Arsenal
	sim     physics.Simulator
	reg     *Registry
	bridge  *ContactBridge
	sched   *Scheduler
	rng     *vmath.FastRand
	sound   SoundSink
	log     logrus.FieldLogger

	systems []System
	intent  Intent

	enemies   int
	levelTime time.Duration
	steps     uint64
	state     State
}

// NewSession builds the terrain mesh and spawns the level placements, player first
func NewSession(opts Options) (*Session, error) {
	if opts.Level == nil || opts.Level.Grid == nil {
		return nil, ErrNoLevel
	}

	s := &Session{
		grid:    opts.Level.Grid,
		tileset: opts.Tileset,
		sim:     opts.Simulator,
		sound:   opts.Sound,
		log:     opts.Logger,
		rng:     vmath.NewFastRand(opts.Seed),
	}
	if s.tileset == nil {
		s.tileset = tile.DefaultTileset()
	}
	if opts.Arsenal != nil {
		s.arsenal = *opts.Arsenal
	} else {
		s.arsenal = component.DefaultArsenal()
	}
	if s.sim == nil {
		s.sim = physics.NewWorld(vmath.V2(0, parameter.Gravity), parameter.VelocityIterations, parameter.PositionIterations)
	}
	if s.sound == nil {
		s.sound = silentSink{}
	}
	if s.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.log = l
	}
	step, maxSteps := opts.Step, opts.MaxSteps
	if step <= 0 {
		step = parameter.FixedStep
	}
	if maxSteps == 0 {
		maxSteps = parameter.MaxStepsPerFrame
	}
	s.sched = NewScheduler(step, maxSteps)

	s.reg = NewRegistry(s.sim, s.log)
	s.bridge = NewContactBridge(s.reg, s.log)
	s.reg.onDestroy = s.bridge.forget
	s.sim.SetContactSink(s.bridge)

	segments := mesh.Build(s.grid, s.tileset)
	attached, err := mesh.Attach(s.sim, segments, parameter.TerrainFriction)
	if err != nil {
		return nil, fmt.Errorf("engine: attach terrain: %w", err)
	}

	if _, err := s.SpawnPlayer(opts.Level.Player().Position); err != nil {
		return nil, err
	}
	for _, p := range opts.Level.Placements {
		if !p.Kind.IsEnemy() {
			continue
		}
		if _, err := s.SpawnEnemy(p.Kind, p.Position); err != nil {
			return nil, err
		}
	}

	s.log.WithFields(logrus.Fields{
		"level":    opts.Level.Name,
		"segments": attached,
		"enemies":  s.enemies,
	}).Info("session started")
	return s, nil
}

// AddSystem registers a system and keeps systems sorted by priority
func (s *Session) AddSystem(system System) {
	s.systems = append(s.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(s.systems)-1; i++ {
		for j := 0; j < len(s.systems)-i-1; j++ {
			if s.systems[j].Priority() > s.systems[j+1].Priority() {
				s.systems[j], s.systems[j+1] = s.systems[j+1], s.systems[j]
			}
		}
	}
}

// Systems returns a copy of the ordered system list
func (s *Session) Systems() []System {
	out := make([]System, len(s.systems))
	copy(out, s.systems)
	return out
}

// SetIntent replaces held input and latches edges until a step consumes them
func (s *Session) SetIntent(in Intent) {
	prev := s.intent
	s.intent = in
	s.intent.AltFire = in.AltFire || prev.AltFire
	s.intent.Reload = in.Reload || prev.Reload
	s.intent.Melee = in.Melee || prev.Melee
	s.intent.Dash = in.Dash || prev.Dash
	s.intent.Jump = in.Jump || prev.Jump
	s.intent.SelectPrimary = in.SelectPrimary || prev.SelectPrimary
	s.intent.SelectSecondary = in.SelectSecondary || prev.SelectSecondary
	s.intent.Swap = in.Swap || prev.Swap
}

// Intent returns the input seen by the current step
func (s *Session) Intent() Intent {
	return s.intent
}

func (s *Session) clearEdges() {
	s.intent = Intent{MoveDir: s.intent.MoveDir, Aim: s.intent.Aim, Fire: s.intent.Fire}
}

// Update advances the simulation by a wall-clock frame and interpolates render positions
// A finished session ignores further frames
func (s *Session) Update(frame time.Duration) Frame {
	if s.state != StatePlaying {
		return Frame{}
	}
	f := s.sched.Advance(frame, s.step)
	for _, e := range s.reg.entities {
		e.Render = vmath.Lerp(e.Prev, e.Position, f.Alpha)
	}
	if f.Dropped > 0 {
		s.log.WithField("dropped", f.Dropped).Debug("step cap reached")
	}
	return f
}

// step runs one fixed step: impulse systems, physics, resolve systems, flush
func (s *Session) step() {
	if s.state != StatePlaying {
		return
	}

	for _, sys := range s.systems {
		sys.Update(s, PhaseImpulse)
	}
	s.clearEdges()

	for _, e := range s.reg.entities {
		e.Prev = e.Position
	}
	s.sim.Step(s.sched.Step.Seconds())
	for _, e := range s.reg.entities {
		e.Position = e.Body.Position()
	}

	for _, sys := range s.systems {
		sys.Update(s, PhaseResolve)
	}
	s.reg.Flush()

	s.steps++
	s.levelTime += s.sched.Step
	s.checkOutcome()
}

func (s *Session) checkOutcome() {
	switch {
	case s.reg.Player().Health <= 0:
		s.state = StateLost
	case s.enemies <= 0:
		s.state = StateWon
	default:
		return
	}
	s.log.WithFields(logrus.Fields{
		"state": s.state,
		"time":  s.levelTime,
	}).Info("session finished")
}

// EnemyKilled decrements the live-enemy counter; called once per dead enemy
func (s *Session) EnemyKilled() {
	if s.enemies > 0 {
		s.enemies--
	}
}

func (s *Session) State() State                { return s.state }
func (s *Session) EnemyCount() int             { return s.enemies }
func (s *Session) Player() *Entity             { return s.reg.Player() }
func (s *Session) Registry() *Registry         { return s.reg }
func (s *Session) Grid() *tile.Grid            { return s.grid }
func (s *Session) Tileset() *tile.Tileset      { return s.tileset }
func (s *Session) Arsenal() *component.Arsenal { return &s.arsenal }
func (s *Session) Rand() *vmath.FastRand       { return s.rng }
func (s *Session) Sound() SoundSink            { return s.sound }
func (s *Session) Logger() logrus.FieldLogger  { return s.log }
func (s *Session) LevelTime() time.Duration    { return s.levelTime }
func (s *Session) Steps() uint64               { return s.steps }
func (s *Session) Bridge() *ContactBridge      { return s.bridge }

// StepDuration returns the fixed step length
func (s *Session) StepDuration() time.Duration {
	return s.sched.Step
}
