package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/engine"
	"github.com/lixenwraith/cubit/input"
	"github.com/lixenwraith/cubit/level"
	"github.com/lixenwraith/cubit/parameter"
	"github.com/lixenwraith/cubit/physics"
	"github.com/lixenwraith/cubit/render"
	"github.com/lixenwraith/cubit/system"
	"github.com/lixenwraith/cubit/vmath"
)

// frameInterval paces rendering; simulation runs on the fixed step regardless
const frameInterval = 16 * time.Millisecond

// muter is the optional mute control of the sound sink
type muter interface {
	ToggleMute() bool
}

// game binds one screen to a session and restarts it on demand
type game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	mapper   *input.Mapper
	clock    *engine.FrameClock
	tp       engine.TimeProvider

	lvl      *level.Level
	arsenal  component.Arsenal
	sound    engine.SoundSink
	log      logrus.FieldLogger
	seed     uint64
	maxSteps int

	session *engine.Session
	runs    int
}

type gameOptions struct {
	Screen   tcell.Screen
	Level    *level.Level
	Arsenal  component.Arsenal
	Keys     *input.KeyTable
	Hold     time.Duration
	Sound    engine.SoundSink
	Logger   logrus.FieldLogger
	Seed     uint64
	MaxSteps int
	Time     engine.TimeProvider
}

func newGame(opts gameOptions) (*game, error) {
	if opts.Time == nil {
		opts.Time = engine.SystemTime{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	g := &game{
		screen:   opts.Screen,
		renderer: render.NewRenderer(opts.Screen),
		mapper:   input.NewMapper(opts.Keys, opts.Hold),
		tp:       opts.Time,
		lvl:      opts.Level,
		arsenal:  opts.Arsenal,
		sound:    opts.Sound,
		log:      opts.Logger,
		seed:     opts.Seed,
		maxSteps: opts.MaxSteps,
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// restart discards the running session and reloads the level into a fresh world
func (g *game) restart() error {
	world := physics.NewWorld(vmath.V2(0, parameter.Gravity), parameter.VelocityIterations, parameter.PositionIterations)
	seed := g.seed
	if seed == 0 {
		seed = uint64(g.tp.Now().UnixNano())
	}
	arsenal := g.arsenal

	s, err := engine.NewSession(engine.Options{
		Level:     g.lvl,
		Arsenal:   &arsenal,
		Simulator: world,
		Sound:     g.sound,
		Logger:    g.log,
		Seed:      seed + uint64(g.runs),
		MaxSteps:  g.maxSteps,
	})
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	system.Register(s)

	g.session = s
	g.runs++
	g.mapper.Reset()
	g.clock = engine.NewFrameClock(g.tp)
	return nil
}

// handleEvent applies one terminal event; returns false to quit
func (g *game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch g.mapper.Handle(ev, g.tp.Now()) {
		case input.ActionQuit:
			return false
		case input.ActionRestart:
			if err := g.restart(); err != nil {
				g.log.WithError(err).Error("restart failed")
				return false
			}
			g.log.WithField("run", g.runs).Info("level restarted")
		case input.ActionToggleMute:
			if m, ok := g.sound.(muter); ok {
				g.log.WithField("audible", m.ToggleMute()).Debug("mute toggled")
			}
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

// frame advances the session by wall time and draws it
func (g *game) frame() engine.Frame {
	g.session.SetIntent(g.mapper.Intent(g.tp.Now()))
	prev := g.session.State()
	f := g.session.Update(g.clock.Tick())
	if f.Dropped > 0 {
		g.log.WithField("dropped", f.Dropped).Debug("frame over step cap")
	}
	if state := g.session.State(); state != prev {
		g.log.WithFields(logrus.Fields{
			"state":      state,
			"level_time": g.session.LevelTime(),
			"contacts":   g.session.Bridge().Active(),
		}).Info("level finished")
	}
	g.renderer.Draw(g.session.Snapshot())
	return f
}

// run polls the screen on its own goroutine and drives frames until quit
func (g *game) run(events <-chan tcell.Event) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !g.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			g.frame()
		}
	}
}
