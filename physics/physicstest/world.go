// Package physicstest provides a deterministic Simulator for tests
// Bodies integrate velocity, gravity and damping without collision response;
// contacts are scripted by the test and delivered inside Step like real callbacks
package physicstest

import (
	"math"

	"github.com/lixenwraith/cubit/physics"
	"github.com/lixenwraith/cubit/vmath"
)

// Segment is a recorded static edge
type Segment struct {
	From, To vmath.Vec2
	Friction float64
}

// World is a scripted physics.Simulator
type World struct {
	Gravity vmath.Vec2

	Bodies    []*Body
	Segments  []Segment
	Steps     int
	Destroyed []physics.Tag

	sink    physics.ContactSink
	pending []scripted
	active  []physics.Contact // Delivered begins not yet ended
}

type scripted struct {
	begin bool
	c     physics.Contact
}

// NewWorld returns an empty world with the given gravity
func NewWorld(gravity vmath.Vec2) *World {
	return &World{Gravity: gravity}
}

func (w *World) SetContactSink(sink physics.ContactSink) {
	w.sink = sink
}

func (w *World) CreateBody(def physics.BodyDef) (physics.Body, error) {
	b := &Body{
		world:        w,
		def:          def,
		pos:          def.Position,
		gravityScale: def.GravityScale,
		fixtures:     1,
	}
	b.mass = massOf(def)
	w.Bodies = append(w.Bodies, b)
	return b, nil
}

func (w *World) DestroyBody(pb physics.Body) error {
	b, ok := pb.(*Body)
	if !ok || b.world != w {
		return physics.ErrForeign
	}
	if b.destroyed {
		return physics.ErrDestroyed
	}
	if b.fixtures == 0 {
		return physics.ErrNoFixtures
	}
	b.fixtures = 0
	b.destroyed = true
	w.Destroyed = append(w.Destroyed, b.def.Tag)

	tag := b.def.Tag
	kept := w.pending[:0]
	for _, s := range w.pending {
		if !involves(s.c, tag) {
			kept = append(kept, s)
		}
	}
	w.pending = kept

	// Like fixture destruction, live contacts end synchronously
	var ended []physics.Contact
	live := w.active[:0]
	for _, c := range w.active {
		if involves(c, tag) {
			ended = append(ended, c)
		} else {
			live = append(live, c)
		}
	}
	w.active = live
	if w.sink != nil {
		for _, c := range ended {
			w.sink.EndContact(c)
		}
	}
	return nil
}

func involves(c physics.Contact, tag physics.Tag) bool {
	return c.A == tag || c.B == tag
}

func (w *World) AddSegment(from, to vmath.Vec2, friction float64) error {
	w.Segments = append(w.Segments, Segment{From: from, To: to, Friction: friction})
	return nil
}

// Step integrates live bodies then delivers scripted contacts in queue order
func (w *World) Step(dt float64) {
	w.Steps++
	for _, b := range w.Bodies {
		if b.destroyed {
			continue
		}
		b.vel = b.vel.Add(w.Gravity.Scale(b.gravityScale * dt))
		if b.def.LinearDamping > 0 {
			b.vel = b.vel.Scale(1.0 / (1.0 + dt*b.def.LinearDamping))
		}
		b.pos = b.pos.Add(b.vel.Scale(dt))
	}

	pending := w.pending
	w.pending = nil
	if w.sink == nil {
		return
	}
	for _, s := range pending {
		if s.begin {
			w.active = append(w.active, s.c)
			w.sink.BeginContact(s.c)
		} else {
			w.endActive(s.c)
			w.sink.EndContact(s.c)
		}
	}
}

// endActive forgets the first live contact between the same pair
func (w *World) endActive(c physics.Contact) {
	for i, a := range w.active {
		if (a.A == c.A && a.B == c.B) || (a.A == c.B && a.B == c.A) {
			w.active = append(w.active[:i], w.active[i+1:]...)
			return
		}
	}
}

// Touching returns the number of live contacts
func (w *World) Touching() int {
	return len(w.active)
}

// QueueBegin schedules a begin-contact for the next Step
func (w *World) QueueBegin(c physics.Contact) {
	w.pending = append(w.pending, scripted{begin: true, c: c})
}

// QueueEnd schedules an end-contact for the next Step
func (w *World) QueueEnd(c physics.Contact) {
	w.pending = append(w.pending, scripted{begin: false, c: c})
}

// BodyOf returns the live body tagged with tag, nil if none
func (w *World) BodyOf(tag physics.Tag) *Body {
	for _, b := range w.Bodies {
		if !b.destroyed && b.def.Tag == tag {
			return b
		}
	}
	return nil
}

// Live counts bodies not yet destroyed
func (w *World) Live() int {
	n := 0
	for _, b := range w.Bodies {
		if !b.destroyed {
			n++
		}
	}
	return n
}

// Body is a point-mass body
type Body struct {
	world        *World
	def          physics.BodyDef
	pos, vel     vmath.Vec2
	mass         float64
	gravityScale float64
	fixtures     int
	destroyed    bool

	Impulses []vmath.Vec2 // Every impulse applied, in order
}

// Def returns the creation definition
func (b *Body) Def() physics.BodyDef { return b.def }

// DropFixtures simulates a body whose fixture was removed out of band
func (b *Body) DropFixtures() { b.fixtures = 0 }

// Destroyed reports whether DestroyBody succeeded on b
func (b *Body) Destroyed() bool { return b.destroyed }

func (b *Body) Tag() physics.Tag              { return b.def.Tag }
func (b *Body) Position() vmath.Vec2          { return b.pos }
func (b *Body) SetPosition(p vmath.Vec2)      { b.pos = p }
func (b *Body) Velocity() vmath.Vec2          { return b.vel }
func (b *Body) SetVelocity(v vmath.Vec2)      { b.vel = v }
func (b *Body) Mass() float64                 { return b.mass }
func (b *Body) GravityScale() float64         { return b.gravityScale }
func (b *Body) SetGravityScale(scale float64) { b.gravityScale = scale }

func (b *Body) ApplyImpulse(impulse vmath.Vec2) {
	b.Impulses = append(b.Impulses, impulse)
	b.vel = b.vel.Add(impulse.Scale(1 / b.mass))
}

// massOf mirrors Box2D: area times density, unit mass when density is zero
func massOf(def physics.BodyDef) float64 {
	var area float64
	switch def.Shape {
	case physics.ShapeCircle:
		area = math.Pi * def.Radius * def.Radius
	default:
		area = 4 * def.HalfExtents.X * def.HalfExtents.Y
	}
	m := area * def.Density
	if m <= 0 {
		return 1
	}
	return m
}
