// Package physics is the rigid-body service boundary of the simulation
// The core only sees Simulator, Body and Contact; World adapts the Box2D port
package physics

import (
	"errors"

	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/vmath"
)

var (
	ErrNoFixtures = errors.New("physics: body has no fixtures")
	ErrDestroyed  = errors.New("physics: body already destroyed")
	ErrForeign    = errors.New("physics: body not created by this world")
)

// TagKind names the owner class of a fixture
type TagKind uint8

const (
	TagNone TagKind = iota
	TagTerrain
	TagEntity
)

// Tag is the fixture user data: an integer identity, never an address
// Entity tags are resolved through the registry on every use
type Tag struct {
	Kind   TagKind
	Handle core.Handle // TagEntity owner
	Index  uint32      // TagTerrain segment ordinal
}

// Shape selects the fixture geometry of a dynamic body
type Shape uint8

const (
	ShapeBox Shape = iota
	ShapeCircle
)

// BodyDef describes a dynamic body with a single fixture
// GravityScale is taken as given, callers set 1 for normal gravity
type BodyDef struct {
	Shape         Shape
	Position      vmath.Vec2
	HalfExtents   vmath.Vec2 // ShapeBox
	Radius        float64    // ShapeCircle
	Density       float64
	Friction      float64
	LinearDamping float64
	GravityScale  float64
	FixedRotation bool
	Sensor        bool
	Bullet        bool // Continuous collision for fast movers
	Tag           Tag
}

// Body is a live dynamic body
type Body interface {
	Tag() Tag
	Position() vmath.Vec2
	SetPosition(p vmath.Vec2)
	Velocity() vmath.Vec2
	SetVelocity(v vmath.Vec2)
	// ApplyImpulse adds an impulse at the center of mass
	ApplyImpulse(impulse vmath.Vec2)
	Mass() float64
	GravityScale() float64
	SetGravityScale(scale float64)
}

// Contact is a begin/end notification between two fixtures
// Normal points from A toward B and is only meaningful at begin on touching solids
type Contact struct {
	A, B   Tag
	Normal vmath.Vec2
}

// ContactSink receives contact notifications synchronously inside Step
type ContactSink interface {
	BeginContact(c Contact)
	EndContact(c Contact)
}

// Simulator is the physics service consumed by the session
type Simulator interface {
	SetContactSink(sink ContactSink)
	CreateBody(def BodyDef) (Body, error)
	// DestroyBody removes the fixture then the body; fires EndContact for live contacts
	DestroyBody(b Body) error
	AddSegment(from, to vmath.Vec2, friction float64) error
	Step(dt float64)
}
