package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/lixenwraith/cubit/vmath"
)

// World is the Box2D-backed Simulator
// Not safe for concurrent use; bodies must not be created or destroyed from inside a contact callback
type World struct {
	b2 box2d.B2World

	sink     ContactSink
	listener *contactListener

	velocityIterations int
	positionIterations int

	segments uint32
}

// NewWorld creates a world with the given gravity and solver iteration counts
func NewWorld(gravity vmath.Vec2, velocityIterations, positionIterations int) *World {
	w := &World{
		b2:                 box2d.MakeB2World(b2v(gravity)),
		velocityIterations: velocityIterations,
		positionIterations: positionIterations,
	}
	w.listener = &contactListener{world: w}
	w.b2.SetContactListener(w.listener)
	return w
}

// SetContactSink routes begin/end contact notifications to sink
func (w *World) SetContactSink(sink ContactSink) {
	w.sink = sink
}

// CreateBody creates a dynamic body with one box or circle fixture tagged with def.Tag
func (w *World) CreateBody(def BodyDef) (Body, error) {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_dynamicBody
	bd.Position = b2v(def.Position)
	bd.FixedRotation = def.FixedRotation
	bd.LinearDamping = def.LinearDamping
	bd.GravityScale = def.GravityScale
	bd.Bullet = def.Bullet
	bd.UserData = def.Tag

	b := w.b2.CreateBody(&bd)

	fd := box2d.MakeB2FixtureDef()
	fd.Density = def.Density
	fd.Friction = def.Friction
	fd.IsSensor = def.Sensor
	fd.UserData = def.Tag

	switch def.Shape {
	case ShapeCircle:
		shape := box2d.MakeB2CircleShape()
		shape.M_radius = def.Radius
		fd.Shape = &shape
	default:
		shape := box2d.MakeB2PolygonShape()
		shape.SetAsBox(def.HalfExtents.X, def.HalfExtents.Y)
		fd.Shape = &shape
	}
	b.CreateFixtureFromDef(&fd)

	return &body{world: w, b: b, tag: def.Tag}, nil
}

// DestroyBody removes the body's fixture then the body
func (w *World) DestroyBody(b Body) error {
	bb, ok := b.(*body)
	if !ok || bb.world != w {
		return ErrForeign
	}
	if bb.b == nil {
		return ErrDestroyed
	}
	fixture := bb.b.GetFixtureList()
	if fixture == nil {
		return ErrNoFixtures
	}
	bb.b.DestroyFixture(fixture)
	w.b2.DestroyBody(bb.b)
	bb.b = nil
	return nil
}

// AddSegment creates a static body with a single two-vertex chain fixture
func (w *World) AddSegment(from, to vmath.Vec2, friction float64) error {
	bd := box2d.MakeB2BodyDef()
	bd.Type = box2d.B2BodyType.B2_staticBody
	b := w.b2.CreateBody(&bd)

	chain := box2d.MakeB2ChainShape()
	chain.CreateChain([]box2d.B2Vec2{b2v(from), b2v(to)}, 2)

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = &chain
	fd.Friction = friction
	fd.UserData = Tag{Kind: TagTerrain, Index: w.segments}
	b.CreateFixtureFromDef(&fd)

	w.segments++
	return nil
}

// Segments returns the number of terrain bodies created
func (w *World) Segments() int {
	return int(w.segments)
}

// Step advances the world by dt seconds; contact callbacks run inside this call
func (w *World) Step(dt float64) {
	w.b2.Step(dt, w.velocityIterations, w.positionIterations)
}

// body adapts *box2d.B2Body; b is nil once destroyed
type body struct {
	world *World
	b     *box2d.B2Body
	tag   Tag
}

func (b *body) Tag() Tag { return b.tag }

func (b *body) Position() vmath.Vec2 {
	return vec(b.b.GetPosition())
}

func (b *body) SetPosition(p vmath.Vec2) {
	b.b.SetTransform(b2v(p), 0)
}

func (b *body) Velocity() vmath.Vec2 {
	return vec(b.b.GetLinearVelocity())
}

func (b *body) SetVelocity(v vmath.Vec2) {
	b.b.SetLinearVelocity(b2v(v))
}

func (b *body) ApplyImpulse(impulse vmath.Vec2) {
	b.b.ApplyLinearImpulse(b2v(impulse), b.b.GetWorldCenter(), true)
}

func (b *body) Mass() float64 {
	return b.b.GetMass()
}

func (b *body) GravityScale() float64 {
	return b.b.GetGravityScale()
}

func (b *body) SetGravityScale(scale float64) {
	b.b.SetGravityScale(scale)
}

func b2v(v vmath.Vec2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.X, v.Y)
}

func vec(v box2d.B2Vec2) vmath.Vec2 {
	return vmath.V2(v.X, v.Y)
}
