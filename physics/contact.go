package physics

import (
	"github.com/ByteArena/box2d"
)

// contactListener translates Box2D callbacks into Contact values
type contactListener struct {
	world *World
}

func (l *contactListener) BeginContact(contact box2d.B2ContactInterface) {
	if l.world.sink == nil {
		return
	}
	c := translate(contact)
	var wm box2d.B2WorldManifold
	contact.GetWorldManifold(&wm)
	c.Normal = vec(wm.Normal)
	l.world.sink.BeginContact(c)
}

func (l *contactListener) EndContact(contact box2d.B2ContactInterface) {
	if l.world.sink == nil {
		return
	}
	l.world.sink.EndContact(translate(contact))
}

func (l *contactListener) PreSolve(contact box2d.B2ContactInterface, oldManifold box2d.B2Manifold) {}

func (l *contactListener) PostSolve(contact box2d.B2ContactInterface, impulse *box2d.B2ContactImpulse) {
}

func translate(contact box2d.B2ContactInterface) Contact {
	return Contact{
		A: fixtureTag(contact.GetFixtureA()),
		B: fixtureTag(contact.GetFixtureB()),
	}
}

// fixtureTag reads the Tag user data; untagged fixtures resolve to TagNone
func fixtureTag(f *box2d.B2Fixture) Tag {
	if f == nil {
		return Tag{}
	}
	if tag, ok := f.GetUserData().(Tag); ok {
		return tag
	}
	return Tag{}
}
