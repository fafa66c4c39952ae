package engine

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/parameter"
	"github.com/lixenwraith/cubit/physics"
	"github.com/lixenwraith/cubit/vmath"
)

// terrainPair keys a character-terrain contact
type terrainPair struct {
	segment uint32
	entity  core.Handle
}

// ContactBridge turns physics contacts into contact counters and projectile hits
// Runs inside the physics step; it never creates or destroys bodies
type ContactBridge struct {
	reg *Registry
	log logrus.FieldLogger

	// Begin classification per pair, replayed at end so counters balance
	active map[terrainPair]component.Direction
}

// NewContactBridge creates a bridge resolving tags through reg
func NewContactBridge(reg *Registry, log logrus.FieldLogger) *ContactBridge {
	return &ContactBridge{
		reg:    reg,
		log:    log,
		active: make(map[terrainPair]component.Direction),
	}
}

// ClassifyNormal maps a terrain-to-character normal to the side the terrain is on
func ClassifyNormal(n vmath.Vec2) component.Direction {
	ax, ay := math.Abs(n.X), math.Abs(n.Y)
	switch {
	case ay >= ax && ay > parameter.ContactNormalThreshold:
		if n.Y > 0 {
			return component.DirDown
		}
		return component.DirUp
	case ax > ay && ax > parameter.ContactNormalThreshold:
		if n.X > 0 {
			return component.DirLeft
		}
		return component.DirRight
	}
	return component.DirNone
}

func (b *ContactBridge) BeginContact(c physics.Contact) {
	switch {
	case c.A.Kind == physics.TagTerrain && c.B.Kind == physics.TagEntity:
		b.beginTerrain(c.A, c.B, c.Normal)
	case c.B.Kind == physics.TagTerrain && c.A.Kind == physics.TagEntity:
		b.beginTerrain(c.B, c.A, c.Normal.Scale(-1))
	case c.A.Kind == physics.TagEntity && c.B.Kind == physics.TagEntity:
		b.beginEntities(c.A.Handle, c.B.Handle)
	}
}

func (b *ContactBridge) EndContact(c physics.Contact) {
	var terrain, entity physics.Tag
	switch {
	case c.A.Kind == physics.TagTerrain && c.B.Kind == physics.TagEntity:
		terrain, entity = c.A, c.B
	case c.B.Kind == physics.TagTerrain && c.A.Kind == physics.TagEntity:
		terrain, entity = c.B, c.A
	default:
		return
	}

	key := terrainPair{segment: terrain.Index, entity: entity.Handle}
	dir, ok := b.active[key]
	if !ok {
		return
	}
	delete(b.active, key)
	if e := b.reg.Get(entity.Handle); e != nil {
		e.Contacts.Remove(dir)
	}
}

// beginTerrain takes the normal oriented from terrain toward the entity
func (b *ContactBridge) beginTerrain(terrain, entity physics.Tag, normal vmath.Vec2) {
	e := b.reg.Get(entity.Handle)
	if e == nil {
		return
	}

	switch {
	case e.Kind == component.KindBullet:
		e.Bullet.Hit.Record(component.HitTarget{Kind: component.HitTerrain})
	case e.Kind.IsCharacter():
		key := terrainPair{segment: terrain.Index, entity: e.Handle}
		if _, dup := b.active[key]; dup {
			b.log.WithFields(logrus.Fields{"entity": e.Handle, "segment": terrain.Index}).Debug("duplicate terrain contact")
			return
		}
		dir := ClassifyNormal(normal)
		b.active[key] = dir
		e.Contacts.Add(dir)
	}
}

func (b *ContactBridge) beginEntities(ha, hb core.Handle) {
	ea, eb := b.reg.Get(ha), b.reg.Get(hb)
	if ea == nil || eb == nil {
		return
	}
	if eb.Kind == component.KindBullet {
		ea, eb = eb, ea
	}
	if ea.Kind != component.KindBullet {
		return
	}
	bullet, target := ea.Bullet, eb

	if target.Kind == component.KindBullet || target.Handle == bullet.Source {
		return
	}
	if !target.Kind.IsActor() || !target.Alive() {
		return
	}
	bullet.Hit.Record(component.HitTarget{
		Kind:   component.HitActor,
		Entity: target.Handle,
		Actor:  target.Kind,
	})
}

// forget drops cached pairs of a destroyed entity without touching its counters
func (b *ContactBridge) forget(e *Entity) {
	for key := range b.active {
		if key.entity == e.Handle {
			delete(b.active, key)
		}
	}
}

// Active returns the number of open character-terrain contacts
func (b *ContactBridge) Active() int {
	return len(b.active)
}
