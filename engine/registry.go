package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/cubit/component"
	"github.com/lixenwraith/cubit/core"
	"github.com/lixenwraith/cubit/physics"
)

var (
	ErrUnknownHandle = errors.New("engine: unknown entity handle")
	ErrProtected     = errors.New("engine: player entity cannot be destroyed")
	ErrPlayerSlot    = errors.New("engine: player must be the first and only player entity")
	ErrNoVariant     = errors.New("engine: entity kind without matching state")
)

// Registry is the ordered entity collection; index 0 is always the player
// Handles are monotonic and never reused, indices shift on destroy
type Registry struct {
	sim      physics.Simulator
	log      logrus.FieldLogger
	entities []*Entity
	byHandle map[core.Handle]*Entity
	last     core.Handle

	pending map[core.Handle]struct{}

	onDestroy func(*Entity)
}

// NewRegistry creates an empty registry whose bodies live in sim
func NewRegistry(sim physics.Simulator, log logrus.FieldLogger) *Registry {
	return &Registry{
		sim:      sim,
		log:      log,
		byHandle: make(map[core.Handle]*Entity),
		pending:  make(map[core.Handle]struct{}),
	}
}

// Spawn assigns a handle, creates the physics body and appends e
func (r *Registry) Spawn(e *Entity) (core.Handle, error) {
	if err := checkVariant(e); err != nil {
		return core.HandleNone, err
	}
	hasPlayer := len(r.entities) > 0
	if (e.Kind == component.KindPlayer) == hasPlayer {
		return core.HandleNone, fmt.Errorf("spawn %s: %w", e.Kind, ErrPlayerSlot)
	}

	r.last++
	e.Handle = r.last
	e.Prev = e.Position
	e.Render = e.Position
	// Counters are owned by the bridge from here on
	e.Contacts.Reset()

	body, err := r.sim.CreateBody(e.bodyDef())
	if err != nil {
		return core.HandleNone, fmt.Errorf("spawn %s: %w", e.Kind, err)
	}
	e.Body = body

	r.entities = append(r.entities, e)
	r.byHandle[e.Handle] = e
	return e.Handle, nil
}

func checkVariant(e *Entity) error {
	var ok bool
	switch e.Kind {
	case component.KindPlayer:
		ok = e.Player != nil && e.Enemy == nil && e.Bullet == nil
	case component.KindRedCube, component.KindFly:
		ok = e.Enemy != nil && e.Player == nil && e.Bullet == nil
	case component.KindBullet:
		ok = e.Bullet != nil && e.Player == nil && e.Enemy == nil
	}
	if !ok {
		return fmt.Errorf("spawn %s: %w", e.Kind, ErrNoVariant)
	}
	return nil
}

// Destroy synchronously removes the body then the record
// A body error is returned after the record is erased; the entity is gone either way
func (r *Registry) Destroy(h core.Handle) error {
	e, ok := r.byHandle[h]
	if !ok {
		return fmt.Errorf("destroy %d: %w", h, ErrUnknownHandle)
	}
	if e.Kind == component.KindPlayer {
		return fmt.Errorf("destroy %d: %w", h, ErrProtected)
	}

	bodyErr := r.sim.DestroyBody(e.Body)
	if r.onDestroy != nil {
		r.onDestroy(e)
	}

	idx := r.IndexOf(h)
	r.entities = append(r.entities[:idx], r.entities[idx+1:]...)
	delete(r.byHandle, h)
	delete(r.pending, h)

	if bodyErr != nil {
		return fmt.Errorf("destroy %s %d: %w", e.Kind, h, bodyErr)
	}
	return nil
}

// MarkDestroy queues h for the next Flush; repeated marks collapse
func (r *Registry) MarkDestroy(h core.Handle) {
	if _, ok := r.byHandle[h]; !ok {
		return
	}
	r.pending[h] = struct{}{}
}

// Marked reports whether h is queued for destruction
func (r *Registry) Marked(h core.Handle) bool {
	_, ok := r.pending[h]
	return ok
}

// Flush destroys every queued handle once, highest index first, and returns the removed count
func (r *Registry) Flush() int {
	if len(r.pending) == 0 {
		return 0
	}

	type slot struct {
		idx int
		h   core.Handle
	}
	batch := make([]slot, 0, len(r.pending))
	for h := range r.pending {
		batch = append(batch, slot{idx: r.IndexOf(h), h: h})
	}
	clear(r.pending)
	sort.Slice(batch, func(i, j int) bool { return batch[i].idx > batch[j].idx })

	before := len(r.entities)
	for _, s := range batch {
		if err := r.Destroy(s.h); err != nil {
			r.log.WithError(err).WithField("handle", s.h).Error("flush destroy failed")
		}
	}
	return before - len(r.entities)
}

// Each calls fn for every entity alive when iteration started
// Entities destroyed during iteration are skipped, ones spawned are not visited
func (r *Registry) Each(fn func(*Entity)) {
	handles := make([]core.Handle, len(r.entities))
	for i, e := range r.entities {
		handles[i] = e.Handle
	}
	for _, h := range handles {
		if e, ok := r.byHandle[h]; ok {
			fn(e)
		}
	}
}

// Get returns the entity for h, nil when unknown
func (r *Registry) Get(h core.Handle) *Entity {
	return r.byHandle[h]
}

// At returns the entity at index i, nil when out of range
func (r *Registry) At(i int) *Entity {
	if i < 0 || i >= len(r.entities) {
		return nil
	}
	return r.entities[i]
}

// IndexOf returns the current index of h, -1 when unknown
func (r *Registry) IndexOf(h core.Handle) int {
	for i, e := range r.entities {
		if e.Handle == h {
			return i
		}
	}
	return -1
}

// Len returns the entity count
func (r *Registry) Len() int {
	return len(r.entities)
}

// Player returns the player entity, nil before the first spawn
func (r *Registry) Player() *Entity {
	if len(r.entities) == 0 {
		return nil
	}
	return r.entities[0]
}
