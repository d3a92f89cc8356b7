package ecs

import (
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// World is the central entity registry and component store.
// A World is single-writer: callers on other goroutines must serialize access.
type World struct {
	ids         *IDGenerator
	entities    map[EntityID]*Entity
	generations map[EntityID]*EntityGeneration
	components  *componentStore
	systems     *SystemRegistry
	onFault     FaultHandler
	log         *zap.Logger
}

// NewWorld creates an empty World.
func NewWorld(opts ...Option) *World {
	w := &World{
		ids:         NewIDGenerator(),
		entities:    make(map[EntityID]*Entity),
		generations: make(map[EntityID]*EntityGeneration),
		components:  newComponentStore(),
		onFault:     HaltOnFault,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.systems = NewSystemRegistry(w.log)
	return w
}

// Logger returns the world's logger.
func (w *World) Logger() *zap.Logger { return w.log }

// CreateEntity mints a new entity ID and marks it alive and active.
func (w *World) CreateEntity() EntityID {
	id := w.ids.NewID()
	w.entities[id] = &Entity{ID: id, Active: true}
	w.generations[id] = &EntityGeneration{Generation: w.ids.NextGeneration(), IsAlive: true}
	w.components.attach(id)
	w.log.Debug("entity created", zap.Uint64("entity_id", uint64(id)))
	return id
}

// RemoveEntity deletes the entity row together with all of its components.
// The id's generation is kept as a dead tombstone for held references.
func (w *World) RemoveEntity(id EntityID) error {
	if _, ok := w.entities[id]; !ok {
		return eris.Wrap(&EntityNotFoundError{ID: id}, "remove entity")
	}
	delete(w.entities, id)
	n := w.components.detach(id)
	w.generations[id].MarkDead()
	w.log.Debug("entity removed",
		zap.Uint64("entity_id", uint64(id)),
		zap.Int("components", n))
	return nil
}

// Exists reports whether id names a live entity row.
func (w *World) Exists(id EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Entity returns a copy of the entity row.
func (w *World) Entity(id EntityID) (Entity, error) {
	e, ok := w.entities[id]
	if !ok {
		return Entity{}, eris.Wrap(&EntityNotFoundError{ID: id}, "get entity")
	}
	return *e, nil
}

// SetActive toggles the entity's active flag.
func (w *World) SetActive(id EntityID, active bool) error {
	e, ok := w.entities[id]
	if !ok {
		return eris.Wrap(&EntityNotFoundError{ID: id}, "set active")
	}
	e.Active = active
	return nil
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return len(w.entities)
}

// Entities returns all live entity ids in ascending order.
func (w *World) Entities() []EntityID {
	ids := make([]EntityID, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

// Reference stamps a handle for id with its current generation.
func (w *World) Reference(id EntityID) (EntityReference, error) {
	if _, ok := w.entities[id]; !ok {
		return EntityReference{}, eris.Wrap(&EntityNotFoundError{ID: id}, "reference")
	}
	return EntityReference{ID: id, Generation: w.generations[id].Generation}, nil
}

// Resolve returns the id behind ref if the handle is still valid.
func (w *World) Resolve(ref EntityReference) (EntityID, error) {
	gen, ok := w.generations[ref.ID]
	if !ok {
		return NilEntity, eris.Wrap(&EntityNotFoundError{ID: ref.ID}, "resolve")
	}
	if err := gen.Check(ref); err != nil {
		return NilEntity, eris.Wrap(err, "resolve")
	}
	return ref.ID, nil
}

// RecycleEntity hands the dead slot id to a new logical entity. Every
// reference stamped before the call becomes stale.
func (w *World) RecycleEntity(id EntityID) (EntityReference, error) {
	gen, ok := w.generations[id]
	if !ok {
		return EntityReference{}, eris.Wrap(&EntityNotFoundError{ID: id}, "recycle entity")
	}
	if gen.IsAlive {
		return EntityReference{}, eris.Wrapf(ErrEntityStillAlive, "recycle entity %d", id)
	}
	gen.Increment()
	w.entities[id] = &Entity{ID: id, Active: true}
	w.components.attach(id)
	w.log.Debug("entity recycled",
		zap.Uint64("entity_id", uint64(id)),
		zap.Uint64("generation", gen.Generation))
	return EntityReference{ID: id, Generation: gen.Generation}, nil
}

// PurgeTombstones forgets the generations of removed entities and returns
// how many were dropped. References to purged ids resolve to EntityNotFound.
func (w *World) PurgeTombstones() int {
	n := 0
	for id, gen := range w.generations {
		if !gen.IsAlive {
			delete(w.generations, id)
			n++
		}
	}
	return n
}

// AddSystem appends s to the frame schedule. Systems added while a frame
// is running start with the next frame.
func (w *World) AddSystem(s System) error {
	return w.systems.Add(s)
}

// RemoveSystem drops the named system from the schedule.
func (w *World) RemoveSystem(name string) bool {
	return w.systems.Remove(name)
}

// Systems returns the scheduled system names in execution order.
func (w *World) Systems() []string {
	return w.systems.Names()
}

// Update runs every system once, in registration order.
func (w *World) Update(dt time.Duration) error {
	return w.systems.UpdateAll(w, dt)
}

// AddComponent attaches v to id, replacing any existing component of type T.
func AddComponent[T any](w *World, id EntityID, v T) error {
	if _, ok := w.entities[id]; !ok {
		return eris.Wrap(&EntityNotFoundError{ID: id}, "add component")
	}
	k := KeyOf[T]()
	if box, ok := w.components.get(id, k); ok {
		*unbox[T](box) = v
		return nil
	}
	w.components.set(id, k, &v)
	return nil
}

// RemoveComponent detaches the T component from id.
func RemoveComponent[T any](w *World, id EntityID) error {
	if _, ok := w.entities[id]; !ok {
		return eris.Wrap(&EntityNotFoundError{ID: id}, "remove component")
	}
	k := KeyOf[T]()
	if !w.components.remove(id, k) {
		return eris.Wrap(&ComponentNotFoundError{ID: id, Key: k}, "remove component")
	}
	return nil
}

// GetComponent returns a copy of id's T component.
func GetComponent[T any](w *World, id EntityID) (T, error) {
	p, err := lookup[T](w, id, "get component")
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// GetComponentMut returns a pointer into the store. The pointer must not be
// kept past the current system call or the next structural change to id.
func GetComponentMut[T any](w *World, id EntityID) (*T, error) {
	return lookup[T](w, id, "get component mut")
}

// UpdateComponent lends id's T component to fn for in-place mutation.
func UpdateComponent[T any](w *World, id EntityID, fn func(*T)) error {
	p, err := lookup[T](w, id, "update component")
	if err != nil {
		return err
	}
	fn(p)
	return nil
}

// HasComponent reports whether id carries a T component. It fails with
// EntityNotFound, not false, when id itself is missing.
func HasComponent[T any](w *World, id EntityID) (bool, error) {
	if _, ok := w.entities[id]; !ok {
		return false, eris.Wrap(&EntityNotFoundError{ID: id}, "has component")
	}
	return w.components.has(id, KeyOf[T]()), nil
}

// Has is the error-free form of HasComponent for hot paths; a missing
// entity simply has nothing.
func Has[T any](w *World, id EntityID) bool {
	return w.components.has(id, KeyOf[T]())
}

func lookup[T any](w *World, id EntityID, op string) (*T, error) {
	if _, ok := w.entities[id]; !ok {
		return nil, eris.Wrap(&EntityNotFoundError{ID: id}, op)
	}
	k := KeyOf[T]()
	box, ok := w.components.get(id, k)
	if !ok {
		return nil, eris.Wrap(&ComponentNotFoundError{ID: id, Key: k}, op)
	}
	return unbox[T](box), nil
}

func sortIDs(ids []EntityID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
