package ecs

import (
	"fmt"
	"sync/atomic"
)

// EntityID uniquely identifies an entity in the world.
type EntityID uint64

// NilEntity is the zero value. No valid entity has this ID.
const NilEntity EntityID = 0

// Entity is the row a World keeps for every live entity.
// Active is a caller-controlled toggle; it does not affect existence.
type Entity struct {
	ID     EntityID
	Active bool
}

// EntityReference is a handle that may outlive the entity it points to.
// It is only valid for the generation it was stamped with.
type EntityReference struct {
	ID         EntityID
	Generation uint64
}

// String formats the reference as id@generation.
func (r EntityReference) String() string {
	return fmt.Sprintf("%d@%d", r.ID, r.Generation)
}

// IDGenerator issues entity ids and slot generations.
// Both sequences start at 1 and never repeat for the generator's lifetime.
type IDGenerator struct {
	nextID  uint64
	nextGen uint64
}

// NewIDGenerator returns a generator whose first id is 1.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// NewID returns a fresh entity id. Safe for concurrent use.
func (g *IDGenerator) NewID() EntityID {
	return EntityID(atomic.AddUint64(&g.nextID, 1))
}

// NextGeneration returns a fresh generation stamp, independent of the id sequence.
func (g *IDGenerator) NextGeneration() uint64 {
	return atomic.AddUint64(&g.nextGen, 1)
}

// EntityGeneration tracks the live generation of one id slot.
type EntityGeneration struct {
	Generation uint64
	IsAlive    bool
}

// Increment hands the slot to a new logical entity.
func (g *EntityGeneration) Increment() {
	g.Generation++
	g.IsAlive = true
}

// MarkDead retires the slot without changing its generation.
func (g *EntityGeneration) MarkDead() {
	g.IsAlive = false
}

// IsValid reports whether a handle stamped with gen still refers to this slot.
func (g EntityGeneration) IsValid(gen uint64) bool {
	return g.IsAlive && g.Generation == gen
}

// Check classifies why ref is not valid for this slot, or returns nil.
func (g EntityGeneration) Check(ref EntityReference) error {
	if g.IsValid(ref.Generation) {
		return nil
	}
	kind := GenerationNotAlive
	switch {
	case ref.Generation < g.Generation:
		kind = GenerationStale
	case ref.Generation > g.Generation:
		kind = GenerationInvalid
	}
	return &GenerationError{Kind: kind, Ref: ref, Live: g}
}
