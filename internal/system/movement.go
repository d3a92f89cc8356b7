package system

import (
	"math/rand"
	"time"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
	"emoji-engine/internal/gamemap"
)

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveOK      MoveResult = iota // position updated
	MoveBlocked                   // wall, water or out-of-bounds
	MoveAttack                    // bumped a blocking entity
)

// TryMove attempts to move entity id by (dx, dy) on gmap.
// Returns the outcome and (if MoveAttack) the target entity.
func TryMove(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, dx, dy int) (MoveResult, ecs.EntityID) {
	pos, err := ecs.GetComponentMut[component.Position](w, id)
	if err != nil {
		return MoveBlocked, ecs.NilEntity
	}
	nx, ny := pos.X+dx, pos.Y+dy

	if other := BlockerAt(w, nx, ny, id); other != ecs.NilEntity {
		return MoveAttack, other
	}
	if !gmap.IsWalkable(nx, ny) {
		return MoveBlocked, ecs.NilEntity
	}
	pos.X, pos.Y = nx, ny
	return MoveOK, ecs.NilEntity
}

// BlockerAt returns the blocking entity standing on (x, y), ignoring self.
func BlockerAt(w *ecs.World, x, y int, self ecs.EntityID) ecs.EntityID {
	for _, other := range w.Query(ecs.Pair[component.TagBlocking, component.Position]{}) {
		if other == self {
			continue
		}
		p, err := ecs.GetComponent[component.Position](w, other)
		if err == nil && p.X == x && p.Y == y {
			return other
		}
	}
	return ecs.NilEntity
}

// Movement consumes Velocity: it moves entities, resolves bump attacks and
// lets players collect pickups. Velocity is reset after every step.
type Movement struct {
	Map *gamemap.GameMap
	Rng *rand.Rand

	// OnAttack is told about every bump attack, e.g. for the HUD message log.
	OnAttack func(attacker, defender ecs.EntityID, res AttackResult)
}

// Name implements ecs.System.
func (*Movement) Name() string { return "movement" }

// Update applies and clears every pending Velocity.
func (s *Movement) Update(w *ecs.World, _ time.Duration) error {
	for _, id := range w.Query(ecs.Pair[component.Position, component.Velocity]{}) {
		v, err := ecs.GetComponentMut[component.Velocity](w, id)
		if err != nil {
			// removed by an earlier attack in this pass
			continue
		}
		step := *v
		*v = component.Velocity{}
		if step.Zero() {
			continue
		}
		if hp, err := ecs.GetComponent[component.Health](w, id); err == nil && hp.Dead() {
			continue
		}
		if e, err := w.Entity(id); err != nil || !e.Active {
			continue
		}

		result, target := TryMove(w, s.Map, id, step.DX, step.DY)
		switch result {
		case MoveAttack:
			if !s.hostile(w, id, target) {
				continue
			}
			res, err := Attack(w, s.Rng, id, target)
			if err != nil {
				return err
			}
			if s.OnAttack != nil {
				s.OnAttack(id, target, res)
			}
		case MoveOK:
			if ecs.Has[component.TagPlayer](w, id) {
				if err := s.collect(w, id); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// hostile reports whether id may attack target: players fight everything
// with Combat, other entities only fight players.
func (s *Movement) hostile(w *ecs.World, id, target ecs.EntityID) bool {
	if !ecs.Has[component.Combat](w, id) || !ecs.Has[component.Health](w, target) {
		return false
	}
	return ecs.Has[component.TagPlayer](w, id) || ecs.Has[component.TagPlayer](w, target)
}

// collect applies and removes every pickup under the player.
func (s *Movement) collect(w *ecs.World, player ecs.EntityID) error {
	pos, err := ecs.GetComponent[component.Position](w, player)
	if err != nil {
		return err
	}
	for _, id := range w.Query(ecs.Triple[component.TagPickup, component.Pickup, component.Position]{}) {
		p, err := ecs.GetComponent[component.Position](w, id)
		if err != nil || p.X != pos.X || p.Y != pos.Y {
			continue
		}
		pk, err := ecs.GetComponent[component.Pickup](w, id)
		if err != nil {
			return err
		}
		if pk.HealHP > 0 && ecs.Has[component.Health](w, player) {
			err := ecs.UpdateComponent(w, player, func(hp *component.Health) {
				hp.Current = min(hp.Current+pk.HealHP, hp.Max)
			})
			if err != nil {
				return err
			}
		}
		if pk.Effect.TurnsRemaining > 0 {
			if err := ApplyEffect(w, player, pk.Effect); err != nil {
				return err
			}
		}
		if err := w.RemoveEntity(id); err != nil {
			return err
		}
	}
	return nil
}
