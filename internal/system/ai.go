package system

import (
	"math"
	"time"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
)

// AI decides a step for every AI-controlled entity and writes it to the
// entity's Velocity. The movement system performs the step (and any bump
// attack) later in the same frame.
type AI struct{}

// Name implements ecs.System.
func (AI) Name() string { return "ai" }

// Update picks a step for each AI entity whose cooldown has elapsed.
func (AI) Update(w *ecs.World, dt time.Duration) error {
	players := w.Query(ecs.Pair[component.TagPlayer, component.Position]{})
	if len(players) == 0 {
		return nil
	}
	secs := dt.Seconds()

	type move struct {
		id   ecs.EntityID
		step component.Velocity
	}
	var moves []move
	ecs.Each2(w, func(id ecs.EntityID, ai *component.AI, pos *component.Position) {
		ai.Wait -= secs
		if ai.Wait > 0 {
			return
		}
		ai.Wait = ai.Cooldown

		target, ok := nearestPlayer(w, players, *pos, ai.SightRange)
		if !ok {
			return
		}
		dx, dy := target.X-pos.X, target.Y-pos.Y

		var step component.Velocity
		switch ai.Behavior {
		case component.BehaviorStationary:
			return
		case component.BehaviorCowardly:
			if adjacent(dx, dy) {
				// cornered: fight back
				step = component.Velocity{DX: sign(dx), DY: sign(dy)}
			} else {
				step = component.Velocity{DX: -sign(dx), DY: -sign(dy)}
			}
		default:
			step = component.Velocity{DX: sign(dx), DY: sign(dy)}
		}
		// One axis at a time; prefer the longer one.
		if abs(dx) >= abs(dy) {
			step.DY = 0
		} else {
			step.DX = 0
		}
		moves = append(moves, move{id, step})
	})
	for _, m := range moves {
		if err := ecs.AddComponent(w, m.id, m.step); err != nil {
			return err
		}
	}
	return nil
}

// nearestPlayer returns the position of the closest player within sightRange.
func nearestPlayer(w *ecs.World, players []ecs.EntityID, from component.Position, sightRange int) (component.Position, bool) {
	var best component.Position
	bestDist := math.MaxFloat64
	for _, pid := range players {
		pos, err := ecs.GetComponent[component.Position](w, pid)
		if err != nil {
			continue
		}
		dx := float64(pos.X - from.X)
		dy := float64(pos.Y - from.Y)
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist <= float64(sightRange) && dist < bestDist {
			best = pos
			bestDist = dist
		}
	}
	return best, bestDist != math.MaxFloat64
}

func adjacent(dx, dy int) bool {
	return abs(dx)+abs(dy) == 1
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
