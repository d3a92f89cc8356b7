package system

import (
	"testing"
	"time"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
	"emoji-engine/internal/gamemap"
)

const frame = 33 * time.Millisecond

// openMap creates a w×h map that is entirely passable floor.
func openMap(w, h int) *gamemap.GameMap {
	gmap := gamemap.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	return gmap
}

// add attaches v to id and fails the test on error.
func add[T any](t *testing.T, w *ecs.World, id ecs.EntityID, v T) {
	t.Helper()
	if err := ecs.AddComponent(w, id, v); err != nil {
		t.Fatalf("AddComponent(%d, %T): %v", id, v, err)
	}
}

// get returns id's T component and fails the test if it is missing.
func get[T any](t *testing.T, w *ecs.World, id ecs.EntityID) T {
	t.Helper()
	v, err := ecs.GetComponent[T](w, id)
	if err != nil {
		t.Fatalf("GetComponent[%T](%d): %v", v, id, err)
	}
	return v
}

// newPlayer adds a blocking player with combat stats at (x, y).
func newPlayer(t *testing.T, w *ecs.World, x, y int) ecs.EntityID {
	t.Helper()
	id := w.CreateEntity()
	add(t, w, id, component.Position{X: x, Y: y})
	add(t, w, id, component.TagPlayer{})
	add(t, w, id, component.TagBlocking{})
	add(t, w, id, component.Combat{Attack: 3, Defense: 1})
	add(t, w, id, component.Health{Current: 30, Max: 30})
	return id
}

// newEnemy adds a blocking AI enemy at (x, y) that acts every frame.
func newEnemy(t *testing.T, w *ecs.World, x, y int, behavior component.AIBehavior, sight int) ecs.EntityID {
	t.Helper()
	id := w.CreateEntity()
	add(t, w, id, component.Position{X: x, Y: y})
	add(t, w, id, component.AI{Behavior: behavior, SightRange: sight})
	add(t, w, id, component.Combat{Attack: 4})
	add(t, w, id, component.Health{Current: 20, Max: 20})
	add(t, w, id, component.TagBlocking{})
	return id
}
