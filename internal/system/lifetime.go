package system

import (
	"time"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
)

// Lifetime counts down Lifetime components and removes expired entities.
type Lifetime struct{}

// Name implements ecs.System.
func (Lifetime) Name() string { return "lifetime" }

// Update counts lifetimes down by dt and removes expired entities.
func (Lifetime) Update(w *ecs.World, dt time.Duration) error {
	var expired []ecs.EntityID
	ecs.Each1(w, func(id ecs.EntityID, lt *component.Lifetime) {
		lt.Remaining -= dt.Seconds()
		if lt.Remaining <= 0 {
			expired = append(expired, id)
		}
	})
	for _, id := range expired {
		if err := w.RemoveEntity(id); err != nil {
			return err
		}
	}
	return nil
}
