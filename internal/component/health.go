package component

import "emoji-engine/internal/ecs"

// Health tracks hit points and who dealt the last blow.
type Health struct {
	Current, Max int
	LastAttacker ecs.EntityID // credited with the kill when Current drops to 0
}

// Dead reports whether the entity has run out of hit points.
func (h Health) Dead() bool { return h.Current <= 0 }
