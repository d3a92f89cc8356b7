package system

import (
	"time"

	"go.uber.org/zap"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
)

// Reaper removes non-player entities whose Health dropped to zero and
// credits the kill to the last attacker. A dead player is reported through
// OnPlayerDeath instead of being removed.
type Reaper struct {
	OnPlayerDeath func(id ecs.EntityID)
}

// Name implements ecs.System.
func (*Reaper) Name() string { return "reaper" }

// Update removes dead non-players and reports dead players.
func (s *Reaper) Update(w *ecs.World, _ time.Duration) error {
	for _, id := range w.Query(ecs.Single[component.Health]{}) {
		hp, err := ecs.GetComponent[component.Health](w, id)
		if err != nil || !hp.Dead() {
			continue
		}
		if ecs.Has[component.TagPlayer](w, id) {
			if s.OnPlayerDeath != nil {
				s.OnPlayerDeath(id)
			}
			continue
		}
		if hp.LastAttacker != ecs.NilEntity && w.Exists(hp.LastAttacker) {
			if err := creditKill(w, hp.LastAttacker); err != nil {
				return err
			}
		}
		if err := w.RemoveEntity(id); err != nil {
			return err
		}
		w.Logger().Debug("entity reaped",
			zap.Uint64("entity_id", uint64(id)),
			zap.Uint64("killer", uint64(hp.LastAttacker)))
	}
	return nil
}

func creditKill(w *ecs.World, killer ecs.EntityID) error {
	if ecs.Has[component.Kills](w, killer) {
		return ecs.UpdateComponent(w, killer, func(k *component.Kills) { k.Count++ })
	}
	return ecs.AddComponent(w, killer, component.Kills{Count: 1})
}
