package system

import (
	"errors"
	"time"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
)

// Effects advances timed effects once per Interval and applies poison damage.
type Effects struct {
	Interval time.Duration
	elapsed  time.Duration
}

// Name implements ecs.System.
func (*Effects) Name() string { return "effects" }

// Update ticks effects once for every full Interval elapsed.
func (s *Effects) Update(w *ecs.World, dt time.Duration) error {
	s.elapsed += dt
	for s.Interval > 0 && s.elapsed >= s.Interval {
		s.elapsed -= s.Interval
		applyPoison(w)
		TickEffects(w)
	}
	return nil
}

func applyPoison(w *ecs.World) {
	ecs.Each2(w, func(id ecs.EntityID, eff *component.Effects, hp *component.Health) {
		if dmg := poisonDamage(eff); dmg > 0 && !hp.Dead() {
			hp.Current -= dmg
		}
	})
}

// TickEffects decrements all active effects by one turn and removes expired ones.
func TickEffects(w *ecs.World) {
	ecs.Each1(w, func(_ ecs.EntityID, eff *component.Effects) {
		active := eff.Active[:0]
		for _, e := range eff.Active {
			e.TurnsRemaining--
			if e.TurnsRemaining > 0 {
				active = append(active, e)
			}
		}
		eff.Active = active
	})
}

// ApplyEffect adds an effect to an entity, keeping the longer duration if the kind already exists.
func ApplyEffect(w *ecs.World, id ecs.EntityID, eff component.ActiveEffect) error {
	effs, err := ecs.GetComponentMut[component.Effects](w, id)
	if errors.Is(err, ecs.ErrComponentNotFound) {
		return ecs.AddComponent(w, id, component.Effects{Active: []component.ActiveEffect{eff}})
	}
	if err != nil {
		return err
	}
	for i, e := range effs.Active {
		if e.Kind == eff.Kind {
			if eff.TurnsRemaining > e.TurnsRemaining {
				effs.Active[i] = eff
			}
			return nil
		}
	}
	effs.Active = append(effs.Active, eff)
	return nil
}

// HasEffect reports whether an entity currently has an effect of the given kind.
func HasEffect(w *ecs.World, id ecs.EntityID, kind component.EffectKind) bool {
	eff, err := ecs.GetComponent[component.Effects](w, id)
	if err != nil {
		return false
	}
	for _, e := range eff.Active {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// GetAttackBonus returns the net attack modifier from active effects
// (EffectAttackBoost adds, EffectWeaken subtracts).
func GetAttackBonus(w *ecs.World, id ecs.EntityID) int {
	eff, err := ecs.GetComponent[component.Effects](w, id)
	if err != nil {
		return 0
	}
	total := 0
	for _, e := range eff.Active {
		switch e.Kind {
		case component.EffectAttackBoost:
			total += e.Magnitude
		case component.EffectWeaken:
			total -= e.Magnitude
		}
	}
	return total
}

// GetDefenseBonus returns the net defense modifier from active EffectDefenseBoost effects.
func GetDefenseBonus(w *ecs.World, id ecs.EntityID) int {
	eff, err := ecs.GetComponent[component.Effects](w, id)
	if err != nil {
		return 0
	}
	total := 0
	for _, e := range eff.Active {
		if e.Kind == component.EffectDefenseBoost {
			total += e.Magnitude
		}
	}
	return total
}

func poisonDamage(eff *component.Effects) int {
	total := 0
	for _, e := range eff.Active {
		if e.Kind == component.EffectPoison {
			total += e.Magnitude
		}
	}
	return total
}
