package system

import (
	"math/rand"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
)

// AttackResult holds the outcome of one attack.
type AttackResult struct {
	Damage         int
	Killed         bool
	SpecialApplied uint8 // one of the component.Special* constants
	DrainedAmount  int   // HP healed by lifedrain
}

// Attack resolves one attack from attacker against defender.
// Damage formula: max(1, atk+bonus-def-bonus) + rand.Intn(3).
// A defender brought to 0 HP stays in the world with Killed=true; the reaper
// removes it at the end of the frame. Missing Combat or Health on either side
// yields a zero result and no error.
func Attack(w *ecs.World, rng *rand.Rand, attackerID, defenderID ecs.EntityID) (AttackResult, error) {
	cbt, err := ecs.GetComponent[component.Combat](w, attackerID)
	if err != nil {
		return AttackResult{}, nil
	}
	defCbt, err := ecs.GetComponent[component.Combat](w, defenderID)
	if err != nil {
		return AttackResult{}, nil
	}
	hp, err := ecs.GetComponentMut[component.Health](w, defenderID)
	if err != nil || hp.Dead() {
		return AttackResult{}, nil
	}

	atk := cbt.Attack + GetAttackBonus(w, attackerID)
	def := defCbt.Defense + GetDefenseBonus(w, defenderID)
	base := atk - def
	if base < 1 {
		base = 1
	}
	dmg := base + rng.Intn(3)

	hp.Current -= dmg
	hp.LastAttacker = attackerID
	result := AttackResult{Damage: dmg, Killed: hp.Dead()}

	if cbt.SpecialKind == component.SpecialNone || cbt.SpecialChance <= 0 || rng.Intn(100) >= cbt.SpecialChance {
		return result, nil
	}
	result.SpecialApplied = cbt.SpecialKind
	switch cbt.SpecialKind {
	case component.SpecialPoison:
		err = ApplyEffect(w, defenderID, component.ActiveEffect{
			Kind:           component.EffectPoison,
			Magnitude:      cbt.SpecialMag,
			TurnsRemaining: cbt.SpecialDur,
		})
	case component.SpecialWeaken:
		err = ApplyEffect(w, defenderID, component.ActiveEffect{
			Kind:           component.EffectWeaken,
			Magnitude:      cbt.SpecialMag,
			TurnsRemaining: cbt.SpecialDur,
		})
	case component.SpecialLifedrain:
		if !ecs.Has[component.Health](w, attackerID) {
			break
		}
		drain := (dmg * cbt.SpecialMag) / 10
		if drain < 1 {
			drain = 1
		}
		result.DrainedAmount = drain
		err = ecs.UpdateComponent(w, attackerID, func(ah *component.Health) {
			ah.Current = min(ah.Current+drain, ah.Max)
		})
	}
	return result, err
}
