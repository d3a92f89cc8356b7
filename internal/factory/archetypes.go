package factory

import (
	"math/rand"

	"emoji-engine/internal/component"
)

// EnemyDef describes one enemy kind.
type EnemyDef struct {
	Glyph      string
	Name       string
	MaxHP      int
	Attack     int
	Defense    int
	SightRange int
	Behavior   component.AIBehavior
	Cooldown   float64 // seconds between AI decisions

	SpecialKind   uint8
	SpecialChance int
	SpecialMag    int
	SpecialDur    int
}

// PickupDef describes one collectible kind.
type PickupDef struct {
	Glyph  string
	Name   string
	HealHP int
	Effect component.ActiveEffect
}

// Enemies is the spawn table for hostile archetypes.
var Enemies = []EnemyDef{
	{Glyph: "🐀", Name: "Rat", MaxHP: 6, Attack: 2, SightRange: 6, Behavior: component.BehaviorChase, Cooldown: 0.4},
	{Glyph: "🦇", Name: "Bat", MaxHP: 4, Attack: 3, SightRange: 8, Behavior: component.BehaviorCowardly, Cooldown: 0.25},
	{Glyph: "🕷️", Name: "Spider", MaxHP: 10, Attack: 3, Defense: 1, SightRange: 6, Behavior: component.BehaviorChase, Cooldown: 0.5,
		SpecialKind: component.SpecialPoison, SpecialChance: 30, SpecialMag: 1, SpecialDur: 4},
	{Glyph: "🧟", Name: "Zombie", MaxHP: 18, Attack: 4, Defense: 2, SightRange: 5, Behavior: component.BehaviorChase, Cooldown: 0.8,
		SpecialKind: component.SpecialWeaken, SpecialChance: 25, SpecialMag: 2, SpecialDur: 5},
	{Glyph: "🧛", Name: "Vampire", MaxHP: 22, Attack: 5, Defense: 2, SightRange: 7, Behavior: component.BehaviorChase, Cooldown: 0.6,
		SpecialKind: component.SpecialLifedrain, SpecialChance: 40, SpecialMag: 5},
	{Glyph: "🗿", Name: "Idol", MaxHP: 30, Attack: 6, Defense: 4, SightRange: 2, Behavior: component.BehaviorStationary},
}

// Pickups is the spawn table for collectable items.
var Pickups = []PickupDef{
	{Glyph: "🍎", Name: "Apple", HealHP: 5},
	{Glyph: "🧪", Name: "Potion", HealHP: 15},
	{Glyph: "💪", Name: "Tonic", Effect: component.ActiveEffect{Kind: component.EffectAttackBoost, Magnitude: 3, TurnsRemaining: 10}},
	{Glyph: "🛡️", Name: "Ward", Effect: component.ActiveEffect{Kind: component.EffectDefenseBoost, Magnitude: 2, TurnsRemaining: 10}},
}

// RandomEnemy picks an enemy kind uniformly.
func RandomEnemy(rng *rand.Rand) EnemyDef { return Enemies[rng.Intn(len(Enemies))] }

// RandomPickup picks a pickup kind uniformly.
func RandomPickup(rng *rand.Rand) PickupDef { return Pickups[rng.Intn(len(Pickups))] }
