package factory

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
)

// builder attaches components to one entity and keeps the first error.
type builder struct {
	w   *ecs.World
	id  ecs.EntityID
	err error
}

func build(w *ecs.World) *builder {
	return &builder{w: w, id: w.CreateEntity()}
}

func with[T any](b *builder, v T) *builder {
	if b.err == nil {
		b.err = ecs.AddComponent(b.w, b.id, v)
	}
	return b
}

func (b *builder) done() (ecs.EntityID, error) {
	if b.err != nil {
		if err := b.w.RemoveEntity(b.id); err != nil {
			return ecs.NilEntity, errors.Join(b.err, err)
		}
		return ecs.NilEntity, b.err
	}
	return b.id, nil
}

// PlayerStats are the tunable numbers of the player archetype.
type PlayerStats struct {
	Glyph   string
	MaxHP   int
	Attack  int
	Defense int
}

// DefaultPlayer is used by the sandbox.
var DefaultPlayer = PlayerStats{Glyph: "🧙", MaxHP: 30, Attack: 5, Defense: 2}

// NewPlayer creates the player entity at (x, y).
func NewPlayer(w *ecs.World, x, y int, stats PlayerStats) (ecs.EntityID, error) {
	b := build(w)
	with(b, component.Position{X: x, Y: y})
	with(b, component.Velocity{})
	with(b, component.Health{Current: stats.MaxHP, Max: stats.MaxHP})
	with(b, component.Renderable{
		Glyph:       stats.Glyph,
		FGColor:     tcell.ColorYellow,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 10,
	})
	with(b, component.Combat{Attack: stats.Attack, Defense: stats.Defense})
	with(b, component.Effects{})
	with(b, component.Kills{})
	with(b, component.TagPlayer{})
	with(b, component.TagBlocking{})
	return b.done()
}

// NewEnemy creates an enemy entity of the given kind at (x, y).
func NewEnemy(w *ecs.World, def EnemyDef, x, y int) (ecs.EntityID, error) {
	b := build(w)
	with(b, component.Position{X: x, Y: y})
	with(b, component.Velocity{})
	with(b, component.Health{Current: def.MaxHP, Max: def.MaxHP})
	with(b, component.Renderable{
		Glyph:       def.Glyph,
		FGColor:     tcell.ColorRed,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 5,
	})
	with(b, component.Combat{
		Attack:        def.Attack,
		Defense:       def.Defense,
		SpecialKind:   def.SpecialKind,
		SpecialChance: def.SpecialChance,
		SpecialMag:    def.SpecialMag,
		SpecialDur:    def.SpecialDur,
	})
	with(b, component.AI{Behavior: def.Behavior, SightRange: def.SightRange, Cooldown: def.Cooldown})
	with(b, component.Effects{})
	with(b, component.TagBlocking{})
	return b.done()
}

// NewPickup creates a collectible at (x, y). A positive ttl (seconds)
// gives it a Lifetime so it despawns if nobody picks it up.
func NewPickup(w *ecs.World, def PickupDef, x, y int, ttl float64) (ecs.EntityID, error) {
	b := build(w)
	with(b, component.Position{X: x, Y: y})
	with(b, component.Renderable{
		Glyph:       def.Glyph,
		FGColor:     tcell.ColorGreen,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 2,
	})
	with(b, component.Pickup{Name: def.Name, HealHP: def.HealHP, Effect: def.Effect})
	with(b, component.TagPickup{})
	if ttl > 0 {
		with(b, component.Lifetime{Remaining: ttl})
	}
	return b.done()
}
