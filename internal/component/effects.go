package component

// EffectKind describes what an active effect does.
type EffectKind uint8

const (
	EffectAttackBoost EffectKind = iota
	EffectDefenseBoost
	EffectPoison
	EffectWeaken
)

// ActiveEffect is a timed status applied to an entity.
type ActiveEffect struct {
	Kind           EffectKind
	Magnitude      int
	TurnsRemaining int
}

// Effects holds the timed statuses on an entity.
type Effects struct {
	Active []ActiveEffect
}
