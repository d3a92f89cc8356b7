package component

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

// TagBlocking marks an entity that occupies its tile (blocks movement).
type TagBlocking struct{}

// TagPickup marks a collectible that applies Pickup when stepped on.
type TagPickup struct{}

// Pickup describes what a collectible grants.
type Pickup struct {
	Name   string
	HealHP int
	Effect ActiveEffect
}

// Lifetime removes the entity once Remaining reaches zero.
type Lifetime struct {
	Remaining float64 // seconds
}

// Kills counts entities the owner has destroyed.
type Kills struct {
	Count int
}
