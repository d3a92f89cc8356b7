package component

// AIBehavior describes how an enemy acts each frame.
type AIBehavior uint8

const (
	BehaviorChase      AIBehavior = iota // move toward the player, attack if adjacent
	BehaviorCowardly                     // flee unless cornered
	BehaviorStationary                   // never moves
)

// AI drives a non-player entity. Cooldown throttles decisions so enemies do
// not act every frame.
type AI struct {
	Behavior   AIBehavior
	SightRange int
	Cooldown   float64 // seconds between decisions
	Wait       float64 // seconds until the next decision
}
