package component

// Special attack kinds carried by Combat.SpecialKind.
const (
	SpecialNone uint8 = iota
	SpecialPoison
	SpecialWeaken
	SpecialLifedrain
)

// Combat holds attack stats and an optional special attack.
type Combat struct {
	Attack        int
	Defense       int
	SpecialKind   uint8 // one of the Special* constants
	SpecialChance int   // 0-100 percent
	SpecialMag    int   // poison/weaken magnitude or lifedrain percent*10
	SpecialDur    int   // effect duration in ticks
}
