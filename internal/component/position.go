package component

// Position is a tile coordinate.
type Position struct {
	X, Y int
}

// Velocity is a per-frame step request consumed by the movement system.
type Velocity struct {
	DX, DY int
}

// Zero reports whether there is nothing to move.
func (v Velocity) Zero() bool { return v.DX == 0 && v.DY == 0 }
