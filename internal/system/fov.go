package system

import (
	"time"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
	"emoji-engine/internal/gamemap"
)

// octants maps a sweep (dx, dy) to a world offset:
// (cx + dx*xx + dy*xy, cy + dx*yx + dy*yy).
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// FOV recomputes the map's visible set from the player's position each frame.
type FOV struct {
	Map    *gamemap.GameMap
	Radius int
}

// Name implements ecs.System.
func (*FOV) Name() string { return "fov" }

// Update recomputes visibility around every player.
func (s *FOV) Update(w *ecs.World, _ time.Duration) error {
	s.Map.ClearVisible()
	for _, id := range w.Query(ecs.Pair[component.TagPlayer, component.Position]{}) {
		pos, err := ecs.GetComponent[component.Position](w, id)
		if err != nil {
			return err
		}
		Shadowcast(s.Map, pos.X, pos.Y, s.Radius)
	}
	return nil
}

// Shadowcast marks every tile visible from (x, y) within radius.
// Visibility is additive so several viewers can share one map.
func Shadowcast(gmap *gamemap.GameMap, x, y, radius int) {
	if gmap.InBounds(x, y) {
		t := gmap.At(x, y)
		t.Visible = true
		t.Explored = true
	}
	for _, m := range octants {
		castLight(gmap, x, y, 1, 1.0, 0.0, radius, m[0], m[1], m[2], m[3])
	}
}

// castLight lights one octant. Row j sweeps columns dx in [-j, 0]; slopes
// are measured at the cell edges.
func castLight(gmap *gamemap.GameMap, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := float64(radius * radius)
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := cx + dx*xx + dy*xy
			wy := cy + dx*yx + dy*yy
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if float64(dx*dx+dy*dy) < radiusSq && gmap.InBounds(wx, wy) {
				t := gmap.At(wx, wy)
				t.Visible = true
				t.Explored = true
			}

			opaque := !gmap.InBounds(wx, wy) || !gmap.IsTransparent(wx, wy)
			switch {
			case blocked && opaque:
				newStart = rSlope
			case blocked:
				blocked = false
				start = newStart
			case opaque && j < radius:
				// scan the open part beyond the new wall
				blocked = true
				castLight(gmap, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
