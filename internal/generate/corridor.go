package generate

import "emoji-engine/internal/gamemap"

// carveCorridor digs a tunnel between (x1,y1) and (x2,y2) in the configured style.
func carveCorridor(gmap *gamemap.GameMap, x1, y1, x2, y2 int, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		midY := (y1 + y2) / 2
		carveSegment(gmap, x1, y1, x1, midY)
		carveSegment(gmap, x1, midY, x2, midY)
		carveSegment(gmap, x2, midY, x2, y2)
	case CorridorStraight:
		carveSegment(gmap, x1, y1, x2, y1)
		carveSegment(gmap, x2, y1, x2, y2)
	default:
		// L-shaped, elbow picked at random
		if cfg.Rand.Intn(2) == 0 {
			carveSegment(gmap, x1, y1, x2, y1)
			carveSegment(gmap, x2, y1, x2, y2)
		} else {
			carveSegment(gmap, x1, y1, x1, y2)
			carveSegment(gmap, x1, y2, x2, y2)
		}
	}
}

// carveSegment floors the axis-aligned run between two points, in either order.
func carveSegment(gmap *gamemap.GameMap, x1, y1, x2, y2 int) {
	gmap.Carve(gamemap.Rect{
		X1: min(x1, x2), Y1: min(y1, y2),
		X2: max(x1, x2), Y2: max(y1, y2),
	}, gamemap.MakeFloor())
}
