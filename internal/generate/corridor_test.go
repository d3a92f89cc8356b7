package generate

import (
	"math/rand"
	"testing"

	"emoji-engine/internal/gamemap"
)

// allFloorRow checks that every tile at y between x1 and x2 (inclusive) is walkable.
func allFloorRow(gmap *gamemap.GameMap, x1, x2, y int) bool {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if !gmap.IsWalkable(x, y) {
			return false
		}
	}
	return true
}

// allFloorCol checks that every tile at x between y1 and y2 (inclusive) is walkable.
func allFloorCol(gmap *gamemap.GameMap, y1, y2, x int) bool {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if !gmap.IsWalkable(x, y) {
			return false
		}
	}
	return true
}

func TestCarveSegment(t *testing.T) {
	cases := []struct {
		name           string
		x1, y1, x2, y2 int
		horizontal     bool
	}{
		{"horizontal", 3, 5, 8, 5, true},
		{"horizontal reversed", 8, 5, 3, 5, true},
		{"vertical", 4, 2, 4, 7, false},
		{"vertical reversed", 4, 7, 4, 2, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gmap := gamemap.New(20, 20)
			carveSegment(gmap, tc.x1, tc.y1, tc.x2, tc.y2)
			if tc.horizontal {
				if !allFloorRow(gmap, tc.x1, tc.x2, tc.y1) {
					t.Error("segment should be floor end to end")
				}
				if gmap.IsWalkable(2, 5) || gmap.IsWalkable(9, 5) {
					t.Error("tiles just outside the segment must remain walls")
				}
				return
			}
			if !allFloorCol(gmap, tc.y1, tc.y2, tc.x1) {
				t.Error("segment should be floor end to end")
			}
			if gmap.IsWalkable(4, 1) || gmap.IsWalkable(4, 8) {
				t.Error("tiles just outside the segment must remain walls")
			}
		})
	}
}

func TestCorridorStyleStraight(t *testing.T) {
	gmap := gamemap.New(20, 20)
	cfg := &Config{
		CorridorStyle: CorridorStraight,
		Rand:          rand.New(rand.NewSource(0)),
	}
	carveCorridor(gmap, 2, 2, 8, 8, cfg)

	if !allFloorRow(gmap, 2, 8, 2) {
		t.Error("straight corridor: horizontal segment at y=2 should be floor")
	}
	if !allFloorCol(gmap, 2, 8, 8) {
		t.Error("straight corridor: vertical segment at x=8 should be floor")
	}
}

func TestCorridorStyleZShaped(t *testing.T) {
	gmap := gamemap.New(20, 20)
	cfg := &Config{
		CorridorStyle: CorridorZShaped,
		Rand:          rand.New(rand.NewSource(0)),
	}
	carveCorridor(gmap, 2, 2, 10, 8, cfg)
	midY := (2 + 8) / 2 // = 5

	if !allFloorCol(gmap, 2, midY, 2) {
		t.Errorf("Z-shaped corridor: first vertical (x=2, y=2..%d) should be floor", midY)
	}
	if !allFloorRow(gmap, 2, 10, midY) {
		t.Errorf("Z-shaped corridor: horizontal (y=%d, x=2..10) should be floor", midY)
	}
	if !allFloorCol(gmap, midY, 8, 10) {
		t.Errorf("Z-shaped corridor: last vertical (x=10, y=%d..8) should be floor", midY)
	}
}

func TestCorridorStyleLShaped(t *testing.T) {
	for seed := 0; seed < 10; seed++ {
		gmap := gamemap.New(20, 20)
		cfg := &Config{
			CorridorStyle: CorridorLShaped,
			Rand:          rand.New(rand.NewSource(int64(seed))),
		}
		carveCorridor(gmap, 2, 2, 10, 8, cfg)

		if !gmap.IsWalkable(2, 2) {
			t.Errorf("seed %d: start tile (2,2) should be floor after L-shaped corridor", seed)
		}
		if !gmap.IsWalkable(10, 8) {
			t.Errorf("seed %d: end tile (10,8) should be floor after L-shaped corridor", seed)
		}
	}
}
