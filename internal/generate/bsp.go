// Package generate builds room-and-corridor arenas by binary space
// partitioning.
package generate

import (
	"math/rand"

	"emoji-engine/internal/gamemap"
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives one BSP layout.
type Config struct {
	Width, Height int
	MinLeafSize   int
	MaxLeafSize   int
	MinRoomSize   int
	RoomPadding   int
	CorridorStyle CorridorStyle
	Rand          *rand.Rand
}

// DefaultConfig returns sensible BSP parameters for a width×height map.
func DefaultConfig(width, height int, rng *rand.Rand) Config {
	return Config{
		Width:       width,
		Height:      height,
		MinLeafSize: 6,
		MaxLeafSize: 16,
		MinRoomSize: 3,
		RoomPadding: 1,
		Rand:        rng,
	}
}

type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *gamemap.Rect
}

func (l *bspLeaf) leaf() bool { return l.left == nil && l.right == nil }

// split divides the leaf into two children, returning false when it is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if !l.leaf() {
		return false
	}
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	size := l.H
	if !splitH {
		size = l.W
	}
	lo, hi := cfg.MinLeafSize, size-cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	at := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: at}
		l.right = &bspLeaf{X: l.X, Y: l.Y + at, W: l.W, H: l.H - at}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: at, H: l.H}
		l.right = &bspLeaf{X: l.X + at, Y: l.Y, W: l.W - at, H: l.H}
	}
	return true
}

// createRooms carves one room inside every terminal leaf, keeping a one-tile
// wall border around the map.
func (l *bspLeaf) createRooms(gmap *gamemap.GameMap, cfg *Config, rooms *[]gamemap.Rect) {
	if !l.leaf() {
		l.left.createRooms(gmap, cfg, rooms)
		l.right.createRooms(gmap, cfg, rooms)
		return
	}
	pad, minSize := cfg.RoomPadding, cfg.MinRoomSize
	availW := max(l.W-2*pad, minSize)
	availH := max(l.H-2*pad, minSize)
	rw := min(minSize+cfg.Rand.Intn(availW-minSize+1), l.W-2*pad)
	rh := min(minSize+cfg.Rand.Intn(availH-minSize+1), l.H-2*pad)

	rx := max(l.X+pad+cfg.Rand.Intn(max(1, l.W-rw-2*pad+1)), 1)
	ry := max(l.Y+pad+cfg.Rand.Intn(max(1, l.H-rh-2*pad+1)), 1)
	rw = min(rw, gmap.Width-rx-1)
	rh = min(rh, gmap.Height-ry-1)
	if rw < 3 || rh < 3 {
		return
	}

	room := gamemap.Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	gmap.Carve(room, gamemap.MakeFloor())
	*rooms = append(*rooms, room)
}

// anyRoom returns a room from this subtree, preferring the left side.
func (l *bspLeaf) anyRoom() *gamemap.Rect {
	if l.room != nil || l.leaf() {
		return l.room
	}
	if r := l.left.anyRoom(); r != nil {
		return r
	}
	return l.right.anyRoom()
}

// connect carves corridors between the two halves of every split.
func (l *bspLeaf) connect(gmap *gamemap.GameMap, cfg *Config) {
	if l.leaf() {
		return
	}
	l.left.connect(gmap, cfg)
	l.right.connect(gmap, cfg)

	a, b := l.left.anyRoom(), l.right.anyRoom()
	if a == nil || b == nil {
		return
	}
	ax, ay := a.Center()
	bx, by := b.Center()
	carveCorridor(gmap, ax, ay, bx, by, cfg)
}

// Rooms lays out a room-and-corridor map and returns it with its rooms in
// carve order. Every floor tile is reachable from every other.
func Rooms(cfg Config) (*gamemap.GameMap, []gamemap.Rect) {
	gmap := gamemap.New(cfg.Width, cfg.Height)
	root := &bspLeaf{W: cfg.Width, H: cfg.Height}

	leaves := []*bspLeaf{root}
	for splitAny := true; splitAny; {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if !leaf.leaf() {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize || cfg.Rand.Float64() > 0.25 {
				if leaf.split(&cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	var rooms []gamemap.Rect
	root.createRooms(gmap, &cfg, &rooms)
	root.connect(gmap, &cfg)
	return gmap, rooms
}
