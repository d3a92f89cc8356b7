package gamemap

import "math/rand"

// Rect is an axis-aligned rectangle, inclusive on all edges.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Intersects reports whether r and o share at least one tile.
func (r Rect) Intersects(o Rect) bool {
	return r.X1 <= o.X2 && r.X2 >= o.X1 && r.Y1 <= o.Y2 && r.Y2 >= o.Y1
}

// GameMap holds the tile grid the sandbox systems walk on.
type GameMap struct {
	Width, Height int
	Tiles         [][]Tile
}

// New creates a GameMap filled with walls.
func New(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &GameMap{Width: width, Height: height, Tiles: tiles}
}

// NewArena creates a walled room with a few pillars and ponds scattered by rng.
func NewArena(width, height int, rng *rand.Rand) *GameMap {
	m := New(width, height)
	m.Carve(Rect{X1: 1, Y1: 1, X2: width - 2, Y2: height - 2}, MakeFloor())
	obstacles := (width * height) / 40
	for i := 0; i < obstacles; i++ {
		x, y := 2+rng.Intn(max(1, width-4)), 2+rng.Intn(max(1, height-4))
		if i%3 == 0 {
			m.Set(x, y, MakeWater())
		} else {
			m.Set(x, y, MakeWall())
		}
	}
	return m
}

// Carve fills r with tile t, clipped to the map.
func (m *GameMap) Carve(r Rect, t Tile) {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			if m.InBounds(x, y) {
				m.Tiles[y][x] = t
			}
		}
	}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (m *GameMap) At(x, y int) *Tile {
	return &m.Tiles[y][x]
}

// Set replaces the tile at (x, y).
func (m *GameMap) Set(x, y int, t Tile) {
	m.Tiles[y][x] = t
}

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (m *GameMap) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Walkable
}

// IsTransparent returns true when (x, y) is in bounds and transparent.
func (m *GameMap) IsTransparent(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Transparent
}

// ClearVisible hides every tile; explored state is kept.
func (m *GameMap) ClearVisible() {
	for y := range m.Tiles {
		for x := range m.Tiles[y] {
			m.Tiles[y][x].Visible = false
		}
	}
}

// RandomFloor returns a random walkable position, trying at most tries times.
func (m *GameMap) RandomFloor(rng *rand.Rand, tries int) (int, int, bool) {
	for i := 0; i < tries; i++ {
		x, y := rng.Intn(m.Width), rng.Intn(m.Height)
		if m.IsWalkable(x, y) {
			return x, y, true
		}
	}
	return 0, 0, false
}
