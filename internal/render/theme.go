package render

import "emoji-engine/internal/gamemap"

// Theme holds the glyphs used to draw terrain. Emoji carry their own
// colors, so explored-but-dark tiles use distinct glyphs instead of a tint.
type Theme struct {
	Wall, Floor, Water          string
	DimWall, DimFloor, DimWater string
}

// DefaultTheme is the sandbox arena look.
var DefaultTheme = Theme{
	Wall:     "🧱",
	Floor:    "🟫",
	Water:    "🟦",
	DimWall:  "🌑",
	DimFloor: "🔲",
	DimWater: "🔹",
}

// Glyph returns the glyph for a tile, or "" if it has never been seen.
func (t Theme) Glyph(tile gamemap.Tile) string {
	switch {
	case tile.Visible:
		switch tile.Kind {
		case gamemap.TileWall:
			return t.Wall
		case gamemap.TileWater:
			return t.Water
		default:
			return t.Floor
		}
	case tile.Explored:
		switch tile.Kind {
		case gamemap.TileWall:
			return t.DimWall
		case gamemap.TileWater:
			return t.DimWater
		default:
			return t.DimFloor
		}
	}
	return ""
}
