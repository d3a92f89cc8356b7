package render

// Camera translates between world coordinates and screen coordinates.
// World X is multiplied by 2 because emoji occupy 2 terminal columns.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera centered on (cx, cy).
func NewCamera(cx, cy, viewW, viewH int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cy)
	return c
}

// Center repositions the camera so that world position (cx, cy) is in the middle.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - c.tilesWide()/2
	c.OffsetY = cy - c.ViewHeight/2
}

// Follow centers on (cx, cy) but keeps the view inside a mapW×mapH world.
// A map smaller than the view is pinned to the top-left corner.
func (c *Camera) Follow(cx, cy, mapW, mapH int) {
	c.Center(cx, cy)
	c.OffsetX = clamp(c.OffsetX, 0, mapW-c.tilesWide())
	c.OffsetY = clamp(c.OffsetY, 0, mapH-c.ViewHeight)
}

// Resize changes the viewport size; call Follow or Center afterwards.
func (c *Camera) Resize(viewW, viewH int) {
	c.ViewWidth, c.ViewHeight = viewW, viewH
}

// WorldToScreen converts world (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * 2
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx+1 < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return sx/2 + c.OffsetX, sy + c.OffsetY
}

func (c *Camera) tilesWide() int { return c.ViewWidth / 2 }

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
