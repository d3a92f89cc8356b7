package component

import "github.com/gdamore/tcell/v2"

// Renderable is how an entity is drawn.
type Renderable struct {
	Glyph       string
	FGColor     tcell.Color
	BGColor     tcell.Color
	RenderOrder int
}
