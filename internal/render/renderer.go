package render

import (
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
	"emoji-engine/internal/gamemap"
)

// Renderer draws the world onto a tcell screen. It runs as the last system
// of the frame and only reads components.
type Renderer struct {
	screen  tcell.Screen
	camera  *Camera
	gmap    *gamemap.GameMap
	theme   Theme
	hudRows int

	frames   uint64
	messages []string
}

// NewRenderer creates a Renderer for the given screen, reserving hudRows
// rows at the bottom for the status bar and message log.
func NewRenderer(screen tcell.Screen, gmap *gamemap.GameMap, hudRows int) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen:  screen,
		camera:  NewCamera(0, 0, w, max(h-hudRows, 1)),
		gmap:    gmap,
		theme:   DefaultTheme,
		hudRows: hudRows,
	}
}

// Name implements ecs.System.
func (*Renderer) Name() string { return "render" }

// SetTheme replaces the terrain glyphs.
func (r *Renderer) SetTheme(t Theme) { r.theme = t }

// Camera exposes the view transform, e.g. for mouse picking.
func (r *Renderer) Camera() *Camera { return r.camera }

// Update draws one frame.
func (r *Renderer) Update(w *ecs.World, _ time.Duration) error {
	r.frames++
	sw, sh := r.screen.Size()
	r.camera.Resize(sw, max(sh-r.hudRows, 1))

	player := r.follow(w)
	r.screen.Clear()
	r.drawMap()
	r.drawEntities(w)
	r.DrawHUD(w, player)
	r.screen.Show()
	return nil
}

// follow centers the camera on the first player and returns its id.
func (r *Renderer) follow(w *ecs.World) ecs.EntityID {
	players := w.Query(ecs.Pair[component.TagPlayer, component.Position]{})
	if len(players) == 0 {
		return ecs.NilEntity
	}
	pos, err := ecs.GetComponent[component.Position](w, players[0])
	if err != nil {
		return ecs.NilEntity
	}
	r.camera.Follow(pos.X, pos.Y, r.gmap.Width, r.gmap.Height)
	return players[0]
}

func (r *Renderer) drawMap() {
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	for y := 0; y < r.gmap.Height; y++ {
		for x := 0; x < r.gmap.Width; x++ {
			glyph := r.theme.Glyph(*r.gmap.At(x, y))
			if glyph == "" {
				continue
			}
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			r.putGlyph(sx, sy, glyph, style)
		}
	}
}

type renderableEntity struct {
	id   ecs.EntityID
	pos  component.Position
	rend component.Renderable
}

// drawEntities draws every active entity with Renderable and Position on a
// visible tile, lowest RenderOrder first.
func (r *Renderer) drawEntities(w *ecs.World) {
	ids := w.Query(ecs.Pair[component.Renderable, component.Position]{})
	entities := make([]renderableEntity, 0, len(ids))
	for _, id := range ids {
		if e, err := w.Entity(id); err != nil || !e.Active {
			continue
		}
		pos, err := ecs.GetComponent[component.Position](w, id)
		if err != nil {
			continue
		}
		rend, err := ecs.GetComponent[component.Renderable](w, id)
		if err != nil {
			continue
		}
		if r.gmap.InBounds(pos.X, pos.Y) && !r.gmap.At(pos.X, pos.Y).Visible {
			continue
		}
		entities = append(entities, renderableEntity{id: id, pos: pos, rend: rend})
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].rend.RenderOrder < entities[j].rend.RenderOrder
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos.X, e.pos.Y)
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.rend.FGColor).Background(tcell.ColorBlack)
		r.putGlyph(sx, sy, e.rend.Glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
