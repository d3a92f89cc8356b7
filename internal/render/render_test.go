package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
	"emoji-engine/internal/gamemap"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func visibleMap(w, h int) *gamemap.GameMap {
	m := gamemap.New(w, h)
	m.Carve(gamemap.Rect{X1: 0, Y1: 0, X2: w - 1, Y2: h - 1}, gamemap.MakeFloor())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.At(x, y).Visible = true
		}
	}
	return m
}

func rowText(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func spawn(t *testing.T, w *ecs.World, x, y int, glyph string, order int) ecs.EntityID {
	t.Helper()
	id := w.CreateEntity()
	require.NoError(t, ecs.AddComponent(w, id, component.Position{X: x, Y: y}))
	require.NoError(t, ecs.AddComponent(w, id, component.Renderable{Glyph: glyph, RenderOrder: order}))
	return id
}

func TestRendererDrawsEntityGlyphs(t *testing.T) {
	s := newScreen(t, 40, 12)
	gmap := visibleMap(10, 5)
	w := ecs.NewWorld()
	player := spawn(t, w, 2, 1, "@", 10)
	require.NoError(t, ecs.AddComponent(w, player, component.TagPlayer{}))
	require.NoError(t, ecs.AddComponent(w, player, component.Health{Current: 7, Max: 9}))

	r := NewRenderer(s, gmap, 3)
	assert.Equal(t, "render", r.Name())
	require.NoError(t, r.Update(w, 0))

	sx, sy, ok := r.Camera().WorldToScreen(2, 1)
	require.True(t, ok)
	mainc, _, _, _ := s.GetContent(sx, sy)
	assert.Equal(t, '@', mainc)
	assert.Contains(t, rowText(s, 12-3+1), "HP: 7/9")
	assert.Contains(t, rowText(s, 12-3+1), "Frame:1")
}

func TestRendererHonorsRenderOrderAndVisibility(t *testing.T) {
	s := newScreen(t, 40, 12)
	gmap := visibleMap(10, 5)
	gmap.At(5, 3).Visible = false
	w := ecs.NewWorld()
	spawn(t, w, 1, 1, "T", 20)
	spawn(t, w, 1, 1, "b", 1)
	spawn(t, w, 5, 3, "H", 5)
	hidden := spawn(t, w, 3, 3, "I", 5)
	require.NoError(t, w.SetActive(hidden, false))

	r := NewRenderer(s, gmap, 0)
	require.NoError(t, r.Update(w, 0))

	at := func(wx, wy int) rune {
		sx, sy, ok := r.Camera().WorldToScreen(wx, wy)
		require.True(t, ok)
		c, _, _, _ := s.GetContent(sx, sy)
		return c
	}
	assert.Equal(t, 'T', at(1, 1), "higher render order draws on top")
	assert.NotEqual(t, 'H', at(5, 3), "entities on unseen tiles stay hidden")
	assert.NotEqual(t, 'I', at(3, 3), "inactive entities are not drawn")
}

func TestHUDShowsLatestMessages(t *testing.T) {
	s := newScreen(t, 60, 10)
	r := NewRenderer(s, visibleMap(4, 4), 4)
	for i := 0; i < 5; i++ {
		r.Log("msg %d", i)
	}
	require.NoError(t, r.Update(ecs.NewWorld(), 0))

	assert.Contains(t, rowText(s, 8), "msg 3")
	assert.Contains(t, rowText(s, 9), "msg 4")
	assert.Len(t, r.Messages(), 5)
}

func TestLogIsBounded(t *testing.T) {
	r := NewRenderer(newScreen(t, 20, 10), visibleMap(2, 2), 3)
	for i := 0; i < maxMessages+10; i++ {
		r.Log("%d", i)
	}
	require.Len(t, r.Messages(), maxMessages)
	assert.Equal(t, "10", r.Messages()[0])
}

func TestThemeGlyph(t *testing.T) {
	wall := gamemap.MakeWall()
	assert.Empty(t, DefaultTheme.Glyph(wall), "unseen tiles are not drawn")
	wall.Explored = true
	assert.Equal(t, DefaultTheme.DimWall, DefaultTheme.Glyph(wall))
	wall.Visible = true
	assert.Equal(t, DefaultTheme.Wall, DefaultTheme.Glyph(wall))

	water := gamemap.MakeWater()
	water.Visible = true
	assert.Equal(t, DefaultTheme.Water, DefaultTheme.Glyph(water))
}
