package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
)

const maxMessages = 32

// Log appends a line to the HUD message log.
func (r *Renderer) Log(format string, args ...any) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
	if len(r.messages) > maxMessages {
		r.messages = r.messages[len(r.messages)-maxMessages:]
	}
}

// Messages returns the message log, oldest first.
func (r *Renderer) Messages() []string { return r.messages }

// DrawHUD renders the status bar and the tail of the message log in the
// rows below the map view.
func (r *Renderer) DrawHUD(w *ecs.World, player ecs.EntityID) {
	if r.hudRows <= 0 {
		return
	}
	_, screenH := r.screen.Size()
	hudY := screenH - r.hudRows
	r.drawHLine(hudY, tcell.ColorGray)

	hpText := "HP: -"
	if hp, err := ecs.GetComponent[component.Health](w, player); err == nil {
		hpText = fmt.Sprintf("HP: %d/%d", hp.Current, hp.Max)
	}
	atkText := ""
	if cb, err := ecs.GetComponent[component.Combat](w, player); err == nil {
		atkText = fmt.Sprintf("  ATK:%d DEF:%d", cb.Attack, cb.Defense)
	}
	kills := 0
	if k, err := ecs.GetComponent[component.Kills](w, player); err == nil {
		kills = k.Count
	}
	status := fmt.Sprintf("%s%s  Kills:%d  Entities:%d  Frame:%d",
		hpText, atkText, kills, w.EntityCount(), r.frames)
	r.drawText(0, hudY+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	lines := r.hudRows - 2
	if lines <= 0 {
		return
	}
	start := max(len(r.messages)-lines, 0)
	for i, msg := range r.messages[start:] {
		r.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
