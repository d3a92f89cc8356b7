package system

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
)

// Input drains pending terminal events and turns them into a Velocity on
// every player entity. Events arrive on a channel fed by the screen's
// event goroutine, so Update never blocks.
type Input struct {
	Events <-chan tcell.Event
	OnQuit func()
}

// Name implements ecs.System.
func (*Input) Name() string { return "input" }

// Update drains pending key events without blocking.
func (s *Input) Update(w *ecs.World, _ time.Duration) error {
	var step component.Velocity
	for {
		select {
		case ev, ok := <-s.Events:
			if !ok {
				return s.apply(w, step)
			}
			key, isKey := ev.(*tcell.EventKey)
			if !isKey {
				continue
			}
			if quit(key) {
				if s.OnQuit != nil {
					s.OnQuit()
				}
				continue
			}
			if v, ok := keyStep(key); ok {
				step = v
			}
		default:
			return s.apply(w, step)
		}
	}
}

func (s *Input) apply(w *ecs.World, step component.Velocity) error {
	if step.Zero() {
		return nil
	}
	for _, id := range w.Query(ecs.Single[component.TagPlayer]{}) {
		if err := ecs.AddComponent(w, id, step); err != nil {
			return err
		}
	}
	return nil
}

func quit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q'
}

// keyStep maps arrow keys and vi keys to a one-tile step.
func keyStep(ev *tcell.EventKey) (component.Velocity, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return component.Velocity{DY: -1}, true
	case tcell.KeyDown:
		return component.Velocity{DY: 1}, true
	case tcell.KeyLeft:
		return component.Velocity{DX: -1}, true
	case tcell.KeyRight:
		return component.Velocity{DX: 1}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k', 'w':
			return component.Velocity{DY: -1}, true
		case 'j', 's':
			return component.Velocity{DY: 1}, true
		case 'h', 'a':
			return component.Velocity{DX: -1}, true
		case 'l', 'd':
			return component.Velocity{DX: 1}, true
		}
	}
	return component.Velocity{}, false
}
