package system

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"emoji-engine/internal/component"
	"emoji-engine/internal/ecs"
)

func TestInputSetsPlayerVelocity(t *testing.T) {
	w := ecs.NewWorld()
	player := newPlayer(t, w, 3, 3)
	events := make(chan tcell.Event, 4)
	events <- tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	events <- tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)

	sys := &Input{Events: events}
	if err := sys.Update(w, frame); err != nil {
		t.Fatal(err)
	}
	if v := get[component.Velocity](t, w, player); v != (component.Velocity{DX: -1}) {
		t.Errorf("velocity = %+v; want left", v)
	}
	if len(events) != 0 {
		t.Errorf("%d events left undrained", len(events))
	}
}

func TestInputLastKeyWins(t *testing.T) {
	w := ecs.NewWorld()
	player := newPlayer(t, w, 3, 3)
	events := make(chan tcell.Event, 4)
	events <- tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone)
	events <- tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone)

	if err := (&Input{Events: events}).Update(w, frame); err != nil {
		t.Fatal(err)
	}
	if v := get[component.Velocity](t, w, player); v != (component.Velocity{DX: 1}) {
		t.Errorf("velocity = %+v; want right", v)
	}
}

func TestInputQuit(t *testing.T) {
	w := ecs.NewWorld()
	player := newPlayer(t, w, 3, 3)
	events := make(chan tcell.Event, 1)
	events <- tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)

	quit := false
	if err := (&Input{Events: events, OnQuit: func() { quit = true }}).Update(w, frame); err != nil {
		t.Fatal(err)
	}
	if !quit {
		t.Error("escape should request quit")
	}
	if ecs.Has[component.Velocity](w, player) {
		t.Error("quit must not move the player")
	}
}

func TestInputClosedChannel(t *testing.T) {
	w := ecs.NewWorld()
	newPlayer(t, w, 3, 3)
	events := make(chan tcell.Event)
	close(events)
	if err := (&Input{Events: events}).Update(w, frame); err != nil {
		t.Fatal(err)
	}
}
