package ecs

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const frame = 16 * time.Millisecond

// recorder returns a system that appends its name to log on every update.
func recorder(name string, log *[]string) System {
	return Func(name, func(*World, time.Duration) error {
		*log = append(*log, name)
		return nil
	})
}

func TestSystemsRunInRegistrationOrder(t *testing.T) {
	w := NewWorld()
	var order []string
	for _, n := range []string{"input", "physics", "render"} {
		require.NoError(t, w.AddSystem(recorder(n, &order)))
	}
	for i := 0; i < 3; i++ {
		require.NoError(t, w.Update(frame))
	}
	assert.Equal(t, strings.Repeat("input physics render ", 3), strings.Join(order, " ")+" ")
	assert.Equal(t, []string{"input", "physics", "render"}, w.Systems())
}

func TestEntityCreatedMidPassIsVisibleToLaterSystems(t *testing.T) {
	w := NewWorld()
	var counts []int
	require.NoError(t, w.AddSystem(Func("noop", func(*World, time.Duration) error { return nil })))
	require.NoError(t, w.AddSystem(Func("spawner", func(w *World, _ time.Duration) error {
		w.CreateEntity()
		return nil
	})))
	require.NoError(t, w.AddSystem(Func("counter", func(w *World, _ time.Duration) error {
		counts = append(counts, w.EntityCount())
		return nil
	})))

	for i := 0; i < 4; i++ {
		require.NoError(t, w.Update(frame))
	}
	assert.Equal(t, []int{1, 2, 3, 4}, counts)
}

func TestSystemAddedMidPassRunsNextFrame(t *testing.T) {
	w := NewWorld()
	var order []string
	added := false
	require.NoError(t, w.AddSystem(Func("installer", func(w *World, _ time.Duration) error {
		order = append(order, "installer")
		if !added {
			added = true
			return w.AddSystem(recorder("late", &order))
		}
		return nil
	})))
	require.NoError(t, w.AddSystem(recorder("tail", &order)))

	require.NoError(t, w.Update(frame))
	assert.Equal(t, []string{"installer", "tail"}, order)

	order = nil
	require.NoError(t, w.Update(frame))
	assert.Equal(t, []string{"installer", "tail", "late"}, order)
}

func TestSystemRemovedMidPassStopsNextFrame(t *testing.T) {
	w := NewWorld()
	var order []string
	require.NoError(t, w.AddSystem(Func("killer", func(w *World, _ time.Duration) error {
		w.RemoveSystem("victim")
		return nil
	})))
	require.NoError(t, w.AddSystem(recorder("victim", &order)))

	require.NoError(t, w.Update(frame))
	assert.Equal(t, []string{"victim"}, order, "current frame iteration is stable")
	require.NoError(t, w.Update(frame))
	assert.Equal(t, []string{"victim"}, order)
	assert.Equal(t, []string{"killer"}, w.Systems())
}

func TestDuplicateSystemRejected(t *testing.T) {
	w := NewWorld()
	var order []string
	require.NoError(t, w.AddSystem(recorder("a", &order)))
	err := w.AddSystem(recorder("a", &order))
	assert.ErrorIs(t, err, ErrDuplicateSystem)
	assert.ErrorIs(t, err, ErrSystem)
}

func TestSystemFailureHaltsFrameByDefault(t *testing.T) {
	w := NewWorld()
	var order []string
	boom := errors.New("boom")
	require.NoError(t, w.AddSystem(recorder("first", &order)))
	require.NoError(t, w.AddSystem(Func("broken", func(*World, time.Duration) error { return boom })))
	require.NoError(t, w.AddSystem(recorder("last", &order)))

	err := w.Update(frame)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSystem)
	assert.ErrorIs(t, err, boom)

	var se *SystemError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "broken", se.System)
	assert.Equal(t, []string{"first"}, order)
}

func TestFaultHandlerCanContinue(t *testing.T) {
	var seen []string
	w := NewWorld(WithFaultHandler(func(err *SystemError) FaultDecision {
		seen = append(seen, err.System)
		return FaultContinue
	}))
	var order []string
	require.NoError(t, w.AddSystem(Func("bad1", func(*World, time.Duration) error {
		return NewSystemError("", "missing %s", "camera")
	})))
	require.NoError(t, w.AddSystem(recorder("middle", &order)))
	require.NoError(t, w.AddSystem(Func("bad2", func(*World, time.Duration) error { return errors.New("x") })))

	err := w.Update(frame)
	require.Error(t, err)
	assert.Equal(t, []string{"bad1", "bad2"}, seen)
	assert.Equal(t, []string{"middle"}, order)
	assert.Contains(t, err.Error(), "missing camera")
}

func TestSharedSystemErrorIsNotStamped(t *testing.T) {
	shared := NewSystemError("", "out of ammo")
	var seen []string
	w := NewWorld(WithFaultHandler(func(err *SystemError) FaultDecision {
		seen = append(seen, err.System)
		return FaultContinue
	}))
	for _, n := range []string{"left", "right"} {
		require.NoError(t, w.AddSystem(Func(n, func(*World, time.Duration) error { return shared })))
	}

	require.Error(t, w.Update(frame))
	assert.Equal(t, []string{"left", "right"}, seen)
	assert.Empty(t, shared.System, "the returned error value must stay untouched")
}

func TestUpdateReentryRejected(t *testing.T) {
	w := NewWorld()
	require.NoError(t, w.AddSystem(Func("recursive", func(w *World, dt time.Duration) error {
		return w.Update(dt)
	})))
	err := w.Update(frame)
	assert.ErrorIs(t, err, ErrSystem)
}

func TestFuncDerivesName(t *testing.T) {
	s := Func("", namedTestSystem)
	assert.Contains(t, s.Name(), "namedTestSystem")
}

func namedTestSystem(*World, time.Duration) error { return nil }

func TestRegistryClearDuringFrame(t *testing.T) {
	r := NewSystemRegistry(nil)
	w := NewWorld()
	var order []string
	require.NoError(t, r.Add(Func("clearer", func(*World, time.Duration) error {
		r.Clear()
		return nil
	})))
	require.NoError(t, r.Add(recorder("after", &order)))

	require.NoError(t, r.UpdateAll(w, frame))
	assert.Equal(t, []string{"after"}, order)
	assert.Equal(t, 0, r.Len())
}

func TestSystemLifecycleLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	w := NewWorld(WithLogger(zap.New(core)))
	require.NoError(t, w.AddSystem(Func("bad", func(*World, time.Duration) error { return errors.New("nope") })))
	id := w.CreateEntity()
	require.NoError(t, AddComponent(w, id, testComp{}))
	require.NoError(t, w.LogEntity(zap.InfoLevel, id))
	_ = w.Update(frame)

	assert.Equal(t, 1, logs.FilterMessage("system added").Len())
	assert.Equal(t, 1, logs.FilterMessage("entity created").Len())
	assert.Equal(t, 1, logs.FilterMessage("system failed").FilterField(zap.String("system", "bad")).Len())
	entries := logs.FilterMessage("entity").All()
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(id), entries[0].ContextMap()["entity_id"])

	err := w.LogEntity(zap.InfoLevel, 4242)
	assert.ErrorIs(t, err, ErrEntityNotFound)
	assert.Contains(t, err.Error(), "log entity")

	w.LogWorld(zap.DebugLevel)
	world := logs.FilterMessage("world").All()
	require.Len(t, world, 1)
	assert.Equal(t, int64(1), world[0].ContextMap()["total_entities"])
}
