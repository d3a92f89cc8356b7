package game

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"emoji-engine/internal/component"
	"emoji-engine/internal/config"
	"emoji-engine/internal/ecs"
)

func newTestSandbox(t *testing.T, tweak ...func(*config.Config)) (*Sandbox, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 30)
	t.Cleanup(screen.Fini)

	cfg := config.Defaults()
	cfg.Engine.FrameRate = 200
	cfg.Arena.Seed = 1
	for _, fn := range tweak {
		fn(cfg)
	}
	sb, err := New(cfg, zap.NewNop(), screen)
	require.NoError(t, err)
	return sb, screen
}

func TestNewPopulatesArena(t *testing.T) {
	sb, _ := newTestSandbox(t)
	w := sb.World()

	assert.Len(t, w.Query(ecs.Single[component.TagPlayer]{}), 1)
	assert.Len(t, w.Query(ecs.Single[component.AI]{}), 6)
	assert.Len(t, w.Query(ecs.Single[component.TagPickup]{}), 4)
	assert.Equal(t,
		[]string{"input", "ai", "movement", "effects", "lifetime", "reaper", "fov", "render"},
		w.Systems())
}

func TestRoomsLayout(t *testing.T) {
	sb, _ := newTestSandbox(t, func(c *config.Config) {
		c.Arena.Layout = config.LayoutRooms
		c.Arena.Width, c.Arena.Height = 60, 30
	})
	assert.Len(t, sb.World().Query(ecs.Single[component.TagPlayer]{}), 1)
	require.NoError(t, sb.Run(context.Background(), 2))
}

func TestRunStopsAfterFrames(t *testing.T) {
	sb, _ := newTestSandbox(t)
	require.NoError(t, sb.Run(context.Background(), 5))
	assert.Equal(t, 5, sb.Stats().Frames)
}

func TestRunQuitsOnKey(t *testing.T) {
	sb, screen := newTestSandbox(t)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, sb.Run(ctx, 0))
	assert.NoError(t, ctx.Err(), "quit key should end the run before the timeout")
}

func TestRunHaltsOnSystemFault(t *testing.T) {
	sb, _ := newTestSandbox(t)
	require.NoError(t, sb.World().AddSystem(ecs.Func("broken", func(*ecs.World, time.Duration) error {
		return ecs.NewSystemError("broken", "out of %s", "coffee")
	})))

	err := sb.Run(context.Background(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ecs.ErrSystem)
	assert.Equal(t, 1, sb.Stats().Frames)
}

func TestSystemFaultLoggedOncePerLayer(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 30)
	t.Cleanup(screen.Fini)

	cfg := config.Defaults()
	cfg.Engine.FrameRate = 200
	cfg.Engine.HaltOnFault = false
	cfg.Arena.Seed = 1
	core, logs := observer.New(zap.DebugLevel)
	sb, err := New(cfg, zap.New(core), screen)
	require.NoError(t, err)
	require.NoError(t, sb.World().AddSystem(ecs.Func("broken", func(*ecs.World, time.Duration) error {
		return ecs.NewSystemError("", "out of coffee")
	})))

	require.NoError(t, sb.Run(context.Background(), 3))
	assert.Equal(t, 3, sb.Stats().Frames)
	assert.Equal(t, 3, logs.FilterMessage("system failed").Len())
	assert.Equal(t, 3, logs.FilterMessage("frame failed").Len())
	assert.Equal(t, 3, logs.FilterLevelExact(zap.ErrorLevel).Len(), "only the frame summary logs at error level")
}

func TestPlayerDeathStopsRun(t *testing.T) {
	sb, _ := newTestSandbox(t)
	require.NoError(t, ecs.UpdateComponent(sb.World(), sb.player, func(hp *component.Health) { hp.Current = 0 }))

	require.NoError(t, sb.Run(context.Background(), 100))
	assert.True(t, sb.Stats().Died)
	assert.Less(t, sb.Stats().Frames, 100)
	assert.Contains(t, sb.renderer.Messages(), "You died. Press q to quit.")
}
