// Package game wires the ECS world, the arena and the sandbox systems into
// a frame loop driven by a tcell screen.
package game

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"emoji-engine/internal/component"
	"emoji-engine/internal/config"
	"emoji-engine/internal/ecs"
	"emoji-engine/internal/factory"
	"emoji-engine/internal/gamemap"
	"emoji-engine/internal/generate"
	"emoji-engine/internal/render"
	"emoji-engine/internal/system"
)

// effectTurn is how often timed effects tick.
const effectTurn = 500 * time.Millisecond

// pickupTTL is how long an uncollected pickup stays in the arena, in seconds.
const pickupTTL = 20.0

// Sandbox is the top-level orchestrator.
type Sandbox struct {
	cfg      *config.Config
	log      *zap.Logger
	screen   tcell.Screen
	world    *ecs.World
	gmap     *gamemap.GameMap
	renderer *render.Renderer
	rng      *rand.Rand
	player   ecs.EntityID

	events   chan tcell.Event
	quit     chan struct{}
	quitOnce sync.Once

	stats RunStats
}

// New builds the world, populates the arena and registers the systems.
// The screen must already be initialised.
func New(cfg *config.Config, log *zap.Logger, screen tcell.Screen) (*Sandbox, error) {
	seed := cfg.Arena.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Sandbox{
		cfg:    cfg,
		log:    log,
		screen: screen,
		rng:    rand.New(rand.NewSource(seed)),
		events: make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
		stats:  RunStats{Seed: seed},
	}
	s.world = ecs.NewWorld(
		ecs.WithLogger(log.Named("ecs")),
		ecs.WithFaultHandler(s.onFault),
	)
	s.gmap = newArena(cfg.Arena, s.rng)
	s.renderer = render.NewRenderer(screen, s.gmap, cfg.Render.HUDRows)

	if err := s.populate(); err != nil {
		return nil, err
	}
	if err := s.registerSystems(); err != nil {
		return nil, err
	}
	s.renderer.Log("Arrow keys or hjkl to move, q to quit.")
	log.Info("sandbox ready",
		zap.Int64("seed", seed),
		zap.Int("entities", s.world.EntityCount()),
		zap.Strings("systems", s.world.Systems()))
	return s, nil
}

func newArena(cfg config.ArenaConfig, rng *rand.Rand) *gamemap.GameMap {
	if cfg.Layout == config.LayoutRooms {
		gmap, _ := generate.Rooms(generate.DefaultConfig(cfg.Width, cfg.Height, rng))
		return gmap
	}
	return gamemap.NewArena(cfg.Width, cfg.Height, rng)
}

// World exposes the ECS world, e.g. for inspector dumps.
func (s *Sandbox) World() *ecs.World { return s.world }

// Stats returns the statistics gathered so far.
func (s *Sandbox) Stats() RunStats { return s.stats }

// Stop asks Run to return after the current frame.
func (s *Sandbox) Stop() {
	s.quitOnce.Do(func() { close(s.quit) })
}

func (s *Sandbox) populate() error {
	x, y, ok := s.gmap.RandomFloor(s.rng, 1000)
	if !ok {
		return eris.New("arena has no floor for the player")
	}
	player, err := factory.NewPlayer(s.world, x, y, factory.DefaultPlayer)
	if err != nil {
		return eris.Wrap(err, "spawn player")
	}
	s.player = player

	for i := 0; i < s.cfg.Arena.Enemies; i++ {
		x, y, ok := s.freeTile()
		if !ok {
			break
		}
		if _, err := factory.NewEnemy(s.world, factory.RandomEnemy(s.rng), x, y); err != nil {
			return eris.Wrap(err, "spawn enemy")
		}
	}
	for i := 0; i < s.cfg.Arena.Pickups; i++ {
		x, y, ok := s.freeTile()
		if !ok {
			break
		}
		if _, err := factory.NewPickup(s.world, factory.RandomPickup(s.rng), x, y, pickupTTL); err != nil {
			return eris.Wrap(err, "spawn pickup")
		}
	}
	return nil
}

// freeTile finds a floor tile with no blocking entity on it.
func (s *Sandbox) freeTile() (int, int, bool) {
	for i := 0; i < 100; i++ {
		x, y, ok := s.gmap.RandomFloor(s.rng, 100)
		if ok && system.BlockerAt(s.world, x, y, ecs.NilEntity) == ecs.NilEntity {
			return x, y, true
		}
	}
	return 0, 0, false
}

func (s *Sandbox) registerSystems() error {
	systems := []ecs.System{
		&system.Input{Events: s.events, OnQuit: s.Stop},
		system.AI{},
		&system.Movement{Map: s.gmap, Rng: s.rng, OnAttack: s.onAttack},
		&system.Effects{Interval: effectTurn},
		system.Lifetime{},
		&system.Reaper{OnPlayerDeath: s.onPlayerDeath},
		&system.FOV{Map: s.gmap, Radius: s.cfg.Render.FOVRadius},
		s.renderer,
	}
	for _, sys := range systems {
		if err := s.world.AddSystem(sys); err != nil {
			return err
		}
	}
	return nil
}

// onFault maps engine.halt_on_fault onto the fault decision.
func (s *Sandbox) onFault(*ecs.SystemError) ecs.FaultDecision {
	if s.cfg.Engine.HaltOnFault {
		return ecs.FaultHalt
	}
	return ecs.FaultContinue
}

func (s *Sandbox) onAttack(attacker, defender ecs.EntityID, res system.AttackResult) {
	name := glyph(s.world, attacker)
	target := glyph(s.world, defender)
	switch {
	case attacker == s.player:
		s.stats.DamageDealt += res.Damage
		s.renderer.Log("You hit %s for %d.", target, res.Damage)
	case defender == s.player:
		s.stats.DamageTaken += res.Damage
		s.stats.CauseOfDeath = name
		s.renderer.Log("%s hits you for %d.", name, res.Damage)
	}
	if res.Killed && attacker == s.player {
		s.stats.EnemiesKilled++
		s.renderer.Log("%s is destroyed!", target)
	}
}

func (s *Sandbox) onPlayerDeath(ecs.EntityID) {
	s.renderer.Log("You died. Press q to quit.")
	s.log.Info("player died", zap.String("cause", s.stats.CauseOfDeath))
	s.stats.Died = true
	s.Stop()
}

func glyph(w *ecs.World, id ecs.EntityID) string {
	r, err := ecs.GetComponent[component.Renderable](w, id)
	if err != nil {
		return "?"
	}
	return r.Glyph
}

// Run drives the frame loop until ctx is cancelled, the player quits, or
// frames frames have run (frames <= 0 means no limit). A halting system
// fault ends the loop with that error.
func (s *Sandbox) Run(ctx context.Context, frames int) error {
	go s.pollEvents()

	frameTime := s.cfg.Engine.FrameTime()
	maxDT := s.cfg.Engine.MaxFrameTime.Duration
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	start := time.Now()
	last := start
	defer func() {
		s.stats.Elapsed = time.Since(start)
		s.world.LogWorld(zapcore.DebugLevel)
	}()

	for frames <= 0 || s.stats.Frames < frames {
		select {
		case <-ctx.Done():
			return nil
		case <-s.quit:
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if maxDT > 0 && dt > maxDT {
				s.log.Debug("frame stalled", zap.Duration("dt", dt))
				dt = maxDT
			}
			s.stats.Frames++
			if err := s.world.Update(dt); err != nil {
				s.log.Error("frame failed", zap.Int("frame", s.stats.Frames), zap.Error(err))
				if s.cfg.Engine.HaltOnFault {
					return eris.Wrapf(err, "frame %d", s.stats.Frames)
				}
			}
		}
	}
	return nil
}

// pollEvents forwards screen events to the input system until the screen
// is finalised. Events are dropped when the buffer is full.
func (s *Sandbox) pollEvents() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventResize); ok {
			s.screen.Sync()
			continue
		}
		select {
		case s.events <- ev:
		default:
		}
	}
}
