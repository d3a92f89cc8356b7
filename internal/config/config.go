package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Arena layouts.
const (
	LayoutOpen  = "open"  // one walled room with scattered obstacles
	LayoutRooms = "rooms" // BSP rooms joined by corridors
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "EMOJI_ENGINE_CONFIG"

// Config is the full engine configuration loaded from TOML.
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Logging LoggingConfig `toml:"logging"`
	Arena   ArenaConfig   `toml:"arena"`
	Render  RenderConfig  `toml:"render"`
}

// EngineConfig controls the frame loop.
type EngineConfig struct {
	FrameRate    int      `toml:"frame_rate"`     // frames per second
	MaxFrameTime Duration `toml:"max_frame_time"` // dt is clamped to this after a stall
	HaltOnFault  bool     `toml:"halt_on_fault"`  // stop the frame at the first failing system
}

// LoggingConfig selects the zap logger level, encoding and sink.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr
}

// ArenaConfig shapes the sandbox map and its population.
type ArenaConfig struct {
	Layout  string `toml:"layout"` // LayoutOpen or LayoutRooms
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Enemies int    `toml:"enemies"`
	Pickups int    `toml:"pickups"`
	Seed    int64  `toml:"seed"` // 0 = time-based
}

// RenderConfig holds display settings.
type RenderConfig struct {
	FOVRadius int `toml:"fov_radius"`
	HUDRows   int `toml:"hud_rows"`
}

// Duration decodes TOML strings such as "250ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// FrameTime returns the target duration of one frame.
func (c EngineConfig) FrameTime() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.FrameRate)
}

// Load reads path over the defaults. An empty path, or a path that does not
// exist, yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Path resolves the config path from a flag value and the environment.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvPath)
}

func (c *Config) validate() error {
	switch {
	case c.Engine.FrameRate <= 0:
		return fmt.Errorf("engine.frame_rate must be positive, got %d", c.Engine.FrameRate)
	case c.Arena.Width < 3 || c.Arena.Height < 3:
		return fmt.Errorf("arena must be at least 3x3, got %dx%d", c.Arena.Width, c.Arena.Height)
	case c.Arena.Enemies < 0 || c.Arena.Pickups < 0:
		return errors.New("arena spawn counts must not be negative")
	case c.Arena.Layout != LayoutOpen && c.Arena.Layout != LayoutRooms:
		return fmt.Errorf("arena.layout must be %q or %q, got %q", LayoutOpen, LayoutRooms, c.Arena.Layout)
	}
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			FrameRate:    30,
			MaxFrameTime: Duration{250 * time.Millisecond},
			HaltOnFault:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "emoji-engine.log",
		},
		Arena: ArenaConfig{
			Layout:  LayoutOpen,
			Width:   40,
			Height:  20,
			Enemies: 6,
			Pickups: 4,
		},
		Render: RenderConfig{
			FOVRadius: 8,
			HUDRows:   3,
		},
	}
}
