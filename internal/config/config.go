package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"voxelstream/internal/world"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a configuration that cannot start a session.
var ErrInvalid = errors.New("invalid config")

// WindowSettings configures the interactive viewer.
type WindowSettings struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	VSync     bool `yaml:"vsync"`
	Wireframe bool `yaml:"wireframe"`
}

// Config holds the engine configuration. It is read once at startup.
type Config struct {
	RenderDistance int            `yaml:"render_distance"`
	ChunkSize      int            `yaml:"chunk_size"`
	Noise          NoiseSettings  `yaml:"noise"`
	Generator      string         `yaml:"generator"` // "noise" or "flat"
	FlatHeight     int            `yaml:"flat_height"`
	MarkSurface    bool           `yaml:"mark_surface"`
	Store          string         `yaml:"store"` // "sparse" or "dense"
	Workers        int            `yaml:"workers"`
	TickRate       int            `yaml:"tick_rate"` // ticks per second for headless runs, 0 = unlimited
	LogLevel       string         `yaml:"log_level"`
	Window         WindowSettings `yaml:"window"`
}

// Default returns a Config with the stock engine settings.
func Default() *Config {
	return &Config{
		RenderDistance: 4,
		ChunkSize:      world.ChunkSize,
		Noise:          defaultNoise(),
		Generator:      GeneratorNoise,
		FlatHeight:     8,
		MarkSurface:    true,
		Store:          StoreSparse,
		Workers:        1,
		TickRate:       60,
		LogLevel:       "info",
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.RenderDistance < 0 {
		return fmt.Errorf("%w: render_distance must be >= 0, got %d", ErrInvalid, c.RenderDistance)
	}
	if c.ChunkSize != world.ChunkSize {
		return fmt.Errorf("%w: chunk_size must be %d, got %d", ErrInvalid, world.ChunkSize, c.ChunkSize)
	}
	switch c.Generator {
	case GeneratorNoise:
		if err := c.Noise.NoiseConfig().Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	case GeneratorFlat:
		if c.FlatHeight < 0 {
			return fmt.Errorf("%w: flat_height must be >= 0, got %d", ErrInvalid, c.FlatHeight)
		}
	default:
		return fmt.Errorf("%w: unknown generator %q", ErrInvalid, c.Generator)
	}
	switch c.Store {
	case StoreSparse, StoreDense:
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalid, c.Store)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalid, c.Workers)
	}
	if c.TickRate < 0 {
		return fmt.Errorf("%w: tick_rate must be >= 0, got %d", ErrInvalid, c.TickRate)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return nil
}

// BindFlags registers command line overrides for cfg on fs.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.RenderDistance, "render-distance", cfg.RenderDistance, "chunk radius kept around the observer")
	fs.Int64Var(&cfg.Noise.Seed, "seed", cfg.Noise.Seed, "terrain seed")
	fs.StringVar(&cfg.Noise.Type, "noise", cfg.Noise.Type, "noise type: opensimplex or value")
	fs.StringVar(&cfg.Generator, "generator", cfg.Generator, "terrain generator: noise or flat")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "block store layout: sparse or dense")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent chunk builds (<= 1 builds inline)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.Window.Wireframe, "wireframe", cfg.Window.Wireframe, "start in wireframe mode")
}

// ExplicitFlags returns the names of flags set on the command line.
func ExplicitFlags(fs *flag.FlagSet) map[string]bool {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	return explicit
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. Settings without a flag always
// come from the file.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["render-distance"] {
		cfg.RenderDistance = fromFile.RenderDistance
	}
	seed, noiseType := cfg.Noise.Seed, cfg.Noise.Type
	cfg.Noise = fromFile.Noise
	if explicitFlags["seed"] {
		cfg.Noise.Seed = seed
	}
	if explicitFlags["noise"] {
		cfg.Noise.Type = noiseType
	}
	if !explicitFlags["generator"] {
		cfg.Generator = fromFile.Generator
	}
	if !explicitFlags["store"] {
		cfg.Store = fromFile.Store
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
	wireframe := cfg.Window.Wireframe
	cfg.Window = fromFile.Window
	if explicitFlags["wireframe"] {
		cfg.Window.Wireframe = wireframe
	}

	cfg.ChunkSize = fromFile.ChunkSize
	cfg.FlatHeight = fromFile.FlatHeight
	cfg.MarkSurface = fromFile.MarkSurface
	cfg.TickRate = fromFile.TickRate
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// NewLogger builds a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
