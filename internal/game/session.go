package game

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"voxelstream/internal/config"
	"voxelstream/internal/profiling"
	"voxelstream/internal/streaming"
	"voxelstream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// SlowTick is the tick duration above which the session logs its slowest phases.
const SlowTick = 16 * time.Millisecond

// SpawnClearance is the height above ground at which the observer starts.
const SpawnClearance = 2.0

// Session wires configuration, terrain generation, the streaming manager and
// a renderer into one running world.
type Session struct {
	Config   *config.Config
	Manager  *streaming.Manager
	Renderer streaming.Renderer

	log       *slog.Logger
	generator *world.Generator

	Ticks       int
	LastReport  streaming.TickReport
	lastSummary time.Time
	loadedSince int
}

// NewSession validates cfg and builds the streaming pipeline around renderer.
func NewSession(cfg *config.Config, renderer streaming.Renderer, log *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	gen, err := cfg.NewGenerator()
	if err != nil {
		return nil, err
	}
	builder := streaming.NewChunkBuilder(gen, cfg.Store == config.StoreDense)

	mgr, err := streaming.NewManager(streaming.Options{
		RenderDistance: cfg.RenderDistance,
		Workers:        cfg.Workers,
	}, builder, renderer, log.With("component", "streaming"))
	if err != nil {
		return nil, fmt.Errorf("streaming manager: %w", err)
	}

	log.Info("session started",
		"generator", cfg.Generator,
		"noise", cfg.Noise.Type,
		"seed", cfg.Noise.Seed,
		"render_distance", cfg.RenderDistance,
		"store", cfg.Store,
		"workers", cfg.Workers)

	return &Session{
		Config:      cfg,
		Manager:     mgr,
		Renderer:    renderer,
		log:         log,
		generator:   gen,
		lastSummary: time.Now(),
	}, nil
}

// SpawnPosition returns a point just above the terrain at world column (x, z).
func (s *Session) SpawnPosition(x, z int) mgl32.Vec3 {
	groundY := s.generator.HeightAt(x, z)
	return mgl32.Vec3{float32(x) + 0.5, float32(groundY) + SpawnClearance, float32(z) + 0.5}
}

// Update runs one streaming tick for the observer at pos. It starts a new
// profiling frame, so timings recorded after it, such as rendering, belong
// to this frame only.
func (s *Session) Update(pos mgl32.Vec3) (streaming.TickReport, error) {
	if s.Manager == nil {
		return streaming.TickReport{}, streaming.ErrClosed
	}
	profiling.ResetFrame()
	rep, err := s.Manager.Tick(pos)
	s.Ticks++
	s.LastReport = rep
	if err != nil {
		return rep, fmt.Errorf("tick %d: %w", rep.Tick, err)
	}

	s.loadedSince += len(rep.Loaded)
	if rep.Total > SlowTick {
		s.log.Warn("slow tick",
			"tick", rep.Tick,
			"took", rep.Total,
			"loaded", len(rep.Loaded),
			"top", profiling.TopN(5))
	}
	if time.Since(s.lastSummary) >= time.Second {
		s.log.Info("streaming",
			"center", rep.Center,
			"spawned", rep.Spawned,
			"loaded_last_second", s.loadedSince)
		s.loadedSince = 0
		s.lastSummary = time.Now()
	}
	return rep, nil
}

// Close releases every spawned chunk.
func (s *Session) Close() error {
	if s.Manager == nil {
		return nil
	}
	err := s.Manager.Close()
	s.log.Info("session closed", "ticks", s.Ticks)
	s.Manager = nil
	return err
}
