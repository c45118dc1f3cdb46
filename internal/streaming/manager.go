package streaming

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"voxelstream/internal/meshing"
	"voxelstream/internal/profiling"
	"voxelstream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Options configures a Manager.
type Options struct {
	// RenderDistance is the Chebyshev radius, in chunks, kept around the observer.
	RenderDistance int
	// Workers > 1 builds pending chunks concurrently.
	Workers int
}

// Durations holds the wall time spent in each tick phase.
type Durations struct {
	Diff   time.Duration
	Load   time.Duration
	Unload time.Duration
	Total  time.Duration
}

// TickReport summarises one Tick.
type TickReport struct {
	Tick     uint64
	Moved    bool
	Center   world.ChunkCoord
	Desired  int
	Loaded   []world.ChunkCoord
	Unloaded []world.ChunkCoord
	Spawned  int
	Durations
}

// Manager keeps the set of spawned chunks equal to the cube of chunks around
// the observer. Tick, Close and the accessors must be called from one goroutine.
type Manager struct {
	opts     Options
	builder  Builder
	renderer Renderer
	pool     *meshing.BuildPool
	log      *slog.Logger
	st       *state
	closed   bool
}

// NewManager validates opts and creates a manager with nothing spawned.
func NewManager(opts Options, builder Builder, renderer Renderer, log *slog.Logger) (*Manager, error) {
	if opts.RenderDistance < 0 {
		return nil, fmt.Errorf("%w: render distance must be >= 0, got %d", ErrInvalidOptions, opts.RenderDistance)
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidOptions, opts.Workers)
	}
	if builder == nil || renderer == nil {
		return nil, fmt.Errorf("%w: builder and renderer are required", ErrInvalidOptions)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		opts:     opts,
		builder:  builder,
		renderer: renderer,
		pool:     meshing.NewBuildPool(opts.Workers),
		log:      log,
		st:       newState(),
	}, nil
}

// Tick runs one streaming cycle for the observer at pos. A position equal to
// the previous tick's does no work. A renderer registration failure aborts
// the cycle with an error wrapping ErrRenderAllocation; chunks registered
// before the failure stay spawned. Positions rejected by world.ValidPosition
// return ErrInvalidPosition and change nothing.
func (m *Manager) Tick(pos mgl32.Vec3) (TickReport, error) {
	st := m.st
	st.tick++
	rep := TickReport{Tick: st.tick, Center: st.center, Desired: len(st.desired), Spawned: len(st.spawned)}
	if m.closed {
		return rep, ErrClosed
	}
	if !world.ValidPosition(pos) {
		return rep, fmt.Errorf("%w: %v", ErrInvalidPosition, pos)
	}
	if st.hasLast && pos == st.lastPos {
		return rep, nil
	}

	start := time.Now()
	rep.Moved = true

	// Desired set diff
	center := world.WorldToChunk(pos)
	if !st.hasCenter || center != st.center {
		m.updateDesired(center)
	}
	rep.Center = center
	rep.Desired = len(st.desired)
	rep.Diff = time.Since(start)
	profiling.Add("streaming.diff", rep.Diff)

	loadStart := time.Now()
	loaded, err := m.load()
	rep.Loaded = loaded
	rep.Load = time.Since(loadStart)
	profiling.Add("streaming.load", rep.Load)
	if err != nil {
		rep.Spawned = len(st.spawned)
		rep.Total = time.Since(start)
		m.log.Error("chunk load failed", "tick", st.tick, "center", center, "err", err)
		return rep, err
	}

	unloadStart := time.Now()
	unloaded, err := m.unload(center)
	rep.Unloaded = unloaded
	rep.Unload = time.Since(unloadStart)
	profiling.Add("streaming.unload", rep.Unload)

	st.lastPos = pos
	st.hasLast = true
	rep.Spawned = len(st.spawned)
	rep.Total = time.Since(start)

	if len(loaded) > 0 || len(unloaded) > 0 {
		m.log.Debug("chunks streamed",
			"tick", st.tick,
			"center", center,
			"loaded", len(loaded),
			"unloaded", len(unloaded),
			"spawned", rep.Spawned,
			"took", rep.Total)
	}
	if err != nil {
		m.log.Error("chunk unload failed", "tick", st.tick, "err", err)
		return rep, err
	}
	return rep, nil
}

// updateDesired recomputes the desired cube and the nearest-first pending list.
func (m *Manager) updateDesired(center world.ChunkCoord) {
	st := m.st
	st.center = center
	st.hasCenter = true

	cube := desiredCube(center, m.opts.RenderDistance)
	clear(st.desired)
	st.pending = st.pending[:0]
	for _, c := range cube {
		st.desired[c] = struct{}{}
		if _, ok := st.spawned[c]; !ok {
			st.pending = append(st.pending, c)
		}
	}
	sortNearest(st.pending, center)
}

// load builds and registers every pending chunk in pending order.
func (m *Manager) load() ([]world.ChunkCoord, error) {
	st := m.st
	if len(st.pending) == 0 {
		return nil, nil
	}

	var loaded []world.ChunkCoord
	commit := func(c world.ChunkCoord, mesh *meshing.Mesh) error {
		h, err := m.renderer.Register(c, mesh, world.ChunkToWorldOrigin(c))
		if err != nil {
			return fmt.Errorf("chunk %v: %w: %w", c, ErrRenderAllocation, err)
		}
		st.spawned[c] = &ChunkRecord{Coord: c, Handle: h, Faces: mesh.FaceCount(), CreatedTick: st.tick}
		loaded = append(loaded, c)
		return nil
	}

	pending := st.pending
	defer func() {
		// Whatever did not commit stays pending for the next tick.
		st.pending = pending[len(loaded):]
	}()

	if m.pool.Workers() > 1 {
		meshes, err := m.pool.BuildAll(pending, m.builder.Build)
		if err != nil {
			return loaded, fmt.Errorf("build pending chunks: %w", err)
		}
		for i, c := range pending {
			if err := commit(c, meshes[i]); err != nil {
				return loaded, err
			}
		}
		return loaded, nil
	}

	for _, c := range pending {
		if err := commit(c, m.builder.Build(c)); err != nil {
			return loaded, err
		}
	}
	return loaded, nil
}

// unload releases every spawned chunk farther than the render distance from center.
// Records are erased even when Release fails; the failures are joined.
func (m *Manager) unload(center world.ChunkCoord) ([]world.ChunkCoord, error) {
	st := m.st
	var (
		unloaded []world.ChunkCoord
		errs     []error
	)
	for _, c := range sortedKeys(st.spawned) {
		if world.ChebyshevDistance(c, center) <= m.opts.RenderDistance {
			continue
		}
		rec := st.spawned[c]
		if err := m.renderer.Release(rec.Handle); err != nil {
			errs = append(errs, fmt.Errorf("chunk %v: %w: %w", c, ErrRenderRelease, err))
		}
		delete(st.spawned, c)
		unloaded = append(unloaded, c)
	}
	return unloaded, errors.Join(errs...)
}

// Spawned returns the spawned coordinates sorted by (x, y, z).
func (m *Manager) Spawned() []world.ChunkCoord {
	return sortedKeys(m.st.spawned)
}

// IsSpawned reports whether coord has a live record.
func (m *Manager) IsSpawned(coord world.ChunkCoord) bool {
	_, ok := m.st.spawned[coord]
	return ok
}

// Desired returns the current desired coordinates sorted by (x, y, z).
func (m *Manager) Desired() []world.ChunkCoord {
	return sortedKeys(m.st.desired)
}

// Pending returns the coordinates still waiting to load, nearest first.
func (m *Manager) Pending() []world.ChunkCoord {
	return append([]world.ChunkCoord(nil), m.st.pending...)
}

// Record returns a copy of the record for coord.
func (m *Manager) Record(coord world.ChunkCoord) (ChunkRecord, bool) {
	rec, ok := m.st.spawned[coord]
	if !ok {
		return ChunkRecord{}, false
	}
	return *rec, true
}

// Center returns the observer chunk of the last cycle that moved.
func (m *Manager) Center() world.ChunkCoord {
	return m.st.center
}

// TickCount returns the number of Tick calls so far.
func (m *Manager) TickCount() uint64 {
	return m.st.tick
}

// Close releases every spawned chunk and stops the build workers. It is safe
// to call more than once.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	defer m.pool.Shutdown()

	var errs []error
	for _, c := range sortedKeys(m.st.spawned) {
		if err := m.renderer.Release(m.st.spawned[c].Handle); err != nil {
			errs = append(errs, fmt.Errorf("chunk %v: %w: %w", c, ErrRenderRelease, err))
		}
	}
	n := len(m.st.spawned)
	clear(m.st.spawned)
	clear(m.st.desired)
	m.st.pending = nil

	m.log.Debug("streaming manager closed", "released", n, "errors", len(errs))
	return errors.Join(errs...)
}
