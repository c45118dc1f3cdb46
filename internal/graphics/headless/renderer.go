// Package headless is an in-memory chunk renderer for simulations and tests.
// It keeps registered meshes in a map keyed by a random handle id and never
// touches a GPU.
package headless

import (
	"errors"
	"fmt"
	"sync"

	"voxelstream/internal/meshing"
	"voxelstream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ErrUnknownHandle is returned when releasing a handle this renderer did not issue
// or already released.
var ErrUnknownHandle = errors.New("headless: unknown handle")

// Handle identifies a registered chunk.
type Handle struct {
	ID    uuid.UUID
	Coord world.ChunkCoord
}

// Entry is a registered chunk.
type Entry struct {
	Coord    world.ChunkCoord
	Origin   mgl32.Vec3
	Faces    int
	Vertices int
	Indices  int
}

// Stats counts renderer activity.
type Stats struct {
	Registered int
	Released   int
	Live       int
	Faces      int
}

// Renderer stores mesh summaries instead of GPU buffers. It is safe for concurrent use.
type Renderer struct {
	mu      sync.Mutex
	entries map[uuid.UUID]Entry
	stats   Stats

	// FailRegister, when set, is consulted before every registration; a
	// non-nil result is returned as the registration error.
	FailRegister func(coord world.ChunkCoord) error
}

// New creates an empty renderer.
func New() *Renderer {
	return &Renderer{entries: make(map[uuid.UUID]Entry)}
}

// Register records the mesh summary and returns a Handle.
func (r *Renderer) Register(coord world.ChunkCoord, mesh *meshing.Mesh, origin mgl32.Vec3) (any, error) {
	if r.FailRegister != nil {
		if err := r.FailRegister(coord); err != nil {
			return nil, err
		}
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("headless: new handle: %w", err)
	}
	e := Entry{
		Coord:    coord,
		Origin:   origin,
		Faces:    mesh.FaceCount(),
		Vertices: mesh.VertexCount(),
	}
	if mesh != nil {
		e.Indices = len(mesh.Indices)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = e
	r.stats.Registered++
	r.stats.Live++
	r.stats.Faces += e.Faces
	return Handle{ID: id, Coord: coord}, nil
}

// Release forgets the chunk behind h.
func (r *Renderer) Release(h any) error {
	hh, ok := h.(Handle)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnknownHandle, h)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[hh.ID]
	if !ok {
		return fmt.Errorf("%w: %s (%v)", ErrUnknownHandle, hh.ID, hh.Coord)
	}
	delete(r.entries, hh.ID)
	r.stats.Released++
	r.stats.Live--
	r.stats.Faces -= e.Faces
	return nil
}

// Lookup returns the entry for h.
func (r *Renderer) Lookup(h any) (Entry, bool) {
	hh, ok := h.(Handle)
	if !ok {
		return Entry{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[hh.ID]
	return e, ok
}

// Stats returns a snapshot of the counters.
func (r *Renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Entries returns all live entries keyed by chunk coordinate.
func (r *Renderer) Entries() map[world.ChunkCoord]Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[world.ChunkCoord]Entry, len(r.entries))
	for _, e := range r.entries {
		out[e.Coord] = e
	}
	return out
}
