package meshing

import (
	"voxelstream/internal/world"

	"github.com/alitto/pond/v2"
)

// BuildFunc produces the mesh for one chunk. It must be safe to call from
// several goroutines at once.
type BuildFunc func(coord world.ChunkCoord) *Mesh

// BuildPool runs chunk builds on a bounded set of goroutines. With one
// worker or fewer it builds inline on the caller's goroutine.
type BuildPool struct {
	workers int
	pool    pond.ResultPool[*Mesh]
}

// NewBuildPool creates a pool with the given concurrency.
func NewBuildPool(workers int) *BuildPool {
	p := &BuildPool{workers: workers}
	if workers > 1 {
		p.pool = pond.NewResultPool[*Mesh](workers)
	}
	return p
}

// Workers returns the configured concurrency.
func (p *BuildPool) Workers() int {
	return p.workers
}

// BuildAll builds every coordinate and returns the meshes in the order of coords.
func (p *BuildPool) BuildAll(coords []world.ChunkCoord, build BuildFunc) ([]*Mesh, error) {
	if p.pool == nil || len(coords) < 2 {
		out := make([]*Mesh, len(coords))
		for i, c := range coords {
			out[i] = build(c)
		}
		return out, nil
	}

	group := p.pool.NewGroup()
	for _, c := range coords {
		group.Submit(func() *Mesh {
			return build(c)
		})
	}
	return group.Wait()
}

// Shutdown waits for running builds and stops the workers.
func (p *BuildPool) Shutdown() {
	if p.pool != nil {
		p.pool.StopAndWait()
	}
}
