package streaming

import (
	"voxelstream/internal/meshing"
	"voxelstream/internal/profiling"
	"voxelstream/internal/world"
)

// Builder turns a chunk coordinate into its mesh. Implementations must be
// pure functions of the coordinate so they can run on several goroutines.
type Builder interface {
	Build(coord world.ChunkCoord) *meshing.Mesh
}

// ChunkBuilder populates a transient block store from the generator and
// meshes it. The store is discarded once the mesh exists.
type ChunkBuilder struct {
	gen   *world.Generator
	dense bool
}

// NewChunkBuilder creates a builder. With dense set, blocks are staged in a
// flat array instead of the sparse map.
func NewChunkBuilder(gen *world.Generator, dense bool) *ChunkBuilder {
	return &ChunkBuilder{gen: gen, dense: dense}
}

// Build generates and meshes the chunk at coord.
func (b *ChunkBuilder) Build(coord world.ChunkCoord) *meshing.Mesh {
	var occ meshing.Occupancy
	stop := profiling.Track("world.Populate")
	if b.dense {
		occ = b.gen.PopulateDense(coord)
	} else {
		occ = b.gen.Populate(coord)
	}
	stop()

	defer profiling.Track("meshing.BuildCulledMesh")()
	return meshing.BuildCulledMesh(occ)
}
