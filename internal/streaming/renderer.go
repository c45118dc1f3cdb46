package streaming

import (
	"voxelstream/internal/meshing"
	"voxelstream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Handle is an opaque token identifying a registered chunk on the renderer side.
type Handle = any

// Renderer owns the drawable objects for chunk meshes.
type Renderer interface {
	// Register uploads mesh, placed at the world-space origin, and returns its handle.
	// Empty meshes are registered too.
	Register(coord world.ChunkCoord, mesh *meshing.Mesh, origin mgl32.Vec3) (Handle, error)
	// Release frees everything owned by h.
	Release(h Handle) error
}
