package meshing

import (
	"voxelstream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Occupancy is the read side of a chunk block store.
type Occupancy interface {
	Has(p world.BlockPos) bool
	Each(fn func(p world.BlockPos, id world.BlockID))
	Len() int
}

// faceCorners holds the unit-cube corners of each face, ordered counter-clockwise
// as seen from outside the block.
var faceCorners = [6][4][3]float32{
	world.FaceEast:   {{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	world.FaceWest:   {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	world.FaceTop:    {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	world.FaceBottom: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	world.FaceNorth:  {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	world.FaceSouth:  {{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
}

var faceUVs = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// BuildCulledMesh emits one quad for every block face whose neighbour cell is
// empty. Neighbours outside the chunk are treated as empty, so chunk borders
// always get faces. Blocks are visited in ascending (x, y, z) order and faces
// in world.Faces order, so the output is deterministic.
func BuildCulledMesh(o Occupancy) *Mesh {
	m := &Mesh{}
	if o == nil || o.Len() == 0 {
		return m
	}

	// Pre-size for a mostly-exposed surface
	est := o.Len() * 2
	m.Positions = make([]mgl32.Vec3, 0, est*4)
	m.Normals = make([]mgl32.Vec3, 0, est*4)
	m.UVs = make([]mgl32.Vec2, 0, est*4)
	m.Indices = make([]uint32, 0, est*6)

	o.Each(func(p world.BlockPos, _ world.BlockID) {
		for _, f := range world.Faces {
			if n := p.Neighbor(f); n.InBounds() && o.Has(n) {
				continue
			}
			emitFace(m, p, f)
		}
	})
	return m
}

func emitFace(m *Mesh, p world.BlockPos, f world.Face) {
	base := uint32(len(m.Positions))
	normal := f.Normal()
	bx, by, bz := float32(p.X), float32(p.Y), float32(p.Z)
	for i, c := range faceCorners[f] {
		m.Positions = append(m.Positions, mgl32.Vec3{bx + c[0], by + c[1], bz + c[2]})
		m.Normals = append(m.Normals, normal)
		m.UVs = append(m.UVs, faceUVs[i])
	}
	// Triangle 1: a,b,c  Triangle 2: a,c,d
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}
