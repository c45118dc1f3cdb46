package meshing

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is number of float32 per interleaved vertex (pos.xyz + normal.xyz + uv.xy)
const VertexStride = 8

// Mesh is renderer-agnostic chunk geometry in chunk-local space.
// Every face owns its four vertices; Indices holds two triangles per face.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Positions)
}

// FaceCount returns the number of emitted quads.
func (m *Mesh) FaceCount() int {
	return m.VertexCount() / 4
}

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Indices) == 0
}

// Interleaved packs the vertex attributes for upload.
func (m *Mesh) Interleaved() []float32 {
	n := m.VertexCount()
	out := make([]float32, 0, n*VertexStride)
	for i := 0; i < n; i++ {
		p, nrm, uv := m.Positions[i], m.Normals[i], m.UVs[i]
		out = append(out,
			p.X(), p.Y(), p.Z(),
			nrm.X(), nrm.Y(), nrm.Z(),
			uv.X(), uv.Y(),
		)
	}
	return out
}

// Bounds returns the axis-aligned box spanning all positions.
// An empty mesh yields two zero vectors.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if m.VertexCount() == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	inf := float32(math.Inf(1))
	lo = mgl32.Vec3{inf, inf, inf}
	hi = mgl32.Vec3{-inf, -inf, -inf}
	for _, p := range m.Positions {
		for a := 0; a < 3; a++ {
			lo[a] = min(lo[a], p[a])
			hi[a] = max(hi[a], p[a])
		}
	}
	return lo, hi
}
