package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkSize is the edge length of a cubic chunk in blocks.
const ChunkSize = 32

// ChunkVolume is the number of cells in one chunk.
const ChunkVolume = ChunkSize * ChunkSize * ChunkSize

// ChunkCoord identifies a chunk in chunk space.
type ChunkCoord struct {
	X, Y, Z int
}

// Add returns the coordinate offset by (dx, dy, dz) chunks.
func (c ChunkCoord) Add(dx, dy, dz int) ChunkCoord {
	return ChunkCoord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// BlockPos is a chunk-local block position. Valid positions lie in [0, ChunkSize) on every axis.
type BlockPos struct {
	X, Y, Z int
}

// InBounds reports whether p addresses a cell inside a chunk.
func (p BlockPos) InBounds() bool {
	return p.X >= 0 && p.X < ChunkSize &&
		p.Y >= 0 && p.Y < ChunkSize &&
		p.Z >= 0 && p.Z < ChunkSize
}

// Neighbor returns the position one step across face f. The result may be out of bounds.
func (p BlockPos) Neighbor(f Face) BlockPos {
	d := faceOffsets[f]
	return BlockPos{X: p.X + d[0], Y: p.Y + d[1], Z: p.Z + d[2]}
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Mod returns a modulo b in [0, b) for positive b.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// MaxCoordinate bounds world positions on every axis. Chunk arithmetic on
// positions beyond it could overflow int.
const MaxCoordinate = 1 << 30

// ValidPosition reports whether every component of pos is finite and within
// MaxCoordinate.
func ValidPosition(pos mgl32.Vec3) bool {
	for _, v := range pos {
		f := float64(v)
		if math.IsNaN(f) || math.Abs(f) > MaxCoordinate {
			return false
		}
	}
	return true
}

// WorldToChunk returns the chunk containing the world position.
func WorldToChunk(pos mgl32.Vec3) ChunkCoord {
	return ChunkCoord{
		X: floorChunk(pos.X()),
		Y: floorChunk(pos.Y()),
		Z: floorChunk(pos.Z()),
	}
}

func floorChunk(v float32) int {
	return int(math.Floor(float64(v) / ChunkSize))
}

// ChunkToWorldOrigin returns the world position of the chunk's minimum corner.
func ChunkToWorldOrigin(c ChunkCoord) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.X * ChunkSize),
		float32(c.Y * ChunkSize),
		float32(c.Z * ChunkSize),
	}
}

// WorldToLocalBlock returns the block position of pos inside its own chunk.
func WorldToLocalBlock(pos mgl32.Vec3) BlockPos {
	c := WorldToChunk(pos)
	return BlockPos{
		X: localAxis(pos.X(), c.X),
		Y: localAxis(pos.Y(), c.Y),
		Z: localAxis(pos.Z(), c.Z),
	}
}

// localAxis works in float64 so the subtraction of the chunk origin is exact for any float32 input.
func localAxis(v float32, chunk int) int {
	l := int(float64(v) - float64(chunk*ChunkSize))
	if l >= ChunkSize {
		l = ChunkSize - 1
	}
	if l < 0 {
		l = 0
	}
	return l
}

// BlockToChunk returns the chunk that contains the integer world block (x, y, z)
// and the block's local position inside it.
func BlockToChunk(x, y, z int) (ChunkCoord, BlockPos) {
	c := ChunkCoord{X: FloorDiv(x, ChunkSize), Y: FloorDiv(y, ChunkSize), Z: FloorDiv(z, ChunkSize)}
	p := BlockPos{X: Mod(x, ChunkSize), Y: Mod(y, ChunkSize), Z: Mod(z, ChunkSize)}
	return c, p
}

// ChebyshevDistance is the largest per-axis distance between two chunk coordinates.
func ChebyshevDistance(a, b ChunkCoord) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y), abs(a.Z-b.Z))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
