package streaming

import (
	"cmp"
	"slices"

	"voxelstream/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkRecord is the live state of one spawned chunk.
type ChunkRecord struct {
	Coord       world.ChunkCoord
	Handle      Handle
	Faces       int
	CreatedTick uint64
}

// state is owned by the tick goroutine.
type state struct {
	lastPos   mgl32.Vec3
	hasLast   bool
	center    world.ChunkCoord
	hasCenter bool
	desired   map[world.ChunkCoord]struct{}
	pending   []world.ChunkCoord
	spawned   map[world.ChunkCoord]*ChunkRecord
	tick      uint64
}

func newState() *state {
	return &state{
		desired: make(map[world.ChunkCoord]struct{}),
		spawned: make(map[world.ChunkCoord]*ChunkRecord),
	}
}

// desiredCube returns the (2r+1)^3 coordinates within Chebyshev distance r of center.
func desiredCube(center world.ChunkCoord, r int) []world.ChunkCoord {
	side := 2*r + 1
	out := make([]world.ChunkCoord, 0, side*side*side)
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				out = append(out, center.Add(dx, dy, dz))
			}
		}
	}
	return out
}

// sortNearest orders coords by Chebyshev distance to center, then squared
// euclidean distance, then coordinate.
func sortNearest(coords []world.ChunkCoord, center world.ChunkCoord) {
	slices.SortFunc(coords, func(a, b world.ChunkCoord) int {
		if c := cmp.Compare(world.ChebyshevDistance(a, center), world.ChebyshevDistance(b, center)); c != 0 {
			return c
		}
		if c := cmp.Compare(distSq(a, center), distSq(b, center)); c != 0 {
			return c
		}
		return compareCoord(a, b)
	})
}

func distSq(a, b world.ChunkCoord) int {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return dx*dx + dy*dy + dz*dz
}

func compareCoord(a, b world.ChunkCoord) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}

func sortedKeys[V any](m map[world.ChunkCoord]V) []world.ChunkCoord {
	out := make([]world.ChunkCoord, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	slices.SortFunc(out, compareCoord)
	return out
}
