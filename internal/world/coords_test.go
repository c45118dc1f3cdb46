package world

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestWorldToChunk(t *testing.T) {
	tests := []struct {
		name string
		pos  mgl32.Vec3
		want ChunkCoord
	}{
		{"origin", mgl32.Vec3{0, 0, 0}, ChunkCoord{0, 0, 0}},
		{"inside first chunk", mgl32.Vec3{31.9, 0.5, 12}, ChunkCoord{0, 0, 0}},
		{"exact boundary", mgl32.Vec3{32, 64, 96}, ChunkCoord{1, 2, 3}},
		{"just negative", mgl32.Vec3{-0.1, -0.001, -31.9}, ChunkCoord{-1, -1, -1}},
		{"negative boundary", mgl32.Vec3{-32, -33, -64}, ChunkCoord{-1, -2, -2}},
		{"far position", mgl32.Vec3{998.1, 456.9, 789.4}, ChunkCoord{31, 14, 24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WorldToChunk(tt.pos); got != tt.want {
				t.Fatalf("WorldToChunk(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestChunkToWorldOrigin(t *testing.T) {
	got := ChunkToWorldOrigin(ChunkCoord{X: -2, Y: 0, Z: 3})
	want := mgl32.Vec3{-64, 0, 96}
	if got != want {
		t.Fatalf("ChunkToWorldOrigin = %v, want %v", got, want)
	}
}

func TestWorldToLocalBlock(t *testing.T) {
	tests := []struct {
		pos  mgl32.Vec3
		want BlockPos
	}{
		{mgl32.Vec3{998.1, 456.9, 789.4}, BlockPos{6, 8, 21}},
		{mgl32.Vec3{0, 0, 0}, BlockPos{0, 0, 0}},
		{mgl32.Vec3{-0.5, -1, -32}, BlockPos{31, 31, 0}},
		{mgl32.Vec3{-33.25, 31.99, 5}, BlockPos{30, 31, 5}},
	}

	for _, tt := range tests {
		if got := WorldToLocalBlock(tt.pos); got != tt.want {
			t.Errorf("WorldToLocalBlock(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

// TestChunkRoundTripIdempotent checks worldToChunk(origin(worldToChunk(p))) == worldToChunk(p).
func TestChunkRoundTripIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for i := 0; i < 5000; i++ {
		p := randomPosition(rng)
		c := WorldToChunk(p)
		if got := WorldToChunk(ChunkToWorldOrigin(c)); got != c {
			t.Fatalf("round trip of %v: got %v, want %v", p, got, c)
		}
	}
}

func TestWorldToLocalBlockInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(54321))
	for i := 0; i < 5000; i++ {
		p := randomPosition(rng)
		if l := WorldToLocalBlock(p); !l.InBounds() {
			t.Fatalf("WorldToLocalBlock(%v) = %v, out of [0,%d)", p, l, ChunkSize)
		}
	}
}

func randomPosition(rng *rand.Rand) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(rng.Float64()*20000 - 10000),
		float32(rng.Float64()*2000 - 1000),
		float32(rng.Float64()*20000 - 10000),
	}
}

func TestFloorDivAndMod(t *testing.T) {
	tests := []struct {
		a, b, div, mod int
	}{
		{0, 32, 0, 0},
		{31, 32, 0, 31},
		{32, 32, 1, 0},
		{-1, 32, -1, 31},
		{-32, 32, -1, 0},
		{-33, 32, -2, 31},
	}
	for _, tt := range tests {
		if got := FloorDiv(tt.a, tt.b); got != tt.div {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.div)
		}
		if got := Mod(tt.a, tt.b); got != tt.mod {
			t.Errorf("Mod(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.mod)
		}
	}
}

func TestBlockToChunk(t *testing.T) {
	c, p := BlockToChunk(-1, 40, 64)
	if c != (ChunkCoord{-1, 1, 2}) {
		t.Errorf("chunk = %v, want (-1,1,2)", c)
	}
	if p != (BlockPos{31, 8, 0}) {
		t.Errorf("local = %v, want {31 8 0}", p)
	}
}

func TestValidPosition(t *testing.T) {
	inf := float32(math.Inf(1))
	tests := []struct {
		pos  mgl32.Vec3
		want bool
	}{
		{mgl32.Vec3{0, 0, 0}, true},
		{mgl32.Vec3{-1e6, 250, 1e6}, true},
		{mgl32.Vec3{MaxCoordinate, 0, -MaxCoordinate}, true},
		{mgl32.Vec3{inf, 0, 0}, false},
		{mgl32.Vec3{0, -inf, 0}, false},
		{mgl32.Vec3{0, 0, float32(math.NaN())}, false},
		{mgl32.Vec3{4 * MaxCoordinate, 0, 0}, false},
	}
	for _, tt := range tests {
		if got := ValidPosition(tt.pos); got != tt.want {
			t.Errorf("ValidPosition(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestChebyshevDistance(t *testing.T) {
	a := ChunkCoord{0, 0, 0}
	if d := ChebyshevDistance(a, ChunkCoord{2, -3, 1}); d != 3 {
		t.Errorf("distance = %d, want 3", d)
	}
	if d := ChebyshevDistance(a, a); d != 0 {
		t.Errorf("distance to self = %d, want 0", d)
	}
}

func TestFaceOffsetsMatchNormals(t *testing.T) {
	for _, f := range Faces {
		dx, dy, dz := f.Offset()
		n := f.Normal()
		if float32(dx) != n.X() || float32(dy) != n.Y() || float32(dz) != n.Z() {
			t.Errorf("%s: offset (%d,%d,%d) disagrees with normal %v", f, dx, dy, dz, n)
		}
		if n.Len() != 1 {
			t.Errorf("%s: normal %v is not unit length", f, n)
		}
	}
}
