package world

import (
	"crypto/sha256"
	"testing"
)

// columnField returns a fixed height for one column and zero elsewhere.
type columnField struct {
	x, z, height int
}

func (c columnField) HeightAt(x, z int) int {
	if x == c.x && z == c.z {
		return c.height
	}
	return 0
}

func TestHeightSourcesImplementInterface(t *testing.T) {
	var _ HeightSource = FlatField{Height: 10}
	var _ HeightSource = &HeightField{}
	var _ HeightSource = NewGenerator(FlatField{}, false)
}

// TestColumnHeightFive checks a column of height 5 in the chunk at vertical origin 0.
func TestColumnHeightFive(t *testing.T) {
	g := NewGenerator(columnField{x: 3, z: 4, height: 5}, false)
	s := g.Populate(ChunkCoord{0, 0, 0})

	if s.Len() != 5 {
		t.Fatalf("stored %d blocks, want 5", s.Len())
	}
	for y := 0; y < 5; y++ {
		if id := s.Get(BlockPos{3, y, 4}); id != BlockSolid {
			t.Errorf("block at y=%d is %v, want solid", y, id)
		}
	}
	if s.Has(BlockPos{3, 5, 4}) {
		t.Errorf("block at y=5 should be air")
	}
}

func TestFlatPopulate(t *testing.T) {
	g := NewGenerator(FlatField{Height: 5}, true)
	s := g.Populate(ChunkCoord{0, 0, 0})

	if want := ChunkSize * ChunkSize * 5; s.Len() != want {
		t.Fatalf("stored %d blocks, want %d", s.Len(), want)
	}
	for y := 0; y < 4; y++ {
		if b := s.Get(BlockPos{0, y, 0}); b != BlockSolid {
			t.Errorf("Expected solid at 0,%d,0, got %v", y, b)
		}
	}
	if b := s.Get(BlockPos{0, 4, 0}); b != BlockTop {
		t.Errorf("Expected surface block at 0,4,0, got %v", b)
	}
	if b := s.Get(BlockPos{0, 5, 0}); b != BlockAir {
		t.Errorf("Expected air at 0,5,0, got %v", b)
	}
}

// TestVerticalBandClipping checks stacked chunks split a tall column without overlap.
func TestVerticalBandClipping(t *testing.T) {
	g := NewGenerator(FlatField{Height: 40}, true)

	below := g.Populate(ChunkCoord{0, -1, 0})
	ground := g.Populate(ChunkCoord{0, 0, 0})
	upper := g.Populate(ChunkCoord{0, 1, 0})
	sky := g.Populate(ChunkCoord{0, 2, 0})

	if want := ChunkVolume; below.Len() != want {
		t.Errorf("chunk below y=0 stored %d blocks, want %d", below.Len(), want)
	}
	if b := below.Get(BlockPos{5, ChunkSize - 1, 5}); b != BlockSolid {
		t.Errorf("chunk below y=0 top = %v, want solid", b)
	}
	if want := ChunkVolume; ground.Len() != want {
		t.Errorf("ground chunk stored %d blocks, want %d", ground.Len(), want)
	}
	if want := ChunkSize * ChunkSize * 8; upper.Len() != want {
		t.Errorf("upper chunk stored %d blocks, want %d", upper.Len(), want)
	}
	if sky.Len() != 0 {
		t.Errorf("sky chunk stored %d blocks, want 0", sky.Len())
	}

	// The surface lies in the upper chunk; the full ground chunk has no surface blocks.
	if b := ground.Get(BlockPos{0, ChunkSize - 1, 0}); b != BlockSolid {
		t.Errorf("ground chunk top = %v, want solid", b)
	}
	if b := upper.Get(BlockPos{0, 7, 0}); b != BlockTop {
		t.Errorf("upper chunk surface = %v, want top", b)
	}

	// Chunks whose origin is at or above the surface stay empty.
	if n := NewGenerator(FlatField{Height: 64}, true).Populate(ChunkCoord{0, 2, 0}).Len(); n != 0 {
		t.Errorf("chunk with origin at the surface stored %d blocks, want 0", n)
	}
	if n := g.Populate(ChunkCoord{3, 7, -2}).Len(); n != 0 {
		t.Errorf("chunk far above the surface stored %d blocks, want 0", n)
	}
}

func TestSparseAndDenseAgree(t *testing.T) {
	hf, err := NewHeightField(DefaultNoiseConfig())
	if err != nil {
		t.Fatal(err)
	}
	g := NewGenerator(hf, true)

	for _, c := range []ChunkCoord{{0, 0, 0}, {-1, 0, 2}, {3, 0, -4}} {
		sparse := g.Populate(c)
		dense := g.PopulateDense(c)
		if sparse.Len() != dense.Len() {
			t.Fatalf("%v: sparse has %d blocks, dense has %d", c, sparse.Len(), dense.Len())
		}
		if hashStore(sparse.Each) != hashStore(dense.Each) {
			t.Fatalf("%v: sparse and dense stores differ", c)
		}
	}
}

// hashStore computes a SHA-256 hash of the visited blocks in visit order.
func hashStore(each func(func(BlockPos, BlockID))) [32]byte {
	h := sha256.New()
	each(func(p BlockPos, id BlockID) {
		h.Write([]byte{byte(p.X), byte(p.Y), byte(p.Z), byte(id)})
	})
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

// TestPopulateDeterminism verifies independent generators build identical chunks.
func TestPopulateDeterminism(t *testing.T) {
	cfg := DefaultNoiseConfig()
	cfg.Seed = 12345

	positions := []ChunkCoord{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {-1, 0, -1}}
	for _, pos := range positions {
		hf1, _ := NewHeightField(cfg)
		hf2, _ := NewHeightField(cfg)
		s1 := NewGenerator(hf1, false).Populate(pos)
		s2 := NewGenerator(hf2, false).Populate(pos)
		if hashStore(s1.Each) != hashStore(s2.Each) {
			t.Errorf("Chunk at %v not deterministic", pos)
		}
	}
}

// TestSharedColumnsTile checks neighbouring chunks see the same heights on their shared border.
func TestSharedColumnsTile(t *testing.T) {
	hf, _ := NewHeightField(DefaultNoiseConfig())
	g := NewGenerator(hf, false)

	left := g.Populate(ChunkCoord{0, 0, 0})
	right := g.Populate(ChunkCoord{1, 0, 0})
	for z := 0; z < ChunkSize; z++ {
		// The last column of the left chunk and the first of the right one sit one block apart.
		hl := columnHeight(left, ChunkSize-1, z)
		hr := columnHeight(right, 0, z)
		if want := min(hf.HeightAt(ChunkSize-1, z), ChunkSize); hl != want {
			t.Errorf("left column z=%d height %d, want %d", z, hl, want)
		}
		if want := min(hf.HeightAt(ChunkSize, z), ChunkSize); hr != want {
			t.Errorf("right column z=%d height %d, want %d", z, hr, want)
		}
	}
}

func columnHeight(s *BlockStore, x, z int) int {
	n := 0
	for y := 0; y < ChunkSize; y++ {
		if s.Has(BlockPos{x, y, z}) {
			n++
		}
	}
	return n
}

func BenchmarkPopulate(b *testing.B) {
	hf, _ := NewHeightField(DefaultNoiseConfig())
	g := NewGenerator(hf, false)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Populate(ChunkCoord{0, 0, 0})
	}
}

func BenchmarkPopulateDense(b *testing.B) {
	hf, _ := NewHeightField(DefaultNoiseConfig())
	g := NewGenerator(hf, false)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.PopulateDense(ChunkCoord{0, 0, 0})
	}
}
