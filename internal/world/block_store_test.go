package world

import "testing"

func TestBlockStoreSetGet(t *testing.T) {
	s := NewBlockStore()
	p := BlockPos{1, 2, 3}

	if s.Has(p) {
		t.Fatalf("new store reports block at %v", p)
	}
	if !s.Set(p, BlockSolid) {
		t.Fatalf("Set(%v) rejected", p)
	}
	if got := s.Get(p); got != BlockSolid {
		t.Fatalf("Get(%v): got %v, want %v", p, got, BlockSolid)
	}
	if s.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", s.Len())
	}

	// Overwrite keeps the count.
	s.Set(p, BlockTop)
	if s.Len() != 1 || s.Get(p) != BlockTop {
		t.Fatalf("overwrite: len %d, block %v", s.Len(), s.Get(p))
	}

	// Air removes.
	s.Set(p, BlockAir)
	if s.Has(p) || s.Len() != 0 {
		t.Fatalf("air write did not remove block: has=%v len=%d", s.Has(p), s.Len())
	}
}

func TestStoresRejectOutOfBounds(t *testing.T) {
	bad := []BlockPos{{-1, 0, 0}, {0, ChunkSize, 0}, {0, 0, 40}}
	sparse := NewBlockStore()
	dense := NewDenseStore()
	for _, p := range bad {
		if sparse.Set(p, BlockSolid) {
			t.Errorf("sparse accepted %v", p)
		}
		if dense.Set(p, BlockSolid) {
			t.Errorf("dense accepted %v", p)
		}
		if dense.Has(p) {
			t.Errorf("dense reports block at %v", p)
		}
	}
	if sparse.Len() != 0 || dense.Len() != 0 {
		t.Fatalf("stores not empty after rejected writes: %d, %d", sparse.Len(), dense.Len())
	}
}

func TestBlockStoreEachOrder(t *testing.T) {
	s := NewBlockStore()
	for _, p := range []BlockPos{{2, 0, 0}, {0, 1, 5}, {0, 1, 2}, {1, 0, 0}, {0, 0, 31}} {
		s.Set(p, BlockSolid)
	}

	want := []BlockPos{{0, 0, 31}, {0, 1, 2}, {0, 1, 5}, {1, 0, 0}, {2, 0, 0}}
	var got []BlockPos
	s.Each(func(p BlockPos, _ BlockID) { got = append(got, p) })

	if len(got) != len(want) {
		t.Fatalf("visited %d blocks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visit %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDenseStoreReleasesWhenEmpty(t *testing.T) {
	s := NewDenseStore()
	s.Set(BlockPos{0, 0, 0}, BlockAir)
	if s.blocks != nil {
		t.Fatalf("air write allocated backing array")
	}

	s.Set(BlockPos{4, 5, 6}, BlockSolid)
	s.Set(BlockPos{4, 5, 7}, BlockSolid)
	if s.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", s.Len())
	}
	s.Set(BlockPos{4, 5, 6}, BlockAir)
	s.Set(BlockPos{4, 5, 7}, BlockAir)
	if s.Len() != 0 || s.blocks != nil {
		t.Fatalf("dense store kept %d blocks or its array after clearing", s.Len())
	}
}

func TestDenseMatchesSparse(t *testing.T) {
	sparse := NewBlockStore()
	dense := NewDenseStore()
	for x := 0; x < ChunkSize; x += 3 {
		for y := 0; y < ChunkSize; y += 5 {
			for z := 0; z < ChunkSize; z += 7 {
				id := BlockSolid
				if (x+y+z)%2 == 0 {
					id = BlockTop
				}
				sparse.Set(BlockPos{x, y, z}, id)
				dense.Set(BlockPos{x, y, z}, id)
			}
		}
	}
	if hashStore(sparse.Each) != hashStore(dense.Each) {
		t.Fatalf("sparse and dense visit sequences differ")
	}
}

func BenchmarkBlockStoreHas(b *testing.B) {
	s := NewGenerator(FlatField{Height: 16}, false).Populate(ChunkCoord{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Has(BlockPos{i % ChunkSize, (i / 7) % ChunkSize, (i / 3) % ChunkSize})
	}
}

func BenchmarkDenseStoreHas(b *testing.B) {
	s := NewGenerator(FlatField{Height: 16}, false).PopulateDense(ChunkCoord{})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Has(BlockPos{i % ChunkSize, (i / 7) % ChunkSize, (i / 3) % ChunkSize})
	}
}
