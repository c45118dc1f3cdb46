package world

// DenseStore is a flat ChunkSize^3 occupancy array. It answers the same
// queries as BlockStore without hashing and allocates its backing array
// lazily on the first non-air write.
type DenseStore struct {
	blocks []BlockID
	count  int
}

// NewDenseStore creates an empty dense store.
func NewDenseStore() *DenseStore {
	return &DenseStore{}
}

// denseIndex converts local coordinates (x, y, z) → flat index
func denseIndex(x, y, z int) int {
	return x*ChunkSize*ChunkSize + y*ChunkSize + z
}

// Set stores id at p. Out-of-chunk positions are rejected.
func (s *DenseStore) Set(p BlockPos, id BlockID) bool {
	if !p.InBounds() {
		return false
	}
	if s.blocks == nil {
		if id == BlockAir {
			return true
		}
		s.blocks = make([]BlockID, ChunkVolume)
	}

	idx := denseIndex(p.X, p.Y, p.Z)
	old := s.blocks[idx]
	switch {
	case old == BlockAir && id != BlockAir:
		s.count++
	case old != BlockAir && id == BlockAir:
		s.count--
	}
	s.blocks[idx] = id

	if s.count == 0 {
		s.blocks = nil
	}
	return true
}

// Get returns the block at p, or BlockAir when absent or out of bounds.
func (s *DenseStore) Get(p BlockPos) BlockID {
	if s.blocks == nil || !p.InBounds() {
		return BlockAir
	}
	return s.blocks[denseIndex(p.X, p.Y, p.Z)]
}

// Has reports whether a non-air block is stored at p.
func (s *DenseStore) Has(p BlockPos) bool {
	return s.Get(p) != BlockAir
}

// Len returns the number of non-air cells.
func (s *DenseStore) Len() int {
	return s.count
}

// Each visits non-air cells in ascending (x, y, z) order, matching BlockStore.Each.
func (s *DenseStore) Each(fn func(p BlockPos, id BlockID)) {
	if s.blocks == nil {
		return
	}
	for x := range ChunkSize {
		for y := range ChunkSize {
			for z := range ChunkSize {
				if id := s.blocks[denseIndex(x, y, z)]; id != BlockAir {
					fn(BlockPos{X: x, Y: y, Z: z}, id)
				}
			}
		}
	}
}
