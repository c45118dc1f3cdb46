package world

import (
	"cmp"
	"slices"
)

// BlockStore is a sparse per-chunk occupancy map. Only non-air blocks are present;
// a missing key means air.
type BlockStore struct {
	blocks map[BlockPos]BlockID
}

// NewBlockStore creates an empty store.
func NewBlockStore() *BlockStore {
	return &BlockStore{blocks: make(map[BlockPos]BlockID)}
}

// Set stores id at p. Setting air removes the entry. Positions outside the
// chunk are rejected and reported as false.
func (s *BlockStore) Set(p BlockPos, id BlockID) bool {
	if !p.InBounds() {
		return false
	}
	if id == BlockAir {
		delete(s.blocks, p)
		return true
	}
	s.blocks[p] = id
	return true
}

// Get returns the block at p, or BlockAir when absent.
func (s *BlockStore) Get(p BlockPos) BlockID {
	return s.blocks[p]
}

// Has reports whether a non-air block is stored at p.
func (s *BlockStore) Has(p BlockPos) bool {
	_, ok := s.blocks[p]
	return ok
}

// Len returns the number of stored blocks.
func (s *BlockStore) Len() int {
	return len(s.blocks)
}

// Each visits stored blocks in ascending (x, y, z) order.
func (s *BlockStore) Each(fn func(p BlockPos, id BlockID)) {
	for _, p := range s.Positions() {
		fn(p, s.blocks[p])
	}
}

// Positions returns the stored positions sorted by (x, y, z).
func (s *BlockStore) Positions() []BlockPos {
	out := make([]BlockPos, 0, len(s.blocks))
	for p := range s.blocks {
		out = append(out, p)
	}
	slices.SortFunc(out, compareBlockPos)
	return out
}

func compareBlockPos(a, b BlockPos) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}
