package world

// HeightSource yields the terrain height, in blocks, of a world column.
type HeightSource interface {
	HeightAt(worldX, worldZ int) int
}

// Generator fills chunk occupancy from a height source. Every chunk clips the
// same global heightfield against its own vertical band, so vertically
// stacked chunks tile without gaps or overlap.
type Generator struct {
	heights     HeightSource
	markSurface bool
}

// NewGenerator creates a generator over heights. With markSurface set, the
// top block of each column is stored as BlockTop.
func NewGenerator(heights HeightSource, markSurface bool) *Generator {
	return &Generator{heights: heights, markSurface: markSurface}
}

// HeightAt computes the surface height at world X,Z.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	return g.heights.HeightAt(worldX, worldZ)
}

// Populate builds the sparse store for the chunk at coord.
func (g *Generator) Populate(coord ChunkCoord) *BlockStore {
	s := NewBlockStore()
	g.fill(coord, func(p BlockPos, id BlockID) { s.Set(p, id) })
	return s
}

// PopulateDense builds the dense store for the chunk at coord.
func (g *Generator) PopulateDense(coord ChunkCoord) *DenseStore {
	s := NewDenseStore()
	g.fill(coord, func(p BlockPos, id BlockID) { s.Set(p, id) })
	return s
}

func (g *Generator) fill(coord ChunkCoord, set func(BlockPos, BlockID)) {
	chunkBaseX := coord.X * ChunkSize
	chunkBaseY := coord.Y * ChunkSize
	chunkBaseZ := coord.Z * ChunkSize

	for lx := range ChunkSize {
		for lz := range ChunkSize {
			height := g.heights.HeightAt(chunkBaseX+lx, chunkBaseZ+lz)
			topLocal := height - chunkBaseY
			if topLocal <= 0 {
				continue
			}
			surfaceInside := topLocal <= ChunkSize
			if topLocal > ChunkSize {
				topLocal = ChunkSize
			}
			for ly := 0; ly < topLocal; ly++ {
				id := BlockSolid
				if g.markSurface && surfaceInside && ly == topLocal-1 {
					id = BlockTop
				}
				set(BlockPos{X: lx, Y: ly, Z: lz}, id)
			}
		}
	}
}
