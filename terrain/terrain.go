/*
Package terrain implements the chunked terrain map format streamed by the
voxel renderer.

A map is built from a 256 color indexed color map and an 8-bit height map of
the same size. Both dimensions must be a multiple of 32 and the plane is split
into 32 by 32 pixel chunks.

The file is written as 768 bytes of palette; 256 R, G, B byte triplets in
index order, followed by one 2048 byte block per chunk. Chunks are stored in
row-major order, left to right then top to bottom. Within a chunk each pixel
is stored as a height byte followed by a color index byte, again in row-major
order. There is no header and no compression so chunk i can be read with a
single seek to 768 + i*2048 followed by a 2048 byte read.
*/
package terrain

const (
	// ChunkWidth is the width of a chunk in pixels
	ChunkWidth = 32
	// ChunkHeight is the height of a chunk in pixels
	ChunkHeight = ChunkWidth
	chunkPixels = ChunkWidth * ChunkHeight

	// NumColors is the number of palette entries
	NumColors = 256
	// PaletteSize is the size in bytes of the palette block
	PaletteSize = NumColors * 3
	// ChunkSize is the size in bytes of each chunk block
	ChunkSize = chunkPixels * 2

	// Filename is the name the renderer expects the map to have
	Filename = "terrain.map"
)

// Source is the pair of rasters a map is encoded from. Coordinates are zero
// based, 0 <= x < width and 0 <= y < height.
type Source interface {
	Size() (width, height int)
	HeightAt(x, y int) uint8
	ColorIndexAt(x, y int) uint8
}

// Grid describes how a map is divided into chunks.
type Grid struct {
	Cols int
	Rows int
}

// Len returns the number of chunks in the grid.
func (g Grid) Len() int {
	return g.Cols * g.Rows
}

// Coord returns the chunk column and row of chunk i.
func (g Grid) Coord(i int) (cx, cy int) {
	return i % g.Cols, i / g.Cols
}

// Index returns the linear index of the chunk at column cx and row cy.
func (g Grid) Index(cx, cy int) int {
	return cy*g.Cols + cx
}

// Size returns the total size in bytes of a map file with this grid.
func (g Grid) Size() int64 {
	return ChunkOffset(g.Len())
}

// NewGrid returns the chunk grid for a width by height map.
func NewGrid(width, height int) (Grid, error) {
	if width <= 0 || height <= 0 || width%ChunkWidth != 0 || height%ChunkHeight != 0 {
		return Grid{}, &DimensionError{Width: width, Height: height}
	}
	return Grid{
		Cols: width / ChunkWidth,
		Rows: height / ChunkHeight,
	}, nil
}

// Geometry returns the chunk grid covering src.
func Geometry(src Source) (Grid, error) {
	return NewGrid(src.Size())
}

// ChunkOffset returns the absolute file offset of chunk i.
func ChunkOffset(i int) int64 {
	return PaletteSize + int64(i)*ChunkSize
}
