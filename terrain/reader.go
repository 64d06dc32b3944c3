package terrain

import (
	"io"

	"github.com/pkg/errors"
)

// Reader gives random access to the chunks of an encoded map in the same way
// the renderer reads them, one seek and one read per chunk.
type Reader struct {
	r    io.ReaderAt
	grid Grid
	tmp  [ChunkSize]byte
}

// NewReader returns a Reader for a width by height map stored in r. The
// format carries no dimensions so they must be supplied.
func NewReader(r io.ReaderAt, width, height int) (*Reader, error) {
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	return &Reader{
		r:    r,
		grid: g,
	}, nil
}

func (r *Reader) readAt(b []byte, off int64) error {
	n, err := r.r.ReadAt(b, off)
	if n == len(b) {
		return nil
	}
	if err == nil || err == io.EOF {
		return errNotEnough
	}
	return err
}

// Grid returns the chunk grid of the map.
func (r *Reader) Grid() Grid {
	return r.grid
}

// Len returns the number of chunks in the map.
func (r *Reader) Len() int {
	return r.grid.Len()
}

// Palette reads the palette block.
func (r *Reader) Palette() (Palette, error) {
	var p Palette
	b := make([]byte, PaletteSize)
	if err := r.readAt(b, 0); err != nil {
		return p, errors.Wrap(err, "terrain: read palette")
	}
	if err := p.UnmarshalBinary(b); err != nil {
		return p, err
	}
	return p, nil
}

// Chunk reads chunk i.
func (r *Reader) Chunk(i int) (*Chunk, error) {
	if i < 0 || i >= r.grid.Len() {
		return nil, errBadChunk
	}
	if err := r.readAt(r.tmp[:], ChunkOffset(i)); err != nil {
		return nil, errors.Wrapf(err, "terrain: read chunk %d", i)
	}
	c := &Chunk{Index: i}
	if err := c.UnmarshalBinary(r.tmp[:]); err != nil {
		return nil, err
	}
	return c, nil
}

// ChunkAt reads the chunk at column cx and row cy.
func (r *Reader) ChunkAt(cx, cy int) (*Chunk, error) {
	if cx < 0 || cx >= r.grid.Cols || cy < 0 || cy >= r.grid.Rows {
		return nil, errBadChunk
	}
	return r.Chunk(r.grid.Index(cx, cy))
}

// At returns the height and color index of the map pixel at x, y.
func (r *Reader) At(x, y int) (height, index uint8, err error) {
	if x < 0 || y < 0 || x >= r.grid.Cols*ChunkWidth || y >= r.grid.Rows*ChunkHeight {
		return 0, 0, errBadPixel
	}
	c, err := r.ChunkAt(x/ChunkWidth, y/ChunkHeight)
	if err != nil {
		return 0, 0, err
	}
	height, index = c.At(x%ChunkWidth, y%ChunkHeight)
	return height, index, nil
}
