package terrain

import (
	"io"
)

// EncodeChunk builds chunk i of the grid g from src. It only reads the
// pixels covered by the chunk.
func EncodeChunk(src Source, g Grid, i int) *Chunk {
	cx, cy := g.Coord(i)
	c := &Chunk{Index: i}
	for py := 0; py < ChunkHeight; py++ {
		for px := 0; px < ChunkWidth; px++ {
			dx := px + cx*ChunkWidth
			dy := py + cy*ChunkHeight

			c.Heights[py*ChunkWidth+px] = src.HeightAt(dx, dy)
			c.Colors[py*ChunkWidth+px] = src.ColorIndexAt(dx, dy)
		}
	}
	return c
}

// Iterator yields the chunks of a map lazily in file order.
type Iterator struct {
	src   Source
	grid  Grid
	index int
	chunk *Chunk
}

// NewIterator returns an Iterator over the chunks of src.
func NewIterator(src Source) (*Iterator, error) {
	g, err := Geometry(src)
	if err != nil {
		return nil, err
	}
	return &Iterator{
		src:   src,
		grid:  g,
		index: -1,
	}, nil
}

// Grid returns the chunk grid being iterated.
func (it *Iterator) Grid() Grid {
	return it.grid
}

// Next advances to the next chunk, returning false once every chunk has been
// visited.
func (it *Iterator) Next() bool {
	if it.index+1 >= it.grid.Len() {
		it.chunk = nil
		return false
	}
	it.index++
	it.chunk = EncodeChunk(it.src, it.grid, it.index)
	return true
}

// Chunk returns the current chunk.
func (it *Iterator) Chunk() *Chunk {
	return it.chunk
}

type encoder struct {
	w   io.Writer
	tmp [ChunkSize]byte
}

func (e *encoder) writePalette(p *Palette) error {
	b, _ := p.MarshalBinary()
	if _, err := e.w.Write(b); err != nil {
		return ioError("write palette", err)
	}
	return nil
}

func (e *encoder) writeChunk(c *Chunk) error {
	c.interleave(e.tmp[:])
	if _, err := e.w.Write(e.tmp[:]); err != nil {
		return ioError("write chunk", err)
	}
	return nil
}

// Encode writes the palette p followed by every chunk of src to w. The
// geometry is checked before anything is written.
func Encode(w io.Writer, p Palette, src Source) error {
	it, err := NewIterator(src)
	if err != nil {
		return err
	}

	e := encoder{w: w}

	if err := e.writePalette(&p); err != nil {
		return err
	}

	for it.Next() {
		if err := e.writeChunk(it.Chunk()); err != nil {
			return err
		}
	}

	return nil
}

// Writer writes a map one chunk at a time. Chunks must be supplied in file
// order.
type Writer struct {
	e    encoder
	grid Grid
	next int
}

// NewWriter writes the palette to w and returns a Writer ready for the chunks
// of grid g.
func NewWriter(w io.Writer, p Palette, g Grid) (*Writer, error) {
	wr := &Writer{
		e:    encoder{w: w},
		grid: g,
	}
	if err := wr.e.writePalette(&p); err != nil {
		return nil, err
	}
	return wr, nil
}

// WriteChunk writes the next chunk. Its Index must match the position in the
// file.
func (w *Writer) WriteChunk(c *Chunk) error {
	if c.Index != w.next || w.next >= w.grid.Len() {
		return errBadChunk
	}
	if err := w.e.writeChunk(c); err != nil {
		return err
	}
	w.next++
	return nil
}

// Close checks that every chunk was written. It does not close the
// underlying writer.
func (w *Writer) Close() error {
	if w.next != w.grid.Len() {
		return errNotEnough
	}
	return nil
}
