/*
Package terrainmap converts a color map and height map into the chunked
terrain map streamed from the SD card by the voxel renderer.
*/
package terrainmap

import (
	"bufio"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/bodgit/terrainmap/raster"
	"github.com/bodgit/terrainmap/terrain"
)

type Converter struct {
	logger  *log.Logger
	workers int
}

func New(logger *log.Logger) *Converter {
	return &Converter{
		logger:  logger,
		workers: runtime.NumCPU(),
	}
}

// Encode writes the palette p followed by every chunk of src to w, encoding
// chunks in parallel. The chunks are always written in file order.
func (c *Converter) Encode(w io.Writer, p terrain.Palette, src terrain.Source) error {
	grid, err := terrain.Geometry(src)
	if err != nil {
		return err
	}

	tw, err := terrain.NewWriter(w, p, grid)
	if err != nil {
		return err
	}

	return c.encodeChunks(src, grid, tw)
}

// Convert loads the color map and height map and writes the resulting map to
// file, replacing anything already there. If an error is returned after the
// file has been created its contents are undefined.
func (c *Converter) Convert(colorMap, heightMap, file string) error {
	pair, err := raster.Load(colorMap, heightMap)
	if err != nil {
		return err
	}

	grid, err := terrain.Geometry(pair)
	if err != nil {
		return err
	}

	width, height := pair.Size()
	c.logger.Printf("Encoding %dx%d map as %d chunks (%dx%d)\n", width, height, grid.Len(), grid.Cols, grid.Rows)

	f, err := os.Create(file)
	if err != nil {
		return &terrain.IOError{Op: "create", Err: err}
	}
	defer f.Close()

	b := bufio.NewWriter(f)

	if err := c.Encode(b, pair.Palette(), pair); err != nil {
		return err
	}

	if err := b.Flush(); err != nil {
		return &terrain.IOError{Op: "flush", Err: err}
	}

	if err := f.Close(); err != nil {
		return &terrain.IOError{Op: "close", Err: err}
	}

	c.logger.Printf("Wrote %d bytes to \"%s\"\n", grid.Size(), file)

	return nil
}
