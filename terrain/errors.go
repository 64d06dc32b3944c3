package terrain

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

var (
	errNotEnough  = errors.New("terrain: not enough map data")
	errBadChunk   = errors.New("terrain: chunk index out of range")
	errBadPixel   = errors.New("terrain: pixel out of range")
	errBadPalette = errors.New("terrain: incorrect palette length")
	errBadLength  = errors.New("terrain: incorrect chunk length")
)

// DimensionError is returned when the rasters cannot be divided into chunks,
// either because a dimension is not a positive multiple of the chunk size or
// because the color and height maps differ in size.
type DimensionError struct {
	Width  int
	Height int

	// Other holds the size of the second raster when the two differ
	Other    image.Point
	Mismatch bool
}

// NewMismatchError returns a DimensionError for two rasters of different size.
func NewMismatchError(colorMap, heightMap image.Rectangle) *DimensionError {
	return &DimensionError{
		Width:    colorMap.Dx(),
		Height:   colorMap.Dy(),
		Other:    heightMap.Size(),
		Mismatch: true,
	}
}

func (e *DimensionError) Error() string {
	if e.Mismatch {
		return fmt.Sprintf("terrain: color map is %dx%d but height map is %dx%d", e.Width, e.Height, e.Other.X, e.Other.Y)
	}
	return fmt.Sprintf("terrain: %dx%d is not a multiple of %dx%d", e.Width, e.Height, ChunkWidth, ChunkHeight)
}

// IOError is returned when the map cannot be written. Anything already
// written should be treated as invalid.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return "terrain: " + e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause see through an IOError.
func (e *IOError) Cause() error {
	return e.Err
}

func ioError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Err: err}
}
