/*
Package raster loads the color map and height map a terrain map is built from.

The color map should be a 256 color indexed image; anything else is reduced to
256 colors first. The height map should be 8-bit grayscale where white is
higher. Samples are taken as stored, no color conversion is done.
*/
package raster

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"os"

	"github.com/bodgit/terrainmap/terrain"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp" // register BMP
	"golang.org/x/sync/errgroup"
)

var errDeepHeight = errors.New("raster: height map has more than 8 bits per sample")

// LoadError is returned when an input image cannot be opened, decoded or
// used.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause see through a LoadError.
func (e *LoadError) Cause() error {
	return e.Err
}

// Pair is a color map and height map of the same size. It implements
// terrain.Source.
type Pair struct {
	colorMap *image.Paletted
	heights  []uint8
	width    int
	height   int
}

// Size returns the dimensions shared by both maps.
func (p *Pair) Size() (int, int) {
	return p.width, p.height
}

// HeightAt returns the height sample at x, y.
func (p *Pair) HeightAt(x, y int) uint8 {
	return p.heights[y*p.width+x]
}

// ColorIndexAt returns the palette index at x, y.
func (p *Pair) ColorIndexAt(x, y int) uint8 {
	return p.colorMap.ColorIndexAt(x, y)
}

// ColorMap returns the indexed color map with its top-left corner at (0, 0).
func (p *Pair) ColorMap() *image.Paletted {
	return p.colorMap
}

// Palette returns the color map palette padded to 256 entries.
func (p *Pair) Palette() terrain.Palette {
	return terrain.NewPalette(p.colorMap.Palette)
}

func toPaletted(m image.Image) *image.Paletted {
	b := m.Bounds()

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if pi, ok := m.(image.PalettedImage); ok {
			if cp, ok := m.ColorModel().(color.Palette); ok {
				pm = image.NewPaletted(b, cp)
				for y := b.Min.Y; y < b.Max.Y; y++ {
					for x := b.Min.X; x < b.Max.X; x++ {
						pm.SetColorIndex(x, y, pi.ColorIndexAt(x, y))
					}
				}
			}
		}
	}

	if pm == nil || len(pm.Palette) > terrain.NumColors {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, terrain.NumColors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	return pm
}

func heightSamples(m image.Image) ([]uint8, error) {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	s := make([]uint8, w*h)

	switch m := m.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			i := m.PixOffset(b.Min.X, b.Min.Y+y)
			copy(s[y*w:(y+1)*w], m.Pix[i:i+w])
		}
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return nil, errDeepHeight
	case *image.RGBA:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				s[y*w+x] = m.Pix[m.PixOffset(b.Min.X+x, b.Min.Y+y)]
			}
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				s[y*w+x] = m.Pix[m.PixOffset(b.Min.X+x, b.Min.Y+y)]
			}
		}
	case image.PalettedImage:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				s[y*w+x] = m.ColorIndexAt(b.Min.X+x, b.Min.Y+y)
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, _, _, _ := m.At(b.Min.X+x, b.Min.Y+y).RGBA()
				s[y*w+x] = uint8(r >> 8)
			}
		}
	}

	return s, nil
}

func newPair(colorMap, heightMap image.Image, heightPath string) (*Pair, error) {
	cb, hb := colorMap.Bounds(), heightMap.Bounds()
	if cb.Size() != hb.Size() {
		return nil, terrain.NewMismatchError(cb, hb)
	}

	heights, err := heightSamples(heightMap)
	if err != nil {
		return nil, &LoadError{Path: heightPath, Err: err}
	}

	return &Pair{
		colorMap: toPaletted(colorMap),
		heights:  heights,
		width:    cb.Dx(),
		height:   cb.Dy(),
	}, nil
}

// New returns a Pair from already decoded images. It fails with a
// *terrain.DimensionError if the images differ in size.
func New(colorMap, heightMap image.Image) (*Pair, error) {
	return newPair(colorMap, heightMap, "")
}

func decodeFile(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, &LoadError{Path: file, Err: err}
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Path: file, Err: errors.Wrap(err, "raster: decode")}
	}
	return m, nil
}

// Load decodes the color map and height map at the given paths. Both files
// are read before either is checked.
func Load(colorPath, heightPath string) (*Pair, error) {
	var colorMap, heightMap image.Image

	var g errgroup.Group
	g.Go(func() (err error) {
		colorMap, err = decodeFile(colorPath)
		return
	})
	g.Go(func() (err error) {
		heightMap, err = decodeFile(heightPath)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newPair(colorMap, heightMap, heightPath)
}
