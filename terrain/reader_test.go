package terrain

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePattern(t *testing.T, width, height int) (*testSource, *bytes.Reader) {
	src := patternSource(width, height)
	b := new(bytes.Buffer)
	require.Nil(t, Encode(b, testPalette(), src))
	return src, bytes.NewReader(b.Bytes())
}

func TestReaderChunks(t *testing.T) {
	src, br := encodePattern(t, 128, 64)

	r, err := NewReader(br, 128, 64)
	require.Nil(t, err)
	require.Equal(t, 8, r.Len())

	for i := 0; i < r.Len(); i++ {
		c, err := r.Chunk(i)
		require.Nil(t, err)
		assert.Equal(t, i, c.Index)

		cx, cy := i%4, i/4
		for y := 0; y < ChunkHeight; y++ {
			for x := 0; x < ChunkWidth; x++ {
				h, ci := c.At(x, y)
				require.Equal(t, src.HeightAt(cx*32+x, cy*32+y), h)
				require.Equal(t, src.ColorIndexAt(cx*32+x, cy*32+y), ci)
			}
		}
	}
}

func TestReaderPalette(t *testing.T) {
	_, br := encodePattern(t, 32, 32)

	r, err := NewReader(br, 32, 32)
	require.Nil(t, err)

	p, err := r.Palette()
	require.Nil(t, err)
	assert.Equal(t, testPalette(), p)
}

func TestReaderAt(t *testing.T) {
	src, br := encodePattern(t, 64, 64)

	r, err := NewReader(br, 64, 64)
	require.Nil(t, err)

	for _, pt := range [][2]int{{0, 0}, {31, 31}, {32, 0}, {0, 32}, {45, 50}, {63, 63}} {
		h, c, err := r.At(pt[0], pt[1])
		require.Nil(t, err)
		assert.Equal(t, src.HeightAt(pt[0], pt[1]), h)
		assert.Equal(t, src.ColorIndexAt(pt[0], pt[1]), c)
	}

	_, _, err = r.At(64, 0)
	assert.Equal(t, errBadPixel, err)
	_, _, err = r.At(0, -1)
	assert.Equal(t, errBadPixel, err)
}

func TestReaderOutOfRange(t *testing.T) {
	_, br := encodePattern(t, 64, 64)

	r, err := NewReader(br, 64, 64)
	require.Nil(t, err)

	_, err = r.Chunk(4)
	assert.Equal(t, errBadChunk, err)
	_, err = r.Chunk(-1)
	assert.Equal(t, errBadChunk, err)
	_, err = r.ChunkAt(2, 0)
	assert.Equal(t, errBadChunk, err)
}

func TestReaderTruncated(t *testing.T) {
	b := new(bytes.Buffer)
	require.Nil(t, Encode(b, testPalette(), patternSource(64, 64)))

	r, err := NewReader(bytes.NewReader(b.Bytes()[:768+2*2048+100]), 64, 64)
	require.Nil(t, err)

	_, err = r.Chunk(1)
	assert.Nil(t, err)
	_, err = r.Chunk(2)
	assert.Equal(t, errNotEnough, errors.Cause(err))
}

func TestReaderBadDimensions(t *testing.T) {
	_, err := NewReader(bytes.NewReader(nil), 100, 64)

	var de *DimensionError
	assert.True(t, errors.As(err, &de))
}
