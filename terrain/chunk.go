package terrain

// Chunk holds the decoded contents of one 32 by 32 chunk. Heights and Colors
// are in row-major pixel order.
type Chunk struct {
	Index   int
	Heights [chunkPixels]uint8
	Colors  [chunkPixels]uint8
}

// At returns the height and color index of the pixel at x, y within the chunk
func (c *Chunk) At(x, y int) (height, index uint8) {
	i := y*ChunkWidth + x
	return c.Heights[i], c.Colors[i]
}

func (c *Chunk) interleave(b []byte) {
	for i := 0; i < chunkPixels; i++ {
		b[i<<1+0] = c.Heights[i]
		b[i<<1+1] = c.Colors[i]
	}
}

// MarshalBinary encodes the chunk as 1024 interleaved height and color
// index pairs
func (c *Chunk) MarshalBinary() ([]byte, error) {
	b := make([]byte, ChunkSize)
	c.interleave(b)
	return b, nil
}

// UnmarshalBinary decodes the chunk from 1024 interleaved height and color
// index pairs. Index is left unchanged.
func (c *Chunk) UnmarshalBinary(b []byte) error {
	if len(b) != ChunkSize {
		return errBadLength
	}
	for i := 0; i < chunkPixels; i++ {
		c.Heights[i] = b[i<<1+0]
		c.Colors[i] = b[i<<1+1]
	}
	return nil
}
