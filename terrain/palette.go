package terrain

import "image/color"

// Palette is the 256 entry color lookup table stored at the start of a map.
type Palette [NumColors]color.RGBA

// NewPalette converts p into a Palette. Any entries beyond the first 256 are
// ignored and missing entries are left as zero.
func NewPalette(p color.Palette) Palette {
	var pal Palette
	for i, c := range p {
		if i == NumColors {
			break
		}
		// The stored triplet is the raw palette color, so avoid the
		// alpha-premultiplication done by RGBA()
		switch v := c.(type) {
		case color.RGBA:
			pal[i] = color.RGBA{v.R, v.G, v.B, 0xff}
		case color.NRGBA:
			pal[i] = color.RGBA{v.R, v.G, v.B, 0xff}
		default:
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			pal[i] = color.RGBA{n.R, n.G, n.B, 0xff}
		}
	}
	return pal
}

// Colors returns the palette as a color.Palette.
func (p *Palette) Colors() color.Palette {
	cp := make(color.Palette, NumColors)
	for i, c := range p {
		cp[i] = c
	}
	return cp
}

// MarshalBinary encodes the palette as 256 R, G, B triplets
func (p *Palette) MarshalBinary() ([]byte, error) {
	b := make([]byte, PaletteSize)
	for i, c := range p {
		b[i*3+0] = c.R
		b[i*3+1] = c.G
		b[i*3+2] = c.B
	}
	return b, nil
}

// UnmarshalBinary decodes the palette from 256 R, G, B triplets
func (p *Palette) UnmarshalBinary(b []byte) error {
	if len(b) != PaletteSize {
		return errBadPalette
	}
	for i := range p {
		p[i] = color.RGBA{b[i*3+0], b[i*3+1], b[i*3+2], 0xff}
	}
	return nil
}
