package dds

import (
	"image"
	"image/color"
)

// Surface is a decoded base level. Pix holds Width*Height pixels in
// B, G, R, A byte order, row-major, top to bottom, with no row padding.
type Surface struct {
	Width  int
	Height int
	Format Format
	// Opaque is set when the header says the surface has no usable alpha.
	// Every alpha byte in Pix is then 0xFF.
	Opaque bool
	Pix    []uint8
}

func (s *Surface) ColorModel() color.Model { return color.NRGBAModel }
func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.Width, s.Height) }

func (s *Surface) At(x, y int) color.Color {
	return s.NRGBAAt(x, y)
}

// NRGBAAt returns the pixel at (x, y), or transparent black out of bounds.
func (s *Surface) NRGBAAt(x, y int) color.NRGBA {
	if !(image.Point{x, y}.In(s.Bounds())) {
		return color.NRGBA{}
	}
	i := (y*s.Width + x) * 4
	return color.NRGBA{
		R: s.Pix[i+2],
		G: s.Pix[i+1],
		B: s.Pix[i+0],
		A: s.Pix[i+3],
	}
}

// NRGBA copies the surface into a standard library image.
func (s *Surface) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(s.Bounds())
	for i := 0; i+3 < len(s.Pix); i += 4 {
		img.Pix[i+0] = s.Pix[i+2]
		img.Pix[i+1] = s.Pix[i+1]
		img.Pix[i+2] = s.Pix[i+0]
		img.Pix[i+3] = s.Pix[i+3]
	}
	return img
}
