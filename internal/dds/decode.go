package dds

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
)

func init() {
	image.RegisterFormat("dds", "DDS ", Decode, DecodeConfig)
}

// Decode reads a DDS stream from r and returns its base surface.
func Decode(r io.Reader) (image.Image, error) {
	m, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	s, err := DecodeSurface(m, r, nil)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DecodeConfig returns the dimensions of a DDS stream without decoding it.
func DecodeConfig(r io.Reader) (image.Config, error) {
	m, err := ReadHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	if _, err := m.RasterSize(); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(m.Width),
		Height:     int(m.Height),
	}, nil
}

// DecodeBytes decodes a complete in-memory DDS file.
func DecodeBytes(dds []byte, opts *Options) (*Surface, error) {
	m, err := ParseHeader(dds)
	if err != nil {
		return nil, err
	}
	data := dds[min(m.PixelDataOffset, int64(len(dds))):]
	return DecodeSurface(m, bytes.NewReader(data), opts)
}

// DecodeSurface decodes the base surface described by m. r must be
// positioned at m.PixelDataOffset. All header problems are reported before
// any pixel data is read.
func DecodeSurface(m Metadata, r io.Reader, opts *Options) (*Surface, error) {
	if m.PixelFlags.Has(DDPF_YUV) && m.PixelFlags.Has(DDPF_LUMINANCE) {
		return nil, fmt.Errorf("%w: both YUV and luminance flags set (0x%x)", ErrUnsupportedPixelLayout, uint32(m.PixelFlags))
	}

	format := m.Format()
	switch format {
	case Unknown:
		return nil, &UnsupportedFormatError{FourCC: m.FourCC}
	case Uncompressed:
		if m.PixelFlags.Has(DDPF_RGB) && m.RedMask|m.GreenMask|m.BlueMask == 0 {
			return nil, fmt.Errorf("%w: RGB flag set with no colour masks", ErrMalformedPixelFormat)
		}
		if m.BitsPerPixel == 0 || m.BitsPerPixel > 32 {
			return nil, fmt.Errorf("%w: %d bits per pixel", ErrMalformedPixelFormat, m.BitsPerPixel)
		}
	}

	want, err := m.PixelDataSize()
	if err != nil {
		return nil, err
	}
	pixLen, err := m.RasterSize()
	if err != nil {
		return nil, err
	}

	src, err := io.ReadAll(io.LimitReader(r, int64(want)))
	if err != nil {
		return nil, fmt.Errorf("dds: read pixel data: %w", err)
	}
	if len(src) < want && (format == Uncompressed || opts.strict()) {
		return nil, truncated(len(src), want)
	}

	s := &Surface{
		Width:  int(m.Width),
		Height: int(m.Height),
		Format: format,
		Opaque: m.Opaque(),
		Pix:    make([]byte, pixLen),
	}

	if format == Uncompressed {
		l := newMaskedLayout(m)
		forEachRow(s.Height, opts.workers(), func(y int) {
			l.decodeRow(s.Pix, src, y)
		})
		return s, nil
	}

	forEachRow(m.tilesY(), opts.workers(), func(ty int) {
		decodeTileRow(s.Pix, src, s.Width, s.Height, ty, format)
	})
	return s, nil
}
