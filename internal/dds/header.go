package dds

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/bits"
)

// PixelFlags is the pixel-format flag word.
type PixelFlags uint32

const (
	DDPF_ALPHAPIXELS PixelFlags = 0x1
	DDPF_ALPHA       PixelFlags = 0x2
	DDPF_FOURCC      PixelFlags = 0x4
	DDPF_RGB         PixelFlags = 0x40
	DDPF_YUV         PixelFlags = 0x200
	DDPF_LUMINANCE   PixelFlags = 0x20000
)

func (f PixelFlags) Has(flag PixelFlags) bool { return f&flag == flag }

// Metadata is everything the decoder needs from the container header.
type Metadata struct {
	Size              uint32 `yaml:"size"`
	Flags             uint32 `yaml:"flags"`
	Height            uint32 `yaml:"height"`
	Width             uint32 `yaml:"width"`
	PitchOrLinearSize uint32 `yaml:"pitchOrLinearSize"`
	Depth             uint32 `yaml:"depth"`
	MipMapCount       uint32 `yaml:"mipMapCount"`

	PixelFlags   PixelFlags `yaml:"pixelFlags"`
	FourCC       string     `yaml:"fourCC,omitempty"`
	BitsPerPixel uint32     `yaml:"bitsPerPixel"`
	RedMask      uint32     `yaml:"redMask"`
	GreenMask    uint32     `yaml:"greenMask"`
	BlueMask     uint32     `yaml:"blueMask"`
	AlphaMask    uint32     `yaml:"alphaMask"`

	Caps1 uint32 `yaml:"caps1"`
	Caps2 uint32 `yaml:"caps2"`

	// PixelDataOffset is where pixel data starts, counted from the magic.
	PixelDataOffset int64 `yaml:"pixelDataOffset"`
}

// ParseHeader reads the metadata out of the first 128 bytes of a DDS stream.
// Offsets are relative to the start of the stream, magic included. The magic
// itself is not checked.
func ParseHeader(b []byte) (Metadata, error) {
	if len(b) < HeaderLen {
		return Metadata{}, fmt.Errorf("%w: %d < %d bytes", ErrMalformedHeader, len(b), HeaderLen)
	}
	u32 := func(off int) uint32 {
		return binary.LittleEndian.Uint32(b[off : off+4])
	}

	m := Metadata{
		Size:              u32(0x04),
		Flags:             u32(0x08),
		Height:            u32(0x0C),
		Width:             u32(0x10),
		PitchOrLinearSize: u32(0x14),
		Depth:             u32(0x18),
		MipMapCount:       u32(0x1C),

		PixelFlags:   PixelFlags(u32(0x50)),
		BitsPerPixel: u32(0x58),
		RedMask:      u32(0x5C),
		GreenMask:    u32(0x60),
		BlueMask:     u32(0x64),
		AlphaMask:    u32(0x68),

		Caps1: u32(0x6C),
		Caps2: u32(0x70),
	}
	if m.Size < ddsHeaderSize {
		return Metadata{}, fmt.Errorf("%w: header size %d < %d", ErrMalformedHeader, m.Size, ddsHeaderSize)
	}
	if m.PixelFlags.Has(DDPF_FOURCC) {
		m.FourCC = string(b[0x54:0x58])
	}
	m.PixelDataOffset = 4 + int64(m.Size)
	return m, nil
}

// ReadHeader reads and parses the header from r, then discards any header
// bytes past the first 128 so that r is left at PixelDataOffset.
func ReadHeader(r io.Reader) (Metadata, error) {
	var buf [HeaderLen]byte
	if n, err := io.ReadFull(r, buf[:]); err != nil {
		return Metadata{}, fmt.Errorf("%w: read %d of %d bytes: %v", ErrMalformedHeader, n, HeaderLen, err)
	}
	m, err := ParseHeader(buf[:])
	if err != nil {
		return Metadata{}, err
	}
	if extra := m.PixelDataOffset - HeaderLen; extra > 0 {
		if _, err := io.CopyN(io.Discard, r, extra); err != nil {
			return Metadata{}, fmt.Errorf("%w: skip %d extended header bytes: %v", ErrMalformedHeader, extra, err)
		}
	}
	return m, nil
}

// Format resolves the FourCC into a Format.
func (m Metadata) Format() Format {
	return ParseFourCC(m.FourCC)
}

// BytesPerPixel is the packed pixel size of an uncompressed surface.
func (m Metadata) BytesPerPixel() int {
	return (int(m.BitsPerPixel) + 7) / 8
}

// Opaque reports whether the decoded surface must be treated as fully opaque.
// Only uncompressed surfaces are ever opaque by this rule.
func (m Metadata) Opaque() bool {
	if m.Format() != Uncompressed {
		return false
	}
	return !m.PixelFlags.Has(DDPF_ALPHAPIXELS) || m.AlphaMask == 0
}

// PixelDataSize is the number of source bytes the base surface occupies.
// It fails with ErrMalformedHeader when the dimensions overflow int.
func (m Metadata) PixelDataSize() (int, error) {
	var n int
	var ok bool
	if f := m.Format(); f == Uncompressed {
		n, ok = mulSize(uint64(m.Width), uint64(m.Height), uint64(m.BytesPerPixel()))
	} else {
		n, ok = mulSize(uint64(m.tilesX()), uint64(m.tilesY()), uint64(f.BlockSize()))
	}
	if !ok {
		return 0, m.tooLarge()
	}
	return n, nil
}

// RasterSize is the length of the decoded BGRA raster.
func (m Metadata) RasterSize() (int, error) {
	n, ok := mulSize(uint64(m.Width), uint64(m.Height), 4)
	if !ok {
		return 0, m.tooLarge()
	}
	return n, nil
}

func (m Metadata) tooLarge() error {
	return fmt.Errorf("%w: %dx%d surface too large", ErrMalformedHeader, m.Width, m.Height)
}

// FlagNames lists the header and caps flags that are set, by constant name.
func (m Metadata) FlagNames() []string {
	var names []string
	add := func(word, flag uint32, name string) {
		if word&flag == flag {
			names = append(names, name)
		}
	}
	add(m.Flags, DDSD_CAPS, "DDSD_CAPS")
	add(m.Flags, DDSD_HEIGHT, "DDSD_HEIGHT")
	add(m.Flags, DDSD_WIDTH, "DDSD_WIDTH")
	add(m.Flags, DDSD_PITCH, "DDSD_PITCH")
	add(m.Flags, DDSD_PIXELFORMAT, "DDSD_PIXELFORMAT")
	add(m.Flags, DDSD_MIPMAPCOUNT, "DDSD_MIPMAPCOUNT")
	add(m.Flags, DDSD_LINEARSIZE, "DDSD_LINEARSIZE")
	add(m.Flags, DDSD_DEPTH, "DDSD_DEPTH")
	add(m.Caps1, DDSCAPS_TEXTURE, "DDSCAPS_TEXTURE")
	add(m.Caps1, DDSCAPS_MIPMAP, "DDSCAPS_MIPMAP")
	add(m.Caps2, DDSCAPS2_CUBEMAP, "DDSCAPS2_CUBEMAP")
	add(m.Caps2, DDSCAPS2_VOLUME, "DDSCAPS2_VOLUME")
	return names
}

// mulSize multiplies the factors, reporting false if the product does not
// fit in an int.
func mulSize(factors ...uint64) (int, bool) {
	total := uint64(1)
	for _, f := range factors {
		hi, lo := bits.Mul64(total, f)
		if hi != 0 || lo > math.MaxInt {
			return 0, false
		}
		total = lo
	}
	return int(total), true
}

func (m Metadata) tilesX() int { return int((uint64(m.Width) + 3) / 4) }
func (m Metadata) tilesY() int { return int((uint64(m.Height) + 3) / 4) }
