package dds

import "strings"

// Format is the pixel encoding of a surface, resolved once from the header.
type Format int

const (
	// Uncompressed surfaces are decoded through their channel bitmasks.
	Uncompressed Format = iota
	// DXT1 has one colour block per tile and 1-bit alpha.
	DXT1
	// DXT3 has explicit 4-bit alpha.
	DXT3
	// DXT5 has interpolated alpha.
	DXT5
	// BC5 is two interpolated channels (ATI2, BC5U, BC5S).
	BC5
	// Unknown is any FourCC we can size but not decode.
	Unknown
)

func (f Format) String() string {
	switch f {
	case Uncompressed:
		return "Uncompressed"
	case DXT1:
		return "DXT1"
	case DXT3:
		return "DXT3"
	case DXT5:
		return "DXT5"
	case BC5:
		return "BC5"
	default:
		return "Unknown"
	}
}

// BlockSize is the number of compressed bytes per 4x4 tile.
// Unknown formats are sized as 16 so the caller can still skip their data.
func (f Format) BlockSize() int {
	switch f {
	case Uncompressed:
		return 0
	case DXT1:
		return 8
	default:
		return 16
	}
}

// ParseFourCC maps a FourCC tag onto a Format. The tag is upper-cased first.
// An empty tag means the surface is uncompressed.
func ParseFourCC(fourCC string) Format {
	switch strings.ToUpper(fourCC) {
	case "":
		return Uncompressed
	case "DXT1":
		return DXT1
	case "DXT3":
		return DXT3
	case "DXT5":
		return DXT5
	case "BC5U", "BC5S", "ATI2":
		return BC5
	default:
		return Unknown
	}
}
