// Package dds decodes the base surface of DirectDraw Surface textures into
// a flat BGRA raster.
//
// Supported encodings are DXT1, DXT3, DXT5, BC5 (ATI2, BC5U, BC5S) and
// uncompressed packed pixels of 8 to 32 bits described by channel bitmasks.
// Importing the package registers it with the image package.
package dds

const (
	ddsMagic = 0x20534444 // "DDS "

	// HeaderLen is the magic plus the minimal 124-byte header.
	HeaderLen = 128

	ddsHeaderSize = 124
	ddsPfSize     = 32

	// DDSD flags
	DDSD_CAPS        = 0x1
	DDSD_HEIGHT      = 0x2
	DDSD_WIDTH       = 0x4
	DDSD_PITCH       = 0x8
	DDSD_PIXELFORMAT = 0x1000
	DDSD_MIPMAPCOUNT = 0x20000
	DDSD_LINEARSIZE  = 0x80000
	DDSD_DEPTH       = 0x800000

	// Caps
	DDSCAPS_TEXTURE  = 0x1000
	DDSCAPS_MIPMAP   = 0x400000
	DDSCAPS2_CUBEMAP = 0x200
	DDSCAPS2_VOLUME  = 0x200000
)
