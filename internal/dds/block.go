package dds

import "encoding/binary"

// bgra is one decoded pixel in output byte order.
type bgra [4]uint8

// tile is a decoded 4x4 block, row-major.
type tile [16]bgra

// blockDecoder decodes one compressed block. blk is always a full block;
// missing source bytes have already been zero-filled.
type blockDecoder func(blk []byte, out *tile)

func blockDecoderFor(f Format) blockDecoder {
	switch f {
	case DXT1:
		return decodeDXT1Block
	case DXT3:
		return decodeDXT3Block
	case DXT5:
		return decodeDXT5Block
	case BC5:
		return decodeBC5Block
	default:
		return nil
	}
}

// expandBits widens a 5 or 6 bit channel to 8 bits. bias and divisor are
// 16/32 for 5-bit fields and 32/64 for 6-bit fields.
func expandBits(raw, bias, divisor uint32) uint8 {
	t := raw*255 + bias
	return uint8((t/divisor + t) / divisor)
}

// expand565 unpacks a 565 colour into an opaque pixel.
func expand565(c uint16) bgra {
	r := uint32(c>>11) & 0x1F
	g := uint32(c>>5) & 0x3F
	b := uint32(c) & 0x1F
	return bgra{
		expandBits(b, 16, 32),
		expandBits(g, 32, 64),
		expandBits(r, 16, 32),
		255,
	}
}

// colorPalette builds the four colours of a colour block. With oneBitAlpha
// and c0 <= c1 the block uses three colours plus transparent black.
func colorPalette(c0, c1 uint16, oneBitAlpha bool) [4]bgra {
	var p [4]bgra
	p[0] = expand565(c0)
	p[1] = expand565(c1)
	if oneBitAlpha && c0 <= c1 {
		for ch := 0; ch < 3; ch++ {
			p[2][ch] = uint8((uint32(p[0][ch]) + uint32(p[1][ch])) / 2)
		}
		p[2][3] = 255
		p[3] = bgra{0, 0, 0, 0}
		return p
	}
	for ch := 0; ch < 3; ch++ {
		a, b := uint32(p[0][ch]), uint32(p[1][ch])
		p[2][ch] = uint8((2*a + b) / 3)
		p[3][ch] = uint8((a + 2*b) / 3)
	}
	p[2][3] = 255
	p[3][3] = 255
	return p
}

// decodeColorBlock decodes an 8-byte colour block: two 565 endpoints and
// sixteen 2-bit indices, least significant first.
func decodeColorBlock(blk []byte, oneBitAlpha bool, out *tile) {
	c0 := binary.LittleEndian.Uint16(blk[0:2])
	c1 := binary.LittleEndian.Uint16(blk[2:4])
	palette := colorPalette(c0, c1, oneBitAlpha)
	indices := binary.LittleEndian.Uint32(blk[4:8])
	for i := range out {
		out[i] = palette[(indices>>(2*i))&3]
	}
}

// interpolationTable expands two endpoints into the eight values a 3-bit
// index selects. v0 > v1 gives six interpolated steps; otherwise four steps
// followed by 0 and 255.
func interpolationTable(v0, v1 uint8) [8]uint8 {
	a, b := uint32(v0), uint32(v1)
	t := [8]uint8{v0, v1}
	if v0 > v1 {
		for k := uint32(1); k <= 6; k++ {
			t[k+1] = uint8(((7-k)*a + k*b) / 7)
		}
		return t
	}
	for k := uint32(1); k <= 4; k++ {
		t[k+1] = uint8(((5-k)*a + k*b) / 5)
	}
	t[6] = 0
	t[7] = 255
	return t
}

// unpack3BitIndices reads sixteen 3-bit indices from two little-endian 24-bit
// words. Slots past the end of b stay zero.
func unpack3BitIndices(b []byte) [16]uint8 {
	var idx [16]uint8
	for word := 0; word < 2; word++ {
		off := word * 3
		if off+3 > len(b) {
			break
		}
		v := uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16
		for i := 0; i < 8; i++ {
			idx[word*8+i] = uint8(v>>(3*i)) & 7
		}
	}
	return idx
}

// decodeInterpolatedChannel decodes an 8-byte DXT5-style alpha block into
// sixteen 8-bit values.
func decodeInterpolatedChannel(blk []byte) [16]uint8 {
	table := interpolationTable(blk[0], blk[1])
	idx := unpack3BitIndices(blk[2:8])
	var v [16]uint8
	for i := range v {
		v[i] = table[idx[i]]
	}
	return v
}

func decodeDXT1Block(blk []byte, out *tile) {
	decodeColorBlock(blk[0:8], true, out)
}

func decodeDXT3Block(blk []byte, out *tile) {
	decodeColorBlock(blk[8:16], false, out)
	for i := range out {
		nibble := blk[i/2] >> (4 * (i % 2)) & 0x0F
		out[i][3] = nibble * 17
	}
}

func decodeDXT5Block(blk []byte, out *tile) {
	alpha := decodeInterpolatedChannel(blk[0:8])
	decodeColorBlock(blk[8:16], false, out)
	for i := range out {
		out[i][3] = alpha[i]
	}
}

func decodeBC5Block(blk []byte, out *tile) {
	red := decodeInterpolatedChannel(blk[0:8])
	green := decodeInterpolatedChannel(blk[8:16])
	for i := range out {
		out[i] = bgra{0, green[i], red[i], 255}
	}
}

// decodeTileRow decodes every tile in tile row ty of src into dst, clipping
// tiles that overhang the right or bottom edge.
func decodeTileRow(dst, src []byte, width, height, ty int, f Format) {
	decode := blockDecoderFor(f)
	bs := f.BlockSize()
	tilesX := (width + 3) / 4

	var blk [16]byte
	var px tile
	for tx := 0; tx < tilesX; tx++ {
		off := (ty*tilesX + tx) * bs
		clear(blk[:])
		if off < len(src) {
			copy(blk[:bs], src[off:min(off+bs, len(src))])
		}
		decode(blk[:bs], &px)

		for dy := 0; dy < 4; dy++ {
			y := ty*4 + dy
			if y >= height {
				break
			}
			for dx := 0; dx < 4; dx++ {
				x := tx*4 + dx
				if x >= width {
					break
				}
				o := (y*width + x) * 4
				copy(dst[o:o+4], px[dy*4+dx][:])
			}
		}
	}
}
