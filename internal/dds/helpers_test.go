package dds

import "encoding/binary"

// testHeader describes a DDS header to build for a test.
type testHeader struct {
	width, height uint32
	size          uint32 // 0 means 124
	flags         PixelFlags
	fourCC        string
	bpp           uint32
	r, g, b, a    uint32
}

func (h testHeader) bytes() []byte {
	size := h.size
	if size == 0 {
		size = ddsHeaderSize
	}
	out := make([]byte, 4+int(size))
	put := func(off int, v uint32) {
		binary.LittleEndian.PutUint32(out[off:], v)
	}

	put(0x00, ddsMagic)
	put(0x04, size)
	put(0x08, DDSD_CAPS|DDSD_HEIGHT|DDSD_WIDTH|DDSD_PIXELFORMAT)
	put(0x0C, h.height)
	put(0x10, h.width)

	put(0x4C, ddsPfSize)
	flags := h.flags
	if h.fourCC != "" {
		flags |= DDPF_FOURCC
		copy(out[0x54:0x58], h.fourCC)
	}
	put(0x50, uint32(flags))
	put(0x58, h.bpp)
	put(0x5C, h.r)
	put(0x60, h.g)
	put(0x64, h.b)
	put(0x68, h.a)
	put(0x6C, DDSCAPS_TEXTURE)
	return out
}

func buildDDS(h testHeader, pixels []byte) []byte {
	return append(h.bytes(), pixels...)
}

func parseTestHeader(h testHeader) Metadata {
	m, err := ParseHeader(h.bytes())
	if err != nil {
		panic(err)
	}
	return m
}

// colorBlock packs a DXT colour block.
func colorBlock(c0, c1 uint16, indices uint32) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint16(b[0:], c0)
	binary.LittleEndian.PutUint16(b[2:], c1)
	binary.LittleEndian.PutUint32(b[4:], indices)
	return b
}

// interpolatedBlock packs a DXT5 alpha / BC5 channel block.
func interpolatedBlock(v0, v1 uint8, idx [16]uint8) []byte {
	b := []byte{v0, v1, 0, 0, 0, 0, 0, 0}
	for word := 0; word < 2; word++ {
		var v uint32
		for i := 0; i < 8; i++ {
			v |= uint32(idx[word*8+i]&7) << (3 * i)
		}
		b[2+word*3] = uint8(v)
		b[3+word*3] = uint8(v >> 8)
		b[4+word*3] = uint8(v >> 16)
	}
	return b
}

func fill16(v uint8) [16]uint8 {
	var idx [16]uint8
	for i := range idx {
		idx[i] = v
	}
	return idx
}

func pixelAt(s *Surface, x, y int) bgra {
	i := (y*s.Width + x) * 4
	return bgra{s.Pix[i], s.Pix[i+1], s.Pix[i+2], s.Pix[i+3]}
}
