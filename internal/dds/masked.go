package dds

import "math/bits"

// channelMask extracts and rescales one channel of a packed pixel.
type channelMask struct {
	mask  uint32
	shift uint
	width uint
}

func newChannelMask(mask uint32) channelMask {
	if mask == 0 {
		return channelMask{}
	}
	shift := uint(bits.TrailingZeros32(mask))
	return channelMask{
		mask:  mask,
		shift: shift,
		width: uint(bits.Len32(mask >> shift)),
	}
}

// extract returns the channel as an 8-bit value. Narrow channels are scaled
// up with (v*255)/(2^bits-1); wide channels drop their low bits.
func (c channelMask) extract(raw uint32) uint8 {
	if c.mask == 0 {
		return 0
	}
	v := (raw & c.mask) >> c.shift
	switch {
	case c.width == 8:
		return uint8(v)
	case c.width < 8:
		return uint8(uint64(v) * 255 / (1<<c.width - 1))
	default:
		return uint8(v >> (c.width - 8))
	}
}

// maskedLayout is the per-surface state of the masked pixel reader.
type maskedLayout struct {
	bytesPerPixel int
	b, g, r, a    channelMask
	opaque        bool
	passthrough   bool
	width, height int
}

func newMaskedLayout(m Metadata) maskedLayout {
	l := maskedLayout{
		bytesPerPixel: m.BytesPerPixel(),
		b:             newChannelMask(m.BlueMask),
		g:             newChannelMask(m.GreenMask),
		r:             newChannelMask(m.RedMask),
		a:             newChannelMask(m.AlphaMask),
		opaque:        m.Opaque(),
		width:         int(m.Width),
		height:        int(m.Height),
	}
	// 32-bit BGRx already matches the output byte order. The alpha byte is
	// only trusted when the mask says it lives in the top byte.
	l.passthrough = m.BitsPerPixel == 32 &&
		m.RedMask == 0x00FF0000 &&
		m.GreenMask == 0x0000FF00 &&
		m.BlueMask == 0x000000FF &&
		(l.opaque || m.AlphaMask == 0xFF000000)
	return l
}

// readPixel loads one little-endian packed pixel.
func (l *maskedLayout) readPixel(p []byte) uint32 {
	switch l.bytesPerPixel {
	case 1:
		return uint32(p[0])
	case 2:
		return uint32(p[0]) | uint32(p[1])<<8
	case 3:
		return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16
	default:
		return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24
	}
}

// decodeRow converts pixel row y of src into dst.
func (l *maskedLayout) decodeRow(dst, src []byte, y int) {
	srcRow := src[y*l.width*l.bytesPerPixel : (y+1)*l.width*l.bytesPerPixel]
	dstRow := dst[y*l.width*4 : (y+1)*l.width*4]

	if l.passthrough {
		copy(dstRow, srcRow)
		if l.opaque {
			for i := 3; i < len(dstRow); i += 4 {
				dstRow[i] = 0xFF
			}
		}
		return
	}

	for x := 0; x < l.width; x++ {
		raw := l.readPixel(srcRow[x*l.bytesPerPixel:])
		o := x * 4
		dstRow[o+0] = l.b.extract(raw)
		dstRow[o+1] = l.g.extract(raw)
		dstRow[o+2] = l.r.extract(raw)
		if l.opaque {
			dstRow[o+3] = 0xFF
		} else {
			dstRow[o+3] = l.a.extract(raw)
		}
	}
}
