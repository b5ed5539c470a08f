package dds

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	h := testHeader{
		width: 640, height: 480,
		flags: DDPF_RGB | DDPF_ALPHAPIXELS,
		bpp:   32,
		r:     0x00FF0000, g: 0x0000FF00, b: 0x000000FF, a: 0xFF000000,
	}
	m, err := ParseHeader(h.bytes())
	require.NoError(t, err)
	require.Equal(t, uint32(640), m.Width)
	require.Equal(t, uint32(480), m.Height)
	require.Equal(t, uint32(32), m.BitsPerPixel)
	require.Equal(t, uint32(0x00FF0000), m.RedMask)
	require.Equal(t, uint32(0x0000FF00), m.GreenMask)
	require.Equal(t, uint32(0x000000FF), m.BlueMask)
	require.Equal(t, uint32(0xFF000000), m.AlphaMask)
	require.Equal(t, int64(128), m.PixelDataOffset)
	require.Empty(t, m.FourCC)
	require.Equal(t, Uncompressed, m.Format())
	require.Equal(t, 4, m.BytesPerPixel())
	requireSize(t, 640*480*4, m)
	require.False(t, m.Opaque())
}

func TestParseHeaderFourCC(t *testing.T) {
	m, err := ParseHeader(testHeader{width: 9, height: 5, fourCC: "DXT1"}.bytes())
	require.NoError(t, err)
	require.Equal(t, "DXT1", m.FourCC)
	require.Equal(t, DXT1, m.Format())
	// 3x2 tiles of 8 bytes
	requireSize(t, 48, m)

	m, err = ParseHeader(testHeader{width: 4, height: 4, fourCC: "WXYZ"}.bytes())
	require.NoError(t, err)
	require.Equal(t, Unknown, m.Format())
	requireSize(t, 16, m)
}

func TestParseHeaderIgnoresFourCCWithoutFlag(t *testing.T) {
	b := testHeader{width: 4, height: 4, flags: DDPF_RGB, bpp: 16}.bytes()
	copy(b[0x54:], "DXT5")
	m, err := ParseHeader(b)
	require.NoError(t, err)
	require.Empty(t, m.FourCC)
	require.Equal(t, Uncompressed, m.Format())
}

func TestParseHeaderMalformed(t *testing.T) {
	_, err := ParseHeader(make([]byte, 100))
	require.ErrorIs(t, err, ErrMalformedHeader)

	b := testHeader{width: 4, height: 4}.bytes()
	b[4] = 0x7B
	_, err = ParseHeader(b)
	require.ErrorIs(t, err, ErrMalformedHeader)
}

func TestReadHeaderSkipsExtendedHeader(t *testing.T) {
	h := testHeader{width: 1, height: 1, size: 132, flags: DDPF_RGB, bpp: 8, r: 0xFF}
	raw := buildDDS(h, []byte{0xAB})
	r := bytes.NewReader(raw)

	m, err := ReadHeader(r)
	require.NoError(t, err)
	require.Equal(t, int64(136), m.PixelDataOffset)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAB}, rest)
}

func TestReadHeaderShort(t *testing.T) {
	_, err := ReadHeader(bytes.NewReader([]byte("DDS ")))
	require.ErrorIs(t, err, ErrMalformedHeader)
}

func TestOpaque(t *testing.T) {
	for _, tc := range []struct {
		name   string
		h      testHeader
		opaque bool
	}{
		{"no alpha flag", testHeader{flags: DDPF_RGB, a: 0xFF000000}, true},
		{"alpha flag no mask", testHeader{flags: DDPF_RGB | DDPF_ALPHAPIXELS}, true},
		{"alpha flag and mask", testHeader{flags: DDPF_RGB | DDPF_ALPHAPIXELS, a: 0xFF000000}, false},
		{"compressed", testHeader{fourCC: "DXT1"}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.opaque, parseTestHeader(tc.h).Opaque())
		})
	}
}

func TestParseFourCC(t *testing.T) {
	require.Equal(t, Uncompressed, ParseFourCC(""))
	require.Equal(t, DXT1, ParseFourCC("dxt1"))
	require.Equal(t, DXT3, ParseFourCC("DXT3"))
	require.Equal(t, DXT5, ParseFourCC("Dxt5"))
	require.Equal(t, BC5, ParseFourCC("ATI2"))
	require.Equal(t, BC5, ParseFourCC("BC5U"))
	require.Equal(t, BC5, ParseFourCC("bc5s"))
	require.Equal(t, Unknown, ParseFourCC("DX10"))
	require.Equal(t, 8, DXT1.BlockSize())
	require.Equal(t, 16, BC5.BlockSize())
	require.Equal(t, 16, Unknown.BlockSize())
}

func requireSize(t *testing.T, want int, m Metadata) {
	t.Helper()
	n, err := m.PixelDataSize()
	require.NoError(t, err)
	require.Equal(t, want, n)
}

func TestSurfaceSizeOverflow(t *testing.T) {
	for _, h := range []testHeader{
		{width: 0xFFFFFFFF, height: 0xFFFFFFFF, fourCC: "DXT1"},
		{width: 0xFFFFFFFF, height: 0xFFFFFFFF, fourCC: "DXT5"},
		{width: 0xFFFFFFFF, height: 0xFFFFFFFF, flags: DDPF_RGB, bpp: 32, r: 0xFF0000, g: 0xFF00, b: 0xFF},
	} {
		m := parseTestHeader(h)
		_, err := m.PixelDataSize()
		require.ErrorIs(t, err, ErrMalformedHeader)
		_, err = m.RasterSize()
		require.ErrorIs(t, err, ErrMalformedHeader)
	}

	m := parseTestHeader(testHeader{width: 3, height: 2, fourCC: "DXT1"})
	n, err := m.RasterSize()
	require.NoError(t, err)
	require.Equal(t, 3*2*4, n)
}

func TestFlagNames(t *testing.T) {
	m := parseTestHeader(testHeader{width: 4, height: 4, fourCC: "DXT1"})
	require.Equal(t, []string{
		"DDSD_CAPS", "DDSD_HEIGHT", "DDSD_WIDTH", "DDSD_PIXELFORMAT", "DDSCAPS_TEXTURE",
	}, m.FlagNames())

	m.Flags |= DDSD_MIPMAPCOUNT | DDSD_LINEARSIZE
	m.Caps1 |= DDSCAPS_MIPMAP
	m.Caps2 = DDSCAPS2_CUBEMAP | DDSCAPS2_VOLUME
	names := m.FlagNames()
	for _, want := range []string{"DDSD_MIPMAPCOUNT", "DDSD_LINEARSIZE", "DDSCAPS_MIPMAP", "DDSCAPS2_CUBEMAP", "DDSCAPS2_VOLUME"} {
		require.Contains(t, names, want)
	}
	require.NotContains(t, names, "DDSD_PITCH")
	require.NotContains(t, names, "DDSD_DEPTH")
}
