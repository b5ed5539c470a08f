package dds

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHeader is returned when the header is too short or its
	// self-described size is below 124 bytes.
	ErrMalformedHeader = errors.New("dds: malformed header")
	// ErrUnsupportedPixelLayout is returned for the YUV+luminance combination.
	ErrUnsupportedPixelLayout = errors.New("dds: unsupported pixel layout")
	// ErrMalformedPixelFormat is returned when the RGB flag is set but every
	// colour mask is zero.
	ErrMalformedPixelFormat = errors.New("dds: malformed pixel format")
	// ErrUnsupportedFormat is returned for FourCC tags with no decoder.
	ErrUnsupportedFormat = errors.New("dds: unsupported format")
	// ErrTruncatedData is returned when the source holds fewer pixel bytes
	// than the surface needs.
	ErrTruncatedData = errors.New("dds: truncated data")
)

// UnsupportedFormatError carries the FourCC that could not be decoded.
type UnsupportedFormatError struct {
	FourCC string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("dds: unsupported format %q", e.FourCC)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

func truncated(got, want int) error {
	return fmt.Errorf("%w: have %d bytes, need %d", ErrTruncatedData, got, want)
}
