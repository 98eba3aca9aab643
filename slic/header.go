package slic

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSize is the length of the fixed stream header
	HeaderSize = 10

	// Magic is "SLIC" read as a little-endian uint32
	Magic uint32 = 0x43494C53
)

// Colorspace tags. The tag is stored in the header for the caller's
// benefit and never changes how chunks are coded.
const (
	ColorspaceSRGB uint8 = iota
	ColorspaceLinear
	ColorspaceGrayscale
	ColorspacePalette
	ColorspaceRGB565
	colorspaceCount
)

// Header describes a SLIC stream.
type Header struct {
	Width        uint16
	Height       uint16
	BitsPerPixel uint8
	Colorspace   uint8
}

// Validate checks the fields an encoder depends on.
func (h Header) Validate() error {
	if h.Width == 0 || h.Height == 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidParam, h.Width, h.Height)
	}
	if _, err := FormatFor(int(h.BitsPerPixel)); err != nil {
		return err
	}
	return nil
}

// Pixels returns width*height.
func (h Header) Pixels() int {
	return int(h.Width) * int(h.Height)
}

// Format returns the pixel format named by BitsPerPixel.
func (h Header) Format() Format {
	return Format(h.BitsPerPixel)
}

// WriteHeader serializes h.
func WriteHeader(h Header) ([HeaderSize]byte, error) {
	var b [HeaderSize]byte
	if err := h.Validate(); err != nil {
		return b, err
	}
	binary.LittleEndian.PutUint32(b[0:4], Magic)
	binary.LittleEndian.PutUint16(b[4:6], h.Width)
	binary.LittleEndian.PutUint16(b[6:8], h.Height)
	b[8] = h.BitsPerPixel
	b[9] = h.Colorspace
	return b, nil
}

// ReadHeader parses the first HeaderSize bytes of b.
func ReadHeader(b []byte) (Header, error) {
	var h Header
	if len(b) < HeaderSize {
		return h, fmt.Errorf("%w: header is %d bytes, want %d", ErrBadFile, len(b), HeaderSize)
	}
	if magic := binary.LittleEndian.Uint32(b[0:4]); magic != Magic {
		return h, fmt.Errorf("%w: magic %#08x", ErrBadFile, magic)
	}
	h.Width = binary.LittleEndian.Uint16(b[4:6])
	h.Height = binary.LittleEndian.Uint16(b[6:8])
	h.BitsPerPixel = b[8]
	h.Colorspace = b[9]
	if h.Width == 0 || h.Height == 0 {
		return h, fmt.Errorf("%w: image size %dx%d", ErrBadFile, h.Width, h.Height)
	}
	if _, err := FormatFor(int(h.BitsPerPixel)); err != nil {
		return h, fmt.Errorf("%w: %d bits per pixel", ErrBadFile, h.BitsPerPixel)
	}
	return h, nil
}

// defaultColorspace picks the tag an encoder writes when the caller does
// not choose one.
func defaultColorspace(f Format, hasPalette bool) uint8 {
	switch f {
	case Indexed8:
		if hasPalette {
			return ColorspacePalette
		}
		return ColorspaceGrayscale
	case RGB565:
		return ColorspaceRGB565
	default:
		return ColorspaceSRGB
	}
}
