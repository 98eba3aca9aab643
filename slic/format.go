package slic

import "fmt"

// Format is a pixel layout, named by its bits per pixel.
type Format uint8

const (
	// Indexed8 is one byte per pixel: a palette index or a gray level
	Indexed8 Format = 8
	// RGB565 is a little-endian uint16 with 5 bits red, 6 green, 5 blue
	RGB565 Format = 16
	// RGB24 is three bytes per pixel in R, G, B order
	RGB24 Format = 24
	// RGBA32 is four bytes per pixel in R, G, B, A order
	RGBA32 Format = 32
)

// FormatFor returns the format for a bits-per-pixel value.
func FormatFor(bpp int) (Format, error) {
	switch bpp {
	case 8, 16, 24, 32:
		return Format(bpp), nil
	}
	return 0, fmt.Errorf("%w: unsupported bits per pixel %d (must be 8, 16, 24 or 32)", ErrInvalidParam, bpp)
}

func (f Format) String() string {
	switch f {
	case Indexed8:
		return "indexed8"
	case RGB565:
		return "rgb565"
	case RGB24:
		return "rgb24"
	case RGBA32:
		return "rgba32"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// BytesPerPixel returns the packed size of one pixel.
func (f Format) BytesPerPixel() int {
	return int(f) >> 3
}

// literal reports whether the format uses the RGB op set (luma, literal
// pixels, 64-slot cache) rather than the compact op set with bad runs.
func (f Format) literal() bool {
	return f == RGB24 || f == RGBA32
}

// pixel reads one pixel from the front of b.
func (f Format) pixel(b []byte) uint32 {
	switch f {
	case Indexed8:
		return uint32(b[0])
	case RGB565:
		return uint32(b[0]) | uint32(b[1])<<8
	case RGB24:
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	default:
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	}
}

// putPixel writes v to the front of b.
func (f Format) putPixel(b []byte, v uint32) {
	switch f {
	case Indexed8:
		b[0] = byte(v)
	case RGB565:
		b[0] = byte(v)
		b[1] = byte(v >> 8)
	case RGB24:
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
	default:
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
		b[3] = byte(v >> 24)
	}
}

// initial is the previous-pixel value both sides assume before the first
// pixel. RGBA starts opaque.
func (f Format) initial() uint32 {
	if f == RGBA32 {
		return 0xFF000000
	}
	return 0
}

// hash selects the history cache slot for v. The compact formats only
// address 8 slots.
func (f Format) hash(v uint32) int {
	switch f {
	case Indexed8:
		return int(v+(v>>4)*6) & 7
	case RGB565:
		return int((v&0x1f)+((v>>5)&0x3f)*6+(v>>11)*12) & 7
	case RGB24:
		c := f.split(v)
		return (c.r*3 + c.g*5 + c.b*7) & 63
	default:
		c := f.split(v)
		return (c.r*3 + c.g*5 + c.b*7 + c.a*11) & 63
	}
}

// channels holds per-channel components. Indexed8 uses r only.
type channels struct {
	r, g, b, a int
}

// split decomposes v into its channels.
func (f Format) split(v uint32) channels {
	switch f {
	case Indexed8:
		return channels{r: int(v & 0xff)}
	case RGB565:
		return channels{
			r: int(v>>11) & 0x1f,
			g: int(v>>5) & 0x3f,
			b: int(v) & 0x1f,
		}
	default:
		return channels{
			r: int(v) & 0xff,
			g: int(v>>8) & 0xff,
			b: int(v>>16) & 0xff,
			a: int(v>>24) & 0xff,
		}
	}
}

// join recomposes channels, reducing each one modulo its width.
func (f Format) join(c channels) uint32 {
	switch f {
	case Indexed8:
		return uint32(c.r & 0xff)
	case RGB565:
		return uint32(c.r&0x1f)<<11 | uint32(c.g&0x3f)<<5 | uint32(c.b&0x1f)
	case RGB24:
		return uint32(c.r&0xff) | uint32(c.g&0xff)<<8 | uint32(c.b&0xff)<<16
	default:
		return uint32(c.r&0xff) | uint32(c.g&0xff)<<8 | uint32(c.b&0xff)<<16 | uint32(c.a&0xff)<<24
	}
}

// channelMasks returns the modulus-1 of the red, green and blue channels.
func (f Format) channelMasks() (r, g, b int) {
	switch f {
	case Indexed8:
		return 0xff, 0, 0
	case RGB565:
		return 0x1f, 0x3f, 0x1f
	default:
		return 0xff, 0xff, 0xff
	}
}

// wrapDelta returns cur-prev reduced modulo mask+1 into the signed range
// [-(mask+1)/2, (mask+1)/2).
func wrapDelta(cur, prev, mask int) int {
	d := (cur - prev) & mask
	if d > mask>>1 {
		d -= mask + 1
	}
	return d
}
