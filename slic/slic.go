// Package slic implements SLIC, a small lossless image codec in the QOI
// family for 8-bit indexed, RGB565, RGB24 and RGBA32 images.
//
// A stream is a 10-byte header followed by variable-length chunks. Both
// directions run in bounded memory: pixels go in and come out in slices of
// any size (typically one scanline), and bytes move through a
// stream.Backend that may be fixed memory, a growable buffer, a file or
// caller callbacks.
package slic

import (
	"fmt"

	"github.com/cocosip/go-slic/slic/stream"
)

// Image is a decoded image held in memory.
type Image struct {
	Width        int
	Height       int
	BitsPerPixel int
	Colorspace   uint8
	Pixels       []byte
}

// Encode compresses a whole image held in memory.
func Encode(pixels []byte, width, height, bpp int, opts ...Option) ([]byte, error) {
	format, err := FormatFor(bpp)
	if err != nil {
		return nil, err
	}
	if want := width * height * format.BytesPerPixel(); len(pixels) != want {
		return nil, fmt.Errorf("%w: pixel data is %d bytes, want %d", ErrInvalidParam, len(pixels), want)
	}

	out := stream.NewBuffer()
	enc, err := NewEncoder(out, width, height, bpp, opts...)
	if err != nil {
		return nil, err
	}
	status, err := enc.Encode(pixels)
	if err != nil {
		return nil, err
	}
	if status != StatusDone {
		return nil, fmt.Errorf("%w: encoder finished with %s", ErrInvalidParam, status)
	}
	return out.Bytes(), nil
}

// Decode decompresses a whole stream held in memory.
func Decode(data []byte, opts ...Option) (*Image, error) {
	dec, err := NewDecoder(stream.NewMemory(data), opts...)
	if err != nil {
		return nil, err
	}

	img := &Image{
		Width:        dec.Width(),
		Height:       dec.Height(),
		BitsPerPixel: dec.BitsPerPixel(),
		Colorspace:   dec.Colorspace(),
	}
	img.Pixels = make([]byte, dec.Header().Pixels()*dec.format.BytesPerPixel())
	n, _, err := dec.Decode(img.Pixels)
	if err != nil {
		return nil, err
	}
	if n != dec.Header().Pixels() {
		return nil, fmt.Errorf("%w: decoded %d of %d pixels", ErrDecode, n, dec.Header().Pixels())
	}
	return img, nil
}

// MaxEncodedSize returns an upper bound on the stream size for an image,
// suitable for sizing a fixed memory backend.
func MaxEncodedSize(width, height, bpp int) int {
	format, err := FormatFor(bpp)
	if err != nil || width <= 0 || height <= 0 {
		return 0
	}
	return HeaderSize + width*height*(format.BytesPerPixel()+1)
}
