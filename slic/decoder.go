package slic

import (
	"errors"
	"fmt"
	"io"

	"github.com/cocosip/go-slic/slic/stream"
)

// Decoder is one decode session over a SLIC stream. Pixels come out in
// any number of Decode calls; runs and bad runs carry across calls.
//
// A Decoder must not be used from more than one goroutine at a time.
type Decoder struct {
	hdr     Header
	format  Format
	palette []byte
	backend stream.Backend
	r       *stream.Reader

	prev    uint32
	runLeft int
	badLeft int
	cache   cache
	raw     [4]byte

	total     int
	count     int
	doneCalls int
	err       error
}

// NewDecoder opens the backend and reads the stream header.
func NewDecoder(b stream.Backend, opts ...Option) (*Decoder, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil backend", ErrInvalidParam)
	}
	cfg := newConfig(opts)
	if err := b.Open(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	r := stream.NewReader(b, cfg.bufferSize)
	var raw [HeaderSize]byte
	n, err := r.ReadFull(raw[:])
	if err != nil {
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			closeBackend(b)
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	hdr, err := ReadHeader(raw[:n])
	if err != nil {
		closeBackend(b)
		return nil, err
	}

	format := hdr.Format()
	return &Decoder{
		hdr:     hdr,
		format:  format,
		palette: cfg.palette,
		backend: b,
		r:       r,
		prev:    format.initial(),
		cache:   newCache(format),
		total:   hdr.Pixels(),
	}, nil
}

// Decode fills out with up to len(out)/BytesPerPixel pixels and returns
// how many it wrote. The call that writes the last pixel returns
// StatusDone; so does the one call after it, which writes nothing. Calls
// beyond that are rejected.
func (d *Decoder) Decode(out []byte) (int, Status, error) {
	if d.err != nil {
		return 0, StatusOf(d.err), d.err
	}
	if d.count == d.total {
		if d.doneCalls == 1 {
			d.doneCalls++
			return 0, StatusDone, nil
		}
		return 0, StatusInvalidParam, fmt.Errorf("%w: image already fully decoded", ErrInvalidParam)
	}
	bpp := d.format.BytesPerPixel()
	if len(out)%bpp != 0 {
		return 0, StatusInvalidParam, fmt.Errorf("%w: %d bytes is not a whole number of %d-byte pixels", ErrInvalidParam, len(out), bpp)
	}

	n := min(len(out)/bpp, d.total-d.count)
	for i := 0; i < n; i++ {
		v, err := d.next()
		if err != nil {
			d.count += i
			d.err = err
			return i, StatusOf(err), err
		}
		d.format.putPixel(out[i*bpp:], v)
		d.prev = v
		d.cache.update(v)
	}
	d.count += n
	if d.count == d.total {
		d.doneCalls = 1
		return n, StatusDone, nil
	}
	return n, StatusSuccess, nil
}

// next produces one pixel, reading a new chunk when no run is pending.
func (d *Decoder) next() (uint32, error) {
	if d.runLeft > 0 {
		d.runLeft--
		return d.prev, nil
	}
	if d.badLeft > 0 {
		d.badLeft--
		return d.readPixel()
	}

	f := d.format
	tag, err := d.r.ReadByte()
	if err != nil {
		return 0, readError(err)
	}
	switch f.classify(tag) {
	case kindRun:
		d.runLeft = int(tag & payloadMask)
		return d.prev, nil
	case kindRunByte:
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, readError(err)
		}
		d.runLeft = int(b)
		return d.prev, nil
	case kindRunWord:
		if _, err := d.r.ReadFull(d.raw[:2]); err != nil {
			return 0, readError(err)
		}
		d.runLeft = int(d.raw[0]) | int(d.raw[1])<<8
		return d.prev, nil
	case kindBadRun:
		d.badLeft = int(tag & payloadMask)
		return d.readPixel()
	case kindIndex:
		slot := int(tag & payloadMask)
		v, ok := d.cache.at(slot)
		if !ok {
			return 0, fmt.Errorf("%w: index chunk names empty slot %d", ErrDecode, slot)
		}
		return v, nil
	case kindDiff:
		return f.applyDiff(d.prev, tag), nil
	case kindLuma:
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, readError(err)
		}
		return f.applyLuma(d.prev, tag, b), nil
	case kindRGB:
		if _, err := d.r.ReadFull(d.raw[:3]); err != nil {
			return 0, readError(err)
		}
		alpha := d.prev & 0xFF000000
		return uint32(d.raw[0]) | uint32(d.raw[1])<<8 | uint32(d.raw[2])<<16 | alpha, nil
	case kindRGBA:
		if _, err := d.r.ReadFull(d.raw[:4]); err != nil {
			return 0, readError(err)
		}
		return f.pixel(d.raw[:4]), nil
	default:
		return 0, fmt.Errorf("%w: invalid tag %#02x for %s", ErrDecode, tag, f)
	}
}

func (d *Decoder) readPixel() (uint32, error) {
	bpp := d.format.BytesPerPixel()
	if _, err := d.r.ReadFull(d.raw[:bpp]); err != nil {
		return 0, readError(err)
	}
	return d.format.pixel(d.raw[:bpp]), nil
}

// Header returns the parsed stream header.
func (d *Decoder) Header() Header {
	return d.hdr
}

// Width returns the image width in pixels.
func (d *Decoder) Width() int {
	return int(d.hdr.Width)
}

// Height returns the image height in pixels.
func (d *Decoder) Height() int {
	return int(d.hdr.Height)
}

// BitsPerPixel returns the pixel depth.
func (d *Decoder) BitsPerPixel() int {
	return int(d.hdr.BitsPerPixel)
}

// Colorspace returns the colorspace tag from the header.
func (d *Decoder) Colorspace() uint8 {
	return d.hdr.Colorspace
}

// Palette returns the palette given with WithPalette.
func (d *Decoder) Palette() []byte {
	return d.palette
}

// Remaining returns the number of pixels not yet decoded.
func (d *Decoder) Remaining() int {
	return d.total - d.count
}

// Size returns the number of stream bytes consumed so far, header included.
func (d *Decoder) Size() int {
	return int(d.r.Consumed())
}

// closeBackend releases an opened backend that no session will own.
func closeBackend(b stream.Backend) {
	if c, ok := b.(io.Closer); ok {
		c.Close()
	}
}

// Close releases the backend if it holds a closable resource.
func (d *Decoder) Close() error {
	if c, ok := d.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
