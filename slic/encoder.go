package slic

import (
	"fmt"
	"io"

	"github.com/cocosip/go-slic/slic/stream"
)

// Encoder is one encode session: it turns width*height pixels, fed in any
// number of Encode calls, into one SLIC stream on its backend.
//
// An Encoder must not be used from more than one goroutine at a time.
type Encoder struct {
	hdr     Header
	format  Format
	palette []byte
	backend stream.Backend
	w       *stream.Writer

	prev  uint32
	run   int
	bad   []byte // pending bad-run pixels, packed
	cache cache
	chunk []byte

	total int
	count int
	done  bool
	err   error
}

// NewEncoder validates the image parameters, opens the backend and writes
// the stream header.
func NewEncoder(b stream.Backend, width, height, bpp int, opts ...Option) (*Encoder, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil backend", ErrInvalidParam)
	}
	if width <= 0 || height <= 0 || width > 0xFFFF || height > 0xFFFF {
		return nil, fmt.Errorf("%w: image size %dx%d (each side must be 1-65535)", ErrInvalidParam, width, height)
	}
	format, err := FormatFor(bpp)
	if err != nil {
		return nil, err
	}

	cfg := newConfig(opts)
	cs := defaultColorspace(format, cfg.palette != nil)
	if cfg.colorspace >= 0 {
		if cfg.colorspace >= int(colorspaceCount) {
			return nil, fmt.Errorf("%w: colorspace %d", ErrInvalidParam, cfg.colorspace)
		}
		cs = uint8(cfg.colorspace)
	}

	hdr := Header{
		Width:        uint16(width),
		Height:       uint16(height),
		BitsPerPixel: uint8(bpp),
		Colorspace:   cs,
	}
	raw, err := WriteHeader(hdr)
	if err != nil {
		return nil, err
	}

	if err := b.Open(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	e := &Encoder{
		hdr:     hdr,
		format:  format,
		palette: cfg.palette,
		backend: b,
		w:       stream.NewWriter(b, cfg.bufferSize),
		prev:    format.initial(),
		bad:     make([]byte, 0, badRunMax*format.BytesPerPixel()),
		cache:   newCache(format),
		chunk:   make([]byte, 0, 8),
		total:   hdr.Pixels(),
	}
	if _, err := e.w.Write(raw[:]); err != nil {
		closeBackend(b)
		return nil, writeError(err)
	}
	return e, nil
}

// Encode consumes len(pixels)/BytesPerPixel tightly packed pixels. It
// returns StatusDone once the last pixel of the image has been consumed
// and the stream flushed, StatusSuccess otherwise.
//
// Supplying a partial pixel or more pixels than remain is a caller error
// and leaves the session untouched. Any output failure is fatal: the same
// error is returned by every later call.
func (e *Encoder) Encode(pixels []byte) (Status, error) {
	if e.err != nil {
		return StatusOf(e.err), e.err
	}
	if e.done {
		return StatusInvalidParam, fmt.Errorf("%w: all %d pixels already encoded", ErrInvalidParam, e.total)
	}
	bpp := e.format.BytesPerPixel()
	if len(pixels)%bpp != 0 {
		return StatusInvalidParam, fmt.Errorf("%w: %d bytes is not a whole number of %d-byte pixels", ErrInvalidParam, len(pixels), bpp)
	}
	n := len(pixels) / bpp
	if n > e.total-e.count {
		return StatusInvalidParam, fmt.Errorf("%w: %d pixels supplied, %d remain", ErrInvalidParam, n, e.total-e.count)
	}

	for i := 0; i < n; i++ {
		if err := e.encodePixel(e.format.pixel(pixels[i*bpp:])); err != nil {
			return e.fail(err)
		}
	}
	e.count += n
	if e.count < e.total {
		return StatusSuccess, nil
	}

	if err := e.flushRun(); err != nil {
		return e.fail(err)
	}
	if err := e.flushBad(); err != nil {
		return e.fail(err)
	}
	if err := e.w.Flush(); err != nil {
		return e.fail(writeError(err))
	}
	e.done = true
	return StatusDone, nil
}

func (e *Encoder) fail(err error) (Status, error) {
	e.err = err
	return StatusOf(err), err
}

// encodePixel runs the per-pixel decision: run, index, diff, luma, then
// bad run or literal.
func (e *Encoder) encodePixel(v uint32) error {
	if v == e.prev {
		e.run++
		e.cache.update(v)
		if e.run == runWordMax {
			return e.flushRun()
		}
		return nil
	}
	if err := e.flushRun(); err != nil {
		return err
	}

	f := e.format
	e.chunk = e.chunk[:0]
	if slot, ok := e.cache.lookup(v); ok {
		if f.literal() {
			e.chunk = append(e.chunk, opIndex|byte(slot))
		} else {
			e.chunk = append(e.chunk, opIndex8|byte(slot))
		}
	} else if tag, ok := f.diffChunk(v, e.prev); ok {
		e.chunk = append(e.chunk, tag)
	} else if f.literal() {
		if luma, ok := f.lumaChunk(v, e.prev); ok {
			e.chunk = append(e.chunk, luma[:]...)
		} else {
			e.chunk = f.literalChunk(e.chunk, v, e.prev)
		}
	}

	var err error
	if len(e.chunk) > 0 {
		err = e.emit(e.chunk)
	} else {
		err = e.appendBad(v)
	}
	e.prev = v
	e.cache.update(v)
	return err
}

// emit writes a chunk after any pending bad run, keeping stream order equal
// to pixel order.
func (e *Encoder) emit(chunk []byte) error {
	if err := e.flushBad(); err != nil {
		return err
	}
	if _, err := e.w.Write(chunk); err != nil {
		return writeError(err)
	}
	return nil
}

func (e *Encoder) flushRun() error {
	if e.run == 0 {
		return nil
	}
	n := e.run
	e.run = 0
	var buf [3]byte
	return e.emit(e.format.runChunk(buf[:0], n))
}

func (e *Encoder) appendBad(v uint32) error {
	bpp := e.format.BytesPerPixel()
	k := len(e.bad)
	e.bad = e.bad[:k+bpp]
	e.format.putPixel(e.bad[k:], v)
	if len(e.bad) == cap(e.bad) {
		return e.flushBad()
	}
	return nil
}

func (e *Encoder) flushBad() error {
	if len(e.bad) == 0 {
		return nil
	}
	count := len(e.bad) / e.format.BytesPerPixel()
	if err := e.w.WriteByte(byte(opBadRun8 | (count - 1))); err != nil {
		return writeError(err)
	}
	_, err := e.w.Write(e.bad)
	e.bad = e.bad[:0]
	if err != nil {
		return writeError(err)
	}
	return nil
}

// Header returns the stream header being written.
func (e *Encoder) Header() Header {
	return e.hdr
}

// Width returns the image width in pixels.
func (e *Encoder) Width() int {
	return int(e.hdr.Width)
}

// Height returns the image height in pixels.
func (e *Encoder) Height() int {
	return int(e.hdr.Height)
}

// BitsPerPixel returns the pixel depth.
func (e *Encoder) BitsPerPixel() int {
	return int(e.hdr.BitsPerPixel)
}

// Colorspace returns the colorspace tag written to the header.
func (e *Encoder) Colorspace() uint8 {
	return e.hdr.Colorspace
}

// Palette returns the palette given with WithPalette.
func (e *Encoder) Palette() []byte {
	return e.palette
}

// Remaining returns the number of pixels still expected.
func (e *Encoder) Remaining() int {
	return e.total - e.count
}

// Size returns the number of stream bytes produced so far, header included.
func (e *Encoder) Size() int {
	return int(e.w.Written())
}

// Close releases the backend if it holds a closable resource. It does not
// complete an unfinished stream; an abandoned stream is simply short.
func (e *Encoder) Close() error {
	if c, ok := e.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
