package stream

import (
	"io"
)

const (
	// DefaultBufferSize is the buffer size used when none is requested
	DefaultBufferSize = 1024

	// SmallBufferSize suits RAM-starved targets
	SmallBufferSize = 128

	// MinBufferSize is the smallest buffer Reader and Writer accept
	MinBufferSize = 16
)

// maxEmptyReads bounds consecutive (0, nil) reads before giving up.
const maxEmptyReads = 100

func bufferSize(size int) int {
	if size <= 0 {
		return DefaultBufferSize
	}
	if size < MinBufferSize {
		return MinBufferSize
	}
	return size
}

// Writer buffers output to a Backend. The first backend error is sticky.
type Writer struct {
	b       Backend
	buf     []byte
	n       int
	written int64
	err     error
}

// NewWriter returns a Writer with a buffer of the given size (0 selects
// DefaultBufferSize).
func NewWriter(b Backend, size int) *Writer {
	return &Writer{
		b:   b,
		buf: make([]byte, bufferSize(size)),
	}
}

// WriteByte buffers one byte.
func (w *Writer) WriteByte(c byte) error {
	if w.err != nil {
		return w.err
	}
	if w.n == len(w.buf) {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	w.buf[w.n] = c
	w.n++
	w.written++
	return nil
}

// Write buffers p, flushing to the backend as the buffer fills.
func (w *Writer) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if w.err != nil {
			return total, w.err
		}
		if w.n == len(w.buf) {
			if err := w.Flush(); err != nil {
				return total, err
			}
		}
		m := copy(w.buf[w.n:], p)
		w.n += m
		w.written += int64(m)
		total += m
		p = p[m:]
	}
	return total, nil
}

// Flush hands all buffered bytes to the backend.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	off := 0
	for off < w.n {
		m, err := w.b.Write(w.buf[off:w.n])
		off += m
		if err != nil {
			w.err = err
			break
		}
		if m == 0 {
			w.err = ErrShortWrite
			break
		}
	}
	if w.err != nil {
		copy(w.buf, w.buf[off:w.n])
		w.n -= off
		return w.err
	}
	w.n = 0
	return nil
}

// Buffered returns the number of bytes not yet handed to the backend.
func (w *Writer) Buffered() int {
	return w.n
}

// Written returns the number of bytes accepted by the Writer, buffered or
// flushed.
func (w *Writer) Written() int64 {
	return w.written
}

// Reader buffers input from a Backend. The first backend error is sticky.
type Reader struct {
	b        Backend
	buf      []byte
	r, w     int
	consumed int64
	err      error
}

// NewReader returns a Reader with a buffer of the given size (0 selects
// DefaultBufferSize).
func NewReader(b Backend, size int) *Reader {
	return &Reader{
		b:   b,
		buf: make([]byte, bufferSize(size)),
	}
}

// fill refills an exhausted buffer.
func (r *Reader) fill() error {
	if r.err != nil {
		return r.err
	}
	r.r, r.w = 0, 0
	for i := 0; i < maxEmptyReads; i++ {
		n, err := r.b.Read(r.buf)
		if n < 0 || n > len(r.buf) {
			r.err = io.ErrShortBuffer
			return r.err
		}
		if n > 0 {
			r.w = n
			// Keep the error for the next refill; the data comes first.
			r.err = err
			return nil
		}
		if err != nil {
			r.err = err
			return err
		}
	}
	r.err = io.ErrNoProgress
	return r.err
}

// ReadByte returns the next byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.r == r.w {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}
	c := r.buf[r.r]
	r.r++
	r.consumed++
	return c, nil
}

// ReadFull fills p completely. It returns io.EOF if no bytes were
// available and io.ErrUnexpectedEOF if the data ended part way.
func (r *Reader) ReadFull(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		if r.r == r.w {
			if err := r.fill(); err != nil {
				if err == io.EOF && total > 0 {
					err = io.ErrUnexpectedEOF
				}
				return total, err
			}
		}
		m := copy(p[total:], r.buf[r.r:r.w])
		r.r += m
		r.consumed += int64(m)
		total += m
	}
	return total, nil
}

// Buffered returns the number of bytes that can be read without touching
// the backend.
func (r *Reader) Buffered() int {
	return r.w - r.r
}

// Consumed returns the number of bytes handed out so far.
func (r *Reader) Consumed() int64 {
	return r.consumed
}
