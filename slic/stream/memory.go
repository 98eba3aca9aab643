package stream

import (
	"bytes"
	"io"
)

// Memory is a fixed-size memory backend. Writes past the end of the
// slice fail with ErrOverflow; reads past the end return io.EOF.
type Memory struct {
	file File
}

// NewMemory returns a backend over data. For encoding, data is the output
// area and its length is the capacity; for decoding, data is the stream.
func NewMemory(data []byte) *Memory {
	return &Memory{file: File{Data: data, Size: int64(len(data))}}
}

// Open implements Backend. Memory needs no preparation.
func (m *Memory) Open() error {
	return nil
}

// Read implements Backend.
func (m *Memory) Read(p []byte) (int, error) {
	return MemoryRead(&m.file, p)
}

// Write implements Backend.
func (m *Memory) Write(p []byte) (int, error) {
	return MemoryWrite(&m.file, p)
}

// Len returns the number of bytes read or written so far.
func (m *Memory) Len() int {
	return int(m.file.Pos)
}

// Bytes returns the written (or consumed) prefix of the memory area.
func (m *Memory) Bytes() []byte {
	return m.file.Data[:m.file.Pos]
}

// Buffer is a growable memory backend. It never overflows.
type Buffer struct {
	buf bytes.Buffer
}

// NewBuffer returns an empty growable backend.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferBytes returns a growable backend whose initial contents are data.
func NewBufferBytes(data []byte) *Buffer {
	b := &Buffer{}
	b.buf.Write(data)
	return b
}

// Open implements Backend.
func (b *Buffer) Open() error {
	return nil
}

// Read implements Backend.
func (b *Buffer) Read(p []byte) (int, error) {
	return b.buf.Read(p)
}

// Write implements Backend.
func (b *Buffer) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

// Bytes returns the unread contents.
func (b *Buffer) Bytes() []byte {
	return b.buf.Bytes()
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return b.buf.Len()
}

// MemoryRead is a ReadFunc over f.Data[f.Pos:f.Size]. It serves both the
// Memory backend and callback backends over memory-mapped media.
func MemoryRead(f *File, p []byte) (int, error) {
	if f.Pos >= f.Size {
		return 0, io.EOF
	}
	n := copy(p, f.Data[f.Pos:f.Size])
	f.Pos += int64(n)
	return n, nil
}

// MemoryWrite is a WriteFunc into f.Data[f.Pos:f.Size]. It copies what
// fits and reports ErrOverflow for the rest.
func MemoryWrite(f *File, p []byte) (int, error) {
	if f.Pos >= f.Size {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, ErrOverflow
	}
	n := copy(f.Data[f.Pos:f.Size], p)
	f.Pos += int64(n)
	if n < len(p) {
		return n, ErrOverflow
	}
	return n, nil
}
