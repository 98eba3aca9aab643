package stream

import (
	"fmt"
	"io"
	"os"
)

// FileBackend reaches a named file through callbacks: open once, then
// repeated reads or writes. Nil callbacks make the backend one-directional.
type FileBackend struct {
	name   string
	open   OpenFunc
	read   ReadFunc
	write  WriteFunc
	file   File
	opened bool
}

// NewFile returns a callback backend for the named file.
func NewFile(name string, open OpenFunc, read ReadFunc, write WriteFunc) *FileBackend {
	return &FileBackend{
		name:  name,
		open:  open,
		read:  read,
		write: write,
	}
}

// OpenFile returns a read-only backend for a file on the local filesystem.
func OpenFile(name string) *FileBackend {
	return NewFile(name, OSOpenRead, OSRead, nil)
}

// CreateFile returns a write-only backend that creates (or truncates) a
// file on the local filesystem.
func CreateFile(name string) *FileBackend {
	return NewFile(name, OSOpenWrite, nil, OSWrite)
}

// Open implements Backend by invoking the open callback.
func (b *FileBackend) Open() error {
	if b.opened {
		return ErrAlreadyOpen
	}
	if b.open == nil {
		return ErrNoOpener
	}
	if err := b.open(b.name, &b.file); err != nil {
		return fmt.Errorf("open %s: %w", b.name, err)
	}
	b.opened = true
	return nil
}

// Read implements Backend.
func (b *FileBackend) Read(p []byte) (int, error) {
	if b.read == nil {
		return 0, ErrNoReader
	}
	return b.read(&b.file, p)
}

// Write implements Backend.
func (b *FileBackend) Write(p []byte) (int, error) {
	if b.write == nil {
		return 0, ErrNoWriter
	}
	return b.write(&b.file, p)
}

// Close releases the handle if it is an io.Closer.
func (b *FileBackend) Close() error {
	c, ok := b.file.Handle.(io.Closer)
	b.file.Handle = nil
	if !ok {
		return nil
	}
	return c.Close()
}

// Name returns the file name given at construction.
func (b *FileBackend) Name() string {
	return b.name
}

// File exposes the callback state.
func (b *FileBackend) File() *File {
	return &b.file
}

// OSOpenRead is an OpenFunc that opens a local file for reading.
func OSOpenRead(name string, f *File) error {
	fh, err := os.Open(name)
	if err != nil {
		return err
	}
	st, err := fh.Stat()
	if err != nil {
		fh.Close()
		return err
	}
	f.Handle = fh
	f.Size = st.Size()
	f.Pos = 0
	return nil
}

// OSOpenWrite is an OpenFunc that creates a local file for writing.
func OSOpenWrite(name string, f *File) error {
	fh, err := os.Create(name)
	if err != nil {
		return err
	}
	f.Handle = fh
	f.Size = 0
	f.Pos = 0
	return nil
}

// OSRead is a ReadFunc over an io.Reader handle.
func OSRead(f *File, p []byte) (int, error) {
	r, ok := f.Handle.(io.Reader)
	if !ok {
		return 0, ErrNoReader
	}
	n, err := r.Read(p)
	f.Pos += int64(n)
	return n, err
}

// OSWrite is a WriteFunc over an io.Writer handle.
func OSWrite(f *File, p []byte) (int, error) {
	w, ok := f.Handle.(io.Writer)
	if !ok {
		return 0, ErrNoWriter
	}
	n, err := w.Write(p)
	f.Pos += int64(n)
	if f.Pos > f.Size {
		f.Size = f.Pos
	}
	return n, err
}
