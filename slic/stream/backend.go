// Package stream provides the buffered I/O layer SLIC sessions run on.
//
// A Backend is the backing store: raw memory, a named file reached through
// open/read/write callbacks, or bare read/write callbacks for custom media
// such as embedded flash. Reader and Writer add a small bounded buffer in
// front of a Backend so the codec touches the store only when the buffer
// drains or fills.
package stream

import "errors"

// Backend is the capability set a session needs from its backing store.
// Open is called exactly once, before the first Read or Write.
type Backend interface {
	Open() error
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// File is the state shared between a backend and its callbacks.
type File struct {
	Pos    int64  // current position
	Size   int64  // total size, when known
	Data   []byte // memory image, for memory-mapped media
	Handle any    // caller-defined handle (an *os.File, a flash driver, ...)
}

// OpenFunc prepares f for access to the named file.
type OpenFunc func(name string, f *File) error

// ReadFunc reads up to len(p) bytes from f. It returns io.EOF at the end
// of the medium.
type ReadFunc func(f *File, p []byte) (int, error)

// WriteFunc writes p to f.
type WriteFunc func(f *File, p []byte) (int, error)

var (
	// ErrOverflow is returned when a fixed-size store cannot take more bytes
	ErrOverflow = errors.New("stream: backing store is full")

	// ErrShortWrite is returned when a write callback accepts fewer bytes
	// than offered without reporting an error
	ErrShortWrite = errors.New("stream: short write")

	// ErrNoReader is returned when reading from a write-only backend
	ErrNoReader = errors.New("stream: backend has no read callback")

	// ErrNoWriter is returned when writing to a read-only backend
	ErrNoWriter = errors.New("stream: backend has no write callback")

	// ErrNoOpener is returned when a file backend has no open callback
	ErrNoOpener = errors.New("stream: backend has no open callback")

	// ErrAlreadyOpen is returned when Open is called twice
	ErrAlreadyOpen = errors.New("stream: backend already open")
)
