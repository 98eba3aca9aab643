package stream

// CallbackBackend drives caller-supplied read/write callbacks with no open
// step, for storage media that are ready before the session starts.
type CallbackBackend struct {
	file  File
	read  ReadFunc
	write WriteFunc
}

// NewCallbacks returns a backend over f driven by read and write. Either
// callback may be nil for a one-directional session.
func NewCallbacks(f File, read ReadFunc, write WriteFunc) *CallbackBackend {
	return &CallbackBackend{
		file:  f,
		read:  read,
		write: write,
	}
}

// NewFlash returns a read-only callback backend over memory-mapped data,
// e.g. an image linked into program flash.
func NewFlash(data []byte) *CallbackBackend {
	return NewCallbacks(File{Data: data, Size: int64(len(data))}, MemoryRead, nil)
}

// Open implements Backend. Callback media need no open step.
func (b *CallbackBackend) Open() error {
	return nil
}

// Read implements Backend.
func (b *CallbackBackend) Read(p []byte) (int, error) {
	if b.read == nil {
		return 0, ErrNoReader
	}
	return b.read(&b.file, p)
}

// Write implements Backend.
func (b *CallbackBackend) Write(p []byte) (int, error) {
	if b.write == nil {
		return 0, ErrNoWriter
	}
	return b.write(&b.file, p)
}

// File exposes the callback state.
func (b *CallbackBackend) File() *File {
	return &b.file
}
