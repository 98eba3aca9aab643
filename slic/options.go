package slic

import "github.com/cocosip/go-slic/slic/stream"

// Option configures an Encoder or Decoder.
type Option func(*config)

type config struct {
	palette    []byte
	colorspace int
	bufferSize int
}

func newConfig(opts []Option) config {
	cfg := config{
		colorspace: -1,
		bufferSize: stream.DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithPalette threads a caller-owned palette through the session. The
// codec never reads or writes it; Palette returns it unchanged.
func WithPalette(palette []byte) Option {
	return func(c *config) {
		c.palette = palette
	}
}

// WithColorspace overrides the colorspace tag an encoder writes. Decoders
// ignore it.
func WithColorspace(cs uint8) Option {
	return func(c *config) {
		c.colorspace = int(cs)
	}
}

// WithBufferSize sets the I/O buffer size. Use stream.SmallBufferSize on
// memory-constrained targets.
func WithBufferSize(n int) Option {
	return func(c *config) {
		c.bufferSize = n
	}
}
