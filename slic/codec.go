package slic

import (
	"fmt"

	"github.com/cocosip/go-slic/codec"
)

var _ codec.Codec = (*Codec)(nil)

const codecName = "slic"

// Codec exposes SLIC through the codec registry.
type Codec struct{}

// NewCodec returns the registry adapter.
func NewCodec() *Codec {
	return &Codec{}
}

// Name returns the codec name
func (c *Codec) Name() string {
	return codecName
}

// ID returns the stream magic as text
func (c *Codec) ID() string {
	return "SLIC"
}

// Encode compresses params.PixelData. params.Options may be nil, a
// *Parameters or a *codec.BaseOptions.
func (c *Codec) Encode(params codec.EncodeParams) ([]byte, error) {
	var opts []Option
	if params.Palette != nil {
		opts = append(opts, WithPalette(params.Palette))
	}
	if params.Options != nil {
		if err := params.Options.Validate(); err != nil {
			return nil, fmt.Errorf("invalid SLIC options: %w", err)
		}
		switch o := params.Options.(type) {
		case *Parameters:
			opts = append(opts, o.options()...)
		case *codec.BaseOptions:
			opts = append(opts, WithBufferSize(o.BufferSize))
		default:
			return nil, fmt.Errorf("%w: options of type %T", codec.ErrInvalidParameter, params.Options)
		}
	}
	return Encode(params.PixelData, params.Width, params.Height, params.BitsPerPixel, opts...)
}

// Decode decompresses one SLIC stream
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return &codec.DecodeResult{
		PixelData:    img.Pixels,
		Width:        img.Width,
		Height:       img.Height,
		BitsPerPixel: img.BitsPerPixel,
		Colorspace:   img.Colorspace,
	}, nil
}

// Parameters are the SLIC encoding options for registry callers
type Parameters struct {
	codec.BaseOptions

	// Colorspace overrides the header tag; -1 keeps the format default
	Colorspace int
}

// NewParameters returns parameters with default values
func NewParameters() *Parameters {
	return &Parameters{Colorspace: -1}
}

// WithColorspace sets the colorspace tag and returns the parameters for chaining
func (p *Parameters) WithColorspace(cs int) *Parameters {
	p.Colorspace = cs
	return p
}

// WithBufferSize sets the I/O buffer size and returns the parameters for chaining
func (p *Parameters) WithBufferSize(n int) *Parameters {
	p.BufferSize = n
	return p
}

// Validate checks the parameter ranges
func (p *Parameters) Validate() error {
	if err := p.BaseOptions.Validate(); err != nil {
		return err
	}
	if p.Colorspace < -1 || p.Colorspace >= int(colorspaceCount) {
		return fmt.Errorf("%w: colorspace %d", codec.ErrInvalidParameter, p.Colorspace)
	}
	return nil
}

func (p *Parameters) options() []Option {
	opts := []Option{WithBufferSize(p.BufferSize)}
	if p.Colorspace >= 0 {
		opts = append(opts, WithColorspace(uint8(p.Colorspace)))
	}
	return opts
}

func init() {
	codec.Register(NewCodec())
}
