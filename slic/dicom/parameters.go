package dicom

import (
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-slic/slic/stream"
)

// Ensure SLICParameters implements codec.Parameters
var _ codec.Parameters = (*SLICParameters)(nil)

// SLICParameters contains parameters for SLIC compression of DICOM frames
type SLICParameters struct {
	// BufferSize is the I/O buffer size used per frame session.
	// Values below stream.MinBufferSize are raised to it.
	BufferSize int

	// Colorspace overrides the tag written to each frame header; -1 keeps
	// the default derived from the frame layout.
	Colorspace int

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewSLICParameters creates SLICParameters with default values
func NewSLICParameters() *SLICParameters {
	return &SLICParameters{
		BufferSize: stream.DefaultBufferSize,
		Colorspace: -1,
		params:     make(map[string]interface{}),
	}
}

// GetParameter retrieves a parameter by name (implements codec.Parameters)
func (p *SLICParameters) GetParameter(name string) interface{} {
	switch name {
	case "bufferSize":
		return p.BufferSize
	case "colorspace":
		return p.Colorspace
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value (implements codec.Parameters)
func (p *SLICParameters) SetParameter(name string, value interface{}) {
	switch name {
	case "bufferSize":
		if v, ok := value.(int); ok {
			p.BufferSize = v
		}
	case "colorspace":
		if v, ok := value.(int); ok {
			p.Colorspace = v
		}
	default:
		p.params[name] = value
	}
}

// Validate checks the parameters and resets out-of-range values to defaults
func (p *SLICParameters) Validate() error {
	if p.BufferSize <= 0 {
		p.BufferSize = stream.DefaultBufferSize
	}
	if p.Colorspace < -1 || p.Colorspace > 4 {
		p.Colorspace = -1
	}
	return nil
}

// WithBufferSize sets the buffer size and returns the parameters for chaining
func (p *SLICParameters) WithBufferSize(n int) *SLICParameters {
	p.BufferSize = n
	return p
}

// WithColorspace sets the colorspace tag and returns the parameters for chaining
func (p *SLICParameters) WithColorspace(cs int) *SLICParameters {
	p.Colorspace = cs
	return p
}
