package codec

// Codec is the interface every registered image codec implements
type Codec interface {
	// Encode compresses one image
	Encode(params EncodeParams) ([]byte, error)

	// Decode decompresses one image
	Decode(data []byte) (*DecodeResult, error)

	// ID returns the stream identifier (for SLIC, its magic)
	ID() string

	// Name returns a human-readable name
	Name() string
}

// EncodeParams contains parameters for encoding
type EncodeParams struct {
	PixelData    []byte  // Tightly packed pixels, row-major
	Width        int     // Image width
	Height       int     // Image height
	BitsPerPixel int     // 8, 16, 24 or 32
	Palette      []byte  // Optional palette, passed through untouched
	Options      Options // Codec-specific options
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// DecodeResult contains the result of decoding
type DecodeResult struct {
	PixelData    []byte // Decoded pixel data
	Width        int    // Image width
	Height       int    // Image height
	BitsPerPixel int    // Pixel depth
	Colorspace   uint8  // Colorspace tag stored in the stream
}

// BaseOptions provides common options for all codecs
type BaseOptions struct {
	// BufferSize is the I/O buffer size in bytes; 0 selects the codec default
	BufferSize int
}

// Validate validates base options
func (o *BaseOptions) Validate() error {
	if o.BufferSize < 0 {
		return ErrInvalidParameter
	}
	return nil
}
