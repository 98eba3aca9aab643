// Package dicom plugs SLIC into the go-dicom codec registry, storing each
// frame of a DICOM pixel data element as one SLIC stream.
package dicom

import (
	"fmt"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
	sliccodec "github.com/cocosip/go-slic/codec"
	"github.com/cocosip/go-slic/slic"
)

var _ codec.Codec = (*Codec)(nil)

const slicName = "SLIC Lossless"

// Codec implements codec.Codec for SLIC. SLIC has no standard transfer
// syntax, so the caller picks the one the codec answers to.
type Codec struct {
	transferSyntax *transfer.Syntax
}

// NewCodec creates a SLIC codec bound to ts
func NewCodec(ts *transfer.Syntax) *Codec {
	return &Codec{transferSyntax: ts}
}

// Name returns the codec name
func (c *Codec) Name() string {
	return slicName
}

// TransferSyntax returns the transfer syntax this codec handles
func (c *Codec) TransferSyntax() *transfer.Syntax {
	return c.transferSyntax
}

// GetDefaultParameters returns the default codec parameters
func (c *Codec) GetDefaultParameters() codec.Parameters {
	return NewSLICParameters()
}

// BitsPerPixel maps a DICOM frame layout to a SLIC pixel depth.
func BitsPerPixel(info *imagetypes.FrameInfo) (int, error) {
	spp := int(info.SamplesPerPixel)
	ba := int(info.BitsAllocated)
	switch {
	case spp == 1 && ba == 8:
		return 8, nil
	case spp == 1 && ba == 16:
		return 16, nil
	case spp == 3 && ba == 8 && int(info.PlanarConfiguration) == 0:
		return 24, nil
	case spp == 4 && ba == 8:
		return 32, nil
	}
	return 0, fmt.Errorf("%w: %d samples of %d bits (planar configuration %d)",
		sliccodec.ErrUnsupportedFormat, spp, ba, int(info.PlanarConfiguration))
}

// options builds the session options for frames of depth bpp. Single
// sample 16-bit frames are grayscale, not RGB565, unless the caller says
// otherwise.
func (c *Codec) options(parameters codec.Parameters, bpp int) []slic.Option {
	p := NewSLICParameters()
	if parameters != nil {
		if sp, ok := parameters.(*SLICParameters); ok {
			p = sp
		} else {
			if v, ok := parameters.GetParameter("bufferSize").(int); ok {
				p.BufferSize = v
			}
			if v, ok := parameters.GetParameter("colorspace").(int); ok {
				p.Colorspace = v
			}
		}
	}
	p.Validate()

	opts := []slic.Option{slic.WithBufferSize(p.BufferSize)}
	switch {
	case p.Colorspace >= 0:
		opts = append(opts, slic.WithColorspace(uint8(p.Colorspace)))
	case bpp == 16:
		opts = append(opts, slic.WithColorspace(slic.ColorspaceGrayscale))
	}
	return opts
}

// Encode compresses every frame of oldPixelData into newPixelData
func (c *Codec) Encode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}
	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}
	bpp, err := BitsPerPixel(frameInfo)
	if err != nil {
		return err
	}
	opts := c.options(parameters, bpp)

	frameCount := oldPixelData.FrameCount()
	if frameCount == 0 {
		return fmt.Errorf("source pixel data is empty (no frames)")
	}
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		encoded, err := slic.Encode(frameData, int(frameInfo.Width), int(frameInfo.Height), bpp, opts...)
		if err != nil {
			return fmt.Errorf("SLIC encode failed for frame %d: %w", frameIndex, err)
		}
		if err := newPixelData.AddFrame(encoded); err != nil {
			return fmt.Errorf("failed to add encoded frame %d: %w", frameIndex, err)
		}
	}
	return nil
}

// Decode decompresses every frame of oldPixelData into newPixelData
func (c *Codec) Decode(oldPixelData imagetypes.PixelData, newPixelData imagetypes.PixelData, parameters codec.Parameters) error {
	if oldPixelData == nil || newPixelData == nil {
		return fmt.Errorf("source and destination PixelData cannot be nil")
	}
	frameInfo := oldPixelData.GetFrameInfo()
	if frameInfo == nil {
		return fmt.Errorf("failed to get frame info from source pixel data")
	}
	bpp, err := BitsPerPixel(frameInfo)
	if err != nil {
		return err
	}
	opts := c.options(parameters, bpp)

	frameCount := oldPixelData.FrameCount()
	if frameCount == 0 {
		return fmt.Errorf("source pixel data is empty (no frames)")
	}
	for frameIndex := 0; frameIndex < frameCount; frameIndex++ {
		frameData, err := oldPixelData.GetFrame(frameIndex)
		if err != nil {
			return fmt.Errorf("failed to get frame %d: %w", frameIndex, err)
		}
		if len(frameData) == 0 {
			return fmt.Errorf("frame %d pixel data is empty", frameIndex)
		}

		img, err := slic.Decode(frameData, opts...)
		if err != nil {
			return fmt.Errorf("SLIC decode failed for frame %d: %w", frameIndex, err)
		}
		if img.Width != int(frameInfo.Width) || img.Height != int(frameInfo.Height) {
			return fmt.Errorf("decoded dimensions (%dx%d) don't match expected (%dx%d)",
				img.Width, img.Height, frameInfo.Width, frameInfo.Height)
		}
		if img.BitsPerPixel != bpp {
			return fmt.Errorf("decoded depth (%d bpp) doesn't match expected (%d bpp)", img.BitsPerPixel, bpp)
		}

		if err := newPixelData.AddFrame(img.Pixels); err != nil {
			return fmt.Errorf("failed to add decoded frame %d: %w", frameIndex, err)
		}
	}
	return nil
}

// Register installs a SLIC codec for ts in the global go-dicom registry
func Register(ts *transfer.Syntax) {
	registry := codec.GetGlobalRegistry()
	registry.RegisterCodec(ts, NewCodec(ts))
}
