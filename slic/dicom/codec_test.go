package dicom

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
	codecHelpers "github.com/cocosip/go-slic/codec"
	"github.com/cocosip/go-slic/slic"
)

func TestCodecInterface(t *testing.T) {
	c := NewCodec(transfer.ExplicitVRLittleEndian)
	var _ codec.Codec = c

	if c.Name() != "SLIC Lossless" {
		t.Errorf("Name() = %q", c.Name())
	}
	if c.TransferSyntax() != transfer.ExplicitVRLittleEndian {
		t.Error("TransferSyntax() is not the syntax the codec was built with")
	}
	if _, ok := c.GetDefaultParameters().(*SLICParameters); !ok {
		t.Errorf("GetDefaultParameters() = %T", c.GetDefaultParameters())
	}
}

func TestRegister(t *testing.T) {
	Register(transfer.ExplicitVRLittleEndian)

	registry := codec.GetGlobalRegistry()
	retrievedCodec, exists := registry.GetCodec(transfer.ExplicitVRLittleEndian)
	if !exists {
		t.Fatal("SLIC codec not found in registry")
	}
	if retrievedCodec.Name() != slicName {
		t.Errorf("registered codec name = %q, want %q", retrievedCodec.Name(), slicName)
	}
}

func frame(width, height, bytesPerPixel, seed int) []byte {
	data := make([]byte, width*height*bytesPerPixel)
	for i := range data {
		// mostly smooth with a few sharp edges
		data[i] = byte(i/bytesPerPixel%width/4 + seed*i%7)
	}
	return data
}

func TestEncodeDecodeFrames(t *testing.T) {
	tests := []struct {
		name        string
		spp         uint16
		bits        uint16
		photometric string
	}{
		{"MONOCHROME2 8-bit", 1, 8, "MONOCHROME2"},
		{"MONOCHROME2 16-bit", 1, 16, "MONOCHROME2"},
		{"RGB", 3, 8, "RGB"},
		{"ARGB", 4, 8, "ARGB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width, height := uint16(48), uint16(32)
			frameInfo := &imagetypes.FrameInfo{
				Width:                     width,
				Height:                    height,
				BitsAllocated:             tt.bits,
				BitsStored:                tt.bits,
				HighBit:                   tt.bits - 1,
				SamplesPerPixel:           tt.spp,
				PixelRepresentation:       0,
				PlanarConfiguration:       0,
				PhotometricInterpretation: tt.photometric,
			}
			bytesPerPixel := int(tt.spp) * int(tt.bits) / 8

			src := codecHelpers.NewTestPixelData(frameInfo)
			var frames [][]byte
			for i := 0; i < 3; i++ {
				f := frame(int(width), int(height), bytesPerPixel, i+1)
				frames = append(frames, f)
				if err := src.AddFrame(f); err != nil {
					t.Fatalf("AddFrame failed: %v", err)
				}
			}

			c := NewCodec(transfer.ExplicitVRLittleEndian)
			encoded := codecHelpers.NewTestPixelData(frameInfo)
			params := NewSLICParameters().WithBufferSize(256)
			if err := c.Encode(src, encoded, params); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if encoded.FrameCount() != 3 {
				t.Fatalf("encoded %d frames, want 3", encoded.FrameCount())
			}
			first, _ := encoded.GetFrame(0)
			t.Logf("frame 0: %d -> %d bytes", len(frames[0]), len(first))
			if hdr, err := slic.ReadHeader(first); err != nil {
				t.Errorf("frame 0 header: %v", err)
			} else if tt.spp == 1 && tt.bits == 16 && hdr.Colorspace != slic.ColorspaceGrayscale {
				t.Errorf("16-bit frame colorspace = %d, want grayscale", hdr.Colorspace)
			}

			decoded := codecHelpers.NewTestPixelData(frameInfo)
			if err := c.Decode(encoded, decoded, nil); err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			for i, want := range frames {
				got, _ := decoded.GetFrame(i)
				if !bytes.Equal(got, want) {
					t.Errorf("frame %d differs after round trip", i)
				}
			}
		})
	}
}

func TestUnsupportedLayouts(t *testing.T) {
	tests := []struct {
		name string
		info imagetypes.FrameInfo
	}{
		{"12-bit packed", imagetypes.FrameInfo{Width: 4, Height: 4, SamplesPerPixel: 1, BitsAllocated: 12}},
		{"planar RGB", imagetypes.FrameInfo{Width: 4, Height: 4, SamplesPerPixel: 3, BitsAllocated: 8, PlanarConfiguration: 1}},
		{"16-bit RGB", imagetypes.FrameInfo{Width: 4, Height: 4, SamplesPerPixel: 3, BitsAllocated: 16}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := tt.info
			src := codecHelpers.NewTestPixelData(&info)
			_ = src.AddFrame(make([]byte, 64))

			err := NewCodec(transfer.ExplicitVRLittleEndian).Encode(src, codecHelpers.NewTestPixelData(&info), nil)
			if !errors.Is(err, codecHelpers.ErrUnsupportedFormat) {
				t.Errorf("Encode error = %v, want ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	info := &imagetypes.FrameInfo{Width: 8, Height: 8, SamplesPerPixel: 1, BitsAllocated: 8, BitsStored: 8, HighBit: 7}
	c := NewCodec(transfer.ExplicitVRLittleEndian)

	if err := c.Decode(nil, nil, nil); err == nil {
		t.Error("Decode(nil, nil) succeeded")
	}

	empty := codecHelpers.NewTestPixelData(info)
	if err := c.Decode(empty, codecHelpers.NewTestPixelData(info), nil); err == nil {
		t.Error("Decode with no frames succeeded")
	}

	garbage := codecHelpers.NewTestPixelData(info)
	_ = garbage.AddFrame([]byte{0x00, 0x01, 0x02, 0x03})
	if err := c.Decode(garbage, codecHelpers.NewTestPixelData(info), nil); err == nil {
		t.Error("Decode of invalid data succeeded")
	}

	// a valid stream of the wrong size
	wrong := codecHelpers.NewTestPixelData(&imagetypes.FrameInfo{Width: 4, Height: 4, SamplesPerPixel: 1, BitsAllocated: 8})
	_ = wrong.AddFrame(make([]byte, 16))
	encoded := codecHelpers.NewTestPixelData(info)
	if err := c.Encode(wrong, encoded, nil); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if err := c.Decode(encoded, codecHelpers.NewTestPixelData(info), nil); err == nil {
		t.Error("Decode accepted a frame whose size disagrees with the frame info")
	}
}

func TestParameters(t *testing.T) {
	p := NewSLICParameters()
	p.SetParameter("bufferSize", 64)
	p.SetParameter("colorspace", 1)
	p.SetParameter("custom", "value")
	if p.GetParameter("bufferSize") != 64 || p.GetParameter("colorspace") != 1 || p.GetParameter("custom") != "value" {
		t.Errorf("parameters not stored: %+v", p)
	}

	p.WithBufferSize(-5).WithColorspace(9)
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if p.BufferSize <= 0 || p.Colorspace != -1 {
		t.Errorf("Validate did not reset out-of-range values: %+v", p)
	}
}
