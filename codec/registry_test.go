package codec_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cocosip/go-slic/codec"
	_ "github.com/cocosip/go-slic/slic"
)

func TestCodecRegistry(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantFound bool
		wantID    string
		wantName  string
	}{
		{
			name:      "Get SLIC by ID",
			key:       "SLIC",
			wantFound: true,
			wantID:    "SLIC",
			wantName:  "slic",
		},
		{
			name:      "Get SLIC by name",
			key:       "slic",
			wantFound: true,
			wantID:    "SLIC",
			wantName:  "slic",
		},
		{
			name:      "Get non-existent codec",
			key:       "non-existent",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := codec.Get(tt.key)

			if tt.wantFound {
				if err != nil {
					t.Errorf("Get(%q) unexpected error: %v", tt.key, err)
					return
				}
				if c == nil {
					t.Errorf("Get(%q) returned nil codec", tt.key)
					return
				}
				if c.ID() != tt.wantID {
					t.Errorf("Get(%q).ID() = %q, want %q", tt.key, c.ID(), tt.wantID)
				}
				if c.Name() != tt.wantName {
					t.Errorf("Get(%q).Name() = %q, want %q", tt.key, c.Name(), tt.wantName)
				}
			} else if !errors.Is(err, codec.ErrCodecNotFound) {
				t.Errorf("Get(%q) error = %v, want %v", tt.key, err, codec.ErrCodecNotFound)
			}
		})
	}
}

func TestListCodecs(t *testing.T) {
	codecs := codec.List()

	found := false
	for _, c := range codecs {
		if c.ID() == "SLIC" {
			found = true
		}
	}
	if !found {
		t.Error("List() did not include the SLIC codec")
	}
}

type fakeCodec struct{ name, id string }

func (f *fakeCodec) Encode(codec.EncodeParams) ([]byte, error)   { return nil, nil }
func (f *fakeCodec) Decode([]byte) (*codec.DecodeResult, error) { return nil, nil }
func (f *fakeCodec) ID() string                                 { return f.id }
func (f *fakeCodec) Name() string                               { return f.name }

func TestRegistryIsolation(t *testing.T) {
	r := codec.NewRegistry()
	if _, err := r.Get("slic"); !errors.Is(err, codec.ErrCodecNotFound) {
		t.Fatalf("new registry Get(slic) error = %v, want ErrCodecNotFound", err)
	}

	a := &fakeCodec{name: "a", id: "A"}
	r.Register(a)
	r.Register(&fakeCodec{name: "b", id: "B"})

	if got := len(r.List()); got != 2 {
		t.Errorf("List() returned %d codecs, want 2", got)
	}
	if c, err := r.Get("A"); err != nil || c != a {
		t.Errorf("Get(A) = %v, %v", c, err)
	}
}

func TestSLICCodecEncodeDecode(t *testing.T) {
	c, err := codec.Get("slic")
	if err != nil {
		t.Fatalf("Failed to get SLIC codec: %v", err)
	}

	tests := []struct {
		name   string
		width  int
		height int
		bpp    int
	}{
		{"gray 64x64", 64, 64, 8},
		{"rgb565 40x30", 40, 30, 16},
		{"rgb 32x32", 32, 32, 24},
		{"rgba 17x9", 17, 9, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pixelData := make([]byte, tt.width*tt.height*tt.bpp/8)
			for i := range pixelData {
				pixelData[i] = byte((i * 7) % 256)
			}

			params := codec.EncodeParams{
				PixelData:    pixelData,
				Width:        tt.width,
				Height:       tt.height,
				BitsPerPixel: tt.bpp,
				Options:      &codec.BaseOptions{BufferSize: 64},
			}

			compressed, err := c.Encode(params)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			t.Logf("Compressed size: %d bytes (raw %d)", len(compressed), len(pixelData))

			result, err := c.Decode(compressed)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if result.Width != tt.width || result.Height != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", result.Width, result.Height, tt.width, tt.height)
			}
			if result.BitsPerPixel != tt.bpp {
				t.Errorf("BitsPerPixel = %d, want %d", result.BitsPerPixel, tt.bpp)
			}
			if !bytes.Equal(result.PixelData, pixelData) {
				t.Error("decoded pixels differ from the input")
			}
		})
	}
}

func TestBaseOptionsValidate(t *testing.T) {
	if err := (&codec.BaseOptions{}).Validate(); err != nil {
		t.Errorf("zero BaseOptions: %v", err)
	}
	if err := (&codec.BaseOptions{BufferSize: -1}).Validate(); !errors.Is(err, codec.ErrInvalidParameter) {
		t.Errorf("negative buffer size error = %v, want ErrInvalidParameter", err)
	}
}
