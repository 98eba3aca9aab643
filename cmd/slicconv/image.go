package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/cocosip/go-slic/codec"
	"github.com/cocosip/go-slic/slic"
	"github.com/cocosip/go-slic/slic/stream"
)

// raster is a packed pixel buffer as the codec sees it.
type raster struct {
	width   int
	height  int
	bpp     int
	palette []byte // RGB triplets for paletted images
	gray    bool   // 16-bit samples are grayscale, not RGB565
	pixels  []byte
}

func (r *raster) stride() int {
	return r.width * r.bpp / 8
}

// fromImage packs img into the smallest SLIC format that holds it exactly.
// 16-bit gray is stored as 16 bpp grayscale; 16-bit color has no lossless
// SLIC format and is rejected.
func fromImage(img image.Image) (*raster, error) {
	b := img.Bounds()
	r := &raster{width: b.Dx(), height: b.Dy()}

	switch m := img.(type) {
	case *image.Paletted:
		r.bpp = 8
		r.pixels = make([]byte, 0, r.width*r.height)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			r.pixels = append(r.pixels, m.Pix[m.PixOffset(b.Min.X, y):m.PixOffset(b.Max.X, y)]...)
		}
		for _, c := range m.Palette {
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			r.palette = append(r.palette, n.R, n.G, n.B)
		}
		return r, nil
	case *image.Gray:
		r.bpp = 8
		r.pixels = make([]byte, 0, r.width*r.height)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			r.pixels = append(r.pixels, m.Pix[m.PixOffset(b.Min.X, y):m.PixOffset(b.Max.X, y)]...)
		}
		return r, nil
	case *image.Gray16:
		r.bpp = 16
		r.gray = true
		r.pixels = make([]byte, 0, 2*r.width*r.height)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := m.Pix[m.PixOffset(b.Min.X, y):m.PixOffset(b.Max.X, y)]
			for i := 0; i < len(row); i += 2 {
				r.pixels = append(r.pixels, row[i+1], row[i])
			}
		}
		return r, nil
	case *image.RGBA64, *image.NRGBA64:
		return nil, fmt.Errorf("%w: 16-bit color images", codec.ErrUnsupportedFormat)
	}

	r.bpp = 24
	if o, ok := img.(interface{ Opaque() bool }); !ok || !o.Opaque() {
		r.bpp = 32
	}
	n := r.bpp / 8
	r.pixels = make([]byte, r.width*r.height*n)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			r.pixels[i], r.pixels[i+1], r.pixels[i+2] = c.R, c.G, c.B
			if n == 4 {
				r.pixels[i+3] = c.A
			}
			i += n
		}
	}
	return r, nil
}

// toImage unpacks a raster. RGB565 is widened to 8 bits per channel.
func (r *raster) toImage() image.Image {
	rect := image.Rect(0, 0, r.width, r.height)
	if r.bpp == 16 && r.gray {
		m := image.NewGray16(rect)
		for i := 0; i+1 < len(r.pixels); i += 2 {
			m.Pix[i], m.Pix[i+1] = r.pixels[i+1], r.pixels[i]
		}
		return m
	}
	switch r.bpp {
	case 8:
		if len(r.palette) >= 3 {
			pal := make(color.Palette, 0, len(r.palette)/3)
			for i := 0; i+2 < len(r.palette); i += 3 {
				pal = append(pal, color.RGBA{r.palette[i], r.palette[i+1], r.palette[i+2], 0xFF})
			}
			m := image.NewPaletted(rect, pal)
			copy(m.Pix, r.pixels)
			return m
		}
		m := image.NewGray(rect)
		copy(m.Pix, r.pixels)
		return m
	case 16:
		m := image.NewRGBA(rect)
		for i := 0; i < r.width*r.height; i++ {
			v := uint16(r.pixels[2*i]) | uint16(r.pixels[2*i+1])<<8
			red, green, blue := byte(v>>11&0x1f), byte(v>>5&0x3f), byte(v&0x1f)
			m.Pix[4*i] = red<<3 | red>>2
			m.Pix[4*i+1] = green<<2 | green>>4
			m.Pix[4*i+2] = blue<<3 | blue>>2
			m.Pix[4*i+3] = 0xFF
		}
		return m
	case 24:
		m := image.NewRGBA(rect)
		for i := 0; i < r.width*r.height; i++ {
			copy(m.Pix[4*i:4*i+3], r.pixels[3*i:3*i+3])
			m.Pix[4*i+3] = 0xFF
		}
		return m
	default:
		m := image.NewNRGBA(rect)
		copy(m.Pix, r.pixels)
		return m
	}
}

func readPNG(path string) (*raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	r, err := fromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func writePNG(path string, r *raster) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, r.toImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func (c Configuration) options(r *raster) []slic.Option {
	opts := []slic.Option{slic.WithBufferSize(int(c.BufferSize))}
	switch {
	case c.Colorspace >= 0:
		opts = append(opts, slic.WithColorspace(uint8(c.Colorspace)))
	case r != nil && r.gray:
		opts = append(opts, slic.WithColorspace(slic.ColorspaceGrayscale))
	}
	if r != nil && r.palette != nil {
		opts = append(opts, slic.WithPalette(r.palette))
	}
	return opts
}

// encodeFile writes r to path as a SLIC stream, feeding the encoder
// RowsPerCall scanlines at a time. It returns the stream size.
func encodeFile(path string, r *raster, config Configuration) (int, error) {
	enc, err := slic.NewEncoder(stream.CreateFile(path), r.width, r.height, r.bpp, config.options(r)...)
	if err != nil {
		return 0, err
	}
	defer enc.Close()

	step := r.stride() * int(config.RowsPerCall)
	for off := 0; off < len(r.pixels); off += step {
		end := min(off+step, len(r.pixels))
		status, err := enc.Encode(r.pixels[off:end])
		if err != nil {
			return 0, fmt.Errorf("encode row %d: %s: %w", off/r.stride(), status, err)
		}
		Debugf("%s rows %d-%d: %s, %d bytes so far", Encoder, off/r.stride(), end/r.stride()-1, status, enc.Size())
	}
	return enc.Size(), nil
}

// decodeFile reads a SLIC stream from path, RowsPerCall scanlines at a time.
func decodeFile(path string, config Configuration) (*raster, int, error) {
	dec, err := slic.NewDecoder(stream.OpenFile(path), config.options(nil)...)
	if err != nil {
		return nil, 0, err
	}
	defer dec.Close()

	r := &raster{
		width:  dec.Width(),
		height: dec.Height(),
		bpp:    dec.BitsPerPixel(),
		gray:   dec.BitsPerPixel() == 16 && dec.Colorspace() == slic.ColorspaceGrayscale,
	}
	r.pixels = make([]byte, r.height*r.stride())
	Debugf("%s %s: %dx%d, %d bpp, colorspace %d", Decoder, path, r.width, r.height, r.bpp, dec.Colorspace())

	step := r.stride() * int(config.RowsPerCall)
	for off := 0; off < len(r.pixels); {
		end := min(off+step, len(r.pixels))
		n, status, err := dec.Decode(r.pixels[off:end])
		if err != nil {
			return nil, 0, fmt.Errorf("decode row %d: %s: %w", off/r.stride(), status, err)
		}
		off += n * r.bpp / 8
	}
	return r, dec.Size(), nil
}
