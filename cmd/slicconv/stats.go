package main

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Stats compares a SLIC stream against the raw pixels and a general
// purpose compressor.
type Stats struct {
	Raw  int
	SLIC int
	Zstd int
}

// Ratio is raw size over SLIC size.
func (s Stats) Ratio() float64 {
	if s.SLIC == 0 {
		return 0
	}
	return float64(s.Raw) / float64(s.SLIC)
}

func newStats(r *raster, slicSize int) (Stats, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return Stats{}, err
	}
	defer enc.Close()

	return Stats{
		Raw:  len(r.pixels),
		SLIC: slicSize,
		Zstd: len(enc.EncodeAll(r.pixels, nil)),
	}, nil
}

func (s Stats) Print(w io.Writer) {
	fmt.Fprintf(w, "raw:  %8d bytes\n", s.Raw)
	fmt.Fprintf(w, "slic: %8d bytes (%.2f:1)\n", s.SLIC, s.Ratio())
	fmt.Fprintf(w, "zstd: %8d bytes\n", s.Zstd)
}
