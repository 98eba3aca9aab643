// Command slicconv converts between PNG and SLIC and writes a demo image.
//
//	slicconv [flags] in.png out.slc
//	slicconv [flags] in.slc out.png
//	slicconv [flags] out.slc
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		Fatalf("%s %v", System, err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	// Parse may already log about the config file.
	SetupLogging(stderr, false)
	config, rest, err := Parse(args, stderr)
	if err != nil {
		return err
	}
	SetupLogging(stderr, config.Verbose)
	if config.File != "" {
		Debugf("%s using config file %s", System, config.File)
	}

	var (
		r        *raster
		slicSize int
	)
	switch {
	case len(rest) == 1:
		r = demoRaster()
		if slicSize, err = encodeFile(rest[0], r, config); err != nil {
			return err
		}
		Printf("%s wrote demo image to %s", Encoder, rest[0])
	case len(rest) == 2 && isSLIC(rest[0]):
		if r, slicSize, err = decodeFile(rest[0], config); err != nil {
			return err
		}
		if err := writePNG(rest[1], r); err != nil {
			return err
		}
		Printf("%s %s -> %s", Decoder, rest[0], rest[1])
	case len(rest) == 2:
		if r, err = readPNG(rest[0]); err != nil {
			return err
		}
		if slicSize, err = encodeFile(rest[1], r, config); err != nil {
			return err
		}
		Printf("%s %s -> %s (%d bpp)", Encoder, rest[0], rest[1], r.bpp)
	default:
		return fmt.Errorf("expected one or two file arguments, got %d", len(rest))
	}

	if config.Stats {
		stats, err := newStats(r, slicSize)
		if err != nil {
			return err
		}
		stats.Print(stdout)
	}
	return nil
}

func isSLIC(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".slc")
}
