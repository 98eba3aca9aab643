package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gc "gopkg.in/check.v1"

	"github.com/cocosip/go-slic/slic"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { gc.TestingT(t) }

type ConfigSuite struct{}

var _ = gc.Suite(&ConfigSuite{})

func writeFile(c *gc.C, dir, name, content string) string {
	path := filepath.Join(dir, name)
	c.Assert(os.WriteFile(path, []byte(content), 0o644), gc.IsNil)
	return path
}

func (s *ConfigSuite) TestDefaults(c *gc.C) {
	config, rest, err := Parse([]string{"a.png", "b.slc"}, io.Discard)
	c.Assert(err, gc.IsNil)
	c.Check(rest, gc.DeepEquals, []string{"a.png", "b.slc"})
	c.Check(config.BufferSize, gc.Equals, int64(1024))
	c.Check(config.Colorspace, gc.Equals, int64(-1))
	c.Check(config.RowsPerCall, gc.Equals, int64(1))
	c.Check(config.Stats, gc.Equals, false)
	c.Check(config.Verbose, gc.Equals, false)
}

func (s *ConfigSuite) TestPrecedence(c *gc.C) {
	file := writeFile(c, c.MkDir(), "slicconv.toml", `
buffer_size = 128
colorspace = 1
rows_per_call = 4
stats = true
`)

	for i, t := range []struct {
		should     string
		args       []string
		bufferSize int64
		colorspace int64
		rows       int64
		stats      bool
	}{{
		should:     "take values from the file",
		args:       []string{"-config", file},
		bufferSize: 128, colorspace: 1, rows: 4, stats: true,
	}, {
		should:     "let flags override the file",
		args:       []string{"-config", file, "-buffer-size", "256", "-stats=false"},
		bufferSize: 256, colorspace: 1, rows: 4, stats: false,
	}, {
		should:     "apply flags without a file",
		args:       []string{"-rows", "8", "-colorspace", "0"},
		bufferSize: 1024, colorspace: 0, rows: 8, stats: false,
	}} {
		c.Logf("test %d: should %s", i, t.should)
		config, _, err := Parse(t.args, io.Discard)
		c.Assert(err, gc.IsNil)
		c.Check(config.BufferSize, gc.Equals, t.bufferSize)
		c.Check(config.Colorspace, gc.Equals, t.colorspace)
		c.Check(config.RowsPerCall, gc.Equals, t.rows)
		c.Check(config.Stats, gc.Equals, t.stats)
	}
}

func (s *ConfigSuite) TestMissingFileIsIgnored(c *gc.C) {
	config, _, err := Parse([]string{"-config", filepath.Join(c.MkDir(), "nope.toml")}, io.Discard)
	c.Assert(err, gc.IsNil)
	c.Check(config.BufferSize, gc.Equals, int64(1024))
}

func (s *ConfigSuite) TestInvalidConfig(c *gc.C) {
	dir := c.MkDir()
	for i, t := range []struct {
		should string
		args   []string
	}{{
		should: "reject malformed TOML",
		args:   []string{"-config", writeFile(c, dir, "bad.toml", "buffer_size = [")},
	}, {
		should: "reject an out of range colorspace",
		args:   []string{"-colorspace", "7"},
	}, {
		should: "reject zero rows per call",
		args:   []string{"-rows", "0"},
	}, {
		should: "reject unknown flags",
		args:   []string{"-frobnicate"},
	}} {
		c.Logf("test %d: should %s", i, t.should)
		_, _, err := Parse(t.args, io.Discard)
		c.Check(err, gc.NotNil)
	}
}

type ConvertSuite struct {
	dir string
}

var _ = gc.Suite(&ConvertSuite{})

func (s *ConvertSuite) SetUpTest(c *gc.C) {
	s.dir = c.MkDir()
}

func (s *ConvertSuite) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *ConvertSuite) savePNG(c *gc.C, name string, img image.Image) string {
	f, err := os.Create(s.path(name))
	c.Assert(err, gc.IsNil)
	c.Assert(png.Encode(f, img), gc.IsNil)
	c.Assert(f.Close(), gc.IsNil)
	return s.path(name)
}

func (s *ConvertSuite) packed(c *gc.C, img image.Image) []byte {
	r, err := fromImage(img)
	c.Assert(err, gc.IsNil)
	return r.pixels
}

func (s *ConvertSuite) TestDemo(c *gc.C) {
	var stdout, stderr bytes.Buffer
	out := s.path("demo.slc")
	c.Assert(run([]string{"-stats", out}, &stdout, &stderr), gc.IsNil)
	c.Check(stdout.String(), gc.Matches, "(?s)raw: +32768 bytes.*zstd:.*")

	data, err := os.ReadFile(out)
	c.Assert(err, gc.IsNil)
	img, err := slic.Decode(data)
	c.Assert(err, gc.IsNil)
	c.Check(img.BitsPerPixel, gc.Equals, 16)
	c.Check(img.Pixels, gc.DeepEquals, demoRaster().pixels)
	c.Check(len(data) < 32768/8, gc.Equals, true)
}

func (s *ConvertSuite) TestRGBRoundTrip(c *gc.C) {
	src := image.NewRGBA(image.Rect(0, 0, 37, 23))
	for y := 0; y < 23; y++ {
		for x := 0; x < 37; x++ {
			src.Set(x, y, color.RGBA{byte(x * 6), byte(y * 11), byte(x ^ y), 0xFF})
		}
	}
	in := s.savePNG(c, "in.png", src)

	c.Assert(run([]string{"-rows", "3", in, s.path("mid.slc")}, io.Discard, io.Discard), gc.IsNil)
	c.Assert(run([]string{"-v", "-rows", "5", s.path("mid.slc"), s.path("out.png")}, io.Discard, io.Discard), gc.IsNil)

	back, err := readPNG(s.path("out.png"))
	c.Assert(err, gc.IsNil)
	c.Check(back.bpp, gc.Equals, 24)
	c.Check(back.pixels, gc.DeepEquals, s.packed(c, src))
}

func (s *ConvertSuite) TestAlphaAndGray(c *gc.C) {
	alpha := image.NewNRGBA(image.Rect(0, 0, 9, 9))
	gray := image.NewGray(image.Rect(0, 0, 9, 9))
	for i := range alpha.Pix {
		alpha.Pix[i] = byte(i * 13)
	}
	for i := range gray.Pix {
		gray.Pix[i] = byte(i * 3)
	}

	for i, t := range []struct {
		name string
		img  image.Image
		bpp  int
	}{
		{"alpha.png", alpha, 32},
		{"gray.png", gray, 8},
	} {
		c.Logf("test %d: %s", i, t.name)
		in := s.savePNG(c, t.name, t.img)
		mid := s.path(t.name + ".slc")
		c.Assert(run([]string{in, mid}, io.Discard, io.Discard), gc.IsNil)

		r, _, err := decodeFile(mid, Configuration{RowsPerCall: 2})
		c.Assert(err, gc.IsNil)
		c.Check(r.bpp, gc.Equals, t.bpp)
		c.Check(r.pixels, gc.DeepEquals, s.packed(c, t.img))
	}
}

func (s *ConvertSuite) TestSixteenBit(c *gc.C) {
	gray := image.NewGray16(image.Rect(0, 0, 13, 7))
	for y := 0; y < 7; y++ {
		for x := 0; x < 13; x++ {
			gray.SetGray16(x, y, color.Gray16{uint16(x*4099 + y*257)})
		}
	}
	in := s.savePNG(c, "gray16.png", gray)
	mid := s.path("gray16.slc")
	c.Assert(run([]string{in, mid}, io.Discard, io.Discard), gc.IsNil)

	data, err := os.ReadFile(mid)
	c.Assert(err, gc.IsNil)
	hdr, err := slic.ReadHeader(data)
	c.Assert(err, gc.IsNil)
	c.Check(int(hdr.BitsPerPixel), gc.Equals, 16)
	c.Check(hdr.Colorspace, gc.Equals, slic.ColorspaceGrayscale)

	out := s.path("gray16.png.out")
	c.Assert(run([]string{mid, out}, io.Discard, io.Discard), gc.IsNil)
	f, err := os.Open(out)
	c.Assert(err, gc.IsNil)
	defer f.Close()
	img, err := png.Decode(f)
	c.Assert(err, gc.IsNil)
	back, ok := img.(*image.Gray16)
	c.Assert(ok, gc.Equals, true, gc.Commentf("decoded as %T", img))
	c.Check(back.Pix, gc.DeepEquals, gray.Pix)

	deep := image.NewNRGBA64(image.Rect(0, 0, 4, 4))
	for i := range deep.Pix {
		deep.Pix[i] = byte(i * 29)
	}
	in = s.savePNG(c, "deep.png", deep)
	c.Check(run([]string{in, s.path("deep.slc")}, io.Discard, io.Discard), gc.ErrorMatches, ".*16-bit color images")
	_, err = os.Stat(s.path("deep.slc"))
	c.Check(os.IsNotExist(err), gc.Equals, true)
}

func (s *ConvertSuite) TestMissingConfigLogFormat(c *gc.C) {
	var stderr bytes.Buffer
	missing := s.path("absent.toml")
	c.Assert(run([]string{"-config", missing, s.path("demo.slc")}, io.Discard, &stderr), gc.IsNil)

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	c.Assert(len(lines) >= 2, gc.Equals, true, gc.Commentf("stderr: %q", stderr.String()))
	c.Check(lines[0], gc.Equals, "[system] Config file '"+missing+"' does not exist and will not be used.")
	for _, line := range lines {
		c.Check(line, gc.Matches, `\[(system|encode|decode)\] .*`)
	}
}

func (s *ConvertSuite) TestBadArguments(c *gc.C) {
	c.Check(run(nil, io.Discard, io.Discard), gc.ErrorMatches, "expected one or two file arguments, got 0")
	c.Check(run([]string{s.path("missing.slc"), s.path("out.png")}, io.Discard, io.Discard), gc.NotNil)
}
