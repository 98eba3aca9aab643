package main

const demoSize = 128

// RGB565 colors used by the demo image.
const (
	demoWhite = 0xFFFF
	demoBlue  = 0x001F
	demoGreen = 0x07E0
)

// demoRaster draws the 128x128 RGB565 test card: a white border around a
// blue field crossed by two green diagonals.
func demoRaster() *raster {
	r := &raster{width: demoSize, height: demoSize, bpp: 16}
	r.pixels = make([]byte, demoSize*demoSize*2)
	for y := 0; y < demoSize; y++ {
		for x := 0; x < demoSize; x++ {
			var c uint16 = demoBlue
			switch {
			case x == 0 || y == 0 || x == demoSize-1 || y == demoSize-1:
				c = demoWhite
			case x == y || x == demoSize-1-y:
				c = demoGreen
			}
			i := (y*demoSize + x) * 2
			r.pixels[i] = byte(c)
			r.pixels[i+1] = byte(c >> 8)
		}
	}
	return r
}
