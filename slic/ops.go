package slic

// Op tags for Indexed8 and RGB565.
const (
	opRun8     = 0x00 // 00xxxxxx short run, xxxxxx = n-1 up to run8Max-1
	opRun8Word = 0x3E // 00111110 + 2 bytes n-1
	opRun8Byte = 0x3F // 00111111 + 1 byte n-1
	opBadRun8  = 0x40 // 01xxxxxx + (xxxxxx+1) raw pixels
	opDiff8    = 0x80 // 10xxxxxx
	opIndex8   = 0xC0 // 11000iii

	run8Max     = 62
	index8Slots = 8
	badRunMax   = 64
)

// Op tags for RGB24 and RGBA32.
const (
	opIndex   = 0x00 // 00iiiiii
	opDiff    = 0x40 // 01rrggbb
	opLuma    = 0x80 // 10gggggg rrrrbbbb
	opRun     = 0xC0 // 11xxxxxx short run, xxxxxx = n-1 up to runMax-1
	opRunByte = 0xFC // 11111100 + 1 byte n-1
	opRunWord = 0xFD // 11111101 + 2 bytes n-1
	opRGB     = 0xFE
	opRGBA    = 0xFF

	runMax = 60
)

const (
	opMask      = 0xC0
	runByteMax  = 256
	runWordMax  = 65536
	payloadMask = 0x3F
)

// opKind is the decoded class of a tag byte.
type opKind uint8

const (
	kindInvalid opKind = iota
	kindRun
	kindRunByte
	kindRunWord
	kindBadRun
	kindIndex
	kindDiff
	kindLuma
	kindRGB
	kindRGBA
)

// classify maps a tag byte to its op class for format f.
func (f Format) classify(tag byte) opKind {
	if !f.literal() {
		switch tag & opMask {
		case opRun8:
			switch tag {
			case opRun8Word:
				return kindRunWord
			case opRun8Byte:
				return kindRunByte
			}
			return kindRun
		case opBadRun8:
			return kindBadRun
		case opDiff8:
			return kindDiff
		default:
			if tag&payloadMask < index8Slots {
				return kindIndex
			}
			return kindInvalid
		}
	}

	switch tag {
	case opRunByte:
		return kindRunByte
	case opRunWord:
		return kindRunWord
	case opRGB:
		return kindRGB
	case opRGBA:
		if f == RGBA32 {
			return kindRGBA
		}
		return kindInvalid
	}
	switch tag & opMask {
	case opIndex:
		return kindIndex
	case opDiff:
		return kindDiff
	case opLuma:
		return kindLuma
	default:
		return kindRun
	}
}

// shortRunMax is the longest run a single tag byte can carry.
func (f Format) shortRunMax() int {
	if f.literal() {
		return runMax
	}
	return run8Max
}

// runChunk appends the chunk for a run of n pixels, n in [1, runWordMax].
func (f Format) runChunk(dst []byte, n int) []byte {
	switch {
	case n <= f.shortRunMax():
		if f.literal() {
			return append(dst, opRun|byte(n-1))
		}
		return append(dst, opRun8|byte(n-1))
	case n <= runByteMax:
		tag := byte(opRun8Byte)
		if f.literal() {
			tag = opRunByte
		}
		return append(dst, tag, byte(n-1))
	default:
		tag := byte(opRun8Word)
		if f.literal() {
			tag = opRunWord
		}
		return append(dst, tag, byte(n-1), byte((n-1)>>8))
	}
}

// diffChunk returns the one-byte diff tag for v against prev, if the
// per-channel deltas are small enough.
func (f Format) diffChunk(v, prev uint32) (byte, bool) {
	cur, old := f.split(v), f.split(prev)
	rm, gm, bm := f.channelMasks()

	if f == Indexed8 {
		d := wrapDelta(cur.r, old.r, rm)
		if d < -32 || d > 31 {
			return 0, false
		}
		return opDiff8 | byte(d+32), true
	}
	if f == RGBA32 && cur.a != old.a {
		return 0, false
	}

	dr := wrapDelta(cur.r, old.r, rm)
	dg := wrapDelta(cur.g, old.g, gm)
	db := wrapDelta(cur.b, old.b, bm)
	if !small(dr) || !small(dg) || !small(db) {
		return 0, false
	}
	tag := byte(opDiff)
	if !f.literal() {
		tag = opDiff8
	}
	return tag | byte(dr+2)<<4 | byte(dg+2)<<2 | byte(db+2), true
}

func small(d int) bool {
	return d >= -2 && d <= 1
}

// applyDiff reconstructs the pixel a diff tag describes.
func (f Format) applyDiff(prev uint32, tag byte) uint32 {
	c := f.split(prev)
	if f == Indexed8 {
		c.r += int(tag&payloadMask) - 32
		return f.join(c)
	}
	c.r += int(tag>>4&3) - 2
	c.g += int(tag>>2&3) - 2
	c.b += int(tag&3) - 2
	return f.join(c)
}

// lumaChunk returns the two-byte luma chunk for v against prev, if it fits.
// Only the RGB op set has luma.
func (f Format) lumaChunk(v, prev uint32) ([2]byte, bool) {
	var out [2]byte
	cur, old := f.split(v), f.split(prev)
	if cur.a != old.a {
		return out, false
	}
	dr := wrapDelta(cur.r, old.r, 0xff)
	dg := wrapDelta(cur.g, old.g, 0xff)
	db := wrapDelta(cur.b, old.b, 0xff)
	drg, dbg := dr-dg, db-dg
	if dg < -32 || dg > 31 || drg < -8 || drg > 7 || dbg < -8 || dbg > 7 {
		return out, false
	}
	out[0] = opLuma | byte(dg+32)
	out[1] = byte(drg+8)<<4 | byte(dbg+8)
	return out, true
}

// applyLuma reconstructs the pixel a luma chunk describes: green first,
// then red and blue relative to it.
func (f Format) applyLuma(prev uint32, tag, next byte) uint32 {
	c := f.split(prev)
	dg := int(tag&payloadMask) - 32
	c.g += dg
	c.r += dg + int(next>>4) - 8
	c.b += dg + int(next&0x0f) - 8
	return f.join(c)
}

// literalChunk appends the raw-pixel chunk for v. Alpha is carried only
// when it changes.
func (f Format) literalChunk(dst []byte, v, prev uint32) []byte {
	c := f.split(v)
	if f == RGBA32 && c.a != f.split(prev).a {
		return append(dst, opRGBA, byte(c.r), byte(c.g), byte(c.b), byte(c.a))
	}
	return append(dst, opRGB, byte(c.r), byte(c.g), byte(c.b))
}
