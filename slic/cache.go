package slic

const cacheSize = 64

// cache is the history table shared in lockstep by encoder and decoder.
// A slot is readable only after it has been written.
type cache struct {
	format Format
	slots  [cacheSize]uint32
	valid  uint64
}

func newCache(f Format) cache {
	return cache{format: f}
}

func (c *cache) reset() {
	c.valid = 0
}

// lookup reports whether v sits in its hash slot, and which slot that is.
func (c *cache) lookup(v uint32) (int, bool) {
	slot := c.format.hash(v)
	return slot, c.valid&(1<<slot) != 0 && c.slots[slot] == v
}

// update stores v in its hash slot, evicting whatever was there.
func (c *cache) update(v uint32) {
	slot := c.format.hash(v)
	c.slots[slot] = v
	c.valid |= 1 << slot
}

// at returns the pixel in slot, if the slot has been written.
func (c *cache) at(slot int) (uint32, bool) {
	if slot < 0 || slot >= cacheSize || c.valid&(1<<slot) == 0 {
		return 0, false
	}
	return c.slots[slot], true
}
