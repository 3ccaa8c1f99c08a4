package world

import "github.com/segmentio/fasthash/fnv1a"

// MaxProbe bounds linear probing in the chunk-section cache (§4.4). Any
// valid entry is reachable within this many steps of its home slot;
// insertion and eviction must preserve that invariant.
const MaxProbe = 32

// cacheSlot is one entry of the open-addressed cache table.
type cacheSlot struct {
	cx, cy, cz int32
	biome      Biome
	valid      bool
	lru        uint64
	data       Section
}

// Cache is the open-addressed, bounded-linear-probe chunk-section cache
// from §4.4. Lookup and insertion both probe at most MaxProbe slots from
// the hashed home position; an entry not found within that window is not
// cached. Lookup skips empty slots inside the window rather than stopping
// at them, since Invalidate can leave a hole in front of a live entry.
type Cache struct {
	slots []cacheSlot
	clock uint64
}

// NewCache returns an empty cache with room for capacity sections (the
// configured CHUNK_CACHE_SIZE).
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{slots: make([]cacheSlot, capacity)}
}

func (c *Cache) home(cx, cy, cz int32) int {
	key := uint64(uint32(cx))<<32 | uint64(uint32(cz))<<16 | uint64(uint16(cy))
	return int(fnv1a.HashUint64(key) % uint64(len(c.slots)))
}

// Get returns the cached section and biome at (cx, cy, cz), if present.
func (c *Cache) Get(cx, cy, cz int32) (Section, Biome, bool) {
	home := c.home(cx, cy, cz)
	n := len(c.slots)
	for i := 0; i < MaxProbe && i < n; i++ {
		idx := (home + i) % n
		slot := &c.slots[idx]
		if !slot.valid {
			continue
		}
		if slot.cx == cx && slot.cy == cy && slot.cz == cz {
			c.clock++
			slot.lru = c.clock
			return slot.data, slot.biome, true
		}
	}
	return Section{}, 0, false
}

// Put installs sec under (cx, cy, cz), evicting the oldest entry in the
// probe window if no empty slot is found within it.
func (c *Cache) Put(cx, cy, cz int32, biome Biome, sec Section) {
	home := c.home(cx, cy, cz)
	n := len(c.slots)
	limit := MaxProbe
	if limit > n {
		limit = n
	}

	target := -1
	for i := 0; i < limit; i++ {
		idx := (home + i) % n
		if !c.slots[idx].valid {
			target = idx
			break
		}
	}

	if target < 0 {
		target = home % n
		var oldestAge uint64
		for i := 0; i < limit; i++ {
			idx := (home + i) % n
			age := c.clock - c.slots[idx].lru
			if age > oldestAge {
				oldestAge = age
				target = idx
			}
		}
	}

	c.clock++
	c.slots[target] = cacheSlot{cx: cx, cy: cy, cz: cz, biome: biome, valid: true, lru: c.clock, data: sec}
}

// Invalidate drops the cached entry for the section containing block
// (x, y, z), if one is present. A no-op otherwise.
func (c *Cache) Invalidate(x int32, y uint8, z int32) {
	cx := floorDiv(x, SectionSize)
	cy := int32(y) / SectionSize
	cz := floorDiv(z, SectionSize)

	home := c.home(cx, cy, cz)
	n := len(c.slots)
	limit := MaxProbe
	if limit > n {
		limit = n
	}
	for i := 0; i < limit; i++ {
		idx := (home + i) % n
		slot := &c.slots[idx]
		if slot.valid && slot.cx == cx && slot.cy == cy && slot.cz == cz {
			slot.valid = false
			return
		}
	}
}

// Clear drops every cached entry; called when the world seed changes.
func (c *Cache) Clear() {
	for i := range c.slots {
		c.slots[i].valid = false
	}
}

// BuildSection is the composite buildSection operation (§4.4): on a
// cache hit, the cached bytes are copied out and any overlapping block
// changes are reapplied on top; on a miss, the section is generated
// fresh, the changes are applied once, and the result is installed in
// the cache before being returned. Never-baked blocks (§4.4 "Re-apply
// policy") are skipped both on hit and on miss, since they are always
// sent to clients as standalone block updates rather than baked into
// section bytes.
func (c *Cache) BuildSection(cx, cy, cz int32, gen *Generator, changes *ChangeIndex, chestsEnabled bool) (Section, Biome) {
	baseX, baseY, baseZ := cx*SectionSize, cy*SectionSize, cz*SectionSize

	apply := func(sec *Section) {
		// Bounds are checked here rather than through RangeOverlaps: the
		// top section's exclusive upper y bound (256) does not fit a uint8.
		changes.All(func(ch BlockChange) {
			if ch.X < baseX || ch.X >= baseX+SectionSize || ch.Z < baseZ || ch.Z >= baseZ+SectionSize {
				return
			}
			if int32(ch.Y) < baseY || int32(ch.Y) >= baseY+SectionSize {
				return
			}
			if IsNeverBaked(ch.Block, chestsEnabled) {
				return
			}
			lx := int(ch.X - baseX)
			ly := int(int32(ch.Y) - baseY)
			lz := int(ch.Z - baseZ)
			sec.Set(lx, ly, lz, ch.Block)
		})
	}

	if sec, biome, ok := c.Get(cx, cy, cz); ok {
		apply(&sec)
		return sec, biome
	}

	sec, biome := gen.BuildFresh(cx, cy, cz)
	apply(&sec)
	c.Put(cx, cy, cz, biome, sec)
	return sec, biome
}
