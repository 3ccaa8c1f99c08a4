package world

import "errors"

// ErrChangesFull is returned by ChangeIndex.Set when the index is at
// capacity and the change is a new coordinate rather than an update to
// an existing one (§7 "Resource: block-change index full").
var ErrChangesFull = errors.New("world: block-change index full")

// BlockChange is one entry of the block-change overlay (§4.5). Block ==
// SentinelBlock marks a tombstone; tombstones never appear in a
// compacted index.
type BlockChange struct {
	X, Z  int32
	Y     uint8
	Block Block
}

func compareCoords(x1 int32, y1 uint8, z1 int32, x2 int32, y2 uint8, z2 int32) int {
	if x1 != x2 {
		if x1 < x2 {
			return -1
		}
		return 1
	}
	if z1 != z2 {
		if z1 < z2 {
			return -1
		}
		return 1
	}
	if y1 != y2 {
		if y1 < y2 {
			return -1
		}
		return 1
	}
	return 0
}

// ChangeIndex is the sorted block-change overlay from §4.5: a capacity-
// bounded array kept in (x, z, y) order, searched by binary search.
// Player edits stay here for the life of the World; persistence writes
// the whole index out without removing entries.
type ChangeIndex struct {
	entries  []BlockChange
	capacity int
}

// NewChangeIndex returns an empty index bounded to capacity entries
// (the configured MAX_BLOCK_CHANGES).
func NewChangeIndex(capacity int) *ChangeIndex {
	return &ChangeIndex{entries: make([]BlockChange, 0, capacity), capacity: capacity}
}

// search returns the index of the entry matching (x, y, z) and true, or
// the insertion position that keeps the array sorted and false.
func (c *ChangeIndex) search(x int32, y uint8, z int32) (int, bool) {
	lo, hi := 0, len(c.entries)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		cmp := compareCoords(x, y, z, c.entries[mid].X, c.entries[mid].Y, c.entries[mid].Z)
		switch {
		case cmp == 0:
			return mid, true
		case cmp < 0:
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}
	return lo, false
}

// Lookup returns the overlay block at (x, y, z) and whether one exists.
func (c *ChangeIndex) Lookup(x int32, y uint8, z int32) (Block, bool) {
	idx, found := c.search(x, y, z)
	if !found {
		return SentinelBlock, false
	}
	return c.entries[idx].Block, true
}

// Set records a block change at (x, y, z). Setting block to
// SentinelBlock deletes any existing entry (a no-op if none exists).
// Inserting a genuinely new coordinate past capacity returns
// ErrChangesFull; updating an existing coordinate always succeeds.
func (c *ChangeIndex) Set(x int32, y uint8, z int32, block Block) error {
	idx, found := c.search(x, y, z)
	if found {
		if block == SentinelBlock {
			c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
			return nil
		}
		c.entries[idx].Block = block
		return nil
	}

	if block == SentinelBlock {
		return nil
	}
	if len(c.entries) >= c.capacity {
		return ErrChangesFull
	}

	c.entries = append(c.entries, BlockChange{})
	copy(c.entries[idx+1:], c.entries[idx:])
	c.entries[idx] = BlockChange{X: x, Z: z, Y: y, Block: block}
	return nil
}

// Len reports the number of live entries.
func (c *ChangeIndex) Len() int {
	return len(c.entries)
}

// RangeOverlaps calls fn for every change whose coordinate falls within
// the half-open box [minX,maxX) x [minY,maxY) x [minZ,maxZ). Since maxY
// is a uint8, no box it describes contains y = 255.
func (c *ChangeIndex) RangeOverlaps(minX, maxX int32, minY, maxY uint8, minZ, maxZ int32, fn func(BlockChange)) {
	for _, ch := range c.entries {
		if ch.X < minX || ch.X >= maxX {
			continue
		}
		if ch.Z < minZ || ch.Z >= maxZ {
			continue
		}
		if ch.Y < minY || ch.Y >= maxY {
			continue
		}
		fn(ch)
	}
}

// All invokes fn for every live entry, in sorted order. Used by
// persistence, which needs the whole index rather than one section's
// worth.
func (c *ChangeIndex) All(fn func(BlockChange)) {
	for _, ch := range c.entries {
		fn(ch)
	}
}

// Clear drops every entry, used when the world seed changes.
func (c *ChangeIndex) Clear() {
	c.entries = c.entries[:0]
}
