// Package world implements the deterministic terrain generator, the
// chunk-section cache, the block-change overlay, and the world state that
// ties them together (§3, §4.3-4.5, §4.8).
package world

// Block is an 8-bit palette index (§3). 0xFF is the sentinel "no entry"
// value and must never be stored as a real block.
type Block = uint8

// SentinelBlock marks "no entry" in the block-change index and an absent
// chunk feature; it must never be a valid palette entry.
const SentinelBlock Block = 0xFF

// The block palette. Values are stable for the lifetime of a running
// server and are persisted verbatim (§6), so existing entries are never
// renumbered.
const (
	BlockAir Block = iota
	BlockStone
	BlockWater
	BlockLava
	BlockBedrock

	BlockDirt
	BlockGrass
	BlockSand
	BlockSandstone
	BlockMud
	BlockMossCarpet
	BlockLilyPad

	BlockOakLog
	BlockOakLeaves
	BlockCactus
	BlockDeadBush
	BlockShortGrass
	BlockIce
	BlockSnow
	BlockSnowyGrass

	BlockCoalOre
	BlockIronOre
	BlockCopperOre
	BlockRedstoneOre
	BlockGoldOre
	BlockDiamondOre

	BlockChest
	BlockTorch
	BlockDiamondBlock
	BlockCraftingTable
)

// IsNeverBaked reports whether b must never be written into cached section
// bytes: torches and (when chests are enabled) chests keep entity-like
// behavior and are always sent as separate block-update packets (§4.4
// "Re-apply policy").
func IsNeverBaked(b Block, chestsEnabled bool) bool {
	if b == BlockTorch {
		return true
	}
	if b == BlockChest && chestsEnabled {
		return true
	}
	return false
}
