package inventory

import "github.com/tannerfokkens-maker/MacintoshCraft/world"

// Item IDs referenced by this core are opaque indices into the
// external item registry, the same way block IDs are opaque indices
// into the block catalog (§6 "Registry data"); a full item catalog is
// out of scope (§1), so only the handful of items the crafting
// matcher and block placement need are named here.
const (
	ItemOakPlanks     int32 = 1
	ItemStick         int32 = 2
	ItemCraftingTable int32 = 3
)

// placeableBlocks maps an item ID to the block it places against a
// clicked face (§4.8 "Block break/place handlers"). Items with no
// entry here are not placeable.
var placeableBlocks = map[int32]world.Block{
	ItemCraftingTable: world.BlockCraftingTable,
}

// BlockForItem returns the block that placing item produces, if any.
func BlockForItem(item int32) (world.Block, bool) {
	b, ok := placeableBlocks[item]
	return b, ok
}
