package session

import (
	"github.com/tannerfokkens-maker/MacintoshCraft/inventory"
)

// containerWindowID is the fixed window ID used for whichever
// chest/crafting-table window a session has open; one window open at
// a time is all a session ever needs (§4.8 "open/close container").
const containerWindowID = 1

type containerKind uint8

const (
	containerNone containerKind = iota
	containerChest
	containerCraftingTable
)

// openContainer is the chest or crafting-table window a session
// currently has open, if any. Closing it (or opening a different one)
// resets this to its zero value.
type openContainer struct {
	kind containerKind
	x, z int32
	y    uint8
	grid [9]inventory.Stack // 3x3 crafting-table matrix
}
