// Package inventory implements the player inventory, hotbar selection,
// the 2x2/3x3 crafting matcher, and chest container state (§3, §4.6).
package inventory

import "github.com/tannerfokkens-maker/MacintoshCraft/protocol"

// Slot layout for the 46-slot player inventory window (41 storage slots
// plus the 2x2 crafting grid and its result slot), matching vanilla's
// window-slot numbering so ClickContainer/SetContainerSlot indices need
// no translation.
const (
	SlotCraftResult = 0
	SlotCraftStart  = 1
	SlotCraftEnd    = 5 // exclusive; 2x2 matrix, slots 1-4
	SlotArmorStart  = 5
	SlotArmorEnd    = 9 // exclusive; helmet..boots, slots 5-8
	SlotMainStart   = 9
	SlotMainEnd     = 36 // exclusive; 27 main slots
	SlotHotbarStart = 36
	SlotHotbarEnd   = 45 // exclusive; 9 hotbar slots
	SlotOffhand     = 45

	PlayerInventorySize = 46
)

// Stack is a slot's contents. An empty stack has Count 0.
type Stack struct {
	Item  int32
	Count uint8
}

// Empty reports whether the slot holds nothing.
func (s Stack) Empty() bool {
	return s.Count == 0
}

// ToWire converts a Stack to the protocol's wire representation.
func (s Stack) ToWire() protocol.ItemStack {
	return protocol.ItemStack{ItemID: s.Item, Count: s.Count}
}

// FromWire converts a wire ItemStack to a Stack.
func FromWire(w protocol.ItemStack) Stack {
	if w.Count == 0 {
		return Stack{}
	}
	return Stack{Item: w.ItemID, Count: w.Count}
}

// Inventory is one player's full 46-slot window (41 storage slots plus
// the crafting grid and result) plus hotbar
// selection (§3 player state extension). Index 0 is the crafting
// result, 1-4 the 2x2 crafting grid, 5-8 armor, 9-35 the main area,
// 36-44 the hotbar, 45 the offhand.
type Inventory struct {
	slots       [PlayerInventorySize]Stack
	heldIndex   uint8 // 0..8, offset into the hotbar
	stateID     int32
}

// New returns an empty inventory.
func New() *Inventory {
	return &Inventory{}
}

// Get returns the stack at window slot i.
func (inv *Inventory) Get(slot int) Stack {
	if slot < 0 || slot >= PlayerInventorySize {
		return Stack{}
	}
	return inv.slots[slot]
}

// Set places stack at window slot i and bumps the state ID so the next
// SetContainerSlot packet carries a fresh revision.
func (inv *Inventory) Set(slot int, s Stack) {
	if slot < 0 || slot >= PlayerInventorySize {
		return
	}
	inv.slots[slot] = s
	inv.stateID++
}

// StateID returns the inventory's current revision counter, used in
// outbound SetContainerSlot/ClickContainer acknowledgement packets.
func (inv *Inventory) StateID() int32 {
	return inv.stateID
}

// SetHeldSlot updates the selected hotbar slot (0..8), per the
// serverbound SetHeldItem packet.
func (inv *Inventory) SetHeldSlot(hotbarIndex int16) {
	if hotbarIndex < 0 || hotbarIndex > 8 {
		return
	}
	inv.heldIndex = uint8(hotbarIndex)
}

// HeldItem returns the stack currently selected in the hotbar.
func (inv *Inventory) HeldItem() Stack {
	return inv.slots[SlotHotbarStart+int(inv.heldIndex)]
}

// ConsumeHeld removes one item from the held stack, emptying the slot
// once its count reaches zero (§4.8 "Block break/place handlers").
func (inv *Inventory) ConsumeHeld() {
	slot := SlotHotbarStart + int(inv.heldIndex)
	s := inv.slots[slot]
	if s.Empty() {
		return
	}
	s.Count--
	if s.Count == 0 {
		s = Stack{}
	}
	inv.slots[slot] = s
	inv.stateID++
}

// CraftingGrid returns the 2x2 crafting matrix slots, row-major.
func (inv *Inventory) CraftingGrid() [4]Stack {
	var grid [4]Stack
	copy(grid[:], inv.slots[SlotCraftStart:SlotCraftEnd])
	return grid
}

// SetCraftingGrid overwrites the 2x2 crafting matrix.
func (inv *Inventory) SetCraftingGrid(grid [4]Stack) {
	copy(inv.slots[SlotCraftStart:SlotCraftEnd], grid[:])
	inv.stateID++
}

// SetCraftResult sets the preview slot shown above the crafting grid.
func (inv *Inventory) SetCraftResult(s Stack) {
	inv.slots[SlotCraftResult] = s
}
