package protocol

// ItemStack is the wire representation of one inventory/container slot.
// Count == 0 means the slot is empty and ItemID/NBT are not transmitted.
type ItemStack struct {
	ItemID int32
	Count  uint8
}

func WriteItemStack(dst []byte, s ItemStack) []byte {
	if s.Count == 0 {
		return WriteBool(dst, false)
	}
	dst = WriteBool(dst, true)
	dst = WriteVarInt(dst, int32(s.Count))
	dst = WriteVarInt(dst, s.ItemID)
	dst = WriteVarInt(dst, 0) // number of added/removed component arrays, always empty
	dst = WriteVarInt(dst, 0)
	return dst
}

func ReadItemStack(r ByteReader) (ItemStack, error) {
	present, err := ReadBool(r)
	if err != nil || !present {
		return ItemStack{}, err
	}
	count, err := ReadVarInt(r)
	if err != nil {
		return ItemStack{}, err
	}
	id, err := ReadVarInt(r)
	if err != nil {
		return ItemStack{}, err
	}
	if _, err := ReadVarInt(r); err != nil { // components to add
		return ItemStack{}, err
	}
	if _, err := ReadVarInt(r); err != nil { // components to remove
		return ItemStack{}, err
	}
	return ItemStack{ItemID: id, Count: uint8(count)}, nil
}

// SetContainerSlot pushes one slot's new contents to the client, used both
// for the player inventory and open chests.
type SetContainerSlot struct {
	WindowID   int8
	StateID    int32
	Slot       int16
	Item       ItemStack
}

func (p SetContainerSlot) Encode(dst []byte) []byte {
	dst = WriteI8(dst, p.WindowID)
	dst = WriteVarInt(dst, p.StateID)
	dst = WriteI16(dst, p.Slot)
	dst = WriteItemStack(dst, p.Item)
	return dst
}

// OpenScreen opens a chest or crafting-table window on the client.
type OpenScreen struct {
	WindowID   int32
	WindowType int32
	Title      string
}

func (p OpenScreen) Encode(dst []byte) []byte {
	dst = WriteVarInt(dst, p.WindowID)
	dst = WriteVarInt(dst, p.WindowType)
	dst = WriteString(dst, p.Title)
	return dst
}

// WindowType values this core supports.
const (
	WindowTypeGeneric9x3 = 2
	WindowTypeCrafting   = 11
)

// ClickContainer is the serverbound click packet that drives both chest
// transfers and crafting. Only the single-slot left/right click variants
// this core needs are decoded; other click modes are accepted and ignored
// by the caller.
type ClickContainer struct {
	WindowID   uint8
	StateID    int32
	Slot       int16
	Button     int8
	Mode       int32
	Item       ItemStack
}

func DecodeClickContainer(r ByteReader) (ClickContainer, error) {
	var p ClickContainer
	var err error
	if p.WindowID, err = ReadU8(r); err != nil {
		return p, err
	}
	if p.StateID, err = ReadVarInt(r); err != nil {
		return p, err
	}
	if p.Slot, err = ReadI16(r); err != nil {
		return p, err
	}
	if p.Button, err = ReadI8(r); err != nil {
		return p, err
	}
	if p.Mode, err = ReadVarInt(r); err != nil {
		return p, err
	}
	n, err := ReadVarInt(r)
	if err != nil {
		return p, err
	}
	for i := int32(0); i < n; i++ {
		if _, err := ReadI16(r); err != nil { // changed slot index
			return p, err
		}
		if _, err := ReadItemStack(r); err != nil {
			return p, err
		}
	}
	p.Item, err = ReadItemStack(r)
	return p, err
}
