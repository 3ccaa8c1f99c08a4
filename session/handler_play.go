package session

import (
	"github.com/tannerfokkens-maker/MacintoshCraft/inventory"
	"github.com/tannerfokkens-maker/MacintoshCraft/protocol"
	"github.com/tannerfokkens-maker/MacintoshCraft/world"
)

// maxReach is the block-break/place reachability bound (§4.8 "Block
// break/place handlers validate reachability"); the reference sources
// don't pin an exact figure, so this follows vanilla's own survival
// reach distance.
const maxReach = 6.0

func (s *Session) handlePlay(id int32, r protocol.ByteReader, ctx *Context) error {
	switch id {
	case protocol.IDPlayConfirmTeleport:
		_, err := protocol.DecodeConfirmTeleport(r)
		return err

	case protocol.IDPlayKeepAliveIn:
		ka, err := protocol.DecodeKeepAlive(r)
		if err != nil {
			return err
		}
		s.receiveKeepAlive(ka.ID)
		return nil

	case protocol.IDPlayMovePos:
		mv, err := protocol.DecodeMovePlayerPos(r)
		if err != nil {
			return err
		}
		pos := [3]float64{mv.X, mv.Y, mv.Z}
		s.applyMove(ctx, &pos, nil, nil, mv.OnGround)
		return nil

	case protocol.IDPlayMovePosRot:
		mv, err := protocol.DecodeMovePlayerPosRot(r)
		if err != nil {
			return err
		}
		pos := [3]float64{mv.X, mv.Y, mv.Z}
		yaw, pitch := mv.Yaw, mv.Pitch
		s.applyMove(ctx, &pos, &yaw, &pitch, mv.OnGround)
		return nil

	case protocol.IDPlayMoveRot:
		mv, err := protocol.DecodeMovePlayerRot(r)
		if err != nil {
			return err
		}
		yaw, pitch := mv.Yaw, mv.Pitch
		s.applyMove(ctx, nil, &yaw, &pitch, mv.OnGround)
		return nil

	case protocol.IDPlayMoveOnGround:
		mv, err := protocol.DecodeMovePlayerOnGround(r)
		if err != nil {
			return err
		}
		s.applyMove(ctx, nil, nil, nil, mv.OnGround)
		return nil

	case protocol.IDPlayPlayerAction:
		pa, err := protocol.DecodePlayerAction(r)
		if err != nil {
			return err
		}
		return s.handlePlayerAction(ctx, pa)

	case protocol.IDPlayUseItemOn:
		u, err := protocol.DecodeUseItemOn(r)
		if err != nil {
			return err
		}
		return s.handleUseItemOn(ctx, u)

	case protocol.IDPlaySetHeldItem:
		sh, err := protocol.DecodeSetHeldItem(r)
		if err != nil {
			return err
		}
		s.Inventory.SetHeldSlot(sh.Slot)
		return nil

	case protocol.IDPlayClickContainer:
		cc, err := protocol.DecodeClickContainer(r)
		if err != nil {
			return err
		}
		s.handleClickContainer(cc, ctx)
		return nil

	case protocol.IDPlayCloseContainer:
		_, err := protocol.DecodeCloseContainer(r)
		s.container = openContainer{}
		return err
	}
	return nil
}

// applyMove writes whichever fields the packet carried into the
// player's world record (§4.8: movement packets update position and/or
// rotation independently). nil fields are left unchanged.
func (s *Session) applyMove(ctx *Context, pos *[3]float64, yaw, pitch *float32, onGround bool) {
	if ctx == nil || ctx.World == nil {
		return
	}
	p, ok := ctx.World.Players[s.UUID]
	if !ok {
		return
	}
	if pos != nil {
		p.X, p.Y, p.Z = pos[0], pos[1], pos[2]
	}
	if yaw != nil {
		p.Yaw = *yaw
	}
	if pitch != nil {
		p.Pitch = *pitch
	}
	p.OnGround = onGround
}

// handlePlayerAction resolves a completed dig (§8 scenario 6, ID
// 0x28): it checks reachability, applies the break to the world, and
// emits a BlockUpdateEvent for the server loop to broadcast (§4.8
// "Block break/place handlers ... broadcast a block-update packet").
// Overflowing the block-change index disconnects this session with
// WorldFull, per §9's resolution of that open question.
func (s *Session) handlePlayerAction(ctx *Context, pa protocol.PlayerAction) error {
	if pa.Status != protocol.ActionFinishDigging {
		return nil
	}
	if ctx == nil || ctx.World == nil {
		return nil
	}
	p, ok := ctx.World.Players[s.UUID]
	if !ok {
		return nil
	}
	dx := float64(pa.X) + 0.5 - p.X
	dy := float64(pa.Y) + 0.5 - p.Y
	dz := float64(pa.Z) + 0.5 - p.Z
	if dx*dx+dy*dy+dz*dz > maxReach*maxReach {
		return nil
	}

	prev, err := ctx.World.SetBlock(pa.X, uint8(pa.Y), pa.Z, world.BlockAir)
	if err != nil {
		s.Disconnect("WorldFull")
		return nil
	}
	if prev == world.BlockChest && ctx.Chests != nil {
		ctx.Chests.Remove(pa.X, uint8(pa.Y), pa.Z)
	}
	ctx.Emit(BlockUpdateEvent{X: pa.X, Z: pa.Z, Y: pa.Y, Block: world.BlockAir})
	return nil
}

// faceOffset returns the block-position delta for placing against the
// clicked face, using vanilla's face encoding (0=down, 1=up, 2=north,
// 3=south, 4=west, 5=east).
func faceOffset(face int8) (dx, dy, dz int32) {
	switch face {
	case 0:
		return 0, -1, 0
	case 1:
		return 0, 1, 0
	case 2:
		return 0, 0, -1
	case 3:
		return 0, 0, 1
	case 4:
		return -1, 0, 0
	case 5:
		return 1, 0, 0
	}
	return 0, 0, 0
}

// handleUseItemOn resolves a use-item-on-block interaction (§4.8
// "Block break/place handlers"): clicking an existing chest or
// crafting table opens its window; clicking anything else places the
// held item's block against the clicked face, mirroring
// handlePlayerAction's reachability check and broadcast flow.
func (s *Session) handleUseItemOn(ctx *Context, u protocol.UseItemOn) error {
	if ctx == nil || ctx.World == nil {
		return nil
	}
	p, ok := ctx.World.Players[s.UUID]
	if !ok {
		return nil
	}
	dx := float64(u.X) + 0.5 - p.X
	dy := float64(u.Y) + 0.5 - p.Y
	dz := float64(u.Z) + 0.5 - p.Z
	if dx*dx+dy*dy+dz*dz > maxReach*maxReach {
		return nil
	}

	switch ctx.World.BlockAt(u.X, uint8(u.Y), u.Z) {
	case world.BlockChest:
		s.openChest(ctx, u.X, uint8(u.Y), u.Z)
		return nil
	case world.BlockCraftingTable:
		s.openCraftingTable()
		return nil
	}

	held := s.Inventory.HeldItem()
	block, ok := inventory.BlockForItem(held.Item)
	if !ok {
		return nil
	}

	ox, oy, oz := faceOffset(u.Face)
	px, pz := u.X+ox, u.Z+oz
	py := u.Y + int16(oy)
	if py < 0 || py > 255 {
		return nil
	}

	if _, err := ctx.World.SetBlock(px, uint8(py), pz, block); err != nil {
		s.Disconnect("WorldFull")
		return nil
	}
	s.Inventory.ConsumeHeld()
	ctx.Emit(BlockUpdateEvent{X: px, Z: pz, Y: py, Block: block})
	return nil
}

// openChest opens the chest at (x, y, z) in this session's window and
// pushes its current contents (§3 "Player/session" container state).
func (s *Session) openChest(ctx *Context, x int32, y uint8, z int32) {
	if ctx.Chests == nil {
		return
	}
	chest := ctx.Chests.Open(x, y, z)
	s.container = openContainer{kind: containerChest, x: x, y: y, z: z}

	s.Send(protocol.IDPlayOpenScreen, protocol.OpenScreen{
		WindowID:   containerWindowID,
		WindowType: protocol.WindowTypeGeneric9x3,
		Title:      "Chest",
	}.Encode(nil))

	for slot := 0; slot < inventory.ChestSize; slot++ {
		s.Send(protocol.IDPlaySetContainerSlot, protocol.SetContainerSlot{
			WindowID: containerWindowID,
			StateID:  chest.StateID(),
			Slot:     int16(slot),
			Item:     chest.Get(slot).ToWire(),
		}.Encode(nil))
	}
}

// openCraftingTable opens an empty 3x3 crafting window (§4.6 "crafting
// matcher").
func (s *Session) openCraftingTable() {
	s.container = openContainer{kind: containerCraftingTable}
	s.Send(protocol.IDPlayOpenScreen, protocol.OpenScreen{
		WindowID:   containerWindowID,
		WindowType: protocol.WindowTypeCrafting,
		Title:      "Crafting Table",
	}.Encode(nil))
}

// handleClickContainer routes a single-slot click to whichever
// container this session currently has open: an open chest, an open
// crafting table, or (the default) the player's own inventory. Each
// path echoes the slot back to the client with its container's fresh
// state ID.
func (s *Session) handleClickContainer(cc protocol.ClickContainer, ctx *Context) {
	stack := inventory.FromWire(cc.Item)
	slot := int(cc.Slot)

	switch s.container.kind {
	case containerChest:
		s.clickChest(cc, stack, slot, ctx)
	case containerCraftingTable:
		s.clickCraftingTable(cc, stack, slot, ctx)
	default:
		s.clickPlayerInventory(cc, stack, slot, ctx)
	}
}

func (s *Session) clickPlayerInventory(cc protocol.ClickContainer, stack inventory.Stack, slot int, ctx *Context) {
	s.Inventory.Set(slot, stack)

	if slot >= inventory.SlotCraftStart && slot < inventory.SlotCraftEnd {
		grid := s.Inventory.CraftingGrid()
		if ctx != nil && ctx.Matcher != nil {
			if result, ok := ctx.Matcher.Match2x2(grid); ok {
				s.Inventory.SetCraftResult(result)
			} else {
				s.Inventory.SetCraftResult(inventory.Stack{})
			}
		}
	}

	s.Send(protocol.IDPlaySetContainerSlot, protocol.SetContainerSlot{
		WindowID: int8(cc.WindowID),
		StateID:  s.Inventory.StateID(),
		Slot:     cc.Slot,
		Item:     cc.Item,
	}.Encode(nil))
}

func (s *Session) clickChest(cc protocol.ClickContainer, stack inventory.Stack, slot int, ctx *Context) {
	if ctx == nil || ctx.Chests == nil || slot < 0 || slot >= inventory.ChestSize {
		return
	}
	chest := ctx.Chests.Open(s.container.x, s.container.y, s.container.z)
	chest.Set(slot, stack)

	s.Send(protocol.IDPlaySetContainerSlot, protocol.SetContainerSlot{
		WindowID: int8(cc.WindowID),
		StateID:  chest.StateID(),
		Slot:     cc.Slot,
		Item:     cc.Item,
	}.Encode(nil))
}

// craftGridSlot0 is the first 3x3 input grid slot's window index in
// the WindowTypeCrafting layout; slot 0 is the read-only output.
const craftGridSlot0 = 1

func (s *Session) clickCraftingTable(cc protocol.ClickContainer, stack inventory.Stack, slot int, ctx *Context) {
	if slot < craftGridSlot0 || slot >= craftGridSlot0+9 {
		return
	}
	s.container.grid[slot-craftGridSlot0] = stack

	if ctx != nil && ctx.Matcher != nil {
		if result, ok := ctx.Matcher.Match3x3(s.container.grid); ok {
			s.Send(protocol.IDPlaySetContainerSlot, protocol.SetContainerSlot{
				WindowID: int8(cc.WindowID),
				StateID:  0,
				Slot:     0,
				Item:     result.ToWire(),
			}.Encode(nil))
		}
	}

	s.Send(protocol.IDPlaySetContainerSlot, protocol.SetContainerSlot{
		WindowID: int8(cc.WindowID),
		StateID:  0,
		Slot:     cc.Slot,
		Item:     cc.Item,
	}.Encode(nil))
}
