package protocol

// LoginPlay is the first play-state packet, establishing the player's
// entity ID and the dimension they spawn into. Fields not needed by this
// core (hashed seed, portal cooldown, debug/flat flags, death location) are
// sent with the vanilla defaults of an ordinary overworld join.
type LoginPlay struct {
	EntityID         int32
	Hardcore         bool
	GameMode         uint8
	ViewDistance     int32
	ReducedDebugInfo bool
	DimensionName    string
}

func (p LoginPlay) Encode(dst []byte) []byte {
	dst = WriteI32(dst, p.EntityID)
	dst = WriteBool(dst, p.Hardcore)
	dst = WriteVarInt(dst, 1) // dimension count: one world
	dst = WriteString(dst, p.DimensionName)
	dst = WriteVarInt(dst, 0) // max players, unused by clients, kept minimal
	dst = WriteVarInt(dst, p.ViewDistance)
	dst = WriteVarInt(dst, p.ViewDistance) // simulation distance
	dst = WriteBool(dst, p.ReducedDebugInfo)
	dst = WriteBool(dst, true) // enable respawn screen
	dst = WriteBool(dst, false) // limited crafting
	dst = WriteString(dst, p.DimensionName)
	dst = WriteI64(dst, 0) // hashed seed
	dst = WriteU8(dst, p.GameMode)
	dst = WriteI8(dst, -1) // previous game mode, unknown
	dst = WriteBool(dst, false) // is debug
	dst = WriteBool(dst, false) // is flat
	dst = WriteBool(dst, false) // has death location
	dst = WriteVarInt(dst, 0)   // portal cooldown
	dst = WriteVarInt(dst, 63)  // sea level
	dst = WriteBool(dst, false) // enforces secure chat
	return dst
}

// SpawnPosition tells the client where the compass/respawn point is.
type SpawnPosition struct {
	X, Z int32
	Y    int16
	Angle float32
}

func (p SpawnPosition) Encode(dst []byte) []byte {
	dst = WriteU64(dst, PackPosition(p.X, p.Z, p.Y))
	dst = WriteF32(dst, p.Angle)
	return dst
}

// SynchronizePlayerPosition teleports the client; TeleportID must be echoed
// back via ConfirmTeleport.
type SynchronizePlayerPosition struct {
	X, Y, Z       float64
	VelX, VelY, VelZ float64
	Yaw, Pitch    float32
	Flags         int32
	TeleportID    int32
}

func (p SynchronizePlayerPosition) Encode(dst []byte) []byte {
	dst = WriteVarInt(dst, p.TeleportID)
	dst = WriteF64(dst, p.X)
	dst = WriteF64(dst, p.Y)
	dst = WriteF64(dst, p.Z)
	dst = WriteF64(dst, p.VelX)
	dst = WriteF64(dst, p.VelY)
	dst = WriteF64(dst, p.VelZ)
	dst = WriteF32(dst, p.Yaw)
	dst = WriteF32(dst, p.Pitch)
	dst = WriteI32(dst, p.Flags)
	return dst
}

// ConfirmTeleport is the serverbound echo of SynchronizePlayerPosition's
// TeleportID.
func DecodeConfirmTeleport(r ByteReader) (int32, error) {
	return ReadVarInt(r)
}

// KeepAlive carries an opaque 8-byte ID both directions (§4.7).
type KeepAlive struct {
	ID int64
}

func (p KeepAlive) Encode(dst []byte) []byte { return WriteI64(dst, p.ID) }

func DecodeKeepAlive(r ByteReader) (KeepAlive, error) {
	v, err := ReadI64(r)
	return KeepAlive{ID: v}, err
}

// ChunkSection is one 16x16x16 section's worth of wire data: the block
// bytes in their reversed-octet layout (§3) plus the section's biome id,
// sent verbatim from the chunk cache.
type ChunkSection struct {
	Biome uint8
	Data  [4096]byte
}

// ChunkDataAndUpdateLight carries every loaded section of one column. Light
// data is omitted (always "fully lit"), matching the non-goal of emulating
// vanilla lighting.
type ChunkDataAndUpdateLight struct {
	ChunkX, ChunkZ int32
	Sections       []ChunkSection
}

func (p ChunkDataAndUpdateLight) Encode(dst []byte) []byte {
	dst = WriteI32(dst, p.ChunkX)
	dst = WriteI32(dst, p.ChunkZ)
	dst = WriteVarInt(dst, int32(len(p.Sections)))
	for _, s := range p.Sections {
		dst = WriteU8(dst, s.Biome)
		dst = append(dst, s.Data[:]...)
	}
	return dst
}

// BlockUpdate announces a single block change to every player with that
// chunk loaded (§4.8 "broadcast a block-update packet").
type BlockUpdate struct {
	X, Z  int32
	Y     int16
	Block uint8
}

func (p BlockUpdate) Encode(dst []byte) []byte {
	dst = WriteU64(dst, PackPosition(p.X, p.Z, p.Y))
	dst = WriteVarInt(dst, int32(p.Block))
	return dst
}

// Disconnect carries a human-readable reason shown to the client before the
// connection closes (§7 "User-visible behavior on session error").
type Disconnect struct {
	Reason string
}

func (p Disconnect) Encode(dst []byte) []byte {
	return WriteString(dst, `{"text":"`+jsonEscape(p.Reason)+`"}`)
}

// TimeUpdate broadcasts day_time_ticks on the coarse cadence §4.8 describes.
type TimeUpdate struct {
	WorldAge    int64
	DayTimeTicks int64
}

func (p TimeUpdate) Encode(dst []byte) []byte {
	dst = WriteI64(dst, p.WorldAge)
	dst = WriteI64(dst, p.DayTimeTicks)
	return dst
}

// EntityPositionSync reports a mob or player's absolute position/rotation
// after a tick (§4.8 "emit position/rotation packets").
type EntityPositionSync struct {
	EntityID     int32
	X, Y, Z      float64
	Yaw, Pitch   float32
	HeadYaw      float32
	OnGround     bool
}

func (p EntityPositionSync) Encode(dst []byte) []byte {
	dst = WriteVarInt(dst, p.EntityID)
	dst = WriteF64(dst, p.X)
	dst = WriteF64(dst, p.Y)
	dst = WriteF64(dst, p.Z)
	dst = WriteF32(dst, p.Yaw)
	dst = WriteF32(dst, p.Pitch)
	dst = WriteF32(dst, p.HeadYaw)
	dst = WriteBool(dst, p.OnGround)
	return dst
}

// EntityVelocity encodes an entity-velocity packet. The server loop does
// not send it: mob updates and interpolation keyframes both go out as
// EntityPositionSync.
type EntityVelocity struct {
	EntityID       int32
	VX, VY, VZ     int16
}

func (p EntityVelocity) Encode(dst []byte) []byte {
	dst = WriteVarInt(dst, p.EntityID)
	dst = WriteI16(dst, p.VX)
	dst = WriteI16(dst, p.VY)
	dst = WriteI16(dst, p.VZ)
	return dst
}

// GameEvent communicates weather and other global state changes.
type GameEvent struct {
	Event uint8
	Value float32
}

func (p GameEvent) Encode(dst []byte) []byte {
	dst = WriteU8(dst, p.Event)
	dst = WriteF32(dst, p.Value)
	return dst
}

const (
	GameEventStartRain = 2
	GameEventStopRain  = 1
)

// SetHealth reports the player's current health and food saturation.
type SetHealth struct {
	Health         float32
	Food           int32
	FoodSaturation float32
}

func (p SetHealth) Encode(dst []byte) []byte {
	dst = WriteF32(dst, p.Health)
	dst = WriteVarInt(dst, p.Food)
	dst = WriteF32(dst, p.FoodSaturation)
	return dst
}

// --- Serverbound play packets ---

// MovePlayerPos, MovePlayerPosRot, MovePlayerRot and MovePlayerOnGround are
// the four movement packets (§4.6 IDs 0x1D..0x20) the stale-drain logic may
// collapse to the most recent.
type MovePlayerPos struct {
	X, Y, Z  float64
	OnGround bool
}

func DecodeMovePlayerPos(r ByteReader) (MovePlayerPos, error) {
	var p MovePlayerPos
	var err error
	if p.X, err = ReadF64(r); err != nil {
		return p, err
	}
	if p.Y, err = ReadF64(r); err != nil {
		return p, err
	}
	if p.Z, err = ReadF64(r); err != nil {
		return p, err
	}
	p.OnGround, err = ReadBool(r)
	return p, err
}

type MovePlayerPosRot struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	OnGround   bool
}

func DecodeMovePlayerPosRot(r ByteReader) (MovePlayerPosRot, error) {
	var p MovePlayerPosRot
	var err error
	if p.X, err = ReadF64(r); err != nil {
		return p, err
	}
	if p.Y, err = ReadF64(r); err != nil {
		return p, err
	}
	if p.Z, err = ReadF64(r); err != nil {
		return p, err
	}
	if p.Yaw, err = ReadF32(r); err != nil {
		return p, err
	}
	if p.Pitch, err = ReadF32(r); err != nil {
		return p, err
	}
	p.OnGround, err = ReadBool(r)
	return p, err
}

type MovePlayerRot struct {
	Yaw, Pitch float32
	OnGround   bool
}

func DecodeMovePlayerRot(r ByteReader) (MovePlayerRot, error) {
	var p MovePlayerRot
	var err error
	if p.Yaw, err = ReadF32(r); err != nil {
		return p, err
	}
	if p.Pitch, err = ReadF32(r); err != nil {
		return p, err
	}
	p.OnGround, err = ReadBool(r)
	return p, err
}

type MovePlayerOnGround struct {
	OnGround bool
}

func DecodeMovePlayerOnGround(r ByteReader) (MovePlayerOnGround, error) {
	v, err := ReadBool(r)
	return MovePlayerOnGround{OnGround: v}, err
}

// PlayerActionStatus mirrors the vanilla dig-sequence status byte.
type PlayerActionStatus int32

const (
	ActionStartDigging PlayerActionStatus = 0
	ActionCancelDigging PlayerActionStatus = 1
	ActionFinishDigging PlayerActionStatus = 2
)

// PlayerAction is the mining packet (§8 scenario 6, ID 0x28).
type PlayerAction struct {
	Status   PlayerActionStatus
	X, Z     int32
	Y        int16
	Face     int8
	Sequence int32
}

func DecodePlayerAction(r ByteReader) (PlayerAction, error) {
	var p PlayerAction
	status, err := ReadVarInt(r)
	if err != nil {
		return p, err
	}
	pos, err := ReadU64(r)
	if err != nil {
		return p, err
	}
	face, err := ReadI8(r)
	if err != nil {
		return p, err
	}
	seq, err := ReadVarInt(r)
	if err != nil {
		return p, err
	}
	x, z, y := UnpackPosition(pos)
	return PlayerAction{Status: PlayerActionStatus(status), X: x, Z: z, Y: y, Face: face, Sequence: seq}, nil
}

// UseItemOn is the serverbound block-placement packet (§4.8 "Block
// break/place handlers"), mirroring PlayerAction's target-position and
// sequence fields.
type UseItemOn struct {
	Hand     int32
	X, Z     int32
	Y        int16
	Face     int8
	Sequence int32
}

func DecodeUseItemOn(r ByteReader) (UseItemOn, error) {
	var p UseItemOn
	hand, err := ReadVarInt(r)
	if err != nil {
		return p, err
	}
	pos, err := ReadU64(r)
	if err != nil {
		return p, err
	}
	face, err := ReadI8(r)
	if err != nil {
		return p, err
	}
	// Cursor hit position within the clicked face; this core has no
	// partial-block placement rules, so the three floats are read and
	// discarded.
	if _, err := ReadF32(r); err != nil {
		return p, err
	}
	if _, err := ReadF32(r); err != nil {
		return p, err
	}
	if _, err := ReadF32(r); err != nil {
		return p, err
	}
	if _, err := ReadBool(r); err != nil { // inside block
		return p, err
	}
	seq, err := ReadVarInt(r)
	if err != nil {
		return p, err
	}
	x, z, y := UnpackPosition(pos)
	return UseItemOn{Hand: hand, X: x, Z: z, Y: y, Face: face, Sequence: seq}, nil
}

// SetHeldItem changes the player's selected hotbar slot (0..8).
type SetHeldItem struct {
	Slot int16
}

func DecodeSetHeldItem(r ByteReader) (SetHeldItem, error) {
	v, err := ReadI16(r)
	return SetHeldItem{Slot: v}, err
}

// CloseContainer ends a chest/crafting interaction.
type CloseContainer struct {
	WindowID uint8
}

func DecodeCloseContainer(r ByteReader) (CloseContainer, error) {
	v, err := ReadU8(r)
	return CloseContainer{WindowID: v}, err
}
