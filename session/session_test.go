package session_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/tannerfokkens-maker/MacintoshCraft/inventory"
	"github.com/tannerfokkens-maker/MacintoshCraft/protocol"
	"github.com/tannerfokkens-maker/MacintoshCraft/registry"
	"github.com/tannerfokkens-maker/MacintoshCraft/session"
	"github.com/tannerfokkens-maker/MacintoshCraft/world"
)

// fakeConn is an in-memory session.Conn: inbound is a fixed byte slice
// consumed a chunk at a time, outbound is captured for inspection. It
// never actually blocks; Read reports ErrWouldBlock once the inbound
// bytes run out, and tests that want writes to report it set blockWrite
// directly.
type fakeConn struct {
	in       []byte
	inPos    int
	out      bytes.Buffer
	closed   bool
	readCap  int // max bytes returned per Read call, 0 = unlimited
	blockWrite bool
}

func newFakeConn(in []byte) *fakeConn { return &fakeConn{in: in} }

func (c *fakeConn) Read(p []byte) (int, error) {
	if c.inPos >= len(c.in) {
		return 0, session.ErrWouldBlock
	}
	n := len(p)
	if c.readCap > 0 && n > c.readCap {
		n = c.readCap
	}
	if remaining := len(c.in) - c.inPos; n > remaining {
		n = remaining
	}
	copy(p, c.in[c.inPos:c.inPos+n])
	c.inPos += n
	return n, nil
}

func (c *fakeConn) Write(p []byte) (int, error) {
	if c.blockWrite {
		return 0, session.ErrWouldBlock
	}
	return c.out.Write(p)
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func frame(id int32, payload []byte) []byte {
	return protocol.EncodePacket(nil, id, payload)
}

func testWorld() *world.World {
	return world.New(world.Config{Seed: 1})
}

func testRegistry(t *testing.T) *registry.Store {
	t.Helper()
	s, err := registry.Open(t.TempDir() + "/reg.ldb")
	if err != nil {
		t.Fatalf("registry.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := registry.Bootstrap(s); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	return s
}

func mustPoll(t *testing.T, s *session.Session, ctx *session.Context) {
	t.Helper()
	if err := s.Poll(time.Now(), ctx, 1<<20); err != nil {
		t.Fatalf("Poll: %v", err)
	}
}

// TestHandshakeStatusPing exercises the status-state round trip: a
// handshake selecting next_state=status followed by a status request
// and a ping must each produce exactly one reply.
func TestHandshakeStatusPing(t *testing.T) {
	var in []byte
	in = append(in, frame(protocol.IDHandshake, mustEncodeHandshake(protocol.NextStateStatus))...)
	in = append(in, frame(protocol.IDStatusRequest, nil)...)
	in = append(in, frame(protocol.IDPingRequest, protocol.WriteI64(nil, 42))...)

	conn := newFakeConn(in)
	s := session.NewSession(conn, 1, session.Config{})
	ctx := &session.Context{}

	mustPoll(t, s, ctx)
	if s.State != session.StateStatus {
		t.Fatalf("State = %v, want StateStatus", s.State)
	}

	if err := drainOnce(s, conn); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if conn.out.Len() == 0 {
		t.Fatal("no bytes written for status response")
	}
	if n := countPacketID(t, conn, protocol.IDStatusResponse, protocol.MaxPacketLength); n != 1 {
		t.Fatalf("status responses = %d, want 1", n)
	}
	if n := countPacketID(t, conn, protocol.IDPongResponse, protocol.MaxPacketLength); n != 1 {
		t.Fatalf("pong responses = %d, want 1", n)
	}
}

// TestFullLoginSequence walks handshake -> login -> configuration ->
// play, matching §8 scenario 5, and checks exactly one Login-Play
// packet is emitted during the configuration-ack transition.
func TestFullLoginSequence(t *testing.T) {
	var loginUUID [16]byte
	copy(loginUUID[:], bytes.Repeat([]byte{0xAB}, 16))

	var in []byte
	in = append(in, frame(protocol.IDHandshake, mustEncodeHandshake(protocol.NextStateLogin))...)
	in = append(in, frame(protocol.IDLoginStart, mustEncodeLoginStart("Tester", loginUUID))...)
	in = append(in, frame(protocol.IDLoginAck, nil)...)
	in = append(in, frame(protocol.IDConfigAckFinish, nil)...)

	conn := newFakeConn(in)
	s := session.NewSession(conn, 100, session.Config{})
	ctx := &session.Context{World: testWorld(), Registry: testRegistry(t)}

	mustPoll(t, s, ctx)
	if err := s.FlushSend(time.Now()); err != nil {
		t.Fatalf("FlushSend: %v", err)
	}

	if s.State != session.StatePlay {
		t.Fatalf("State = %v, want StatePlay", s.State)
	}
	if s.Username != "Tester" {
		t.Fatalf("Username = %q", s.Username)
	}
	if _, ok := ctx.World.Players[s.UUID]; !ok {
		t.Fatal("player was not registered in the world")
	}

	loginPlayCount := countPacketID(t, conn, protocol.IDPlayLoginPlay, protocol.MaxPacketLength)
	if loginPlayCount != 1 {
		t.Fatalf("Login-Play packet count = %d, want 1", loginPlayCount)
	}
}

// TestStaleDrainKeepsLastMovementAndDig mirrors §8 scenario 6: three
// buffered movement packets followed by a dig packet must collapse to
// exactly one movement packet (the last) followed by the dig, once a
// blocked send triggers the drain.
func TestStaleDrainKeepsLastMovementAndDig(t *testing.T) {
	rb := session.NewRecvBuffer(1 << 16)
	conn := newFakeConn(nil)

	var buf []byte
	for i := 0; i < 3; i++ {
		buf = append(buf, frame(protocol.IDPlayMovePos, mustEncodeMovePos(float64(i)))...)
	}
	buf = append(buf, frame(protocol.IDPlayPlayerAction, mustEncodePlayerAction())...)
	conn.in = buf

	if err := rb.Fill(conn); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	rb.DrainStaleMovement()

	id, payload, ok, err := rb.TryReadPacket()
	if err != nil || !ok {
		t.Fatalf("first packet: ok=%v err=%v", ok, err)
	}
	if id != protocol.IDPlayMovePos {
		t.Fatalf("first surviving packet id = %#x, want movement", id)
	}
	mv, err := protocol.DecodeMovePlayerPos(protocol.NewByteReader(bytes.NewReader(payload)))
	if err != nil {
		t.Fatal(err)
	}
	if mv.X != 2 {
		t.Fatalf("surviving movement packet X = %v, want the last one (2)", mv.X)
	}

	id, _, ok, err = rb.TryReadPacket()
	if err != nil || !ok {
		t.Fatalf("second packet: ok=%v err=%v", ok, err)
	}
	if id != protocol.IDPlayPlayerAction {
		t.Fatalf("second surviving packet id = %#x, want dig", id)
	}

	if _, _, ok, _ := rb.TryReadPacket(); ok {
		t.Fatal("unexpected third packet after drain")
	}
}

// TestPlayerActionBreaksBlockAndEmitsEvent exercises the play-state dig
// handler end to end: a finish-digging packet within reach turns the
// targeted block to air and emits a BlockUpdateEvent.
func TestPlayerActionBreaksBlockAndEmitsEvent(t *testing.T) {
	w := testWorld()
	w.AddPlayer(&world.Player{UUID: fixedUUID(), X: 0, Y: 64, Z: 0})

	if _, err := w.SetBlock(0, 63, 0, world.BlockStone); err != nil {
		t.Fatal(err)
	}

	in := frame(protocol.IDPlayPlayerAction, mustEncodePlayerActionAt(0, 63, 0, protocol.ActionFinishDigging))
	conn := newFakeConn(in)
	s := session.NewSession(conn, 1, session.Config{})
	s.State = session.StatePlay
	s.UUID = fixedUUID()

	ctx := &session.Context{World: w, Chests: inventory.NewRegistry()}
	mustPoll(t, s, ctx)

	if b, ok := w.Changes.Lookup(0, 63, 0); !ok || b != world.BlockAir {
		t.Fatalf("block at (0,63,0) = %v, ok=%v, want air", b, ok)
	}

	events := ctx.TakeEvents()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev, ok := events[0].(session.BlockUpdateEvent)
	if !ok || ev.Block != world.BlockAir {
		t.Fatalf("event = %+v, ok=%v", events[0], ok)
	}
}

// TestUseItemOnPlacesBlockAndEmitsEvent exercises the placement half of
// §4.8's break/place handlers: clicking the face of an existing block
// with a placeable item held places that item's block on the adjacent
// side, consumes the held item, and emits a BlockUpdateEvent.
func TestUseItemOnPlacesBlockAndEmitsEvent(t *testing.T) {
	w := testWorld()
	w.AddPlayer(&world.Player{UUID: fixedUUID(), X: 0, Y: 64, Z: 0})
	if _, err := w.SetBlock(2, 63, 0, world.BlockStone); err != nil {
		t.Fatal(err)
	}

	in := frame(protocol.IDPlayUseItemOn, mustEncodeUseItemOn(2, 63, 0, 4))
	conn := newFakeConn(in)
	s := session.NewSession(conn, 1, session.Config{})
	s.State = session.StatePlay
	s.UUID = fixedUUID()
	s.Inventory.Set(inventory.SlotHotbarStart, inventory.Stack{Item: inventory.ItemCraftingTable, Count: 1})
	s.Inventory.SetHeldSlot(0)

	ctx := &session.Context{World: w, Chests: inventory.NewRegistry()}
	mustPoll(t, s, ctx)

	// Face 4 (west) offsets one block in -X from the clicked block.
	if b, ok := w.Changes.Lookup(1, 63, 0); !ok || b != world.BlockCraftingTable {
		t.Fatalf("block at (1,63,0) = %v, ok=%v, want crafting table", b, ok)
	}
	if got := s.Inventory.HeldItem(); !got.Empty() {
		t.Fatalf("held item not consumed: %+v", got)
	}

	events := ctx.TakeEvents()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev, ok := events[0].(session.BlockUpdateEvent)
	if !ok || ev.Block != world.BlockCraftingTable || ev.X != 1 || ev.Z != 0 {
		t.Fatalf("event = %+v, ok=%v", events[0], ok)
	}
}

// TestUseItemOnOpensExistingChest checks that clicking a block that is
// already a chest opens it instead of attempting to place through it.
func TestUseItemOnOpensExistingChest(t *testing.T) {
	w := testWorld()
	w.AddPlayer(&world.Player{UUID: fixedUUID(), X: 0, Y: 64, Z: 0})
	if _, err := w.SetBlock(0, 63, 0, world.BlockChest); err != nil {
		t.Fatal(err)
	}

	in := frame(protocol.IDPlayUseItemOn, mustEncodeUseItemOn(0, 63, 0, 1))
	conn := newFakeConn(in)
	s := session.NewSession(conn, 1, session.Config{})
	s.State = session.StatePlay
	s.UUID = fixedUUID()

	ctx := &session.Context{World: w, Chests: inventory.NewRegistry()}
	mustPoll(t, s, ctx)
	if err := s.FlushSend(time.Now()); err != nil {
		t.Fatalf("FlushSend: %v", err)
	}

	if b, ok := w.Changes.Lookup(0, 63, 0); ok && b != world.BlockChest {
		t.Fatalf("chest block was overwritten: %v", b)
	}
	if countPacketID(t, conn, protocol.IDPlayOpenScreen, protocol.MaxPacketLength) != 1 {
		t.Fatal("expected exactly one OpenScreen packet")
	}
}

func drainOnce(s *session.Session, conn *fakeConn) error {
	return s.FlushSend(time.Now())
}

func countPacketID(t *testing.T, conn *fakeConn, want int32, maxLen int32) int {
	t.Helper()
	data := conn.out.Bytes()
	count := 0
	r := bytes.NewReader(data)
	br := protocol.NewByteReader(r)
	for r.Len() > 0 {
		length, err := protocol.ReadVarInt(br)
		if err != nil {
			t.Fatalf("frame length: %v", err)
		}
		body := make([]byte, length)
		if _, err := readFull(br, body); err != nil {
			t.Fatalf("frame body: %v", err)
		}
		id, _, err := protocol.SplitPacket(body)
		if err != nil {
			t.Fatalf("split: %v", err)
		}
		if id == want {
			count++
		}
	}
	return count
}

func readFull(r protocol.ByteReader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func mustEncodeHandshake(next int32) []byte {
	var dst []byte
	dst = protocol.WriteVarInt(dst, 772)
	dst = protocol.WriteString(dst, "localhost")
	dst = protocol.WriteU16(dst, 25565)
	dst = protocol.WriteVarInt(dst, next)
	return dst
}

func mustEncodeLoginStart(name string, uuid [16]byte) []byte {
	var dst []byte
	dst = protocol.WriteString(dst, name)
	dst = append(dst, uuid[:]...)
	return dst
}

func mustEncodeMovePos(x float64) []byte {
	var dst []byte
	dst = protocol.WriteF64(dst, x)
	dst = protocol.WriteF64(dst, 64)
	dst = protocol.WriteF64(dst, 0)
	dst = protocol.WriteBool(dst, true)
	return dst
}

func mustEncodePlayerAction() []byte {
	return mustEncodePlayerActionAt(0, 63, 0, protocol.ActionFinishDigging)
}

func mustEncodePlayerActionAt(x int32, y int16, z int32, status protocol.PlayerActionStatus) []byte {
	var dst []byte
	dst = protocol.WriteVarInt(dst, int32(status))
	dst = protocol.WriteU64(dst, protocol.PackPosition(x, z, y))
	dst = protocol.WriteI8(dst, 1)
	dst = protocol.WriteVarInt(dst, 0)
	return dst
}

func mustEncodeUseItemOn(x int32, y int16, z int32, face int8) []byte {
	var dst []byte
	dst = protocol.WriteVarInt(dst, 0) // main hand
	dst = protocol.WriteU64(dst, protocol.PackPosition(x, z, y))
	dst = protocol.WriteI8(dst, face)
	dst = protocol.WriteF32(dst, 0.5)
	dst = protocol.WriteF32(dst, 0.5)
	dst = protocol.WriteF32(dst, 0.5)
	dst = protocol.WriteBool(dst, false)
	dst = protocol.WriteVarInt(dst, 0) // sequence
	return dst
}

func fixedUUID() (u [16]byte) {
	for i := range u {
		u[i] = byte(i)
	}
	return u
}
