package server

import (
	"math"
	"os"
	"time"

	"github.com/tannerfokkens-maker/MacintoshCraft/protocol"
	"github.com/tannerfokkens-maker/MacintoshCraft/session"
	"github.com/tannerfokkens-maker/MacintoshCraft/world"
)

// verticalSections is the number of 16-block sections stacked in a
// column. world.SetBlock addresses Y as a uint8, so the playable column
// is fixed at 256 blocks regardless of view distance.
const verticalSections = 256 / world.SectionSize

// timeUpdateEvery is the tick cadence for broadcasting TimeUpdate (§4.8
// step 2 "on a coarser cadence" than every tick).
const timeUpdateEvery = 20

// recvBudgetPerSession bounds how many inbound bytes one session's Poll
// call may process per tick, so one chatty client cannot starve the
// others in this single-threaded loop (§4.8 "per-session inbound-
// processing byte budget").
const recvBudgetPerSession = 1 << 16

// tickInterval is the server's fixed tick rate, matching vanilla's 20
// ticks/second cadence.
const tickInterval = 50 * time.Millisecond

// Run opens the listener and drives the tick loop until stop is closed.
// Every suspension point funnels through this single goroutine (§5
// "single-threaded, cooperative scheduling").
func (s *Server) Run(stop <-chan struct{}) error {
	ln, err := listen(s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	defer ln.close()

	s.lastPersist = time.Now()
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			s.shutdown()
			return nil
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick runs the six-step sequence §4.8 describes: poll every session,
// advance world clocks, step fluids, tick mobs, manage chunk windows,
// flush every session's outbound buffer.
func (s *Server) tick() {
	now := time.Now()

	s.acceptNew()

	ctx := s.sessionContext()
	for id, c := range s.clients {
		if err := c.sess.Poll(now, ctx, recvBudgetPerSession); err != nil {
			s.log.Debug("session poll error", "entity_id", id, "err", err)
			c.sess.Disconnect(err.Error())
		}
	}

	s.World.Tick()
	if s.World.TickCounter%timeUpdateEvery == 0 {
		s.broadcastPlay(protocol.IDPlayTimeUpdate, protocol.TimeUpdate{
			WorldAge:     s.World.TickCounter,
			DayTimeTicks: s.World.DayTimeTicks,
		}.Encode(nil))
	}

	if s.cfg.DoFluidFlow {
		s.World.StepFluid()
	}

	s.tickEntities()
	s.manageChunkWindows()
	s.runKeepAlives()

	for _, ev := range ctx.TakeEvents() {
		s.broadcastEvent(ev)
	}

	if time.Since(s.lastPersist) >= s.cfg.PersistenceEvery {
		s.persist()
		s.lastPersist = time.Now()
	}

	for _, c := range s.clients {
		if err := c.sess.FlushSend(now); err != nil {
			c.sess.Disconnect(err.Error())
		}
	}

	s.removeClosed()
}

// tickEntities runs mob AI/movement and broadcasts the resulting
// position updates, plus interpolation keyframes when enabled (§4.8
// step 4).
func (s *Server) tickEntities() {
	updates := s.Entities.Tick(s.World.TickCounter, s.World, s.World)
	if s.Entities.Interpolate {
		updates = append(s.Entities.Keyframes(0.5), updates...)
	}
	for _, u := range updates {
		s.broadcastPlay(protocol.IDPlayEntityPosSync, protocol.EntityPositionSync{
			EntityID: u.EntityID,
			X:        u.Pos.X(), Y: u.Pos.Y(), Z: u.Pos.Z(),
			Yaw: u.Yaw, Pitch: u.Pitch, HeadYaw: u.Yaw,
			OnGround: u.OnGround,
		}.Encode(nil))
	}
}

// manageChunkWindows streams newly-in-range columns to each connected
// player and drops columns that fell out of range from its loaded set
// (§4.8 step 5 "per-player chunk-window management").
func (s *Server) manageChunkWindows() {
	for _, c := range s.clients {
		if c.sess.State != session.StatePlay {
			continue
		}
		p, ok := s.World.Players[c.sess.UUID]
		if !ok {
			continue
		}
		centerCX := world.FloorDiv(int32(math.Floor(p.X)), world.SectionSize)
		centerCZ := world.FloorDiv(int32(math.Floor(p.Z)), world.SectionSize)
		radius := c.sess.ViewDistance

		wanted := make(map[[2]int32]struct{}, int(2*radius+1)*int(2*radius+1))
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				col := [2]int32{centerCX + dx, centerCZ + dz}
				wanted[col] = struct{}{}
				if _, have := c.sess.LoadedChunks[col]; !have {
					s.sendColumn(c, col[0], col[1])
					c.sess.LoadedChunks[col] = struct{}{}
				}
			}
		}
		for col := range c.sess.LoadedChunks {
			if _, still := wanted[col]; !still {
				delete(c.sess.LoadedChunks, col)
			}
		}
	}
}

func (s *Server) sendColumn(c *client, cx, cz int32) {
	sections := make([]protocol.ChunkSection, 0, verticalSections)
	for cy := int32(0); cy < verticalSections; cy++ {
		sec, biome := s.World.BuildSection(cx, cy, cz)
		sections = append(sections, protocol.ChunkSection{
			Biome: uint8(biome),
			Data:  [4096]byte(sec),
		})
	}
	c.sess.Send(protocol.IDPlayChunkData, protocol.ChunkDataAndUpdateLight{
		ChunkX: cx, ChunkZ: cz, Sections: sections,
	}.Encode(nil))
}

// runKeepAlives sends due keepalives and disconnects sessions that have
// gone silent for KEEPALIVE_TIMEOUT (§4.7).
func (s *Server) runKeepAlives() {
	intervalTicks := int64(s.cfg.KeepAliveInterval / tickInterval)
	timeoutTicks := int64(s.cfg.KeepAliveTimeout / tickInterval)
	tick := s.World.TickCounter
	for _, c := range s.clients {
		c.sess.MaybeSendKeepAlive(tick, intervalTicks)
		if c.sess.KeepAliveTimedOut(tick, timeoutTicks) {
			c.sess.Disconnect("Timed out")
		}
	}
}

// broadcastPlay sends a packet to every session currently in play.
func (s *Server) broadcastPlay(id int32, payload []byte) {
	for _, c := range s.clients {
		if c.sess.State == session.StatePlay {
			c.sess.Send(id, payload)
		}
	}
}

// broadcastEvent fans out a session event (currently only block
// updates) to every player with the affected chunk loaded.
func (s *Server) broadcastEvent(ev session.Event) {
	bu, ok := ev.(session.BlockUpdateEvent)
	if !ok {
		return
	}
	col := [2]int32{world.FloorDiv(bu.X, world.SectionSize), world.FloorDiv(bu.Z, world.SectionSize)}
	payload := protocol.BlockUpdate{X: bu.X, Z: bu.Z, Y: int16(bu.Y), Block: bu.Block}.Encode(nil)
	for _, c := range s.clients {
		if c.sess.State != session.StatePlay {
			continue
		}
		if _, loaded := c.sess.LoadedChunks[col]; loaded {
			c.sess.Send(protocol.IDPlayBlockUpdate, payload)
		}
	}
}

// persist saves world state to the configured path (§6 "Persistence").
// Failure is logged, not fatal: the in-memory world keeps running.
func (s *Server) persist() {
	f, err := os.Create(s.cfg.PersistencePath)
	if err != nil {
		s.log.Error("persist: create file", "err", err)
		return
	}
	defer f.Close()
	if err := s.World.Save(f); err != nil {
		s.log.Error("persist: save world", "err", err)
	}
}

// shutdown flushes every session, disconnects clients, and persists the
// world one last time before Run returns (§6 "clean shutdown").
func (s *Server) shutdown() {
	now := time.Now()
	for _, c := range s.clients {
		c.sess.Disconnect("Server closed")
		_ = c.sess.FlushSend(now)
		_ = c.sess.Close()
	}
	s.persist()
}
