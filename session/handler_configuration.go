package session

import (
	"github.com/tannerfokkens-maker/MacintoshCraft/protocol"
	"github.com/tannerfokkens-maker/MacintoshCraft/registry"
	"github.com/tannerfokkens-maker/MacintoshCraft/world"
)

// configurationRegistries lists, in send order, the registries the
// configuration state transmits before play begins (§4.7, §6).
var configurationRegistries = []string{
	registry.RegistryDimensionType,
	registry.RegistryBiome,
	registry.RegistryDamageType,
}

// handleConfiguration awaits the client's acknowledgement that every
// registry batch arrived, then transitions to play (§4.7).
func (s *Session) handleConfiguration(id int32, ctx *Context) error {
	if id != protocol.IDConfigAckFinish {
		return nil
	}
	s.enterPlay(ctx)
	return nil
}

// enterPlay sends the fixed play-entry packet sequence exactly once
// (§8 scenario 5: "the server must send exactly one Login-Play packet
// in that transition") and registers the player in the world table.
func (s *Session) enterPlay(ctx *Context) {
	s.State = StatePlay

	var spawn world.SpawnPoint
	if ctx != nil && ctx.World != nil {
		spawn = ctx.World.Spawn
	}

	s.Send(protocol.IDPlayLoginPlay, protocol.LoginPlay{
		EntityID:         s.EntityID,
		Hardcore:         false,
		GameMode:         0,
		ViewDistance:     s.ViewDistance,
		ReducedDebugInfo: false,
		DimensionName:    "minecraft:overworld",
	}.Encode(nil))

	s.Send(protocol.IDPlaySpawnPosition, protocol.SpawnPosition{
		X: spawn.X, Z: spawn.Z, Y: spawn.Y, Angle: spawn.Angle,
	}.Encode(nil))

	s.teleportID++
	s.Send(protocol.IDPlaySyncPosition, protocol.SynchronizePlayerPosition{
		X: float64(spawn.X), Y: float64(spawn.Y), Z: float64(spawn.Z),
		Yaw: 0, Pitch: 0, Flags: 0, TeleportID: s.teleportID,
	}.Encode(nil))

	if ctx != nil && ctx.World != nil {
		ctx.World.AddPlayer(&world.Player{
			UUID:     s.UUID,
			Username: s.Username,
			X:        float64(spawn.X),
			Y:        float64(spawn.Y),
			Z:        float64(spawn.Z),
			Health:   20,
		})
		// Seed the keepalive clock at the current tick so a session
		// joining late in the server's uptime isn't immediately judged
		// timed out before its first real keepalive round-trip.
		s.lastKeepAliveSentTick = ctx.World.TickCounter
		s.lastKeepAliveRecvTick = ctx.World.TickCounter
	}
}
