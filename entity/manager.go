package entity

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Update is one mob's resulting position/rotation/velocity for a tick,
// handed to the session layer to encode as outbound packets.
type Update struct {
	EntityID   int32
	Pos        mgl64.Vec3
	Yaw, Pitch float32
	Vel        mgl64.Vec3
	OnGround   bool
	// Keyframe is true for an interpolation keyframe sent between real
	// ticks (§4.8 step 4, ENABLE_OPTIN_MOB_INTERPOLATION); false for a
	// normal tick's own update.
	Keyframe bool
}

// Manager owns the live mob table and assigns entity IDs (§4.1
// "Ownership" extends to entity IDs: only the main loop mutates this).
type Manager struct {
	mobs     map[int32]*Mob
	nextID   int32
	Move     MovementComputer
	Interpolate bool
}

// NewManager returns an empty mob table. firstEntityID should sit above
// the highest player entity ID the session layer hands out, so mob and
// player IDs never collide.
func NewManager(firstEntityID int32) *Manager {
	return &Manager{mobs: make(map[int32]*Mob), nextID: firstEntityID, Move: DefaultMovementComputer}
}

// Spawn creates and registers a new mob, returning it.
func (m *Manager) Spawn(kind Kind, pos mgl64.Vec3) *Mob {
	id := m.nextID
	m.nextID++
	mob := NewMob(id, kind, pos)
	m.mobs[id] = mob
	return mob
}

// Remove deletes a mob from the table (death or despawn).
func (m *Manager) Remove(id int32) {
	delete(m.mobs, id)
}

// Get returns the mob with the given entity ID, if any.
func (m *Manager) Get(id int32) (*Mob, bool) {
	mob, ok := m.mobs[id]
	return mob, ok
}

// Len reports the number of live mobs.
func (m *Manager) Len() int {
	return len(m.mobs)
}

// Tick runs AI, movement and collision for every mob and returns the
// per-mob updates to broadcast (§4.8 step 4).
func (m *Manager) Tick(tick int64, q BlockQuerier, players PlayerPosition) []Update {
	updates := make([]Update, 0, len(m.mobs))
	for _, mob := range m.mobs {
		mob.Step(tick, players)
		m.Move.TickMovement(mob, q)
		updates = append(updates, Update{
			EntityID: mob.EntityID,
			Pos:      mob.Pos,
			Yaw:      mob.Yaw,
			Pitch:    mob.Pitch,
			Vel:      mob.Vel,
			OnGround: mob.OnGround(),
		})
	}
	return updates
}

// Keyframes produces intermediate interpolation updates between two real
// ticks, linearly blending each mob's position by t in [0, 1]. Used only
// when ENABLE_OPTIN_MOB_INTERPOLATION is set (§4.8 step 4).
func (m *Manager) Keyframes(t float64) []Update {
	if !m.Interpolate {
		return nil
	}
	updates := make([]Update, 0, len(m.mobs))
	for _, mob := range m.mobs {
		pos := mob.Pos.Sub(mob.Vel.Mul(1 - t))
		updates = append(updates, Update{
			EntityID: mob.EntityID,
			Pos:      pos,
			Yaw:      mob.Yaw,
			Pitch:    mob.Pitch,
			Vel:      mob.Vel,
			OnGround: mob.OnGround(),
			Keyframe: true,
		})
	}
	return updates
}
