// Package entity implements the mob table and its per-tick AI, movement
// and collision steps (§3 "Entity (mob)", §4.8 step 4). It depends only
// on world's block queries, never the other way around, so the world
// package stays free of gameplay AI.
package entity

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Kind identifies a mob species. The palette is deliberately small: the
// reference server's memory budget has no room for a full mob roster.
type Kind uint8

const (
	KindZombie Kind = iota
	KindCow
	KindSkeleton
)

// BlockQuerier is the minimal world surface AI and collision need: a
// solidity test at a block coordinate. world.World satisfies it.
type BlockQuerier interface {
	IsSolid(x int32, y uint8, z int32) bool
}

// Mob is one entity's live state (§3). EntityID is the network ID sent
// in movement and spawn packets; it is assigned by the Manager and
// never reused while the mob is alive.
type Mob struct {
	EntityID     int32
	Kind         Kind
	Pos          mgl64.Vec3
	Vel          mgl64.Vec3
	Yaw, Pitch   float32
	Health       float32
	TargetPlayer uuid.UUID
	HasTarget    bool
	LastTick     int64
	onGround     bool
}

// MaxHealth is the starting and maximum health for every mob kind; the
// reference server has no per-kind health curve.
const MaxHealth = 20

// NewMob returns a freshly spawned mob of kind at pos, with full health
// and zero velocity.
func NewMob(id int32, kind Kind, pos mgl64.Vec3) *Mob {
	return &Mob{EntityID: id, Kind: kind, Pos: pos, Health: MaxHealth}
}

// OnGround reports whether the mob's last collision step left it
// resting on a solid block.
func (m *Mob) OnGround() bool {
	return m.onGround
}
