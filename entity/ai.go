package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// PlayerPosition is the minimal player-lookup surface AI needs to pick
// and chase a target (§3 "target_player?").
type PlayerPosition interface {
	// Positions calls fn once per connected player with their UUID and
	// current position.
	Positions(fn func(id uuid.UUID, pos mgl64.Vec3))
}

// aggroRadius is how far a hostile mob will notice a player; giveUpRadius
// is how far it will chase before losing interest.
const (
	aggroRadius  = 16
	giveUpRadius = 24
	hostileSpeed = 0.1
	wanderSpeed  = 0.05
)

// Step runs one AI tick for m: hostile kinds acquire and chase the
// nearest player in range, passive kinds wander (§4.8 step 4 "AI step").
// It only sets m.Vel's horizontal components; TickMovement applies
// gravity and resolves collisions separately.
func (m *Mob) Step(tick int64, players PlayerPosition) {
	m.LastTick = tick

	switch m.Kind {
	case KindCow:
		m.wander(tick)
	case KindZombie, KindSkeleton:
		m.hunt(players)
	}
}

func (m *Mob) hunt(players PlayerPosition) {
	var (
		bestID   uuid.UUID
		bestPos  mgl64.Vec3
		bestDist = float64(giveUpRadius * giveUpRadius)
		found    bool
	)
	players.Positions(func(id uuid.UUID, pos mgl64.Vec3) {
		d := pos.Sub(m.Pos).LenSqr()
		if d < bestDist {
			bestDist = d
			bestPos = pos
			bestID = id
			found = true
		}
	})

	if !found || bestDist > aggroRadius*aggroRadius && !m.HasTarget {
		m.HasTarget = false
		m.Vel[0] *= 0.8
		m.Vel[2] *= 0.8
		return
	}
	if bestDist > giveUpRadius*giveUpRadius {
		m.HasTarget = false
		return
	}

	m.HasTarget = true
	m.TargetPlayer = bestID

	dir := bestPos.Sub(m.Pos)
	dir[1] = 0
	if l := dir.Len(); l > 0.01 {
		dir = dir.Mul(hostileSpeed / l)
		m.Vel[0] = dir[0]
		m.Vel[2] = dir[2]
		m.Yaw = yawTowards(dir)
	}
}

// wander is a deterministic, lazy drift: every 40 ticks a passive mob
// takes a new horizontal heading derived from its entity ID and the tick
// number, and between those ticks its velocity is left unchanged. No
// real randomness is sampled per mob per tick.
func (m *Mob) wander(tick int64) {
	if tick%40 != 0 {
		return
	}
	angle := float64((uint32(m.EntityID)*2654435761 + uint32(tick)) % 360)
	rad := angle * (math.Pi / 180)
	m.Vel[0] = wanderSpeed * math.Cos(rad)
	m.Vel[2] = wanderSpeed * math.Sin(rad)
}

func yawTowards(dir mgl64.Vec3) float32 {
	return float32(math.Atan2(dir[0], dir[2]) * (180 / math.Pi))
}
