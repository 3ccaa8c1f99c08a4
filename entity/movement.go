package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MovementComputer carries the physical constants a mob moves under.
// Grounded on the reference server's fixed per-tick gravity/drag model
// rather than a per-block friction table, since the target platform has
// no room for a full physics engine.
type MovementComputer struct {
	Gravity float64
	Drag    float64
}

// DefaultMovementComputer matches ordinary ground mob movement: light
// gravity, light air drag.
var DefaultMovementComputer = MovementComputer{Gravity: 0.08, Drag: 0.02}

const collisionEpsilon = 0.001

// TickMovement applies gravity and drag to m.Vel, resolves collisions
// against q one axis at a time, and updates m.Pos and m.onGround in
// place (§4.8 step 4 "move -> collide").
func (c MovementComputer) TickMovement(m *Mob, q BlockQuerier) {
	vel := m.Vel
	vel[1] -= c.Gravity
	vel[0] *= 1 - c.Drag
	vel[2] *= 1 - c.Drag
	vel[1] *= 1 - c.Drag

	dx := c.resolveAxis(q, m.Pos, vel, 0)
	pos := m.Pos
	pos[0] += dx
	dy := c.resolveAxis(q, pos, vel, 1)
	pos[1] += dy
	dz := c.resolveAxis(q, pos, vel, 2)
	pos[2] += dz

	if dy != vel[1] {
		m.onGround = vel[1] < 0
		vel[1] = 0
	} else {
		m.onGround = false
	}
	if dx != vel[0] {
		vel[0] = 0
	}
	if dz != vel[2] {
		vel[2] = 0
	}

	m.Pos = pos
	m.Vel = vel
}

// resolveAxis returns the actual delta for vel[axis] after clipping
// against any solid block the mob's single-point collider would enter.
// The reference world generator has no per-block collision shapes (it
// is a pure voxel palette), so a mob is treated as occupying the single
// column of blocks from its feet to one block above.
func (c MovementComputer) resolveAxis(q BlockQuerier, pos mgl64.Vec3, vel mgl64.Vec3, axis int) float64 {
	delta := vel[axis]
	if delta == 0 {
		return 0
	}

	next := pos
	next[axis] += delta
	for _, dy := range []float64{0, 1} {
		bx := int32(math.Floor(next[0]))
		by := uint8(math.Floor(next[1] + dy))
		bz := int32(math.Floor(next[2]))
		if q.IsSolid(bx, by, bz) {
			return 0
		}
	}
	return delta
}
