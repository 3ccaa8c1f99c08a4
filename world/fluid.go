package world

// FluidQueue tracks block coordinates that need a fluid-flow
// reconsideration on the next fluid tick (§4.8 step 3). Block break and
// place handlers push the edited coordinate and its four horizontal
// neighbours plus the cell below; the scheduler drains it once per
// fluid tick rather than scanning the whole loaded area.
//
// This is sketched only loosely by the reference sources (the fluid and
// mob-AI rules were explicitly left for extraction from remaining
// material that wasn't included in this pack), so the flow rule here is
// the conventional single-step breadth-first spread used by the
// original game: a source block spreads into adjacent air one cell
// lower or sideways per tick, capped at a short travel distance.
type FluidQueue struct {
	pending []fluidCoord
	seen    map[fluidCoord]struct{}
}

type fluidCoord struct {
	X, Z int32
	Y    uint8
}

const maxFluidSpread = 4

// NewFluidQueue returns an empty queue.
func NewFluidQueue() *FluidQueue {
	return &FluidQueue{seen: make(map[fluidCoord]struct{})}
}

// Push schedules (x, y, z) and its immediate neighbours for reconsideration.
func (q *FluidQueue) Push(x int32, y uint8, z int32) {
	q.push(x, y, z)
	q.push(x+1, y, z)
	q.push(x-1, y, z)
	q.push(x, y, z+1)
	q.push(x, y, z-1)
	if y > 0 {
		q.push(x, y-1, z)
	}
}

func (q *FluidQueue) push(x int32, y uint8, z int32) {
	c := fluidCoord{X: x, Y: y, Z: z}
	if _, ok := q.seen[c]; ok {
		return
	}
	q.seen[c] = struct{}{}
	q.pending = append(q.pending, c)
}

// Step runs one fluid tick: every pending cell is resolved against the
// current world state and, where the flow advances, the newly wetted
// cells are re-queued so the next tick continues the spread. Cells are
// dropped from the queue as soon as they are processed, matching the
// "active cells adjacent to recent block changes" wording of §4.8.3.
func (w *World) StepFluid() {
	if w.fluid == nil || !w.DoFluidFlow {
		return
	}
	batch := w.fluid.pending
	w.fluid.pending = nil
	w.fluid.seen = make(map[fluidCoord]struct{})

	for _, c := range batch {
		w.resolveFluidCell(c)
	}
}

func (w *World) resolveFluidCell(c fluidCoord) {
	source := w.blockAt(c.X, c.Y, c.Z)
	if source != BlockWater && source != BlockLava {
		return
	}

	spread := func(x int32, y uint8, z int32) {
		if w.blockAt(x, y, z) != BlockAir {
			return
		}
		if !w.withinSpreadDistance(c, x, y, z) {
			return
		}
		if _, err := w.SetBlock(x, y, z, source); err == nil {
			w.fluid.Push(x, y, z)
		}
	}

	if c.Y > 0 {
		spread(c.X, c.Y-1, c.Z)
	}
	spread(c.X+1, c.Y, c.Z)
	spread(c.X-1, c.Y, c.Z)
	spread(c.X, c.Y, c.Z+1)
	spread(c.X, c.Y, c.Z-1)
}

func (w *World) withinSpreadDistance(from fluidCoord, x int32, y uint8, z int32) bool {
	dx := from.X - x
	if dx < 0 {
		dx = -dx
	}
	dz := from.Z - z
	if dz < 0 {
		dz = -dz
	}
	return dx <= maxFluidSpread && dz <= maxFluidSpread
}
