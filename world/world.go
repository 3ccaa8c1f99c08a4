package world

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/tannerfokkens-maker/MacintoshCraft/internal/xhash"
)

// Weather is the world's current precipitation state (§4.8 "game-event
// (weather)").
type Weather uint8

const (
	WeatherClear Weather = iota
	WeatherRain
)

// SpawnPoint is the fixed location new and respawning players land at.
type SpawnPoint struct {
	X, Z  int32
	Y     int16
	Angle float32
}

// Player is the server's record of a connected or disconnected-but-
// persisted client (§3 "world state"). Its inventory lives in the
// inventory package; World only tracks identity and position here.
type Player struct {
	UUID       uuid.UUID
	Username   string
	X, Y, Z    float64
	Yaw, Pitch float32
	OnGround   bool
	Health     float32
}

// World is the process-wide game state singleton (§3 "World state"):
// seed, clocks, weather, spawn point, and the player/entity tables, plus
// the chunk cache and block-change index that back them. A World is
// owned entirely by the server's main loop; nothing outside it mutates
// these fields concurrently (§4.1 "Ownership").
type World struct {
	log *slog.Logger

	Seed         uint32
	DayTimeTicks int64
	TickCounter  int64
	Weather      Weather
	Spawn        SpawnPoint

	// Players is keyed by UUID; live non-player entities are owned and
	// ticked by the entity package's Manager rather than stored here, to
	// keep world free of a dependency on entity behavior code.
	Players map[uuid.UUID]*Player

	Cache   *Cache
	Changes *ChangeIndex
	Gen     *Generator

	ChestsEnabled bool
	DoFluidFlow   bool

	fluid *FluidQueue
}

// Config collects the tunables §6 lists for constructing a World.
type Config struct {
	Logger            *slog.Logger
	Seed              uint32
	CacheCapacity     int
	MaxBlockChanges   int
	TerrainBaseHeight int32
	CaveBaseDepth     int32
	BiomeSize         int32
	BiomeRadius       int32
	ChestsEnabled     bool
	DoFluidFlow       bool
}

// New builds the World singleton for cfg. The seed is hashed twice
// through splitmix64 before any generation happens, per §3: the raw
// configured seed is never handed to the generator directly.
func New(cfg Config) *World {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	mixed := xhash.Splitmix64(xhash.Splitmix64(uint64(cfg.Seed)))
	seed := uint32(mixed)

	genCfg := GenConfig{
		Seed:              seed,
		TerrainBaseHeight: cfg.TerrainBaseHeight,
		CaveBaseDepth:     cfg.CaveBaseDepth,
		BiomeSize:         cfg.BiomeSize,
		BiomeRadius:       cfg.BiomeRadius,
		ChestsEnabled:     cfg.ChestsEnabled,
	}
	if genCfg.TerrainBaseHeight == 0 {
		genCfg.TerrainBaseHeight = 64
	}
	if genCfg.CaveBaseDepth == 0 {
		genCfg.CaveBaseDepth = 32
	}
	if genCfg.BiomeSize == 0 {
		genCfg.BiomeSize = 8
	}
	if genCfg.BiomeRadius == 0 {
		genCfg.BiomeRadius = 3
	}

	capacity := cfg.CacheCapacity
	if capacity == 0 {
		capacity = 4096
	}
	maxChanges := cfg.MaxBlockChanges
	if maxChanges == 0 {
		maxChanges = 4096
	}

	return &World{
		log:           log,
		Seed:          seed,
		Spawn:         SpawnPoint{X: 0, Z: 0, Y: int16(DefaultGenConfig(seed).TerrainBaseHeight) + 2},
		Players:       make(map[uuid.UUID]*Player),
		Cache:         NewCache(capacity),
		Changes:       NewChangeIndex(maxChanges),
		Gen:           NewGenerator(genCfg),
		ChestsEnabled: cfg.ChestsEnabled,
		DoFluidFlow:   cfg.DoFluidFlow,
		fluid:         NewFluidQueue(),
	}
}

// BuildSection is the world-level convenience wrapper around the
// cache's composite buildSection operation (§4.4).
func (w *World) BuildSection(cx, cy, cz int32) (Section, Biome) {
	return w.Cache.BuildSection(cx, cy, cz, w.Gen, w.Changes, w.ChestsEnabled)
}

// SetBlock updates the block-change overlay at (x, y, z), invalidates
// the containing cache section, and returns the previous block. This is
// the single entry point block break/place handlers call (§4.7).
func (w *World) SetBlock(x int32, y uint8, z int32, block Block) (previous Block, err error) {
	previous = w.blockAt(x, y, z)
	if err := w.Changes.Set(x, y, z, block); err != nil {
		return previous, err
	}
	w.Cache.Invalidate(x, y, z)
	if w.DoFluidFlow {
		w.fluid.Push(x, y, z)
	}
	return previous, nil
}

// BlockAt returns the block at (x, y, z), consulting the block-change
// overlay before falling back to the generated section (§4.7 handlers
// that need to inspect a target block before acting on it, e.g. block
// placement's use-item-on-block check).
func (w *World) BlockAt(x int32, y uint8, z int32) Block {
	return w.blockAt(x, y, z)
}

func (w *World) blockAt(x int32, y uint8, z int32) Block {
	if b, ok := w.Changes.Lookup(x, y, z); ok {
		return b
	}
	cx := floorDiv(x, SectionSize)
	cy := int32(y) / SectionSize
	cz := floorDiv(z, SectionSize)
	sec, _ := w.BuildSection(cx, cy, cz)
	return sec.At(int(modAbs(x, SectionSize)), int(y)%SectionSize, int(modAbs(z, SectionSize)))
}

// IsSolid reports whether (x, y, z) holds a block mobs collide with.
// Satisfies entity.BlockQuerier.
func (w *World) IsSolid(x int32, y uint8, z int32) bool {
	switch w.blockAt(x, y, z) {
	case BlockAir, BlockWater, BlockLava:
		return false
	default:
		return true
	}
}

// HeightAt returns the terrain height at (x, z), ignoring block changes
// (§4.3 "Per-chunk composite").
func (w *World) HeightAt(x, z int32) uint8 {
	return w.Gen.HeightAt(x, z)
}

// AddPlayer registers a newly-joined player.
func (w *World) AddPlayer(p *Player) {
	w.Players[p.UUID] = p
}

// Positions calls fn once per connected player. Satisfies
// entity.PlayerPosition without the entity package needing to import
// world.
func (w *World) Positions(fn func(id uuid.UUID, pos mgl64.Vec3)) {
	for id, p := range w.Players {
		fn(id, mgl64.Vec3{p.X, p.Y, p.Z})
	}
}

// RemovePlayer drops a disconnected player's live state.
func (w *World) RemovePlayer(id uuid.UUID) {
	delete(w.Players, id)
}

// Tick advances day_time_ticks and the tick counter by one server tick
// (§4.8 step 2); callers decide the broadcast cadence separately.
func (w *World) Tick() {
	w.TickCounter++
	w.DayTimeTicks++
}
