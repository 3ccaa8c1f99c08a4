package world

import "github.com/tannerfokkens-maker/MacintoshCraft/internal/xhash"

// Anchor is the per-chunk record terrain, features and ores are derived
// from (§3). It is cheap to recompute: callers are expected to derive it on
// demand rather than store it long-term, except inside one BuildFresh
// call where the chunk's four corner anchors are kept for the duration.
type Anchor struct {
	CX, CZ int32
	Hash   uint32
	Biome  Biome
}

// ChunkHash is getChunkHash from the reference generator: splitmix64 of the
// packed (cx, cz, seed) triple, truncated to 32 bits.
func ChunkHash(cx, cz int32, seed uint32) uint32 {
	return xhash.AnchorHash(cx, cz, seed)
}

// FloorDiv divides a by b with floor semantics (negative-safe), the
// rule §3 requires for deriving chunk coordinates from world
// coordinates: floorDiv(-5, 16) == -1, not 0.
func FloorDiv(a, b int32) int32 {
	return floorDiv(a, b)
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func modAbs(a, b int32) int32 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func absI8(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// ChunkBiome is getChunkBiome: biomes tile BIOME_SIZE x BIOME_SIZE chunk
// regions as circular islands of radius BIOME_RADIUS, with the area
// outside every disk filling in as beach (§4.3).
func ChunkBiome(cx, cz int32, seed uint32, biomeSize, biomeRadius int32) Biome {
	x := cx + biomeRadius
	z := cz + biomeRadius

	dx := biomeRadius - modAbs(x, biomeSize)
	dz := biomeRadius - modAbs(z, biomeSize)
	if dx*dx+dz*dz > biomeRadius*biomeRadius {
		return BiomeBeach
	}

	biomeX := floorDiv(x, biomeSize)
	biomeZ := floorDiv(z, biomeSize)

	index := absI8((biomeX & 3) + ((biomeZ * 4) & 15))
	return Biome((seed >> uint(index*2)) & 3)
}

// NewAnchor derives the full chunk anchor for (cx, cz) under the generator
// configuration.
func NewAnchor(cx, cz int32, seed uint32, biomeSize, biomeRadius int32) Anchor {
	return Anchor{
		CX:    cx,
		CZ:    cz,
		Hash:  ChunkHash(cx, cz, seed),
		Biome: ChunkBiome(cx, cz, seed, biomeSize, biomeRadius),
	}
}

// CornerHeight is getCornerHeight: a height offset from baseHeight derived
// from hash-slice remainders, one formula per biome (§4.3). These formulas
// are the world's identity and must match the reference bit-for-bit.
func CornerHeight(hash uint32, biome Biome, baseHeight int32) uint8 {
	height := baseHeight

	switch biome {
	case BiomeSwamp:
		height += int32((hash % 3) + ((hash >> 4) % 3) + ((hash >> 8) % 3) + ((hash >> 12) % 3))
		if height < 64 {
			height -= int32((hash >> 24) & 3)
		}
	case BiomePlains:
		height += int32((hash & 3) + (hash >> 4 & 3) + (hash >> 8 & 3) + (hash >> 12 & 3))
	case BiomeDesert:
		height += 4 + int32((hash&3)+(hash>>4&3))
	case BiomeBeach:
		height = 62 - int32((hash&3)+(hash>>4&3)+(hash>>8&3))
	case BiomeSnowyPlains:
		height += int32((hash & 7) + (hash >> 4 & 7))
	}

	return uint8(height)
}

// interpolate is the reference bilinear blend of four corner heights across
// a 16x16 chunk, evaluated at local coordinates (x, z).
func interpolate(a, b, c, d uint8, x, z int32) uint8 {
	const chunkSize = int32(SectionSize)
	top := int32(a)*(chunkSize-x) + int32(b)*x
	bottom := int32(c)*(chunkSize-x) + int32(d)*x
	return uint8((top*(chunkSize-z) + bottom*z) / (chunkSize * chunkSize))
}

// Feature is the optional per-chunk decoration (§3). Y == 0xFF means "no
// feature this chunk".
type Feature struct {
	X, Z    int32
	Y       uint8
	Variant uint8
}

// NoFeature is the sentinel Y value meaning "no feature this chunk".
const NoFeature = 0xFF
