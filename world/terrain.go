package world

// GenConfig holds the tunables §6 lists for the terrain generator. All
// fields have sane defaults (see DefaultGenConfig) but are fully
// configurable per §6.
type GenConfig struct {
	Seed             uint32
	TerrainBaseHeight int32
	CaveBaseDepth    int32
	BiomeSize        int32
	BiomeRadius      int32
	ChestsEnabled    bool
}

// DefaultGenConfig returns the generator defaults used when a server is
// started without an existing config file.
func DefaultGenConfig(seed uint32) GenConfig {
	return GenConfig{
		Seed:              seed,
		TerrainBaseHeight: 64,
		CaveBaseDepth:     32,
		BiomeSize:         8,
		BiomeRadius:       3,
	}
}

// Generator produces deterministic terrain from a GenConfig. It holds no
// mutable state of its own; every method is a pure function of its
// arguments and the config, which is what makes buildSection's determinism
// guarantee (§8) possible.
type Generator struct {
	Config GenConfig
}

// NewGenerator returns a Generator for the given configuration. The world
// seed itself is hashed twice through splitmix64 before first use (§3); the
// caller (world.New) is responsible for that pre-mixing, Config.Seed is
// expected to already be the mixed value.
func NewGenerator(cfg GenConfig) *Generator {
	return &Generator{Config: cfg}
}

func (g *Generator) anchorAt(cx, cz int32) Anchor {
	return NewAnchor(cx, cz, g.Config.Seed, g.Config.BiomeSize, g.Config.BiomeRadius)
}

// heightAtFromAnchors is getHeightAtFromAnchors: bilinear interpolation of
// the four corner anchors' heights, with a peak-sharpening rule applied
// exactly on the chunk's own (0,0) corner.
func heightAtFromAnchors(rx, rz int32, corners [4]Anchor, baseHeight int32) uint8 {
	if rx == 0 && rz == 0 {
		h := CornerHeight(corners[0].Hash, corners[0].Biome, baseHeight)
		if h > 67 {
			return h - 1
		}
		return h
	}
	a := CornerHeight(corners[0].Hash, corners[0].Biome, baseHeight)
	b := CornerHeight(corners[1].Hash, corners[1].Biome, baseHeight)
	c := CornerHeight(corners[2].Hash, corners[2].Biome, baseHeight)
	d := CornerHeight(corners[3].Hash, corners[3].Biome, baseHeight)
	return interpolate(a, b, c, d, rx, rz)
}

// HeightAt is getHeightAt: the terrain height at an arbitrary world column,
// ignoring block changes.
func (g *Generator) HeightAt(x, z int32) uint8 {
	cx := floorDiv(x, SectionSize)
	cz := floorDiv(z, SectionSize)
	rx := modAbs(x, SectionSize)
	rz := modAbs(z, SectionSize)

	corners := [4]Anchor{
		g.anchorAt(cx, cz),
		g.anchorAt(cx+1, cz),
		g.anchorAt(cx, cz+1),
		g.anchorAt(cx+1, cz+1),
	}
	return heightAtFromAnchors(rx, rz, corners, g.Config.TerrainBaseHeight)
}

// featureFromAnchor is getFeatureFromAnchor: derives the chunk's optional
// decoration from its anchor hash (§4.3). The variant is bit
// ((worldX+worldZ) mod 32) of the anchor hash, so the shift amount is
// always in 0..31.
func (g *Generator) featureFromAnchor(anchor Anchor, corners [4]Anchor) Feature {
	featurePos := int32(anchor.Hash % (SectionSize * SectionSize))
	fx := featurePos % SectionSize
	fz := featurePos / SectionSize

	skip := false
	if anchor.Biome != BiomeSwamp {
		if fx < 3 || fx > SectionSize-3 {
			skip = true
		} else if fz < 3 || fz > SectionSize-3 {
			skip = true
		}
	}

	if skip {
		return Feature{Y: NoFeature}
	}

	worldX := fx + anchor.CX*SectionSize
	worldZ := fz + anchor.CZ*SectionSize
	h := heightAtFromAnchors(modAbs(worldX, SectionSize), modAbs(worldZ, SectionSize), corners, g.Config.TerrainBaseHeight)
	variant := uint8((anchor.Hash >> uint(((worldX+worldZ)%32+32)%32)) & 1)

	return Feature{X: worldX, Z: worldZ, Y: h + 1, Variant: variant}
}

func absDelta(a, b int32) uint8 {
	if a > b {
		return uint8(a - b)
	}
	return uint8(b - a)
}

// terrainAt is getTerrainAtFromCache: resolves the single block at (x, y, z)
// given the precomputed anchor, feature and interpolated height for its
// containing chunk (§4.3 "Per-voxel resolution").
func (g *Generator) terrainAt(x, y, z int32, anchor Anchor, feature Feature, height uint8) Block {
	h := int32(height)

	if y >= 64 && y >= h && feature.Y != NoFeature {
		switch anchor.Biome {
		case BiomePlains:
			if feature.Y >= 64 {
				if x == feature.X && z == feature.Z {
					if y == int32(feature.Y)-1 {
						return BlockDirt
					}
					if y >= int32(feature.Y) && y < int32(feature.Y)-int32(feature.Variant)+6 {
						return BlockOakLog
					}
				}
				dx := absDelta(x, feature.X)
				dz := absDelta(z, feature.Z)
				fy := int32(feature.Y)
				fv := int32(feature.Variant)
				if dx < 3 && dz < 3 && y > fy-fv+2 && y < fy-fv+5 {
					if !(y == fy-fv+4 && dx == 2 && dz == 2) {
						return BlockOakLeaves
					}
				} else if dx < 2 && dz < 2 && y >= fy-fv+5 && y <= fy-fv+6 {
					if !(y == fy-fv+6 && dx == 1 && dz == 1) {
						return BlockOakLeaves
					}
				} else {
					if y == h {
						return BlockGrass
					}
					return BlockAir
				}
			}
		case BiomeDesert:
			if x == feature.X && z == feature.Z {
				if feature.Variant == 0 {
					if y == h+1 {
						return BlockDeadBush
					}
				} else if y > h {
					if h&1 == 1 && y <= h+3 {
						return BlockCactus
					}
					if y <= h+2 {
						return BlockCactus
					}
				}
			}
		case BiomeSwamp:
			if x == feature.X && z == feature.Z && y == 64 && h < 63 {
				return BlockLilyPad
			}
			if y == h+1 {
				dx := absDelta(x, feature.X)
				dz := absDelta(z, feature.Z)
				if int32(dx)+int32(dz) < 4 {
					return BlockMossCarpet
				}
			}
		case BiomeSnowyPlains:
			if x == feature.X && z == feature.Z && y == h+1 && h >= 64 {
				return BlockShortGrass
			}
		}
	}

	if h >= 63 {
		if y == h {
			switch anchor.Biome {
			case BiomeSwamp:
				return BlockMud
			case BiomeSnowyPlains:
				return BlockSnowyGrass
			case BiomeDesert, BiomeBeach:
				return BlockSand
			default:
				return BlockGrass
			}
		}
		if anchor.Biome == BiomeSnowyPlains && y == h+1 {
			return BlockSnow
		}
	}

	if y <= h-4 {
		gap := h - g.Config.TerrainBaseHeight
		if y < g.Config.CaveBaseDepth+gap && y > g.Config.CaveBaseDepth-gap {
			return BlockAir
		}

		rx := modAbs(x, SectionSize)
		rz := modAbs(z, SectionSize)
		oreY := uint8((rx&15)<<4) + uint8(rz&15)
		oreY ^= oreY << 4
		oreY ^= oreY >> 5
		oreY ^= oreY << 1
		oreY &= 63

		if y == int32(oreY) {
			oreProbability := uint8(anchor.Hash>>(uint32(oreY)%24)) & 0xFF
			switch {
			case y < 15:
				switch {
				case oreProbability < 10:
					return BlockDiamondOre
				case oreProbability < 12:
					return BlockGoldOre
				case oreProbability < 15:
					return BlockRedstoneOre
				}
			case y < 30:
				switch {
				case oreProbability < 3:
					return BlockGoldOre
				case oreProbability < 8:
					return BlockRedstoneOre
				}
			case y < 54:
				switch {
				case oreProbability < 30:
					return BlockIronOre
				case oreProbability < 40:
					return BlockCopperOre
				}
			}
			if oreProbability < 60 {
				return BlockCoalOre
			}
			if y < 5 {
				return BlockLava
			}
			return BlockStone
		}
		return BlockStone
	}

	if y <= h {
		switch anchor.Biome {
		case BiomeDesert:
			return BlockSandstone
		case BiomeSwamp:
			return BlockMud
		case BiomeBeach:
			if h > 64 {
				return BlockSandstone
			}
		}
		return BlockDirt
	}

	if y == 63 && anchor.Biome == BiomeSnowyPlains {
		return BlockIce
	}
	if y < 64 {
		return BlockWater
	}

	return BlockAir
}

// BuildFresh generates section (cx, cy, cz) directly from terrain with no
// cache involved; this is the "cache-bypass" reference used by the cache
// transparency property (§8).
func (g *Generator) BuildFresh(cx, cy, cz int32) (Section, Biome) {
	corners := [4]Anchor{
		g.anchorAt(cx, cz),
		g.anchorAt(cx+1, cz),
		g.anchorAt(cx, cz+1),
		g.anchorAt(cx+1, cz+1),
	}
	anchor := corners[0]
	feature := g.featureFromAnchor(anchor, corners)

	var heights [SectionSize][SectionSize]uint8
	for lx := int32(0); lx < SectionSize; lx++ {
		for lz := int32(0); lz < SectionSize; lz++ {
			heights[lx][lz] = heightAtFromAnchors(lx, lz, corners, g.Config.TerrainBaseHeight)
		}
	}

	var sec Section
	baseX := cx * SectionSize
	baseY := cy * SectionSize
	baseZ := cz * SectionSize
	for ly := int32(0); ly < SectionSize; ly++ {
		wy := baseY + ly
		for lz := int32(0); lz < SectionSize; lz++ {
			wz := baseZ + lz
			for lx := int32(0); lx < SectionSize; lx++ {
				wx := baseX + lx
				block := g.terrainAt(wx, wy, wz, anchor, feature, heights[lx][lz])
				sec.Set(int(lx), int(ly), int(lz), block)
			}
		}
	}

	return sec, anchor.Biome
}
