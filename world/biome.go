package world

// Biome selects the surface blocks and feature kinds a chunk generates
// with (§3, §4.3).
type Biome uint8

const (
	BiomePlains Biome = iota
	BiomeDesert
	BiomeSwamp
	BiomeSnowyPlains
	BiomeBeach
)

func (b Biome) String() string {
	switch b {
	case BiomePlains:
		return "plains"
	case BiomeDesert:
		return "desert"
	case BiomeSwamp:
		return "mangrove_swamp"
	case BiomeSnowyPlains:
		return "snowy_plains"
	case BiomeBeach:
		return "beach"
	default:
		return "plains"
	}
}
