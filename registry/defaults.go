package registry

// Registry IDs the configuration state sends before play begins.
const (
	RegistryDimensionType = "minecraft:dimension_type"
	RegistryBiome         = "minecraft:worldgen/biome"
	RegistryDamageType    = "minecraft:damage_type"
)

// overworldDimension is the single dimension type the server exposes;
// field names and defaults follow the vanilla "overworld" entry.
type overworldDimension struct {
	PiglinSafe         byte    `nbt:"piglin_safe"`
	Natural            byte    `nbt:"natural"`
	AmbientLight       float32 `nbt:"ambient_light"`
	FixedTime          int64   `nbt:"fixed_time,omitempty"`
	Infiniburn         string  `nbt:"infiniburn"`
	RespawnAnchorWorks byte    `nbt:"respawn_anchor_works"`
	HasSkylight        byte    `nbt:"has_skylight"`
	BedWorks           byte    `nbt:"bed_works"`
	Effects            string  `nbt:"effects"`
	HasRaids           byte    `nbt:"has_raids"`
	MinY               int32   `nbt:"min_y"`
	Height             int32   `nbt:"height"`
	LogicalHeight      int32   `nbt:"logical_height"`
	CoordinateScale    float64 `nbt:"coordinate_scale"`
	Ultrawarm          byte    `nbt:"ultrawarm"`
	HasCeiling         byte    `nbt:"has_ceiling"`
}

type biomeEffects struct {
	SkyColor    int32 `nbt:"sky_color"`
	FogColor    int32 `nbt:"fog_color"`
	WaterColor  int32 `nbt:"water_color"`
	WaterFogColor int32 `nbt:"water_fog_color"`
}

type biomeEntry struct {
	HasPrecipitation byte         `nbt:"has_precipitation"`
	Temperature      float32      `nbt:"temperature"`
	Downfall         float32      `nbt:"downfall"`
	Effects          biomeEffects `nbt:"effects"`
}

type damageType struct {
	MessageID    string  `nbt:"message_id"`
	Scaling      string  `nbt:"scaling"`
	Exhaustion   float32 `nbt:"exhaustion"`
	DeathMessage string  `nbt:"death_message_type,omitempty"`
}

// Bootstrap populates s with the minimal registry set the server needs
// to complete the configuration state: one dimension, the handful of
// biomes the generator can produce, and the damage types mob attacks
// and fall damage reference. Safe to call repeatedly; later calls
// overwrite identical entries.
func Bootstrap(s *Store) error {
	if err := s.Put(RegistryDimensionType, "minecraft:overworld", overworldDimension{
		Natural:         1,
		AmbientLight:    0,
		Infiniburn:      "#minecraft:infiniburn_overworld",
		HasSkylight:     1,
		BedWorks:        1,
		Effects:         "minecraft:overworld",
		HasRaids:        1,
		MinY:            -64,
		Height:          384,
		LogicalHeight:   384,
		CoordinateScale: 1,
	}); err != nil {
		return err
	}

	biomes := map[string]biomeEntry{
		"minecraft:plains": {
			HasPrecipitation: 1, Temperature: 0.8, Downfall: 0.4,
			Effects: biomeEffects{SkyColor: 7907327, FogColor: 12638463, WaterColor: 4159204, WaterFogColor: 329011},
		},
		"minecraft:desert": {
			HasPrecipitation: 0, Temperature: 2.0, Downfall: 0,
			Effects: biomeEffects{SkyColor: 7254527, FogColor: 12638463, WaterColor: 4159204, WaterFogColor: 329011},
		},
		"minecraft:mangrove_swamp": {
			HasPrecipitation: 1, Temperature: 0.8, Downfall: 0.9,
			Effects: biomeEffects{SkyColor: 7907327, FogColor: 12638463, WaterColor: 3832426, WaterFogColor: 5077600},
		},
		"minecraft:snowy_plains": {
			HasPrecipitation: 1, Temperature: 0, Downfall: 0.5,
			Effects: biomeEffects{SkyColor: 8364543, FogColor: 12638463, WaterColor: 4159204, WaterFogColor: 329011},
		},
		"minecraft:beach": {
			HasPrecipitation: 1, Temperature: 0.8, Downfall: 0.4,
			Effects: biomeEffects{SkyColor: 7907327, FogColor: 12638463, WaterColor: 4159204, WaterFogColor: 329011},
		},
	}
	for id, b := range biomes {
		if err := s.Put(RegistryBiome, id, b); err != nil {
			return err
		}
	}

	damageTypes := map[string]damageType{
		"minecraft:mob_attack": {MessageID: "mob_attack", Scaling: "when_caused_by_living_non_player", Exhaustion: 0.1},
		"minecraft:fall":       {MessageID: "fall", Scaling: "when_caused_by_living_non_player", Exhaustion: 0, DeathMessage: "fall_variants"},
		"minecraft:lava":       {MessageID: "lava", Scaling: "when_caused_by_living_non_player", Exhaustion: 0.1},
		"minecraft:drown":      {MessageID: "drown", Scaling: "when_caused_by_living_non_player", Exhaustion: 0},
		"minecraft:starve":     {MessageID: "starve", Scaling: "when_caused_by_living_non_player", Exhaustion: 0},
	}
	for id, d := range damageTypes {
		if err := s.Put(RegistryDamageType, id, d); err != nil {
			return err
		}
	}

	return nil
}
