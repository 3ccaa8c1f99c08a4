package server

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml"
)

// Config is the runtime configuration for a Server, built from a
// UserConfig by (UserConfig).Config. Every §6 "Configuration (enumerated
// options)" knob lives here as its resolved, validated value; nothing
// downstream re-reads the TOML file.
type Config struct {
	Log *slog.Logger

	Addr       string
	MaxPlayers int

	ViewDistance      int32
	TerrainBaseHeight int32
	CaveBaseDepth     int32
	BiomeSize         int32
	BiomeRadius       int32
	ChunkCacheSize    int

	MaxBlockChanges  int
	PacketBufferSize int
	MaxRecvBufLen    int

	NetworkTimeout   time.Duration
	KeepAliveInterval time.Duration
	KeepAliveTimeout  time.Duration

	AllowChests                bool
	DoFluidFlow                bool
	EnableOptinMobInterpolation bool

	WorldSeed       uint32
	PersistencePath string
	PersistenceEvery time.Duration
}

// UserConfig is the TOML-serializable form of Config, grouped into
// sections the way the teacher's own UserConfig groups Network/Server/
// World/Players/Resources/Whitelist.
type UserConfig struct {
	Network struct {
		Port int `toml:"port"`
	} `toml:"network"`

	Server struct {
		MaxPlayers               int   `toml:"max-players"`
		NetworkTimeoutSeconds     int   `toml:"network-timeout-seconds"`
		KeepAliveIntervalSeconds  int   `toml:"keep-alive-interval-seconds"`
		KeepAliveTimeoutSeconds   int   `toml:"keep-alive-timeout-seconds"`
		PacketBufferSize          int   `toml:"packet-buffer-size"`
		MaxRecvBufLen             int   `toml:"max-recv-buffer-len"`
	} `toml:"server"`

	World struct {
		Seed                        int64 `toml:"seed"`
		ViewDistance                int   `toml:"view-distance"`
		TerrainBaseHeight           int   `toml:"terrain-base-height"`
		CaveBaseDepth               int   `toml:"cave-base-depth"`
		BiomeSize                   int   `toml:"biome-size"`
		BiomeRadius                 int   `toml:"biome-radius"`
		MaxBlockChanges             int   `toml:"max-block-changes"`
		ChunkCacheSize              int   `toml:"chunk-cache-size"`
		AllowChests                 bool  `toml:"allow-chests"`
		DoFluidFlow                 bool  `toml:"do-fluid-flow"`
		EnableOptinMobInterpolation bool  `toml:"enable-optin-mob-interpolation"`
	} `toml:"world"`

	Players struct {
		// Reserved for future whitelist/ops wiring; empty for now since
		// this server has no online-mode identity to check against (§1
		// non-goal: authentication).
	} `toml:"players"`

	Resources struct {
		PersistencePath         string `toml:"persistence-path"`
		PersistenceIntervalSecs int    `toml:"persistence-interval-seconds"`
	} `toml:"resources"`
}

// DefaultConfig returns the UserConfig written out the first time a
// server starts with no config file present, matching the teacher's
// "load or create with defaults" pattern (server/whitelist.go).
func DefaultConfig() UserConfig {
	var uc UserConfig
	uc.Network.Port = 25565
	uc.Server.MaxPlayers = 8
	uc.Server.NetworkTimeoutSeconds = 30
	uc.Server.KeepAliveIntervalSeconds = 5
	uc.Server.KeepAliveTimeoutSeconds = 20
	uc.Server.PacketBufferSize = 4096
	uc.Server.MaxRecvBufLen = 8192
	uc.World.Seed = 0
	uc.World.ViewDistance = 6
	uc.World.TerrainBaseHeight = 64
	uc.World.CaveBaseDepth = 32
	uc.World.BiomeSize = 8
	uc.World.BiomeRadius = 3
	uc.World.MaxBlockChanges = 4096
	uc.World.ChunkCacheSize = 4096
	uc.World.AllowChests = true
	uc.World.DoFluidFlow = true
	uc.World.EnableOptinMobInterpolation = false
	uc.Resources.PersistencePath = "world.dat"
	uc.Resources.PersistenceIntervalSecs = 300
	return uc
}

// Config validates uc and constructs the runtime Config, the same role
// the teacher's (UserConfig).Config(log) plays for its own server.
func (uc UserConfig) Config(log *slog.Logger) (Config, error) {
	if log == nil {
		log = slog.Default()
	}

	if uc.World.ViewDistance < 1 || uc.World.ViewDistance > 32 {
		return Config{}, fmt.Errorf("view-distance must be between 1 and 32, got %d", uc.World.ViewDistance)
	}
	if uc.Network.Port <= 0 || uc.Network.Port > 65535 {
		return Config{}, fmt.Errorf("port out of range: %d", uc.Network.Port)
	}
	if uc.Server.MaxPlayers <= 0 {
		return Config{}, fmt.Errorf("max-players must be positive, got %d", uc.Server.MaxPlayers)
	}

	cfg := Config{
		Log:        log,
		Addr:       fmt.Sprintf(":%d", uc.Network.Port),
		MaxPlayers: uc.Server.MaxPlayers,

		ViewDistance:      int32(uc.World.ViewDistance),
		TerrainBaseHeight: int32(uc.World.TerrainBaseHeight),
		CaveBaseDepth:     int32(uc.World.CaveBaseDepth),
		BiomeSize:         int32(uc.World.BiomeSize),
		BiomeRadius:       int32(uc.World.BiomeRadius),
		ChunkCacheSize:    uc.World.ChunkCacheSize,

		MaxBlockChanges:  uc.World.MaxBlockChanges,
		PacketBufferSize: uc.Server.PacketBufferSize,
		MaxRecvBufLen:    uc.Server.MaxRecvBufLen,

		NetworkTimeout:    time.Duration(uc.Server.NetworkTimeoutSeconds) * time.Second,
		KeepAliveInterval: time.Duration(uc.Server.KeepAliveIntervalSeconds) * time.Second,
		KeepAliveTimeout:  time.Duration(uc.Server.KeepAliveTimeoutSeconds) * time.Second,

		AllowChests:                 uc.World.AllowChests,
		DoFluidFlow:                 uc.World.DoFluidFlow,
		EnableOptinMobInterpolation: uc.World.EnableOptinMobInterpolation,

		WorldSeed:        uint32(uc.World.Seed),
		PersistencePath:  uc.Resources.PersistencePath,
		PersistenceEvery: time.Duration(uc.Resources.PersistenceIntervalSecs) * time.Second,
	}

	if cfg.TerrainBaseHeight == 0 {
		cfg.TerrainBaseHeight = 64
	}
	if cfg.CaveBaseDepth == 0 {
		cfg.CaveBaseDepth = 32
	}
	if cfg.BiomeSize == 0 {
		cfg.BiomeSize = 8
	}
	if cfg.BiomeRadius == 0 {
		cfg.BiomeRadius = 3
	}
	if cfg.ChunkCacheSize == 0 {
		cfg.ChunkCacheSize = 4096
	}
	if cfg.MaxBlockChanges == 0 {
		cfg.MaxBlockChanges = 4096
	}
	if cfg.PacketBufferSize == 0 {
		cfg.PacketBufferSize = 4096
	}
	if cfg.MaxRecvBufLen == 0 {
		cfg.MaxRecvBufLen = 8192
	}
	if cfg.NetworkTimeout == 0 {
		cfg.NetworkTimeout = 30 * time.Second
	}
	if cfg.KeepAliveInterval == 0 {
		cfg.KeepAliveInterval = 5 * time.Second
	}
	if cfg.KeepAliveTimeout == 0 {
		cfg.KeepAliveTimeout = 20 * time.Second
	}
	if cfg.PersistencePath == "" {
		cfg.PersistencePath = "world.dat"
	}
	if cfg.PersistenceEvery == 0 {
		cfg.PersistenceEvery = 300 * time.Second
	}

	return cfg, nil
}

// LoadConfig loads the TOML file at path, creating it with defaults if
// it does not yet exist. This mirrors LoadWhitelist's "load-or-create"
// behavior in the teacher (server/whitelist.go).
func LoadConfig(path string, log *slog.Logger) (Config, error) {
	uc := DefaultConfig()

	contents, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := writeUserConfig(path, uc); err != nil {
			return Config{}, err
		}
		return uc.Config(log)
	}

	if len(contents) != 0 {
		if err := toml.Unmarshal(contents, &uc); err != nil {
			return Config{}, fmt.Errorf("decode config: %w", err)
		}
	}
	return uc.Config(log)
}

func writeUserConfig(path string, uc UserConfig) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	encoded, err := toml.Marshal(uc)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
