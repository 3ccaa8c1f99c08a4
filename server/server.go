// Package server wires the protocol, session, world, entity, inventory
// and registry packages into one running process: the TCP listener, the
// session table, and the tick loop that drives them (§5, §6, §9).
package server

import (
	"log/slog"
	"net"
	"time"

	"github.com/tannerfokkens-maker/MacintoshCraft/entity"
	"github.com/tannerfokkens-maker/MacintoshCraft/inventory"
	"github.com/tannerfokkens-maker/MacintoshCraft/registry"
	"github.com/tannerfokkens-maker/MacintoshCraft/session"
	"github.com/tannerfokkens-maker/MacintoshCraft/world"
)

// firstMobEntityID is picked comfortably above any plausible player
// count so player and mob entity IDs never collide (entity.NewManager's
// own doc comment on firstEntityID).
const firstMobEntityID = 1 << 20

// client pairs a session with the raw connection it reads/writes.
type client struct {
	sess *session.Session
	conn *tcpConn
	addr net.Addr
}

// Server is the single owned-singleton process state (§9 "Global
// mutable state -> owned singletons"): one world, one registry store,
// one chest table, one crafting matcher, one mob manager, one listener,
// and the live session table, all touched only from Run's loop.
type Server struct {
	cfg Config
	log *slog.Logger

	ln *listener

	World    *world.World
	Registry *registry.Store
	Chests   *inventory.Registry
	Matcher  *inventory.Matcher
	Entities *entity.Manager

	clients      map[int32]*client
	nextEntityID int32

	lastPersist time.Time
}

// New constructs a Server from cfg. It does not yet listen; call Run.
func New(cfg Config, reg *registry.Store) *Server {
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}

	w := world.New(world.Config{
		Logger:            cfg.Log,
		Seed:              cfg.WorldSeed,
		CacheCapacity:     cfg.ChunkCacheSize,
		MaxBlockChanges:   cfg.MaxBlockChanges,
		TerrainBaseHeight: cfg.TerrainBaseHeight,
		CaveBaseDepth:     cfg.CaveBaseDepth,
		BiomeSize:         cfg.BiomeSize,
		BiomeRadius:       cfg.BiomeRadius,
		ChestsEnabled:     cfg.AllowChests,
		DoFluidFlow:       cfg.DoFluidFlow,
	})

	matcher := inventory.NewMatcher()
	registerDefaultRecipes(matcher)

	mgr := entity.NewManager(firstMobEntityID)
	mgr.Interpolate = cfg.EnableOptinMobInterpolation

	return &Server{
		cfg:          cfg,
		log:          cfg.Log,
		World:        w,
		Registry:     reg,
		Chests:       inventory.NewRegistry(),
		Matcher:      matcher,
		Entities:     mgr,
		clients:      make(map[int32]*client),
		nextEntityID: 1,
	}
}

// sessionContext builds the session.Context the tick loop hands to
// every client's Poll call. It is rebuilt each tick since OnlineFn must
// reflect the current session count.
func (s *Server) sessionContext() *session.Context {
	return &session.Context{
		World:     s.World,
		Registry:  s.Registry,
		Chests:    s.Chests,
		Matcher:   s.Matcher,
		MOTD:      "A MacintoshCraft Server",
		MaxOnline: s.cfg.MaxPlayers,
		OnlineFn:  func() int { return len(s.clients) },
	}
}

func (s *Server) allocEntityID() int32 {
	id := s.nextEntityID
	s.nextEntityID++
	return id
}

// acceptNew accepts every pending connection without blocking, up to
// MaxPlayers; beyond that a connecting client's connection is closed at
// once, without a Disconnect packet (§7 Resource "too-many-clients").
func (s *Server) acceptNew() {
	for {
		conn, addr, err := s.ln.accept()
		if err != nil {
			return
		}
		if len(s.clients) >= s.cfg.MaxPlayers {
			// Too early in the handshake for a Disconnect packet to mean
			// anything to the client; a full server just drops the
			// connection outright (§7 "too-many-clients").
			_ = conn.Close()
			continue
		}

		id := s.allocEntityID()
		sess := session.NewSession(conn, id, session.Config{
			MaxRecvBufLen:    s.cfg.MaxRecvBufLen,
			PacketBufferSize: s.cfg.PacketBufferSize,
			NetworkTimeout:   s.cfg.NetworkTimeout,
			ViewDistance:     s.cfg.ViewDistance,
		})
		s.clients[id] = &client{sess: sess, conn: conn, addr: addr}
		s.log.Debug("client connected", "addr", addr, "entity_id", id)
	}
}

// removeClosed drops every session that has transitioned to closing,
// removing it from the world's player table and reclaiming its slot
// (§7 "reclaim the session slot").
func (s *Server) removeClosed() {
	for id, c := range s.clients {
		if c.sess.State != session.StateClosing {
			continue
		}
		s.World.RemovePlayer(c.sess.UUID)
		_ = c.sess.Close()
		delete(s.clients, id)
		s.log.Debug("client disconnected", "addr", c.addr, "entity_id", id, "reason", c.sess.CloseReason())
	}
}
