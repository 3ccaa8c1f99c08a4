package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tannerfokkens-maker/MacintoshCraft/inventory"
	"github.com/tannerfokkens-maker/MacintoshCraft/protocol"
	"github.com/tannerfokkens-maker/MacintoshCraft/registry"
	"github.com/tannerfokkens-maker/MacintoshCraft/world"
)

// State is one of the four connection states plus the terminal
// "closing" state (§4.7).
type State uint8

const (
	StateHandshake State = iota
	StateStatus
	StateLogin
	StateConfiguration
	StatePlay
	StateClosing
)

// ErrTimeout is returned by Poll/FlushSend when a session's socket has
// made no progress for longer than its configured NETWORK_TIMEOUT_TIME
// (§7 "Protocol: ... keepalive timeout", §8 "Timeout").
var ErrTimeout = errors.New("session: network timeout")

// Config collects the per-session tunables §6 enumerates.
type Config struct {
	MaxRecvBufLen    int
	PacketBufferSize int
	NetworkTimeout   time.Duration
	ViewDistance     int32
}

func (c Config) maxRecvBufLen() int {
	if c.MaxRecvBufLen <= 0 {
		return 8192
	}
	return c.MaxRecvBufLen
}

func (c Config) packetBufferSize() int {
	if c.PacketBufferSize <= 0 {
		return 2048
	}
	return c.PacketBufferSize
}

func (c Config) networkTimeout() time.Duration {
	if c.NetworkTimeout <= 0 {
		return 30 * time.Second
	}
	return c.NetworkTimeout
}

func (c Config) viewDistance() int32 {
	if c.ViewDistance <= 0 {
		return 8
	}
	return c.ViewDistance
}

// Session is one client's connection state (§3 "Player/session"). It
// borrows the world only inside Poll/HandlePacket calls, never holding
// it across a suspension point (§4.1 "Ownership").
type Session struct {
	conn Conn
	recv *RecvBuffer
	send *SendBuffer

	networkTimeout time.Duration
	lastProgress   time.Time

	State           State
	ProtocolVersion int32
	Username        string
	UUID            uuid.UUID
	EntityID        int32
	ViewDistance    int32
	LoadedChunks    map[[2]int32]struct{}

	Inventory *inventory.Inventory
	container openContainer

	teleportID            int32
	keepAliveID           int64
	lastKeepAliveSentTick int64
	lastKeepAliveRecvTick int64

	closeReason string
}

// NewSession returns a freshly connected session in the handshake
// state, wrapping conn. entityID is the network entity ID this player
// will use once it reaches play; the caller (the server) is
// responsible for handing out distinct IDs.
func NewSession(conn Conn, entityID int32, cfg Config) *Session {
	now := time.Now()
	return &Session{
		conn:           conn,
		recv:           NewRecvBuffer(cfg.maxRecvBufLen()),
		send:           NewSendBuffer(cfg.packetBufferSize()),
		networkTimeout: cfg.networkTimeout(),
		lastProgress:   now,
		State:          StateHandshake,
		EntityID:       entityID,
		ViewDistance:   cfg.viewDistance(),
		LoadedChunks:   make(map[[2]int32]struct{}),
		Inventory:      inventory.New(),
		// lastKeepAliveRecvTick stays zero here; enterPlay seeds it from
		// the world's tick counter, and a session that never enters play
		// is never checked for keepalive timeout.
	}
}

// Context bundles the shared server-owned state a session's handlers
// touch, plus a sink for events the server loop must fan out to other
// sessions (§4.8 "broadcast a block-update packet to all players").
type Context struct {
	World    *world.World
	Registry *registry.Store
	Chests   *inventory.Registry
	Matcher  *inventory.Matcher
	MOTD     string
	OnlineFn func() int
	MaxOnline int

	events []Event
}

// Emit records an event for the server loop to fan out after this
// session's packet batch finishes processing.
func (c *Context) Emit(e Event) { c.events = append(c.events, e) }

// TakeEvents drains and returns every event emitted since the last call.
func (c *Context) TakeEvents() []Event {
	ev := c.events
	c.events = nil
	return ev
}

// Send queues one outbound packet (§4.6 "packet_start/packet_write").
func (s *Session) Send(id int32, payload []byte) {
	s.send.Queue(id, payload)
}

// Disconnect queues a state-appropriate disconnect packet and moves the
// session to closing (§7 "attempt to send a Disconnect packet ...
// close the socket").
func (s *Session) Disconnect(reason string) {
	switch s.State {
	case StateLogin:
		s.Send(protocol.IDLoginDisconnect, protocol.LoginDisconnect{Reason: reason}.Encode(nil))
	case StatePlay, StateConfiguration:
		s.Send(protocol.IDPlayDisconnect, protocol.Disconnect{Reason: reason}.Encode(nil))
	}
	s.closeReason = reason
	s.State = StateClosing
}

// CloseReason returns the reason a closing session was disconnected, if
// any.
func (s *Session) CloseReason() string { return s.closeReason }

// Close releases the underlying transport.
func (s *Session) Close() error {
	return s.conn.Close()
}

// PollRecv drains available bytes into the session's inbound buffer
// (§4.6 recv_all), tracking whether the socket is making progress
// against NETWORK_TIMEOUT_TIME.
func (s *Session) PollRecv(now time.Time) error {
	err := s.recv.Fill(s.conn)
	switch {
	case err == nil:
		s.lastProgress = now
		return nil
	case errors.Is(err, ErrWouldBlock):
		if now.Sub(s.lastProgress) > s.networkTimeout {
			return ErrTimeout
		}
		return nil
	default:
		return err
	}
}

// FlushSend drains the outbound buffer (§4.6 packet_flush). While
// blocked it drains stale movement packets from the read side (§4.6
// "Stale-packet drain") so a slow send doesn't let the peer's backlog
// grow without bound.
func (s *Session) FlushSend(now time.Time) error {
	if s.send.Pending() == 0 {
		return nil
	}
	err := s.send.Flush(s.conn)
	if err == nil {
		s.lastProgress = now
		return nil
	}
	if errors.Is(err, ErrWouldBlock) {
		s.recv.DrainStaleMovement()
		if now.Sub(s.lastProgress) > s.networkTimeout {
			return ErrTimeout
		}
		return nil
	}
	return err
}

// Poll drains and dispatches complete packets from the session's
// inbound buffer up to a byte budget (§4.8 step 1's "per-session byte
// budget"). It returns ErrTimeout or any codec/protocol error the
// framing layer surfaces; both are session-scoped (§7) and the caller
// should close this session, not the server.
func (s *Session) Poll(now time.Time, ctx *Context, budget int) error {
	if s.State == StateClosing {
		return nil
	}
	if err := s.PollRecv(now); err != nil {
		return err
	}
	consumed := 0
	for consumed < budget {
		id, payload, ok, err := s.recv.TryReadPacket()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		consumed += len(payload) + 1
		if err := s.HandlePacket(id, payload, ctx); err != nil {
			return err
		}
		if s.State == StateClosing {
			break
		}
	}
	return nil
}
