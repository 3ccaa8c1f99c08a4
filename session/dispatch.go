package session

import (
	"bytes"

	"github.com/tannerfokkens-maker/MacintoshCraft/protocol"
)

// HandlePacket routes one decoded frame to the handler for the
// session's current state (§4.7 "Transitions are driven by incoming
// packet IDs interpreted against the current state"). An ID with no
// case in the relevant handler is silently discarded: the framing
// layer already knows its length from the outer VarInt, so skipping it
// costs nothing.
func (s *Session) HandlePacket(id int32, payload []byte, ctx *Context) error {
	r := protocol.NewByteReader(bytes.NewReader(payload))
	switch s.State {
	case StateHandshake:
		return s.handleHandshake(id, r)
	case StateStatus:
		return s.handleStatus(id, r, ctx)
	case StateLogin:
		return s.handleLogin(id, r, ctx)
	case StateConfiguration:
		return s.handleConfiguration(id, ctx)
	case StatePlay:
		return s.handlePlay(id, r, ctx)
	default:
		return nil
	}
}
