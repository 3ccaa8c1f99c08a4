package session

import "github.com/tannerfokkens-maker/MacintoshCraft/protocol"

// handleHandshake implements §4.7's single handshake packet: it records
// the claimed protocol version and picks the next state. A next_state
// outside {status, login} is a protocol error (§7).
func (s *Session) handleHandshake(id int32, r protocol.ByteReader) error {
	if id != protocol.IDHandshake {
		return nil
	}
	hs, err := protocol.DecodeHandshake(r)
	if err != nil {
		return err
	}
	s.ProtocolVersion = hs.ProtocolVersion
	switch hs.NextState {
	case protocol.NextStateStatus:
		s.State = StateStatus
	case protocol.NextStateLogin:
		s.State = StateLogin
	default:
		return protocol.ErrUnknownPacketID
	}
	return nil
}
