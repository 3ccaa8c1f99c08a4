package session

import "github.com/tannerfokkens-maker/MacintoshCraft/protocol"

// receiveKeepAlive records a client's keepalive reply if its ID matches
// the outstanding one; a stale or forged ID is ignored rather than
// resetting the timeout clock.
func (s *Session) receiveKeepAlive(id int64) {
	if id == s.keepAliveID {
		s.lastKeepAliveRecvTick = s.lastKeepAliveSentTick
	}
}

// MaybeSendKeepAlive emits a keepalive once intervalTicks have elapsed
// since the last one (§4.7 "keepalive every KEEPALIVE_INTERVAL"). tick
// is the world's current tick counter.
func (s *Session) MaybeSendKeepAlive(tick int64, intervalTicks int64) {
	if s.State != StatePlay {
		return
	}
	if tick-s.lastKeepAliveSentTick < intervalTicks {
		return
	}
	s.keepAliveID = tick
	s.lastKeepAliveSentTick = tick
	s.Send(protocol.IDPlayKeepAliveOut, protocol.KeepAlive{ID: s.keepAliveID}.Encode(nil))
}

// KeepAliveTimedOut reports whether the session has gone longer than
// timeoutTicks since its last keepalive reply while in play (§4.7
// "Receiving no keepalive-reply for KEEPALIVE_TIMEOUT transitions to
// closing").
func (s *Session) KeepAliveTimedOut(tick int64, timeoutTicks int64) bool {
	return s.State == StatePlay && tick-s.lastKeepAliveRecvTick > timeoutTicks
}
