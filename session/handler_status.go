package session

import "github.com/tannerfokkens-maker/MacintoshCraft/protocol"

// handleStatus answers the two status-state packets (§4.7 "status"):
// a JSON server-list description, and an echoed ping payload.
func (s *Session) handleStatus(id int32, r protocol.ByteReader, ctx *Context) error {
	switch id {
	case protocol.IDStatusRequest:
		online := 0
		max := 0
		if ctx != nil {
			if ctx.OnlineFn != nil {
				online = ctx.OnlineFn()
			}
			max = ctx.MaxOnline
		}
		motd := "A MacintoshCraft Server"
		if ctx != nil && ctx.MOTD != "" {
			motd = ctx.MOTD
		}
		json := protocol.StatusJSON(motd, online, max)
		s.Send(protocol.IDStatusResponse, protocol.StatusResponse{JSON: json}.Encode(nil))
		return nil
	case protocol.IDPingRequest:
		p, err := protocol.DecodePingRequest(r)
		if err != nil {
			return err
		}
		s.Send(protocol.IDPongResponse, protocol.PongResponse{Payload: p.Payload}.Encode(nil))
		return nil
	}
	return nil
}
