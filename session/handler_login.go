package session

import (
	"github.com/google/uuid"

	"github.com/tannerfokkens-maker/MacintoshCraft/protocol"
)

// handleLogin implements §4.7's login state. LoginStart replies
// immediately with LoginSuccess carrying back the client's own
// self-asserted UUID (online-mode/cryptographic login is a non-goal,
// §1). The client then acknowledges with LoginAck, at which point the
// session moves to configuration and the registry batch goes out.
func (s *Session) handleLogin(id int32, r protocol.ByteReader, ctx *Context) error {
	switch id {
	case protocol.IDLoginStart:
		ls, err := protocol.DecodeLoginStart(r)
		if err != nil {
			return err
		}
		if ctx != nil && ctx.OnlineFn != nil && ctx.MaxOnline > 0 && ctx.OnlineFn() >= ctx.MaxOnline {
			s.Disconnect("Server is full")
			return nil
		}
		s.Username = ls.Username
		s.UUID = uuid.UUID(ls.UUID)
		s.Send(protocol.IDLoginSuccess, protocol.LoginSuccess{UUID: ls.UUID, Username: ls.Username}.Encode(nil))
		return nil
	case protocol.IDLoginAck:
		s.State = StateConfiguration
		s.sendConfiguration(ctx)
		return nil
	}
	return nil
}

// sendConfiguration transmits every registry batch loaded at startup
// (§6 "Registry data") followed by FinishConfiguration. The core never
// interprets the registry bytes; it forwards them verbatim.
func (s *Session) sendConfiguration(ctx *Context) {
	if ctx == nil || ctx.Registry == nil {
		s.Send(protocol.IDConfigFinish, protocol.FinishConfiguration{}.Encode(nil))
		return
	}
	for _, id := range configurationRegistries {
		data, err := ctx.Registry.RegistryData(id)
		if err != nil {
			continue
		}
		s.Send(protocol.IDConfigRegistry, data.Encode(nil))
	}
	s.Send(protocol.IDConfigFinish, protocol.FinishConfiguration{}.Encode(nil))
}
