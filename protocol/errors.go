package protocol

import "errors"

// Codec-level errors (§7 "Codec"). Callers compare with errors.Is; handlers
// that see one of these from a session's read path terminate that session,
// never the server.
var (
	// ErrMalformedVarint is returned when a varint's continuation bit
	// extends past 5 bytes (32-bit) or 10 bytes (64-bit).
	ErrMalformedVarint = errors.New("protocol: malformed varint")
	// ErrShortRead is returned when the underlying reader reaches EOF before
	// a requested field is fully read.
	ErrShortRead = errors.New("protocol: short read")
	// ErrStringTooLong names a length-prefixed string longer than the
	// caller-supplied maximum. ReadString does not return it: it truncates
	// such a string to the maximum instead.
	ErrStringTooLong = errors.New("protocol: string exceeds maximum length")
	// ErrInvalidUTF8 is returned when a length-prefixed string is not valid
	// UTF-8.
	ErrInvalidUTF8 = errors.New("protocol: invalid utf-8")
	// ErrOversizedPacket is returned when a packet's declared length exceeds
	// the frame layer's sanity bound.
	ErrOversizedPacket = errors.New("protocol: oversized packet length")
	// ErrUnknownPacketID is returned by the handshake handler when
	// next_state is neither status nor login. Packets whose ID has no
	// handler in the current state are discarded, not reported with it.
	ErrUnknownPacketID = errors.New("protocol: unknown packet id for state")
)
