package session

// Event is something a session's packet handler produced that the
// server loop must fan out beyond this one session (§4.8 "broadcast a
// block-update packet to all players who have that chunk loaded").
type Event interface{ isSessionEvent() }

// BlockUpdateEvent announces that (X, Y, Z) changed to Block, for the
// server loop to broadcast to every session with that chunk loaded.
type BlockUpdateEvent struct {
	X, Z  int32
	Y     int16
	Block uint8
}

func (BlockUpdateEvent) isSessionEvent() {}
