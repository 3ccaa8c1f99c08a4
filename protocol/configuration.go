package protocol

// RegistryData is one clientbound registry entry (§6 "Registry data"): an
// opaque, NBT-encoded blob produced by an external build step and
// transmitted verbatim. The core never interprets the contents.
type RegistryData struct {
	RegistryID string
	Entries    []RegistryEntry
}

// RegistryEntry is one named entry within a registry, e.g. one biome or one
// dimension type. Data is an NBT-encoded compound tag, or nil for a
// "tag-only" entry that carries no payload of its own.
type RegistryEntry struct {
	ID   string
	Data []byte // nil => entry present with no payload
}

func (p RegistryData) Encode(dst []byte) []byte {
	dst = WriteString(dst, p.RegistryID)
	dst = WriteVarInt(dst, int32(len(p.Entries)))
	for _, e := range p.Entries {
		dst = WriteString(dst, e.ID)
		dst = WriteBool(dst, e.Data != nil)
		if e.Data != nil {
			dst = append(dst, e.Data...)
		}
	}
	return dst
}

// FinishConfiguration is the empty-bodied clientbound packet that tells the
// client every registry/tag batch has been sent and it may acknowledge to
// move to play.
type FinishConfiguration struct{}

func (FinishConfiguration) Encode(dst []byte) []byte { return dst }
