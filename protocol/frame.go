package protocol

import "bytes"

// MaxPacketLength bounds a single packet's declared length; it exists only
// as a sanity backstop against a corrupt or hostile length prefix, well
// above anything a legitimate chunk-data packet needs.
const MaxPacketLength = 1 << 21

// EncodePacket builds one complete wire frame for packet id carrying
// payload: VarInt length, VarInt id, payload bytes (§4.6). The returned
// slice is self-contained and ready to hand to the write-batching layer.
func EncodePacket(dst []byte, id int32, payload []byte) []byte {
	var body []byte
	body = WriteVarInt(body, id)
	body = append(body, payload...)
	dst = WriteVarInt(dst, int32(len(body)))
	dst = append(dst, body...)
	return dst
}

// SplitPacket decodes the packet id and remaining payload from one
// complete frame body (the bytes following the outer length VarInt).
func SplitPacket(frame []byte) (id int32, payload []byte, err error) {
	r := NewByteReader(bytes.NewReader(frame))
	id, err = ReadVarInt(r)
	if err != nil {
		return 0, nil, err
	}
	consumed := len(frame) - remaining(r)
	return id, frame[consumed:], nil
}

// remaining reports how many bytes are left unread in a ByteReader backed
// by a bytes.Reader, which is the only concrete type SplitPacket is ever
// handed.
func remaining(r ByteReader) int {
	if br, ok := r.(*bytes.Reader); ok {
		return br.Len()
	}
	return 0
}
