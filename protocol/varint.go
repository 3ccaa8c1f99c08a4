package protocol

import (
	"bufio"
	"io"
)

// ByteReader is the minimal reader surface the varint and codec routines
// need. *bufio.Reader and the session's ring buffer both satisfy it.
type ByteReader interface {
	io.Reader
	io.ByteReader
}

// WriteVarInt appends v to dst using the standard 7-bit little-endian
// continuation-bit encoding (§4.1) and returns the extended slice.
func WriteVarInt(dst []byte, v int32) []byte {
	u := uint32(v)
	for {
		b := byte(u & 0x7F)
		u >>= 7
		if u != 0 {
			dst = append(dst, b|0x80)
		} else {
			dst = append(dst, b)
			return dst
		}
	}
}

// WriteVarLong appends v to dst as a 64-bit varint.
func WriteVarLong(dst []byte, v int64) []byte {
	u := uint64(v)
	for {
		b := byte(u & 0x7F)
		u >>= 7
		if u != 0 {
			dst = append(dst, b|0x80)
		} else {
			dst = append(dst, b)
			return dst
		}
	}
}

// VarIntSize returns the number of bytes WriteVarInt would emit for v; it is
// the round-trip length invariant tested in §8 ("encoded length matches
// ceil(bitlen(v)/7), minimum 1 byte for v=0").
func VarIntSize(v int32) int {
	u := uint32(v)
	n := 1
	for u >= 0x80 {
		u >>= 7
		n++
	}
	return n
}

// ReadVarInt reads a 32-bit varint from r. It fails with ErrMalformedVarint
// if the continuation bit is still set after 5 bytes, or with ErrShortRead
// on EOF mid-field.
func ReadVarInt(r ByteReader) (int32, error) {
	var result uint32
	for i := 0; i < 5; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, ErrShortRead
		}
		result |= uint32(b&0x7F) << (7 * uint(i))
		if b&0x80 == 0 {
			return int32(result), nil
		}
	}
	return 0, ErrMalformedVarint
}

// ReadVarLong reads a 64-bit varint from r, failing with ErrMalformedVarint
// past 10 bytes.
func ReadVarLong(r ByteReader) (int64, error) {
	var result uint64
	for i := 0; i < 10; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, ErrShortRead
		}
		result |= uint64(b&0x7F) << (7 * uint(i))
		if b&0x80 == 0 {
			return int64(result), nil
		}
	}
	return 0, ErrMalformedVarint
}

// ZigZag32 maps a signed value onto the unsigned range so small negative
// magnitudes still encode in few varint bytes.
func ZigZag32(v int32) int32 {
	return int32(uint32(v<<1) ^ uint32(v>>31))
}

// UnZigZag32 inverts ZigZag32.
func UnZigZag32(v int32) int32 {
	return int32(uint32(v)>>1) ^ -(v & 1)
}

// ZigZag64 is the 64-bit counterpart of ZigZag32. Entity IDs are written
// as plain VarInts, not zig-zag encoded.
func ZigZag64(v int64) int64 {
	return int64(uint64(v<<1) ^ uint64(v>>63))
}

// UnZigZag64 inverts ZigZag64.
func UnZigZag64(v int64) int64 {
	return int64(uint64(v)>>1) ^ -(v & 1)
}

// NewByteReader adapts an io.Reader that does not already implement
// io.ByteReader (e.g. a raw net.Conn slice view) into one bufio can share
// with the rest of the codec.
func NewByteReader(r io.Reader) ByteReader {
	if br, ok := r.(ByteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}
