package protocol

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// WriteU8, WriteI8, ... append a big-endian fixed-width value to dst and
// return the extended slice. The Minecraft wire format is big-endian
// throughout (§6), which happens to be the native byte order of the 68k
// hardware this server is meant to run on.

func WriteU8(dst []byte, v uint8) []byte   { return append(dst, v) }
func WriteI8(dst []byte, v int8) []byte    { return append(dst, byte(v)) }
func WriteBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

func WriteU16(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

func WriteI16(dst []byte, v int16) []byte { return WriteU16(dst, uint16(v)) }

func WriteU32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

func WriteI32(dst []byte, v int32) []byte { return WriteU32(dst, uint32(v)) }

func WriteU64(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

func WriteI64(dst []byte, v int64) []byte { return WriteU64(dst, uint64(v)) }

func WriteF32(dst []byte, v float32) []byte { return WriteU32(dst, math.Float32bits(v)) }
func WriteF64(dst []byte, v float64) []byte { return WriteU64(dst, math.Float64bits(v)) }

// WriteString appends a VarInt-length-prefixed UTF-8 string (§4.1, §6).
func WriteString(dst []byte, s string) []byte {
	dst = WriteVarInt(dst, int32(len(s)))
	return append(dst, s...)
}

// ReadU8 through ReadF64 read a big-endian fixed-width value from r.

func ReadU8(r ByteReader) (uint8, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, ErrShortRead
	}
	return b, nil
}

func ReadI8(r ByteReader) (int8, error) {
	v, err := ReadU8(r)
	return int8(v), err
}

func ReadBool(r ByteReader) (bool, error) {
	v, err := ReadU8(r)
	return v != 0, err
}

func readN(r ByteReader, n int) ([]byte, error) {
	buf := make([]byte, n)
	read := 0
	for read < n {
		m, err := r.Read(buf[read:])
		read += m
		if err != nil && read < n {
			return nil, ErrShortRead
		}
	}
	return buf, nil
}

func ReadU16(r ByteReader) (uint16, error) {
	b, err := readN(r, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func ReadI16(r ByteReader) (int16, error) {
	v, err := ReadU16(r)
	return int16(v), err
}

func ReadU32(r ByteReader) (uint32, error) {
	b, err := readN(r, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func ReadI32(r ByteReader) (int32, error) {
	v, err := ReadU32(r)
	return int32(v), err
}

func ReadU64(r ByteReader) (uint64, error) {
	b, err := readN(r, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func ReadI64(r ByteReader) (int64, error) {
	v, err := ReadU64(r)
	return int64(v), err
}

func ReadF32(r ByteReader) (float32, error) {
	v, err := ReadU32(r)
	return math.Float32frombits(v), err
}

func ReadF64(r ByteReader) (float64, error) {
	v, err := ReadU64(r)
	return math.Float64frombits(v), err
}

// ReadString reads a VarInt-length-prefixed UTF-8 string, truncating by
// reading-and-discarding the tail if the declared length exceeds maxLen
// (§4.1). It returns ErrInvalidUTF8 if the retained prefix is not valid
// UTF-8.
func ReadString(r ByteReader, maxLen int) (string, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", ErrMalformedVarint
	}
	length := int(n)
	keep := length
	truncated := false
	if keep > maxLen {
		keep = maxLen
		truncated = true
	}
	buf, err := readN(r, keep)
	if err != nil {
		return "", err
	}
	if truncated {
		if _, err := readN(r, length-keep); err != nil {
			return "", err
		}
	}
	if !utf8.Valid(buf) {
		return "", ErrInvalidUTF8
	}
	return string(buf), nil
}

// PackPosition encodes a block position into the compact 8-byte form used
// by the protocol (§4.1): x in bits 38..63, z in bits 12..37, y in bits
// 0..11.
func PackPosition(x, z int32, y int16) uint64 {
	ux := uint64(x) & 0x3FFFFFF
	uz := uint64(z) & 0x3FFFFFF
	uy := uint64(y) & 0xFFF
	return (ux << 38) | (uz << 12) | uy
}

// UnpackPosition inverts PackPosition, sign-extending each field from its
// packed width.
func UnpackPosition(v uint64) (x, z int32, y int16) {
	x = signExtend(int64(v>>38)&0x3FFFFFF, 26)
	z = signExtend(int64(v>>12)&0x3FFFFFF, 26)
	y = int16(signExtend(int64(v)&0xFFF, 12))
	return
}

func signExtend(v int64, bits uint) int32 {
	shift := 64 - bits
	return int32((v << shift) >> shift)
}
