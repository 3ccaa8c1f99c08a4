package protocol_test

import (
	"bytes"
	"testing"

	"github.com/tannerfokkens-maker/MacintoshCraft/protocol"
)

func TestFixedWidthRoundTrip(t *testing.T) {
	var buf []byte
	buf = protocol.WriteU8(buf, 0xAB)
	buf = protocol.WriteI16(buf, -1234)
	buf = protocol.WriteU32(buf, 0xDEADBEEF)
	buf = protocol.WriteI64(buf, -1)
	buf = protocol.WriteF32(buf, 3.5)
	buf = protocol.WriteF64(buf, -2.25)
	buf = protocol.WriteBool(buf, true)

	r := protocol.NewByteReader(bytes.NewReader(buf))
	if v, _ := protocol.ReadU8(r); v != 0xAB {
		t.Fatalf("u8 = %x", v)
	}
	if v, _ := protocol.ReadI16(r); v != -1234 {
		t.Fatalf("i16 = %d", v)
	}
	if v, _ := protocol.ReadU32(r); v != 0xDEADBEEF {
		t.Fatalf("u32 = %x", v)
	}
	if v, _ := protocol.ReadI64(r); v != -1 {
		t.Fatalf("i64 = %d", v)
	}
	if v, _ := protocol.ReadF32(r); v != 3.5 {
		t.Fatalf("f32 = %v", v)
	}
	if v, _ := protocol.ReadF64(r); v != -2.25 {
		t.Fatalf("f64 = %v", v)
	}
	if v, _ := protocol.ReadBool(r); v != true {
		t.Fatalf("bool = %v", v)
	}
}

func TestStringRoundTrip(t *testing.T) {
	buf := protocol.WriteString(nil, "Tester")
	r := protocol.NewByteReader(bytes.NewReader(buf))
	got, err := protocol.ReadString(r, 16)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "Tester" {
		t.Fatalf("got %q", got)
	}
}

func TestStringTruncatesTail(t *testing.T) {
	buf := protocol.WriteString(nil, "a-much-longer-username-than-allowed")
	r := protocol.NewByteReader(bytes.NewReader(buf))
	got, err := protocol.ReadString(r, 5)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "a-muc" {
		t.Fatalf("got %q", got)
	}
}

func TestStringInvalidUTF8(t *testing.T) {
	var buf []byte
	buf = protocol.WriteVarInt(buf, 3)
	buf = append(buf, 0xFF, 0xFE, 0xFD)
	r := protocol.NewByteReader(bytes.NewReader(buf))
	_, err := protocol.ReadString(r, 16)
	if err != protocol.ErrInvalidUTF8 {
		t.Fatalf("got %v, want ErrInvalidUTF8", err)
	}
}
