package protocol_test

import (
	"testing"

	"github.com/tannerfokkens-maker/MacintoshCraft/protocol"
)

func TestPositionRoundTrip(t *testing.T) {
	cases := []struct {
		x, z int32
		y    int16
	}{
		{0, 0, 0},
		{1, 1, 1},
		{-1, -1, -1},
		{33554431, 33554431, 2047},
		{-33554432, -33554432, -2048},
		{100, -200, 64},
	}
	for _, c := range cases {
		packed := protocol.PackPosition(c.x, c.z, c.y)
		x, z, y := protocol.UnpackPosition(packed)
		if x != c.x || z != c.z || y != c.y {
			t.Fatalf("pack/unpack(%d,%d,%d) = (%d,%d,%d)", c.x, c.z, c.y, x, z, y)
		}
	}
}
