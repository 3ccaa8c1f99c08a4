// Package xhash implements the hashing and pseudo-random primitives the
// world generator and protocol layer build determinism on: splitmix64 for
// anchor and ore hashes, and xorshift32 for cheap per-call jitter. Both are
// bit-exact reimplementations of well known public-domain mixers; the exact
// constants matter because world generation is golden-tested against them
// (see world/terrain_test.go).
package xhash

// Splitmix64 runs one step of the splitmix64 generator on x and returns the
// mixed 64-bit output. It is a pure function: calling it twice with the same
// x always yields the same result.
func Splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return z
}

// Xorshift32 advances a 32-bit xorshift state and returns the new state. The
// caller owns the state word; Xorshift32 has no side effects of its own.
func Xorshift32(state uint32) uint32 {
	x := state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}

// PackCoord packs a chunk x/z pair and the world seed into the 8
// little-endian bytes splitmix64-based hashes are seeded from (§4.2).
func PackCoord(cx, cz int16, seed uint32) [8]byte {
	var b [8]byte
	b[0] = byte(cx)
	b[1] = byte(cx >> 8)
	b[2] = byte(cz)
	b[3] = byte(cz >> 8)
	b[4] = byte(seed)
	b[5] = byte(seed >> 8)
	b[6] = byte(seed >> 16)
	b[7] = byte(seed >> 24)
	return b
}

// AnchorHash derives the 32-bit chunk anchor hash for (cx, cz) under seed,
// per §3: splitmix64 of the packed coordinate, truncated to 32 bits.
func AnchorHash(cx, cz int32, seed uint32) uint32 {
	packed := PackCoord(int16(cx), int16(cz), seed)
	var x uint64
	for i := 7; i >= 0; i-- {
		x = (x << 8) | uint64(packed[i])
	}
	return uint32(Splitmix64(x))
}
