package world_test

import (
	"testing"

	"github.com/tannerfokkens-maker/MacintoshCraft/internal/xhash"
	"github.com/tannerfokkens-maker/MacintoshCraft/world"
)

// sectionHash is the §8 "byte-wise FNV-like hash" used to lock golden
// section contents: h = sum(h*31 + b) over the section bytes.
func sectionHash(sec world.Section) uint64 {
	var h uint64
	for _, b := range sec {
		h = h*31 + uint64(b)
	}
	return h
}

func TestBuildFreshDeterministicSeed(t *testing.T) {
	seed := uint32(xhash.Splitmix64(0xA103DE6C))
	gen := world.NewGenerator(world.DefaultGenConfig(seed))

	first, firstBiome := gen.BuildFresh(0, 0, 0)
	second, secondBiome := gen.BuildFresh(0, 0, 0)

	if first != second || firstBiome != secondBiome {
		t.Fatal("BuildFresh is not deterministic for repeated calls with the same coordinates")
	}
	// Locks in the section's shape for regression purposes; if a future
	// change to the generator alters this value, update it deliberately
	// rather than silently.
	t.Logf("section hash = 0x%X, biome = %s", sectionHash(first), firstBiome)
	const want = 0xE0541C1DCB94FB08
	if got := sectionHash(first); got != want {
		t.Fatalf("section hash = 0x%X, want 0x%X", got, uint64(want))
	}
}

func TestBuildFreshNegativeCoordinates(t *testing.T) {
	seed := uint32(xhash.Splitmix64(0xA103DE6C))
	gen := world.NewGenerator(world.DefaultGenConfig(seed))

	first, firstBiome := gen.BuildFresh(-16, 0, -16)
	second, secondBiome := gen.BuildFresh(-16, 0, -16)

	if first != second || firstBiome != secondBiome {
		t.Fatal("BuildFresh diverged across repeated calls at negative chunk coordinates")
	}
}

func TestHeightAtStableAcrossSectionBoundary(t *testing.T) {
	gen := world.NewGenerator(world.DefaultGenConfig(12345))
	// HeightAt must return the same height on repeated calls for columns
	// on both sides of the chunk boundaries at x = -16, 0 and 16.
	for _, x := range []int32{-17, -16, -1, 0, 1, 15, 16, 17} {
		h1 := gen.HeightAt(x, 0)
		h2 := gen.HeightAt(x, 0)
		if h1 != h2 {
			t.Fatalf("HeightAt(%d, 0) not stable: %d vs %d", x, h1, h2)
		}
	}
}

func TestBuildFreshNeverWritesSentinel(t *testing.T) {
	gen := world.NewGenerator(world.DefaultGenConfig(777))
	sec, _ := gen.BuildFresh(3, 0, -5)
	for _, b := range sec {
		if b == world.SentinelBlock {
			t.Fatal("generated section contains the sentinel block value")
		}
	}
}

func TestBuildFreshDifferentSeedsDiverge(t *testing.T) {
	gen1 := world.NewGenerator(world.DefaultGenConfig(1))
	gen2 := world.NewGenerator(world.DefaultGenConfig(2))

	sec1, _ := gen1.BuildFresh(0, 4, 0)
	sec2, _ := gen2.BuildFresh(0, 4, 0)

	if sec1 == sec2 {
		t.Fatal("two different seeds produced byte-identical sections; seed is not affecting generation")
	}
}

func TestReversedOctetLayoutMatchesSectionAccessors(t *testing.T) {
	gen := world.NewGenerator(world.DefaultGenConfig(99))
	sec, _ := gen.BuildFresh(0, 4, 0)

	for y := 0; y < world.SectionSize; y++ {
		for z := 0; z < world.SectionSize; z++ {
			for x := 0; x < world.SectionSize; x++ {
				addr := world.LinearAddr(x, y, z)
				idx := world.StorageIndex(addr)
				if sec[idx] != sec.At(x, y, z) {
					t.Fatalf("At(%d,%d,%d) disagrees with raw reversed-octet index", x, y, z)
				}
			}
		}
	}
}
