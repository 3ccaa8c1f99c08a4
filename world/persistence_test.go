package world_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"

	"github.com/tannerfokkens-maker/MacintoshCraft/world"
)

func newTestWorld() *world.World {
	return world.New(world.Config{
		Seed:            0xA103DE6C,
		CacheCapacity:   64,
		MaxBlockChanges: 64,
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	w := newTestWorld()
	w.DayTimeTicks = 12345
	w.Changes.Set(5, 10, 5, world.BlockDiamondBlock)
	w.Changes.Set(-5, 20, 5, world.BlockStone)
	w.AddPlayer(&world.Player{UUID: uuid.New(), Username: "steve", X: 1, Y: 65, Z: 1})

	var buf bytes.Buffer
	if err := w.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := newTestWorld()
	if err := loaded.Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.DayTimeTicks != 12345 {
		t.Fatalf("DayTimeTicks = %d, want 12345", loaded.DayTimeTicks)
	}
	if b, ok := loaded.Changes.Lookup(5, 10, 5); !ok || b != world.BlockDiamondBlock {
		t.Fatalf("Lookup(5,10,5) = %v, %v", b, ok)
	}
	if b, ok := loaded.Changes.Lookup(-5, 20, 5); !ok || b != world.BlockStone {
		t.Fatalf("Lookup(-5,20,5) = %v, %v", b, ok)
	}
	if len(loaded.Players) != 1 {
		t.Fatalf("Players = %d, want 1", len(loaded.Players))
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	w := newTestWorld()
	buf := bytes.NewReader([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	if err := w.Load(buf); err != world.ErrBadMagic {
		t.Fatalf("Load with bad magic = %v, want ErrBadMagic", err)
	}
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	w := newTestWorld()
	w.Changes.Set(1, 1, 1, world.BlockStone)

	var buf bytes.Buffer
	if err := w.Save(&buf); err != nil {
		t.Fatal(err)
	}

	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-4])
	loaded := newTestWorld()
	if err := loaded.Load(truncated); err == nil {
		t.Fatal("Load on truncated data succeeded; want an error")
	}
}

func TestLoadLeavesWorldUnmodifiedOnFailure(t *testing.T) {
	w := newTestWorld()
	w.Changes.Set(2, 2, 2, world.BlockDirt)
	w.DayTimeTicks = 500

	bad := bytes.NewReader([]byte("not a save file at all"))
	if err := w.Load(bad); err == nil {
		t.Fatal("expected Load to fail on garbage input")
	}

	if w.DayTimeTicks != 500 {
		t.Fatal("failed Load mutated DayTimeTicks")
	}
	if b, ok := w.Changes.Lookup(2, 2, 2); !ok || b != world.BlockDirt {
		t.Fatal("failed Load discarded existing block changes")
	}
}
