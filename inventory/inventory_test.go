package inventory_test

import (
	"testing"

	"github.com/tannerfokkens-maker/MacintoshCraft/inventory"
)

func TestSetAndGet(t *testing.T) {
	inv := inventory.New()
	inv.Set(inventory.SlotMainStart, inventory.Stack{Item: 5, Count: 3})
	got := inv.Get(inventory.SlotMainStart)
	if got.Item != 5 || got.Count != 3 {
		t.Fatalf("Get = %+v", got)
	}
}

func TestHeldItemFollowsHotbarSelection(t *testing.T) {
	inv := inventory.New()
	inv.Set(inventory.SlotHotbarStart+3, inventory.Stack{Item: 42, Count: 1})
	inv.SetHeldSlot(3)
	if got := inv.HeldItem(); got.Item != 42 {
		t.Fatalf("HeldItem = %+v, want item 42", got)
	}
}

func TestSetHeldSlotIgnoresOutOfRange(t *testing.T) {
	inv := inventory.New()
	inv.SetHeldSlot(0)
	inv.SetHeldSlot(20)
	if got := inv.HeldItem(); !got.Empty() {
		t.Fatalf("out-of-range SetHeldSlot should be ignored, got %+v", got)
	}
}

func TestStateIDAdvancesOnSet(t *testing.T) {
	inv := inventory.New()
	before := inv.StateID()
	inv.Set(9, inventory.Stack{Item: 1, Count: 1})
	if inv.StateID() == before {
		t.Fatal("StateID did not advance after Set")
	}
}

func TestWireRoundTrip(t *testing.T) {
	s := inventory.Stack{Item: 7, Count: 12}
	w := s.ToWire()
	back := inventory.FromWire(w)
	if back != s {
		t.Fatalf("round trip = %+v, want %+v", back, s)
	}
}

func TestEmptyStackWireRoundTrip(t *testing.T) {
	w := inventory.Stack{}.ToWire()
	if w.Count != 0 {
		t.Fatalf("empty stack wire Count = %d, want 0", w.Count)
	}
}

func TestMatcher2x2Shapeless(t *testing.T) {
	m := inventory.NewMatcher()
	m.Register(inventory.Recipe{
		Shapeless: true,
		Pattern:   []int32{1, 1},
		Result:    inventory.Stack{Item: 100, Count: 4},
	})

	// Same two ingredients, different arrangements: a shapeless recipe
	// must match both.
	diagonal := [4]inventory.Stack{
		{Item: 1, Count: 1}, {},
		{}, {Item: 1, Count: 1},
	}
	if result, ok := m.Match2x2(diagonal); !ok || result.Item != 100 {
		t.Fatalf("Match2x2(diagonal) = %+v, %v", result, ok)
	}

	adjacent := [4]inventory.Stack{
		{Item: 1, Count: 1}, {Item: 1, Count: 1},
		{}, {},
	}
	if result, ok := m.Match2x2(adjacent); !ok || result.Item != 100 {
		t.Fatalf("Match2x2(adjacent) = %+v, %v", result, ok)
	}
}

func TestMatcher2x2ShapelessWrongIngredients(t *testing.T) {
	m := inventory.NewMatcher()
	m.Register(inventory.Recipe{
		Shapeless: true,
		Pattern:   []int32{1, 1},
		Result:    inventory.Stack{Item: 100, Count: 4},
	})

	grid := [4]inventory.Stack{{Item: 1, Count: 1}, {Item: 2, Count: 1}, {}, {}}
	if _, ok := m.Match2x2(grid); ok {
		t.Fatal("Match2x2 matched a grid with the wrong ingredient multiset")
	}
}

func TestMatcher2x2NoMatch(t *testing.T) {
	m := inventory.NewMatcher()
	m.Register(inventory.Recipe{
		Width: 2, Height: 2,
		Pattern: []int32{1, 1, 1, 1},
		Result:  inventory.Stack{Item: 100, Count: 4},
	})

	grid := [4]inventory.Stack{{Item: 1, Count: 1}, {}, {}, {}}
	if _, ok := m.Match2x2(grid); ok {
		t.Fatal("Match2x2 matched a grid that should not satisfy the recipe")
	}
}

func TestMatcher3x3Shaped(t *testing.T) {
	m := inventory.NewMatcher()
	// A pickaxe-shaped recipe: three planks across the top, sticks down the middle.
	m.Register(inventory.Recipe{
		Width: 3, Height: 3,
		Pattern: []int32{
			1, 1, 1,
			0, 2, 0,
			0, 2, 0,
		},
		Result: inventory.Stack{Item: 200, Count: 1},
	})

	grid := [9]inventory.Stack{
		{Item: 1, Count: 1}, {Item: 1, Count: 1}, {Item: 1, Count: 1},
		{}, {Item: 2, Count: 1}, {},
		{}, {Item: 2, Count: 1}, {},
	}
	result, ok := m.Match3x3(grid)
	if !ok || result.Item != 200 {
		t.Fatalf("Match3x3 = %+v, %v", result, ok)
	}
}

func TestChestRegistryPersistsContents(t *testing.T) {
	reg := inventory.NewRegistry()
	chest := reg.Open(10, 64, 10)
	chest.Set(0, inventory.Stack{Item: 9, Count: 1})

	reopened := reg.Open(10, 64, 10)
	if got := reopened.Get(0); got.Item != 9 {
		t.Fatalf("reopened chest lost its contents: %+v", got)
	}
}

func TestChestRegistryRemove(t *testing.T) {
	reg := inventory.NewRegistry()
	reg.Open(1, 1, 1).Set(0, inventory.Stack{Item: 1, Count: 1})
	reg.Remove(1, 1, 1)

	fresh := reg.Open(1, 1, 1)
	if got := fresh.Get(0); !got.Empty() {
		t.Fatalf("removed chest's state leaked into a new chest at the same position: %+v", got)
	}
}
