package registry_test

import (
	"path/filepath"
	"testing"

	"github.com/tannerfokkens-maker/MacintoshCraft/registry"
)

func openTestStore(t *testing.T) *registry.Store {
	t.Helper()
	s, err := registry.Open(filepath.Join(t.TempDir(), "registry.ldb"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutAndEntries(t *testing.T) {
	s := openTestStore(t)

	type payload struct {
		Value int32 `nbt:"value"`
	}
	if err := s.Put("test:registry", "a", payload{Value: 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put("test:registry", "b", payload{Value: 2}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	entries, err := s.Entries("test:registry")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Entries = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if len(e.Data) == 0 {
			t.Fatalf("entry %s has no NBT data", e.ID)
		}
	}
}

func TestPutNilValueIsTagOnly(t *testing.T) {
	s := openTestStore(t)
	if err := s.Put("test:registry", "tag-only", nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	entries, err := s.Entries("test:registry")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Data != nil {
		t.Fatalf("Entries = %+v, want one tag-only entry", entries)
	}
}

func TestEntriesEmptyRegistry(t *testing.T) {
	s := openTestStore(t)
	entries, err := s.Entries("test:missing")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("Entries = %d, want 0", len(entries))
	}
}

func TestBootstrapPopulatesExpectedRegistries(t *testing.T) {
	s := openTestStore(t)
	if err := registry.Bootstrap(s); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	dims, err := s.Entries(registry.RegistryDimensionType)
	if err != nil || len(dims) != 1 {
		t.Fatalf("dimension entries = %d, err = %v", len(dims), err)
	}

	biomes, err := s.Entries(registry.RegistryBiome)
	if err != nil || len(biomes) != 5 {
		t.Fatalf("biome entries = %d, err = %v", len(biomes), err)
	}

	damage, err := s.Entries(registry.RegistryDamageType)
	if err != nil || len(damage) == 0 {
		t.Fatalf("damage type entries = %d, err = %v", len(damage), err)
	}
}

func TestRegistryDataPacketPayload(t *testing.T) {
	s := openTestStore(t)
	registry.Bootstrap(s)

	data, err := s.RegistryData(registry.RegistryBiome)
	if err != nil {
		t.Fatal(err)
	}
	if data.RegistryID != registry.RegistryBiome {
		t.Fatalf("RegistryID = %s", data.RegistryID)
	}
	if len(data.Entries) != 5 {
		t.Fatalf("Entries = %d, want 5", len(data.Entries))
	}
}
