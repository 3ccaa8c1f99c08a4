// Package registry stores the configuration-state registry data sent
// during login (§4.2's configuration state): dimension types, biomes,
// damage types, and the other data-driven tag sets the client requires
// before play begins. Entries are kept in an embedded leveldb so a
// server restart doesn't need to re-marshal every registry's NBT on
// every boot, and are encoded with the same NBT codec the real client
// speaks.
package registry

import (
	"bytes"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/sandertv/gophertunnel/minecraft/nbt"

	"github.com/tannerfokkens-maker/MacintoshCraft/protocol"
)

// Store is a keyed blob store of registry entries, backed by leveldb.
// Keys are "<registryID>/<entryID>"; values are big-endian NBT-encoded
// compound tags (or empty, for a tag-only entry with no override data).
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if necessary) the leveldb store at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("registry: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func entryKey(registryID, entryID string) []byte {
	return []byte(registryID + "/" + entryID)
}

// Put marshals value as big-endian NBT and stores it under
// (registryID, entryID). A nil value stores a tag-only entry (no
// override data sent to the client).
func (s *Store) Put(registryID, entryID string, value any) error {
	if value == nil {
		return s.db.Put(entryKey(registryID, entryID), nil, nil)
	}
	var buf bytes.Buffer
	enc := nbt.NewEncoderWithEncoding(&buf, nbt.BigEndian)
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("registry: encode %s/%s: %w", registryID, entryID, err)
	}
	return s.db.Put(entryKey(registryID, entryID), buf.Bytes(), nil)
}

// Entries returns every entry registered under registryID, ordered
// lexicographically by entry ID (leveldb iterates keys in byte order),
// not in insertion order; callers that care about ordering should use
// zero-padded or otherwise order-preserving entry IDs.
func (s *Store) Entries(registryID string) ([]protocol.RegistryEntry, error) {
	prefix := []byte(registryID + "/")
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	var entries []protocol.RegistryEntry
	for iter.Seek(prefix); iter.Valid() && bytes.HasPrefix(iter.Key(), prefix); iter.Next() {
		id := string(iter.Key()[len(prefix):])
		var data []byte
		if len(iter.Value()) > 0 {
			data = append(data, iter.Value()...)
		}
		entries = append(entries, protocol.RegistryEntry{ID: id, Data: data})
	}
	return entries, iter.Error()
}

// RegistryData builds the full protocol.RegistryData packet payload for
// registryID.
func (s *Store) RegistryData(registryID string) (protocol.RegistryData, error) {
	entries, err := s.Entries(registryID)
	if err != nil {
		return protocol.RegistryData{}, err
	}
	return protocol.RegistryData{RegistryID: registryID, Entries: entries}, nil
}
