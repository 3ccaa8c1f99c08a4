package world

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Persistence format constants (§6 "Persistence"). The layout is
// little-endian throughout: magic, version, seed, day_time_ticks, a
// block-change section with a trailing XXH64 checksum (so a truncated
// write is detected rather than silently loaded), then one record per
// player.
const (
	saveMagic   uint32 = 0x4D435346 // "MCSF"
	saveVersion uint16 = 1
)

// ErrBadMagic is returned by Load when the file does not start with the
// expected magic number.
var ErrBadMagic = errors.New("world: save file has wrong magic")

// ErrTruncated is returned by Load when the block-change checksum does
// not match the bytes actually read; the caller should treat this as
// "roll back to the last good state" rather than a fatal error (§6).
var ErrTruncated = errors.New("world: save file truncated or corrupt, rolling back")

// Save writes the world's persisted state to w: seed, clocks, the
// block-change overlay, and every known player (§6).
func (w *World) Save(out io.Writer) error {
	bw := bufio.NewWriter(out)

	if err := binary.Write(bw, binary.LittleEndian, saveMagic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, saveVersion); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, w.Seed); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, w.DayTimeTicks); err != nil {
		return err
	}

	changesBuf := make([]byte, 0, w.Changes.Len()*10)
	var rec [10]byte
	count := uint32(0)
	w.Changes.All(func(c BlockChange) {
		binary.LittleEndian.PutUint32(rec[0:4], uint32(c.X))
		rec[4] = c.Y
		binary.LittleEndian.PutUint32(rec[5:9], uint32(c.Z))
		rec[9] = c.Block
		changesBuf = append(changesBuf, rec[:10]...)
		count++
	})

	if err := binary.Write(bw, binary.LittleEndian, count); err != nil {
		return err
	}
	if _, err := bw.Write(changesBuf); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, xxhash.Sum64(changesBuf)); err != nil {
		return err
	}

	if err := binary.Write(bw, binary.LittleEndian, uint32(len(w.Players))); err != nil {
		return err
	}
	for _, p := range w.Players {
		if err := writePlayerRecord(bw, p); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writePlayerRecord(w io.Writer, p *Player) error {
	idBytes, _ := p.UUID.MarshalBinary()
	if _, err := w.Write(idBytes); err != nil {
		return err
	}
	nameBytes := []byte(p.Username)
	if err := binary.Write(w, binary.LittleEndian, uint8(len(nameBytes))); err != nil {
		return err
	}
	if _, err := w.Write(nameBytes); err != nil {
		return err
	}
	fields := []float64{p.X, p.Y, p.Z}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, p.Yaw); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, p.Pitch)
}

func readPlayerRecord(r io.Reader) (*Player, error) {
	var idBytes [16]byte
	if _, err := io.ReadFull(r, idBytes[:]); err != nil {
		return nil, err
	}
	id, err := uuid.FromBytes(idBytes[:])
	if err != nil {
		return nil, err
	}
	var nameLen uint8
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return nil, err
	}
	nameBytes := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBytes); err != nil {
		return nil, err
	}
	p := &Player{UUID: id, Username: string(nameBytes)}
	for _, dst := range []*float64{&p.X, &p.Y, &p.Z} {
		if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
			return nil, err
		}
	}
	if err := binary.Read(r, binary.LittleEndian, &p.Yaw); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &p.Pitch); err != nil {
		return nil, err
	}
	return p, nil
}

// Load replaces the world's seed, clocks, block changes, and player
// table with the contents of r. On a truncated or corrupt block-change
// section, Load returns ErrTruncated and leaves the World unmodified,
// per §6's "tolerant of truncation (rolls back to pre-serialize
// state)".
func (w *World) Load(r io.Reader) error {
	br := bufio.NewReader(r)

	var magic uint32
	if err := binary.Read(br, binary.LittleEndian, &magic); err != nil {
		return err
	}
	if magic != saveMagic {
		return ErrBadMagic
	}
	var version uint16
	if err := binary.Read(br, binary.LittleEndian, &version); err != nil {
		return err
	}

	var seed uint32
	var dayTime int64
	if err := binary.Read(br, binary.LittleEndian, &seed); err != nil {
		return err
	}
	if err := binary.Read(br, binary.LittleEndian, &dayTime); err != nil {
		return err
	}

	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return err
	}
	changesBuf := make([]byte, int(count)*10)
	if _, err := io.ReadFull(br, changesBuf); err != nil {
		return ErrTruncated
	}
	var wantSum uint64
	if err := binary.Read(br, binary.LittleEndian, &wantSum); err != nil {
		return ErrTruncated
	}
	if xxhash.Sum64(changesBuf) != wantSum {
		return ErrTruncated
	}

	changes := NewChangeIndex(w.Changes.capacity)
	for i := 0; i < int(count); i++ {
		rec := changesBuf[i*10 : i*10+10]
		x := int32(binary.LittleEndian.Uint32(rec[0:4]))
		y := rec[4]
		z := int32(binary.LittleEndian.Uint32(rec[5:9]))
		block := rec[9]
		if err := changes.Set(x, y, z, block); err != nil {
			return err
		}
	}

	var playerCount uint32
	if err := binary.Read(br, binary.LittleEndian, &playerCount); err != nil {
		return ErrTruncated
	}
	players := make(map[uuid.UUID]*Player, playerCount)
	for i := 0; i < int(playerCount); i++ {
		p, err := readPlayerRecord(br)
		if err != nil {
			return ErrTruncated
		}
		players[p.UUID] = p
	}

	w.Seed = seed
	w.DayTimeTicks = dayTime
	w.Changes = changes
	w.Players = players
	w.Cache.Clear()
	return nil
}

// SaveToFile writes the world state to path, replacing any existing
// file only after the new contents are fully written (§6 "serialized to
// a single file ... on clean shutdown and at a periodic interval").
func (w *World) SaveToFile(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := w.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadFromFile reads world state from path.
func (w *World) LoadFromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return w.Load(f)
}
