package engine

import (
	"unsafe"

	dragon "github.com/Bubblyworld/dragontoothmg"
)

// Bound flags for transposition table entries.
const (
	ExactFlag uint8 = iota
	LowerFlag       // score is a lower bound (beta cutoff)
	UpperFlag       // score is an upper bound (alpha never raised)
)

// DefaultTTSlots is 2^20 entries, roughly 32 MiB.
const DefaultTTSlots = 1 << 20

// TTEntry is one transposition table slot. Depth -1 marks an empty slot.
// Mate scores are stored ply-independent; Probe callers re-shift them to
// their own ply.
type TTEntry struct {
	Hash  uint64
	Score int32
	Move  dragon.Move
	Depth int8
	Flag  uint8
}

// TransTable is a fixed-size zobrist-indexed cache of prior search
// results. The slot count is a power of two so indexing is a mask.
type TransTable struct {
	entries []TTEntry
	mask    uint64
}

// Init sizes the table to the largest power of two not above slots and
// marks every slot empty.
func (tt *TransTable) Init(slots int) {
	size := 1
	for size<<1 <= slots {
		size <<= 1
	}
	tt.entries = make([]TTEntry, size)
	tt.mask = uint64(size - 1)
	tt.Clear()
}

// InitMB sizes the table to fit the given number of megabytes.
func (tt *TransTable) InitMB(mb int) {
	if mb < 1 {
		mb = 1
	}
	entrySize := int(unsafe.Sizeof(TTEntry{}))
	tt.Init(mb * 1024 * 1024 / entrySize)
}

func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{Depth: -1}
	}
}

// Probe returns the slot for the hash iff it is occupied and the
// fingerprint matches; a colliding occupant behaves as a miss.
func (tt *TransTable) Probe(hash uint64) *TTEntry {
	entry := &tt.entries[hash&tt.mask]
	if entry.Depth >= 0 && entry.Hash == hash {
		return entry
	}
	return nil
}

// Store writes the slot if it is empty, already holds this position, or
// the new result is at least as deep (depth-preferred replacement).
func (tt *TransTable) Store(hash uint64, score int32, depth int, flag uint8, best dragon.Move) {
	entry := &tt.entries[hash&tt.mask]
	if entry.Depth < 0 || entry.Hash == hash || int8(depth) >= entry.Depth {
		*entry = TTEntry{
			Hash:  hash,
			Score: score,
			Move:  best,
			Depth: int8(depth),
			Flag:  flag,
		}
	}
}

// normalizeMate shifts a mate score to its ply-independent form for
// storage: the distance from the root is removed so the entry is valid at
// any ply it is probed from.
func normalizeMate(score int32, ply int) int32 {
	if score > MateThreshold {
		return score + int32(ply)
	}
	if score < -MateThreshold {
		return score - int32(ply)
	}
	return score
}

// denormalizeMate re-injects the prober's ply into a stored mate score.
func denormalizeMate(score int32, ply int) int32 {
	if score > MateThreshold {
		return score - int32(ply)
	}
	if score < -MateThreshold {
		return score + int32(ply)
	}
	return score
}
