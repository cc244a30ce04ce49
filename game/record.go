package game

import (
	"errors"
	"fmt"
)

// ErrRecordFull reports a move number beyond the record's capacity. The entry
// is dropped; the game keeps going without it.
var ErrRecordFull = errors.New("record is full")

// Record is the move-history ledger for one game: for each move number the
// stone color, the coordinate played, and the resulting position hash. The
// hash column backs repetition (superko) checks.
//
// A single writer appends moves. Queries may run concurrently only while no
// Save or Clear is in progress.
type Record struct {
	capacity int
	color    []Stone
	pos      []int
	hash     []uint64
}

func NewRecord(capacity int) *Record {
	if capacity <= 0 {
		panic("record capacity must be positive")
	}
	r := &Record{
		capacity: capacity,
		color:    make([]Stone, capacity),
		pos:      make([]int, capacity),
		hash:     make([]uint64, capacity),
	}
	r.Clear()
	return r
}

// Clear resets every slot to the empty state.
func (r *Record) Clear() {
	for i := 0; i < r.capacity; i++ {
		r.color[i] = Empty
		r.pos[i] = Pass
		r.hash[i] = 0
	}
}

// Save writes the move at the given move number. Writes are idempotent per
// index: the caller must always pass the actual move count, not rely on an
// internal cursor.
func (r *Record) Save(moves int, color Stone, pos int, hash uint64) error {
	if moves < 0 || moves >= r.capacity {
		return fmt.Errorf("%w: cannot save move %d", ErrRecordFull, moves)
	}
	r.color[moves] = color
	r.pos[moves] = pos
	r.hash[moves] = hash
	return nil
}

// HasSameHash reports whether any stored hash equals the given one. Empty
// slots hold hash zero, so callers must not probe with zero before the first
// real move is saved.
func (r *Record) HasSameHash(hash uint64) bool {
	for _, h := range r.hash {
		if h == hash {
			return true
		}
	}
	return false
}

// Get returns the stored triple for a move number. An out-of-range move
// number is a caller bug.
func (r *Record) Get(moves int) (Stone, int, uint64) {
	if moves < 0 || moves >= r.capacity {
		panic(fmt.Sprintf("move number %d out of range [0, %d)", moves, r.capacity))
	}
	return r.color[moves], r.pos[moves], r.hash[moves]
}

// HashHistory returns the full hash column, trailing empty entries included.
// The slice aliases the record's storage; callers must treat it as read-only.
func (r *Record) HashHistory() []uint64 {
	return r.hash
}

func (r *Record) Capacity() int {
	return r.capacity
}

// CopyRecord deep-copies src into dst. The two records share no storage
// afterwards. Capacities must match.
func CopyRecord(dst, src *Record) {
	if dst.capacity != src.capacity {
		panic(fmt.Sprintf("record capacity mismatch: %d != %d", dst.capacity, src.capacity))
	}
	copy(dst.color, src.color)
	copy(dst.pos, src.pos)
	copy(dst.hash, src.hash)
}
