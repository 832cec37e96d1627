package slotvec

import (
	"iter"
	"slices"

	"github.com/hupe1980/slotvec/internal/occupancy"
)

// Collect builds a dense Vector: the i-th value of seq is stored at index i.
func Collect[T any](seq iter.Seq[T], optFns ...Option) *Vector[T] {
	v := New[T](optFns...)
	for value := range seq {
		v.Insert(value)
	}
	return v
}

// FromSeq2 builds a Vector from explicit (index, value) pairs.
//
// Len becomes the highest index + 1; indices that receive no value are empty
// and queued for reuse in ascending order. If an index repeats, the last value
// wins. A negative index panics with an *IndexError.
func FromSeq2[T any](seq iter.Seq2[int, T], optFns ...Option) *Vector[T] {
	v := New[T](optFns...)
	for idx, value := range seq {
		if idx < 0 {
			panic(&IndexError{Index: idx, Len: len(v.slots)})
		}
		if uint64(idx) > MaxIndex {
			panic(ErrCapacityExceeded)
		}
		if idx >= len(v.slots) {
			v.slots = append(v.slots, make([]T, idx+1-len(v.slots))...)
		}
		v.slots[idx] = value
		if !v.occupied.Contains(idx) {
			v.occupied.Add(idx)
			v.count++
		}
	}

	gaps := make([]uint32, 0, len(v.slots)-v.count)
	for i := range v.slots {
		if !v.occupied.Contains(i) {
			gaps = append(gaps, uint32(i))
		}
	}
	v.free.Load(gaps)
	return v
}

// Restore rebuilds a Vector with exactly n slots, the given occupied entries
// and the given reuse order for the empty slots (free[0] is reused first).
//
// Every index in [0, n) must appear exactly once, either in entries or in
// free. Violations return an error matching ErrInvalidLayout.
//
// With the LowestIndex policy the reuse order is always ascending, so the
// order of free only matters for LastFreed.
func Restore[T any](n int, entries iter.Seq2[int, T], free []int, optFns ...Option) (*Vector[T], error) {
	if n < 0 || uint64(n) > MaxIndex+1 {
		return nil, &LayoutError{Index: -1, Reason: "slot count out of range"}
	}

	v := New[T](optFns...)
	v.slots = slices.Grow(v.slots, n)[:n]
	v.occupied = occupancy.New(n)

	for idx, value := range entries {
		if idx < 0 || idx >= n {
			return nil, &LayoutError{Index: idx, Reason: "entry out of range"}
		}
		if v.occupied.Contains(idx) {
			return nil, &LayoutError{Index: idx, Reason: "duplicate entry"}
		}
		v.slots[idx] = value
		v.occupied.Add(idx)
		v.count++
	}

	if len(free) != n-v.count {
		return nil, &LayoutError{Index: -1, Reason: "free list does not cover every empty slot"}
	}

	seen := occupancy.New(n)
	order := make([]uint32, 0, len(free))
	for _, idx := range free {
		if idx < 0 || idx >= n {
			return nil, &LayoutError{Index: idx, Reason: "free index out of range"}
		}
		if v.occupied.Contains(idx) {
			return nil, &LayoutError{Index: idx, Reason: "free index is occupied"}
		}
		if seen.Contains(idx) {
			return nil, &LayoutError{Index: idx, Reason: "duplicate free index"}
		}
		seen.Add(idx)
		order = append(order, uint32(idx))
	}
	v.free.Load(order)
	return v, nil
}
