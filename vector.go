package slotvec

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"

	"github.com/hupe1980/slotvec/internal/freelist"
	"github.com/hupe1980/slotvec/internal/occupancy"
)

// MaxIndex is the largest index a Vector can hand out.
const MaxIndex = math.MaxUint32

// Vector is a growable array of optional values addressed by stable indices.
//
// Insert places a value in an empty slot (chosen by the ReusePolicy) or
// appends a new slot, and returns the slot's index. The index keeps referring
// to that value until it is removed or the Vector is cleared; removing other
// elements never shifts it.
//
// A removed index may be handed out again by a later Insert. There is no
// generation tag, so callers must not use an index after removing it.
//
// The zero value is an empty Vector using the LowestIndex policy.
// A Vector is not safe for concurrent use.
type Vector[T any] struct {
	slots    []T            // slot storage; empty slots hold the zero value
	occupied *occupancy.Set // bit i set = slot i occupied
	free     freelist.List  // empty slots awaiting reuse
	count    int            // number of occupied slots
	policy   ReusePolicy
}

// New creates an empty Vector.
func New[T any](optFns ...Option) *Vector[T] {
	o := applyOptions(optFns)

	v := &Vector[T]{
		slots:  make([]T, 0, o.capacity),
		policy: o.policy,
	}
	v.init(o.capacity)
	return v
}

func (v *Vector[T]) init(n int) {
	v.occupied = occupancy.New(n)
	switch v.policy {
	case LastFreed:
		v.free = freelist.NewStack()
	default:
		v.free = freelist.NewLowest()
	}
}

func (v *Vector[T]) lazyInit() {
	if v.occupied == nil {
		v.init(len(v.slots))
	}
}

// Policy returns the empty-slot reuse policy.
func (v *Vector[T]) Policy() ReusePolicy { return v.policy }

// Insert stores value and returns its index.
//
// An empty slot is reused when one exists, otherwise a slot is appended at
// index Len(). Insert panics with ErrCapacityExceeded only when the Vector
// already holds MaxIndex+1 slots.
func (v *Vector[T]) Insert(value T) int {
	v.lazyInit()

	if id, ok := v.free.Pop(); ok {
		idx := int(id)
		v.slots[idx] = value
		v.occupied.Add(idx)
		v.count++
		return idx
	}

	idx := len(v.slots)
	if uint64(idx) > MaxIndex {
		panic(ErrCapacityExceeded)
	}
	v.slots = append(v.slots, value)
	v.occupied.Add(idx)
	v.count++
	return idx
}

// Remove empties slot idx and returns the value it held.
// It returns false if idx is out of range or already empty.
func (v *Vector[T]) Remove(idx int) (T, bool) {
	if !v.Contains(idx) {
		var zero T
		return zero, false
	}
	value := v.slots[idx]
	v.vacate(idx)
	return value, true
}

func (v *Vector[T]) vacate(idx int) {
	var zero T
	v.slots[idx] = zero
	v.occupied.Remove(idx)
	v.free.Push(uint32(idx))
	v.count--
}

// Get returns the value at idx and whether the slot is occupied.
func (v *Vector[T]) Get(idx int) (T, bool) {
	if !v.Contains(idx) {
		var zero T
		return zero, false
	}
	return v.slots[idx], true
}

// GetPtr returns a pointer to the value at idx.
//
// The pointer is invalidated by the next Insert that grows the Vector, by
// removing idx, and by Clear or Clip.
func (v *Vector[T]) GetPtr(idx int) (*T, bool) {
	if !v.Contains(idx) {
		return nil, false
	}
	return &v.slots[idx], true
}

// MustGet is the unchecked counterpart of Get. It panics with an *IndexError
// if idx is out of range or empty.
func (v *Vector[T]) MustGet(idx int) T {
	v.mustContain(idx)
	return v.slots[idx]
}

// MustGetPtr is the unchecked counterpart of GetPtr. It panics with an
// *IndexError if idx is out of range or empty.
func (v *Vector[T]) MustGetPtr(idx int) *T {
	v.mustContain(idx)
	return &v.slots[idx]
}

func (v *Vector[T]) mustContain(idx int) {
	if idx < 0 || idx >= len(v.slots) {
		panic(&IndexError{Index: idx, Len: len(v.slots)})
	}
	if !v.occupied.Contains(idx) {
		panic(&IndexError{Index: idx, Len: len(v.slots), Empty: true})
	}
}

// Contains reports whether idx is in range and occupied.
func (v *Vector[T]) Contains(idx int) bool {
	if idx < 0 || idx >= len(v.slots) {
		return false
	}
	return v.occupied.Contains(idx)
}

// Len returns the number of slots, occupied or not.
func (v *Vector[T]) Len() int { return len(v.slots) }

// Count returns the number of occupied slots.
func (v *Vector[T]) Count() int { return v.count }

// IsEmpty reports whether no slot is occupied.
func (v *Vector[T]) IsEmpty() bool { return v.count == 0 }

// Cap returns the capacity of the slot storage.
func (v *Vector[T]) Cap() int { return cap(v.slots) }

// NextIndex returns the index the next Insert will use.
func (v *Vector[T]) NextIndex() int {
	if v.free != nil {
		if id, ok := v.free.Peek(); ok {
			return int(id)
		}
	}
	return len(v.slots)
}

// FreeIndices returns the empty slot indices in the order Insert will reuse them.
func (v *Vector[T]) FreeIndices() []int {
	if v.free == nil {
		return nil
	}
	order := v.free.Order()
	out := make([]int, len(order))
	for i, id := range order {
		out[i] = int(id)
	}
	return out
}

// Clear drops every value and resets the Vector to zero slots.
// All previously returned indices become invalid. The slot storage is kept
// for reuse.
func (v *Vector[T]) Clear() {
	clear(v.slots)
	v.slots = v.slots[:0]
	v.count = 0
	if v.occupied != nil {
		v.occupied.Reset()
		v.free.Reset()
	}
}

// Reserve makes room for at least n more inserts without reallocating.
func (v *Vector[T]) Reserve(n int) {
	if v.free != nil {
		n -= v.free.Len()
	}
	if n > 0 {
		v.slots = slices.Grow(v.slots, n)
	}
}

// Clip releases unused slot storage capacity. Len and every index are unchanged.
func (v *Vector[T]) Clip() {
	v.slots = slices.Clip(v.slots)
}

// Extend inserts every value of seq.
func (v *Vector[T]) Extend(seq iter.Seq[T]) {
	for value := range seq {
		v.Insert(value)
	}
}

// Retain empties every occupied slot for which keep returns false.
// keep receives a pointer and may modify the values it keeps.
func (v *Vector[T]) Retain(keep func(idx int, value *T) bool) {
	if v.occupied == nil {
		return
	}
	for i, ok := v.occupied.Next(0); ok; i, ok = v.occupied.Next(i + 1) {
		if !keep(i, &v.slots[i]) {
			v.vacate(i)
		}
	}
}

// First returns the occupied slot with the lowest index.
func (v *Vector[T]) First() (int, T, bool) {
	if v.count > 0 {
		if i, ok := v.occupied.Next(0); ok {
			return i, v.slots[i], true
		}
	}
	var zero T
	return 0, zero, false
}

// Last returns the occupied slot with the highest index.
func (v *Vector[T]) Last() (int, T, bool) {
	if v.count > 0 {
		if i, ok := v.occupied.Prev(len(v.slots) - 1); ok {
			return i, v.slots[i], true
		}
	}
	var zero T
	return 0, zero, false
}

// PopFront removes and returns the occupied slot with the lowest index.
func (v *Vector[T]) PopFront() (int, T, bool) {
	i, value, ok := v.First()
	if ok {
		v.vacate(i)
	}
	return i, value, ok
}

// PopBack removes and returns the occupied slot with the highest index.
func (v *Vector[T]) PopBack() (int, T, bool) {
	i, value, ok := v.Last()
	if ok {
		v.vacate(i)
	}
	return i, value, ok
}

// Clone returns a copy with the same slots, free order and policy.
// Values are copied by assignment.
func (v *Vector[T]) Clone() *Vector[T] {
	c := &Vector[T]{
		slots:  slices.Clone(v.slots),
		count:  v.count,
		policy: v.policy,
	}
	if v.occupied == nil {
		c.init(0)
		return c
	}
	c.occupied = v.occupied.Clone()
	c.free = v.free.Clone()
	return c
}

// String renders the occupied slots as a map, e.g. {0:a 2:c}.
func (v *Vector[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for i, value := range v.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "%d:%v", i, value)
	}
	sb.WriteByte('}')
	return sb.String()
}
