package freelist

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// List holds the empty slots of a slot vector.
// Implementations are not safe for concurrent use.
type List interface {
	// Push records idx as free. idx must not already be in the list.
	Push(idx uint32)
	// Pop removes and returns the next index to reuse.
	Pop() (uint32, bool)
	// Peek returns the next index to reuse without removing it.
	Peek() (uint32, bool)
	// Len returns the number of free indices.
	Len() int
	// Reset drops every index.
	Reset()
	// Order returns the free indices in the order Pop would return them.
	Order() []uint32
	// Load replaces the contents so that Pop returns order[0] first.
	Load(order []uint32)
	// Clone returns an independent copy.
	Clone() List
}

// Compile-time checks to ensure both strategies satisfy List.
var (
	_ List = (*Stack)(nil)
	_ List = (*Lowest)(nil)
)

// Stack reuses the most recently freed index first.
type Stack struct {
	ids []uint32
}

// NewStack creates an empty LIFO free list.
func NewStack() *Stack {
	return &Stack{ids: make([]uint32, 0)}
}

func (s *Stack) Push(idx uint32) {
	s.ids = append(s.ids, idx)
}

func (s *Stack) Pop() (uint32, bool) {
	n := len(s.ids)
	if n == 0 {
		return 0, false
	}
	idx := s.ids[n-1]
	s.ids = s.ids[:n-1]
	return idx, true
}

func (s *Stack) Peek() (uint32, bool) {
	if len(s.ids) == 0 {
		return 0, false
	}
	return s.ids[len(s.ids)-1], true
}

func (s *Stack) Len() int { return len(s.ids) }

func (s *Stack) Reset() { s.ids = s.ids[:0] }

func (s *Stack) Order() []uint32 {
	out := slices.Clone(s.ids)
	slices.Reverse(out)
	return out
}

func (s *Stack) Load(order []uint32) {
	s.ids = append(s.ids[:0], order...)
	slices.Reverse(s.ids)
}

func (s *Stack) Clone() List {
	return &Stack{ids: slices.Clone(s.ids)}
}

// Lowest reuses the lowest free index first.
type Lowest struct {
	rb *roaring.Bitmap
}

// NewLowest creates an empty lowest-index-first free list.
func NewLowest() *Lowest {
	return &Lowest{rb: roaring.New()}
}

func (l *Lowest) Push(idx uint32) {
	l.rb.Add(idx)
}

func (l *Lowest) Pop() (uint32, bool) {
	if l.rb.IsEmpty() {
		return 0, false
	}
	idx := l.rb.Minimum()
	l.rb.Remove(idx)
	return idx, true
}

func (l *Lowest) Peek() (uint32, bool) {
	if l.rb.IsEmpty() {
		return 0, false
	}
	return l.rb.Minimum(), true
}

func (l *Lowest) Len() int { return int(l.rb.GetCardinality()) }

func (l *Lowest) Reset() { l.rb.Clear() }

// Order returns the free indices in ascending order; the order passed to
// Load is not retained.
func (l *Lowest) Order() []uint32 {
	return l.rb.ToArray()
}

func (l *Lowest) Load(order []uint32) {
	l.rb.Clear()
	l.rb.AddMany(order)
}

func (l *Lowest) Clone() List {
	return &Lowest{rb: l.rb.Clone()}
}
