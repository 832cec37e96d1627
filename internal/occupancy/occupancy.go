package occupancy

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// ErrTooLong is returned by UnmarshalBinaryMax when the encoded set is longer
// than the caller allows.
var ErrTooLong = errors.New("occupancy: encoded set too long")

// Set is a growable set of occupied slot indices.
// It is not safe for concurrent use.
type Set struct {
	bs *bitset.BitSet
}

// New creates a set sized for n slots. The set grows on demand.
func New(n int) *Set {
	if n < 0 {
		n = 0
	}
	return &Set{bs: bitset.New(uint(n))}
}

// Add marks slot i as occupied.
func (s *Set) Add(i int) {
	s.bs.Set(uint(i))
}

// Remove marks slot i as empty.
func (s *Set) Remove(i int) {
	if i < 0 {
		return
	}
	s.bs.Clear(uint(i))
}

// Contains reports whether slot i is occupied.
func (s *Set) Contains(i int) bool {
	if i < 0 {
		return false
	}
	return s.bs.Test(uint(i))
}

// Next returns the lowest occupied index >= i.
func (s *Set) Next(i int) (int, bool) {
	if i < 0 {
		i = 0
	}
	n, ok := s.bs.NextSet(uint(i))
	if !ok {
		return 0, false
	}
	return int(n), true
}

// Prev returns the highest occupied index <= i.
func (s *Set) Prev(i int) (int, bool) {
	if i < 0 || s.bs.Len() == 0 {
		return 0, false
	}
	if last := int(s.bs.Len()) - 1; i > last {
		i = last
	}
	n, ok := s.bs.PreviousSet(uint(i))
	if !ok {
		return 0, false
	}
	return int(n), true
}

// Count returns the number of occupied slots.
func (s *Set) Count() int {
	return int(s.bs.Count())
}

// Reset clears every bit and releases the backing words.
func (s *Set) Reset() {
	s.bs = bitset.New(0)
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{bs: s.bs.Clone()}
}

// MarshalBinary encodes the set.
func (s *Set) MarshalBinary() ([]byte, error) {
	return s.bs.MarshalBinary()
}

// EncodedSize returns the size of MarshalBinary output for a set of n slots.
func EncodedSize(n uint64) uint64 {
	return 8 + 8*((n+63)/64)
}

// UnmarshalBinaryMax is like UnmarshalBinary but rejects, before allocating,
// data whose length field exceeds maxLen or does not match its word count.
func (s *Set) UnmarshalBinaryMax(data []byte, maxLen uint64) error {
	if len(data) < 8 {
		return errors.New("occupancy: encoded set too short")
	}
	n := bitset.BinaryOrder().Uint64(data)
	if n > maxLen {
		return fmt.Errorf("%w: %d bits, at most %d allowed", ErrTooLong, n, maxLen)
	}
	if uint64(len(data)) != EncodedSize(n) {
		return fmt.Errorf("occupancy: %d bits need %d bytes, got %d", n, EncodedSize(n), len(data))
	}
	return s.UnmarshalBinary(data)
}

// UnmarshalBinary replaces the set with the decoded bits.
func (s *Set) UnmarshalBinary(data []byte) error {
	bs := &bitset.BitSet{}
	if err := bs.UnmarshalBinary(data); err != nil {
		return err
	}
	s.bs = bs
	return nil
}
