package slotvec

import (
	"cmp"
	"iter"
)

// Equal reports whether a and b hold the same values in the same index order.
// Slot positions and empty slots are not compared: {0:x 1:y} equals {1:x 4:y}.
func Equal[T comparable](a, b *Vector[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but compares values with eq.
func EqualFunc[T, U any](a *Vector[T], b *Vector[U], eq func(T, U) bool) bool {
	if a.Count() != b.Count() {
		return false
	}

	next, stop := iter.Pull(b.Values())
	defer stop()

	for x := range a.Values() {
		y, ok := next()
		if !ok || !eq(x, y) {
			return false
		}
	}
	return true
}

// Compare compares the occupied values of a and b lexicographically, in index
// order. The result is 0 if a == b, -1 if a < b, and +1 if a > b.
func Compare[T cmp.Ordered](a, b *Vector[T]) int {
	next, stop := iter.Pull(b.Values())
	defer stop()

	for x := range a.Values() {
		y, ok := next()
		if !ok {
			return 1
		}
		if c := cmp.Compare(x, y); c != 0 {
			return c
		}
	}
	if _, ok := next(); ok {
		return -1
	}
	return 0
}
