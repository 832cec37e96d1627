package slotvec

import "iter"

// All returns an iterator over the occupied slots as (index, value) pairs in
// increasing index order.
//
// The iterator reads the Vector lazily: removals made while ranging are
// observed, and each call to All starts over from the current state.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if v.occupied == nil {
			return
		}
		for i, ok := v.occupied.Next(0); ok; i, ok = v.occupied.Next(i + 1) {
			if !yield(i, v.slots[i]) {
				return
			}
		}
	}
}

// Backward is like All but yields in decreasing index order.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if v.occupied == nil {
			return
		}
		for i, ok := v.occupied.Prev(len(v.slots) - 1); ok; i, ok = v.occupied.Prev(i - 1) {
			if !yield(i, v.slots[i]) {
				return
			}
		}
	}
}

// Pointers is like All but yields pointers so values can be updated in place.
func (v *Vector[T]) Pointers() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		if v.occupied == nil {
			return
		}
		for i, ok := v.occupied.Next(0); ok; i, ok = v.occupied.Next(i + 1) {
			if !yield(i, &v.slots[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the occupied values in increasing index order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.All() {
			if !yield(value) {
				return
			}
		}
	}
}

// Indices returns an iterator over the occupied indices in increasing order.
func (v *Vector[T]) Indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range v.All() {
			if !yield(i) {
				return
			}
		}
	}
}
