package slotvec

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is the umbrella for every "no value at this index" condition.
	ErrNotFound = errors.New("slotvec: slot not found")

	// ErrOutOfRange is reported for an index outside [0, Len()).
	ErrOutOfRange = fmt.Errorf("%w: index out of range", ErrNotFound)

	// ErrEmptySlot is reported for an in-range index whose slot is empty.
	ErrEmptySlot = fmt.Errorf("%w: slot is empty", ErrNotFound)

	// ErrInvalidLayout is returned by Restore when the supplied slot layout is inconsistent.
	ErrInvalidLayout = errors.New("slotvec: invalid slot layout")

	// ErrCapacityExceeded is the panic value of an insert that would need more than MaxLen slots.
	ErrCapacityExceeded = errors.New("slotvec: capacity exceeded")
)

// IndexError describes a precondition violation of MustGet or MustGetPtr.
// It is the value passed to panic; recover it and use errors.Is with
// ErrOutOfRange, ErrEmptySlot or ErrNotFound to classify it.
type IndexError struct {
	Index int
	Len   int
	Empty bool
}

func (e *IndexError) Error() string {
	if e.Empty {
		return fmt.Sprintf("slotvec: index %d is empty", e.Index)
	}
	return fmt.Sprintf("slotvec: index %d out of range [0:%d]", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	if e.Empty {
		return ErrEmptySlot
	}
	return ErrOutOfRange
}

// LayoutError reports why Restore rejected a layout.
//
// It matches ErrInvalidLayout via errors.Is.
type LayoutError struct {
	Index  int
	Reason string
}

func (e *LayoutError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidLayout, e.Reason)
	}
	return fmt.Sprintf("%s: index %d: %s", ErrInvalidLayout, e.Index, e.Reason)
}

func (e *LayoutError) Unwrap() error { return ErrInvalidLayout }
