package slotvec

import "fmt"

// ReusePolicy selects which empty slot Insert fills when several are free.
type ReusePolicy uint8

const (
	// LowestIndex reuses the lowest-numbered empty slot first (default).
	LowestIndex ReusePolicy = iota
	// LastFreed reuses the most recently emptied slot first.
	LastFreed
)

// String returns the policy name.
func (p ReusePolicy) String() string {
	switch p {
	case LowestIndex:
		return "lowest-index"
	case LastFreed:
		return "last-freed"
	default:
		return fmt.Sprintf("ReusePolicy(%d)", uint8(p))
	}
}

// Valid reports whether p is a known policy.
func (p ReusePolicy) Valid() bool {
	return p == LowestIndex || p == LastFreed
}

type options struct {
	capacity int
	policy   ReusePolicy
}

// Option configures a Vector at construction time.
type Option func(*options)

// WithCapacity preallocates room for n slots.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithReusePolicy sets the empty-slot reuse policy.
// Unknown policies are ignored and the default (LowestIndex) is kept.
//
// Example:
//
//	v := slotvec.New[string](slotvec.WithReusePolicy(slotvec.LastFreed))
func WithReusePolicy(p ReusePolicy) Option {
	return func(o *options) {
		if p.Valid() {
			o.policy = p
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		policy: LowestIndex,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
