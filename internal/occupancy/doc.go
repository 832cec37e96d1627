// Package occupancy tracks which slots of a slot vector hold a value.
//
// One bit per slot, backed by github.com/bits-and-blooms/bitset:
//   - bit set   = slot is Occupied
//   - bit clear = slot is Empty (or beyond the end of the vector)
//
// Used internally for:
//   - Membership tests (Contains)
//   - Ordered iteration that skips empty runs a word at a time (Next/Prev)
//   - Snapshot serialization of the slot layout
package occupancy
