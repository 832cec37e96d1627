// Package freelist tracks empty slot indices awaiting reuse.
//
// Two strategies are provided:
//   - Stack: last freed, first reused. O(1) push and pop.
//   - Lowest: lowest index first, backed by a Roaring bitmap. O(log n) pop,
//     compact for long runs of freed slots.
//
// Indices are uint32, which bounds a slot vector at 2^32 slots.
package freelist
