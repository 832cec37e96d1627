// Package slotvec provides Vector, a growable array of optional values whose
// indices stay stable while elements come and go.
//
// Vector behaves like a []*T where nil entries are holes that the next
// Insert fills. An index returned by Insert identifies its value until that
// value is removed or the Vector is cleared; nothing is ever shifted.
//
// # Quick Start
//
//	v := slotvec.New[string]()
//	a := v.Insert("a") // 0
//	b := v.Insert("b") // 1
//	c := v.Insert("c") // 2
//
//	v.Remove(b)        // "b", true
//	d := v.Insert("d") // 1: the freed slot is reused
//
//	for i, s := range v.All() {
//	    fmt.Println(i, s) // 0 a, 1 d, 2 c
//	}
//
// # Checked and Unchecked Access
//
// Get, GetPtr, Remove and Contains report a missing value through their
// boolean result and never panic. MustGet and MustGetPtr are the indexing
// operator: they assert that the slot is occupied and panic with an
// *IndexError otherwise.
//
//	s, ok := v.Get(7)  // "", false
//	s = v.MustGet(a)   // "a"
//	s = v.MustGet(7)   // panics: slotvec: index 7 out of range [0:3]
//
// # Slot Reuse
//
// When several slots are empty, the ReusePolicy decides which one Insert
// fills:
//
//	LowestIndex (default)  lowest empty index first, keeps the Vector dense at the front
//	LastFreed              most recently removed index first, O(1) stack
//
// Reuse is not tracked by generation: after Remove(i) a later Insert may
// return i again for a different value.
//
// # Persistence
//
// The snapshot package encodes a Vector, including its empty slots and reuse
// order, into a checksummed binary blob and stores it through a blobstore
// (local disk, memory, S3 or MinIO).
//
// # Concurrency
//
// A Vector is not safe for concurrent use. Guard it with a sync.Mutex when it
// is shared between goroutines.
package slotvec
