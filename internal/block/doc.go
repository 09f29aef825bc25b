// Package block implements the heap's block metadata layer: a
// slice-backed arena of contiguous, address-sorted sub-regions, each
// either FREE or ALLOCATED.
//
// The C lineage of this module used a doubly-linked list of
// heap-allocated nodes connected by raw pointers. Go's ownership
// discipline makes that hazardous to translate directly (aliasing a
// pointer into a slice that later reallocates is a use-after-free
// waiting to happen), so this package instead owns a slice of Block
// records addressed by stable index, with Prev/Next stored as indices.
// This preserves O(1) splice and merge without ever handing out a pointer
// into the arena's backing array.
//
// # Usage
//
//	a := NewArena()
//	i, err := a.Create(0x1000, 4096, Free)
//	right, err := a.Split(i, 64) // a.Get(i) is now size 64, right is the remainder
//	i, err = a.Merge(i, right)    // undoes the split
//
// # Thread-safety
//
// Arena has no internal locking; callers (the heap package) are expected
// to serialize access themselves.
package block
