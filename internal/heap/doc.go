// Package heap implements the allocator's single block list: allocate,
// free, policy-directed search, extension via the vm package, merging,
// and the verify/dump diagnostics.
//
// A Heap owns one block.Arena, one vm.Manager, and (unless concurrency is
// disabled) one mutex. Every public method that touches the block list
// takes that mutex; callers above this package only ever see copies of
// block.Block values (from FindBlock/FindFreeBlock) or the diagnostics
// of Stats/Dump/Verify, never the arena itself.
//
// # Usage
//
//	mgr := vm.NewManager()
//	h, err := heap.New(mgr, heap.FirstFit, true)
//	addr, err := h.Allocate(1024)
//	err = h.Free(addr)
//
// # Thread-safety
//
// Safe for concurrent use when constructed with enableLock = true (the
// default for every caller except single-threaded test harnesses that
// want to avoid lock overhead).
package heap
