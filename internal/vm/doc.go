// Package vm reserves page-aligned ranges of address space from the
// operating system and tracks every outstanding reservation so they can
// all be released.
//
// It is the sole provider of raw address space to the heap package: the
// heap never calls mmap/munmap directly, and nothing above this package
// knows whether a range came from an anonymous mapping, a pooled
// allocation, or (on platforms without mmap) a plain heap-backed slice.
//
// # Usage
//
//	mgr := vm.NewManager()
//	addr, err := mgr.Reserve(4096)
//	if err != nil {
//	    return err
//	}
//	defer mgr.Release(addr, 4096)
//
// # Thread-safety
//
// A *Manager may be shared across goroutines; every operation takes the
// manager's internal mutex.
package vm
