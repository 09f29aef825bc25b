// Package allocator is the public facade over the heap: lazy
// process-wide initialization plus Alloc/Free/Stats/Dump/Verify.
//
// Most callers use the package-level functions, which operate on a
// lazily-initialized global Facade. Callers that want an isolated
// allocator — notably tests — should use New instead.
//
// # Usage
//
//	p := allocator.Alloc(1024)
//	defer allocator.Free(p)
//
// # Thread-safety
//
// The global facade is safe for concurrent use from the moment the
// process starts; the first call through it pays a one-time
// double-checked initialization cost. The one exception is a global
// facade built by Init(false): its heap takes no internal mutex, so
// callers must serialize access themselves.
package allocator
