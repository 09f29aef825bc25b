package allocator

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/nsavage/paracore/internal/diag"
	"github.com/nsavage/paracore/internal/heap"
	"github.com/nsavage/paracore/internal/vm"
)

// Facade hides the heap and vm layers behind the five operations callers
// actually need. A Facade constructed via New is independent of the
// package-level global; the global is what the package-level functions
// (Alloc, Free, ...) operate on.
type Facade struct {
	vmMgr *vm.Manager
	h     *heap.Heap

	tracer atomic.Pointer[diag.Tracer]
}

// SetTracer wires t into the facade so Alloc and Free record lifecycle
// events into it. Passing nil detaches any previously wired tracer.
func (f *Facade) SetTracer(t *diag.Tracer) {
	f.tracer.Store(t)
}

// New constructs an isolated Facade with its own heap and vm.Manager,
// bypassing the package-level global. Tests that want to avoid sharing
// state across cases should use this instead of the global functions.
func New(policy heap.Policy) (*Facade, error) {
	vmMgr := vm.NewManager()
	h, err := heap.New(vmMgr, policy, true)
	if err != nil {
		return nil, err
	}
	return &Facade{vmMgr: vmMgr, h: h}, nil
}

// Alloc returns the start address of a new allocation of size bytes, or
// 0 if size is 0 or the allocation failed.
func (f *Facade) Alloc(size uintptr) uintptr {
	if size == 0 {
		return 0
	}
	addr, err := f.h.Allocate(size)
	if err != nil {
		return 0
	}
	if tr := f.tracer.Load(); tr != nil {
		tr.Record(diag.EventAlloc, size, 1)
	}
	return addr
}

// Free releases the allocation starting at ptr. Free(0) is a no-op that
// always reports success.
func (f *Facade) Free(ptr uintptr) error {
	if ptr == 0 {
		return nil
	}
	if err := f.h.Free(ptr); err != nil {
		return err
	}
	if tr := f.tracer.Load(); tr != nil {
		tr.Record(diag.EventFree, 0, 1)
	}
	return nil
}

// Stats returns the facade's current allocated, free, and peak-allocated
// byte counts.
func (f *Facade) Stats() (allocated, free, peak uintptr) {
	return f.h.Stats()
}

// Verify checks the facade's heap invariants.
func (f *Facade) Verify() error {
	return f.h.Verify()
}

// Dump writes a diagnostic listing of the facade's heap and vm state.
func (f *Facade) Dump(w io.Writer) {
	f.h.Dump(w)
	f.vmMgr.Dump(w)
}

// Cleanup releases every block and every vm reservation owned by this
// facade. The facade must not be used again afterward.
func (f *Facade) Cleanup() error {
	return f.h.Cleanup()
}

// global holds the process-wide Facade used by the package-level
// functions. globalPtr is the fast path: an uncontended atomic read that
// lets every call after the first skip initMu entirely. initMu guards the
// slow path — building the Facade — and is re-checked against globalPtr
// after acquisition, which is the double-checked pattern spec.md §4.4
// calls for.
var (
	globalPtr atomic.Pointer[Facade]
	initMu    sync.Mutex
)

// ensureGlobal returns the process-wide Facade, constructing it on first
// use. Concurrent callers that race to be first all block on initMu; only
// one of them actually builds the Facade, and every later call returns
// from the atomic load without taking the lock at all.
func ensureGlobal() *Facade {
	if f := globalPtr.Load(); f != nil {
		return f
	}
	initMu.Lock()
	defer initMu.Unlock()
	if f := globalPtr.Load(); f != nil {
		return f
	}
	// Errors here would only come from an invalid policy, and FirstFit
	// is always valid, so this constructor cannot fail in practice;
	// New's error return exists for the general case (an explicit Init
	// call with a caller-supplied policy).
	f, _ := New(heap.FirstFit)
	globalPtr.Store(f)
	return f
}

// Init explicitly (re-)initializes the global facade. It is idempotent:
// calling it again without an intervening Cleanup is a no-op that
// returns nil. enableConcurrency selects whether the underlying heap
// takes its internal mutex.
func Init(enableConcurrency bool) error {
	initMu.Lock()
	defer initMu.Unlock()
	if globalPtr.Load() != nil {
		return nil
	}
	vmMgr := vm.NewManager()
	h, err := heap.New(vmMgr, heap.FirstFit, enableConcurrency)
	if err != nil {
		return err
	}
	globalPtr.Store(&Facade{vmMgr: vmMgr, h: h})
	return nil
}

// Cleanup tears down the global facade and resets lazy-init state so a
// subsequent Alloc, Free, or Init re-initializes from scratch.
func Cleanup() error {
	initMu.Lock()
	f := globalPtr.Load()
	globalPtr.Store(nil)
	initMu.Unlock()

	if f == nil {
		return nil
	}
	return f.Cleanup()
}

// Alloc allocates from the global facade, initializing it on first use.
func Alloc(size uintptr) uintptr {
	return ensureGlobal().Alloc(size)
}

// Free releases an allocation made through the global facade.
func Free(ptr uintptr) error {
	return ensureGlobal().Free(ptr)
}

// Stats returns the global facade's current counters.
func Stats() (allocated, free, peak uintptr, err error) {
	allocated, free, peak = ensureGlobal().Stats()
	return allocated, free, peak, nil
}

// Verify checks the global facade's heap invariants.
func Verify() error {
	return ensureGlobal().Verify()
}

// Dump writes a diagnostic listing of the global facade's state.
func Dump(w io.Writer) {
	ensureGlobal().Dump(w)
}

// SetTracer wires t into the global facade.
func SetTracer(t *diag.Tracer) {
	ensureGlobal().SetTracer(t)
}
