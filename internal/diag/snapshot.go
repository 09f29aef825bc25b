package diag

import (
	"fmt"
	"io"

	"github.com/nsavage/paracore/internal/heap"
	"github.com/nsavage/paracore/internal/vm"
)

// PoolStats is the pool-side half of a Snapshot. diag has no import of
// internal/pool — a *pool.Pool builds a PoolStats with its own DiagStats
// method, and the caller passes that to Take, which keeps the dependency
// edge one-directional (pool depends on diag for tracing, not the other
// way around).
type PoolStats struct {
	State          string
	Workers        int
	QueueEnqueued  uint64
	QueueDequeued  uint64
	QueueProcessed uint64
	QueueActive    int
	QueuePending   int
}

// Snapshot combines a point-in-time read of a heap, its vm.Manager, and
// optionally a pool, taken under each owner's own lock and assembled
// here without ever holding two of those locks at once.
type Snapshot struct {
	Allocated     uintptr
	Free          uintptr
	PeakAllocated uintptr

	VMTotal uintptr
	VMCount int

	PoolPresent    bool
	PoolState      string
	PoolWorkers    int
	QueueEnqueued  uint64
	QueueDequeued  uint64
	QueueProcessed uint64
	QueueActive    int
	QueuePending   int
}

// Take assembles a Snapshot from a heap and its vm.Manager. ps may be
// nil when no pool is in scope.
func Take(h *heap.Heap, vmMgr *vm.Manager, ps *PoolStats) Snapshot {
	var s Snapshot
	s.Allocated, s.Free, s.PeakAllocated = h.Stats()
	s.VMTotal, s.VMCount = vmMgr.Total(), vmMgr.Count()

	if ps != nil {
		s.PoolPresent = true
		s.PoolState = ps.State
		s.PoolWorkers = ps.Workers
		s.QueueEnqueued, s.QueueDequeued, s.QueueProcessed = ps.QueueEnqueued, ps.QueueDequeued, ps.QueueProcessed
		s.QueueActive, s.QueuePending = ps.QueueActive, ps.QueuePending
	}
	return s
}

// Dump writes a human-readable rendering of the snapshot to w.
func (s Snapshot) Dump(w io.Writer) {
	fmt.Fprintf(w, "heap: allocated=%d free=%d peak=%d\n", s.Allocated, s.Free, s.PeakAllocated)
	fmt.Fprintf(w, "vm: total=%d reservations=%d\n", s.VMTotal, s.VMCount)
	if s.PoolPresent {
		fmt.Fprintf(w, "pool: state=%s workers=%d\n", s.PoolState, s.PoolWorkers)
		fmt.Fprintf(w, "queue: enqueued=%d dequeued=%d processed=%d active=%d pending=%d\n",
			s.QueueEnqueued, s.QueueDequeued, s.QueueProcessed, s.QueueActive, s.QueuePending)
	}
}

// LeakCheck reports a *LeakError if alloc is nonzero. Intended for
// deferred use just before a process exits, the way hivectl's
// subcommands check a returned error before calling os.Exit(1).
func LeakCheck(alloc uintptr) error {
	if alloc != 0 {
		return &LeakError{Bytes: alloc}
	}
	return nil
}
