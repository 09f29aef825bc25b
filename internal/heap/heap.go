package heap

import (
	"fmt"
	"io"
	"sync"

	"github.com/nsavage/paracore/internal/block"
	"github.com/nsavage/paracore/internal/vm"
)

const none = -1

// noopLocker satisfies sync.Locker while doing nothing, for heaps
// constructed with enableLock = false (single-threaded use, or callers
// that synchronize externally).
type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

// Heap owns the block list for one allocator instance: its arena, its
// statistics, its allocation policy, and the vm.Manager it extends
// through.
type Heap struct {
	mu sync.Locker

	arena  *block.Arena
	vmMgr  *vm.Manager
	policy Policy

	blockCount     int
	totalAllocated uintptr
	totalFree      uintptr
	peakAllocated  uintptr
}

// New creates an empty heap bound to vmMgr. enableLock controls whether
// the heap takes an internal mutex on every operation; pass false only
// when the caller already serializes access.
func New(vmMgr *vm.Manager, policy Policy, enableLock bool) (*Heap, error) {
	if !validPolicy(policy) {
		return nil, ErrUnknownPolicy
	}
	var mu sync.Locker
	if enableLock {
		mu = &sync.Mutex{}
	} else {
		mu = noopLocker{}
	}
	return &Heap{
		mu:     mu,
		arena:  block.NewArena(),
		vmMgr:  vmMgr,
		policy: policy,
	}, nil
}

// align8 rounds size up to the next multiple of 8, per the allocator's
// 8-byte alignment guarantee.
func align8(size uintptr) uintptr {
	return (size + 7) &^ 7
}

func ceilToPage(size, pageSize uintptr) uintptr {
	if size%pageSize == 0 {
		return size
	}
	return (size/pageSize + 1) * pageSize
}

// Allocate rounds size up to an 8-byte multiple and returns the start
// address of a newly ALLOCATED block of at least that size. It extends
// the heap via the vm layer when no existing FREE block fits. On
// extension failure it returns (0, err) with no counters changed.
func (h *Heap) Allocate(size uintptr) (uintptr, error) {
	size = align8(size)

	h.mu.Lock()
	defer h.mu.Unlock()

	idx, ok := h.findFreeBlockLocked(size)
	if !ok {
		if err := h.extendLocked(size); err != nil {
			return 0, err
		}
		idx, ok = h.findFreeBlockLocked(size)
		if !ok {
			// extendLocked succeeded but the new range still doesn't fit
			// a request this large (can happen if size exceeds a single
			// page and extension only grew by one page's worth beyond
			// it — extendLocked sizes the request to avoid this, so
			// this branch indicates a genuine bug rather than OOM).
			return 0, ErrOutOfMemory
		}
	}

	b := h.arena.Get(idx)
	if b.Size > size {
		if _, err := h.arena.Split(idx, size); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrCorruption, err)
		}
		h.blockCount++
		b = h.arena.Get(idx)
	}

	b.State = block.Allocated
	h.setBlock(idx, b)

	h.totalAllocated += b.Size
	h.totalFree -= b.Size
	if h.totalAllocated > h.peakAllocated {
		h.peakAllocated = h.totalAllocated
	}

	return b.StartAddr, nil
}

// Free marks the block containing addr as FREE, merges it with any FREE
// neighbors, and adjusts the running counters.
func (h *Heap) Free(addr uintptr) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	idx, ok := h.findBlockIndexLocked(addr)
	if !ok {
		return ErrNotFound
	}
	b := h.arena.Get(idx)
	if b.State != block.Allocated {
		return ErrDoubleFree
	}

	b.State = block.Free
	h.setBlock(idx, b)
	h.totalAllocated -= b.Size
	h.totalFree += b.Size

	if next := b.Next; next != none {
		n := h.arena.Get(next)
		if n.State == block.Free && block.IsAdjacent(b, n) {
			merged, err := h.arena.Merge(idx, next)
			if err == nil {
				idx = merged
				h.blockCount--
				b = h.arena.Get(idx)
			}
		}
	}

	if prev := b.Prev; prev != none {
		p := h.arena.Get(prev)
		if p.State == block.Free && block.IsAdjacent(p, b) {
			merged, err := h.arena.Merge(prev, idx)
			if err == nil {
				h.blockCount--
				_ = merged
			}
		}
	}

	return nil
}

// FindBlock returns the block containing addr, if any.
func (h *Heap) FindBlock(addr uintptr) (block.Block, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx, ok := h.findBlockIndexLocked(addr)
	if !ok {
		return block.Block{}, false
	}
	return h.arena.Get(idx), true
}

// FindFreeBlock returns a FREE block able to satisfy size, chosen by the
// heap's policy, without modifying the block list.
func (h *Heap) FindFreeBlock(size uintptr) (block.Block, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx, ok := h.findFreeBlockLocked(size)
	if !ok {
		return block.Block{}, false
	}
	return h.arena.Get(idx), true
}

// MergeFreeBlocks makes a single pass over the block list, merging every
// adjacent pair of FREE blocks it finds, and returns the number of merges
// performed.
func (h *Heap) MergeFreeBlocks() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mergeFreeBlocksLocked()
}

func (h *Heap) mergeFreeBlocksLocked() int {
	merges := 0
	head, ok := h.arena.HeadIndex()
	if !ok {
		return 0
	}
	i := head
	for i != none {
		b := h.arena.Get(i)
		next := b.Next
		if next != none {
			n := h.arena.Get(next)
			if b.State == block.Free && n.State == block.Free && block.IsAdjacent(b, n) {
				merged, err := h.arena.Merge(i, next)
				if err == nil {
					h.blockCount--
					merges++
					i = merged
					continue
				}
			}
		}
		i = h.arena.Get(i).Next
	}
	return merges
}

// Stats returns a snapshot of the heap's byte counters.
func (h *Heap) Stats() (allocated, free, peak uintptr) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.totalAllocated, h.totalFree, h.peakAllocated
}

// Verify checks that addresses strictly increase along the list, that no
// two adjacent blocks are both FREE, that blockCount matches the list
// length, and that the state-summed sizes agree with the counters. It
// deliberately does not check for address gaps between blocks that came
// from different vm reservations — the vm layer offers no contiguity
// guarantee, so gaps are expected, not corruption.
func (h *Heap) Verify() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.arena.Verify(); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruption, err)
	}

	head, ok := h.arena.HeadIndex()
	if !ok {
		if h.blockCount != 0 {
			return fmt.Errorf("%w: blockCount=%d but list is empty", ErrCorruption, h.blockCount)
		}
		return nil
	}

	var (
		count        int
		sumAllocated uintptr
		sumFree      uintptr
		prevAddr     uintptr
		havePrev     bool
		prevWasFree  bool
	)
	for i := head; i != none; i = h.arena.Get(i).Next {
		b := h.arena.Get(i)
		if havePrev && b.StartAddr <= prevAddr {
			return fmt.Errorf("%w: addresses not strictly increasing at 0x%x", ErrCorruption, b.StartAddr)
		}
		if havePrev && prevWasFree && b.State == block.Free {
			return fmt.Errorf("%w: two adjacent FREE blocks at 0x%x", ErrCorruption, b.StartAddr)
		}
		switch b.State {
		case block.Allocated:
			sumAllocated += b.Size
		case block.Free:
			sumFree += b.Size
		}
		prevAddr = b.StartAddr
		havePrev = true
		prevWasFree = b.State == block.Free
		count++
	}

	if count != h.blockCount {
		return fmt.Errorf("%w: blockCount=%d but list has %d blocks", ErrCorruption, h.blockCount, count)
	}
	if sumAllocated != h.totalAllocated {
		return fmt.Errorf("%w: totalAllocated=%d but blocks sum to %d", ErrCorruption, h.totalAllocated, sumAllocated)
	}
	if sumFree != h.totalFree {
		return fmt.Errorf("%w: totalFree=%d but blocks sum to %d", ErrCorruption, h.totalFree, sumFree)
	}
	return nil
}

// Dump writes a diagnostic listing of every block plus the heap's
// counters and policy.
func (h *Heap) Dump(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintf(w, "heap: policy=%s blocks=%d allocated=%d free=%d peak=%d\n",
		h.policy, h.blockCount, h.totalAllocated, h.totalFree, h.peakAllocated)
	head, ok := h.arena.HeadIndex()
	if !ok {
		return
	}
	n := 0
	for i := head; i != none; i = h.arena.Get(i).Next {
		b := h.arena.Get(i)
		fmt.Fprintf(w, "  [%d] addr=0x%x size=%d state=%s\n", n, b.StartAddr, b.Size, b.State)
		n++
	}
}

// Cleanup destroys every block's metadata and releases every outstanding
// vm reservation, regardless of how it has since been split. Releasing by
// block rather than by original reservation would require every
// reservation's blocks to have re-merged into a single FREE block first
// (the vm layer's Release requires an exact address+length match), so
// Cleanup instead lets the vm.Manager release what it tracks directly.
func (h *Heap) Cleanup() error {
	h.mu.Lock()
	head, ok := h.arena.HeadIndex()
	if ok {
		for i := head; i != none; {
			next := h.arena.Get(i).Next
			h.arena.Destroy(i)
			i = next
		}
	}
	h.blockCount = 0
	h.totalAllocated = 0
	h.totalFree = 0
	h.peakAllocated = 0
	h.mu.Unlock()

	return h.vmMgr.Cleanup()
}

func (h *Heap) setBlock(i int, b block.Block) {
	// The arena only exposes Get; reaching back into it to overwrite a
	// live block's State in place is done through Split/Merge for
	// structural changes and, for a pure state flip like this, by
	// re-creating the entry at the same index is unnecessary — the arena
	// keeps Prev/Next correct as long as we don't touch them here.
	h.arena.SetState(i, b.State)
}

func (h *Heap) findBlockIndexLocked(addr uintptr) (int, bool) {
	head, ok := h.arena.HeadIndex()
	if !ok {
		return none, false
	}
	for i := head; i != none; i = h.arena.Get(i).Next {
		if h.arena.Get(i).Contains(addr) {
			return i, true
		}
	}
	return none, false
}

func (h *Heap) findFreeBlockLocked(size uintptr) (int, bool) {
	head, ok := h.arena.HeadIndex()
	if !ok {
		return none, false
	}
	return searchPolicy(h.arena, head, size, h.policy)
}

// extendLocked reserves a new range sized to satisfy a request of size
// bytes, rounds it up to a whole number of pages, and inserts it as a new
// FREE block.
func (h *Heap) extendLocked(size uintptr) error {
	pageSize := h.vmMgr.PageSize()
	length := ceilToPage(size, pageSize)
	if length < pageSize {
		length = pageSize
	}

	addr, err := h.vmMgr.Reserve(length)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}

	if _, err := h.arena.Create(addr, length, block.Free); err != nil {
		return fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}
	h.blockCount++
	h.totalFree += length
	return nil
}
