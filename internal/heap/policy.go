package heap

import "github.com/nsavage/paracore/internal/block"

// Policy selects which FREE block an allocation request is satisfied
// from when more than one candidate fits.
type Policy int8

const (
	// FirstFit returns the first FREE block encountered, front to back,
	// whose size is at least the request.
	FirstFit Policy = iota
	// BestFit returns the smallest FREE block that still fits, breaking
	// ties by earliest address.
	BestFit
	// WorstFit returns the largest FREE block, breaking ties by earliest
	// address.
	WorstFit
)

func (p Policy) String() string {
	switch p {
	case FirstFit:
		return "FIRST_FIT"
	case BestFit:
		return "BEST_FIT"
	case WorstFit:
		return "WORST_FIT"
	default:
		return "UNKNOWN"
	}
}

func validPolicy(p Policy) bool {
	switch p {
	case FirstFit, BestFit, WorstFit:
		return true
	default:
		return false
	}
}

// searchPolicy walks the block list starting at head looking for a FREE
// block able to satisfy size, per the given policy. It never mutates the
// arena.
func searchPolicy(a *block.Arena, head int, size uintptr, policy Policy) (int, bool) {
	switch policy {
	case FirstFit:
		for i := head; i != -1; i = a.Get(i).Next {
			if a.Get(i).CanSatisfy(size) {
				return i, true
			}
		}
		return -1, false

	case BestFit:
		best := -1
		var bestSize uintptr
		for i := head; i != -1; i = a.Get(i).Next {
			b := a.Get(i)
			if !b.CanSatisfy(size) {
				continue
			}
			if best == -1 || b.Size < bestSize {
				best, bestSize = i, b.Size
			}
		}
		return best, best != -1

	case WorstFit:
		worst := -1
		var worstSize uintptr
		for i := head; i != -1; i = a.Get(i).Next {
			b := a.Get(i)
			if !b.CanSatisfy(size) {
				continue
			}
			if worst == -1 || b.Size > worstSize {
				worst, worstSize = i, b.Size
			}
		}
		return worst, worst != -1

	default:
		return -1, false
	}
}
