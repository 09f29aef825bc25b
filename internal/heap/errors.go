package heap

import "errors"

var (
	// ErrUnknownPolicy indicates New was called with a Policy value other
	// than FirstFit, BestFit, or WorstFit.
	ErrUnknownPolicy = errors.New("heap: unknown allocation policy")

	// ErrNotFound indicates Free was called with an address not inside
	// any block.
	ErrNotFound = errors.New("heap: address not found")

	// ErrDoubleFree indicates Free was called on a block whose state is
	// already FREE.
	ErrDoubleFree = errors.New("heap: double free")

	// ErrOutOfMemory indicates extension failed: the vm layer could not
	// reserve a new range.
	ErrOutOfMemory = errors.New("heap: out of memory")

	// ErrCorruption indicates Verify detected an invariant violation.
	ErrCorruption = errors.New("heap: corruption detected")
)
