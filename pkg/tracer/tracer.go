// Package tracer re-exports the subset of internal/diag's event tracer
// that is safe for callers outside this module to depend on: the
// Tracer type itself and the event kinds it records. Snapshot and
// LeakCheck are not re-exported and stay internal to this module.
package tracer

import "github.com/nsavage/paracore/internal/diag"

type Tracer = diag.Tracer

const (
	EventAlloc   = diag.EventAlloc
	EventFree    = diag.EventFree
	EventSubmit  = diag.EventSubmit
	EventDequeue = diag.EventDequeue
)

// New allocates a disabled Tracer with room for capacity events.
func New(capacity int) *Tracer {
	return diag.NewTracer(capacity)
}
