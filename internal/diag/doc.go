// Package diag is the read-only diagnostic surface shared by the
// allocator and the pool: a combined snapshot of their counters, a leak
// check suitable for a deferred call at process exit, and an optional
// ring-buffer event tracer.
//
// None of diag's operations alter any invariant of the packages they
// observe. Each reads its source under that source's own lock; diag
// itself holds no cross-package lock.
package diag
