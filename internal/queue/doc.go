// Package queue implements the bounded task queue shared by a thread
// pool's producers and workers: FIFO order, optional backpressure, and a
// quiescence signal that distinguishes "empty" from "drained" (empty
// queue and no worker still finishing a dequeued task).
//
// The C lineage of this module used four condition variables
// (not_empty, not_full, empty, all_done). cond_empty is redundant with
// cond_all_done (count==0 is implied by the all-done predicate), so this
// package keeps three: notEmpty, notFull, and allDone.
//
// # Usage
//
//	q := queue.New(100)
//	q.Submit(&queue.Task{Func: doWork, Arg: x})
//	// in a worker goroutine:
//	executed, err := q.PopAndExecute(&shutdown)
//
// # Thread-safety
//
// Every exported method is safe for concurrent use by any number of
// producers and consumers.
package queue
