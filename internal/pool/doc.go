// Package pool implements a fixed-then-resizable set of worker
// goroutines consuming from a single queue.Queue, plus the lifecycle
// state machine (Created -> Running -> Stopping -> Stopped) that governs
// Submit, WaitAll, Destroy, Shutdown, and Resize.
//
// # Usage
//
//	p, err := pool.Create(pool.Config{NumWorkers: 4, QueueSize: 100})
//	err = p.Submit(&queue.Task{Func: doWork, Arg: x})
//	p.WaitAll()
//	err = p.Destroy()
//
// # Thread-safety
//
// Every exported method is safe for concurrent use. The pool's state
// mutex, the worker info it guards, and the queue's own mutex are never
// held simultaneously: grow and shrink release the state mutex before
// broadcasting on the queue's condition variable and only re-acquire it
// to publish the new worker count.
package pool
