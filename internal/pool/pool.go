package pool

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/nsavage/paracore/internal/diag"
	"github.com/nsavage/paracore/internal/queue"
)

// State is a pool's position in its Created -> Running -> Stopping ->
// Stopped lifecycle. States only move forward; a Stopped pool cannot be
// revived.
type State int8

const (
	Created State = iota
	Running
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config parameterizes Create. StackSize and Daemon are accepted for
// source compatibility with the pool's C lineage, which sized worker
// thread stacks and could detach its threads; goroutines have neither
// concept, so both fields are validated but otherwise ignored.
type Config struct {
	NumWorkers int
	QueueSize  int
	StackSize  int
	Daemon     bool
}

// WorkerInfo is a point-in-time snapshot of one worker goroutine's
// state, safe to read after the pool has moved on.
type WorkerInfo struct {
	Index          int
	TasksCompleted uint64
	IsActive       bool
	ShouldExit     bool
}

// workerState is the live, mutable counterpart of WorkerInfo. Every
// field a worker goroutine touches on its own hot path is an atomic so
// workerLoop never takes the pool's state mutex.
type workerState struct {
	index          int
	tasksCompleted atomic.Uint64
	isActive       atomic.Bool
	shouldExit     atomic.Bool
	done           chan struct{}
}

// Pool is a set of worker goroutines draining a single queue.Queue,
// with grow/shrink resizing and a lifecycle state machine.
type Pool struct {
	mu           sync.Mutex
	stateChanged *sync.Cond
	state        State
	workers      []*workerState

	q        *queue.Queue
	shutdown atomic.Bool

	// tracer, when non-nil, records Submit/dequeue lifecycle events. Read
	// through an atomic pointer so the hot path never takes p.mu just to
	// check whether tracing is wired.
	tracer atomic.Pointer[diag.Tracer]

	// spawnHook, when set, is consulted once per new worker inside grow.
	// A non-nil error aborts the remainder of the batch. Exercised only
	// by tests; nil in production.
	spawnHook func() error
}

// SetTracer wires t into the pool so Submit and worker dequeues record
// lifecycle events into it. Passing nil detaches any previously wired
// tracer.
func (p *Pool) SetTracer(t *diag.Tracer) {
	p.tracer.Store(t)
}

// Create builds a pool of cfg.NumWorkers workers backed by a queue of
// capacity cfg.QueueSize and starts them running.
func Create(cfg Config) (*Pool, error) {
	if cfg.NumWorkers <= 0 || cfg.QueueSize < 0 || cfg.StackSize < 0 {
		return nil, ErrInvalidConfig
	}

	p := &Pool{
		q:     queue.New(cfg.QueueSize),
		state: Created,
	}
	p.stateChanged = sync.NewCond(&p.mu)

	spawned := make([]*workerState, cfg.NumWorkers)
	for i := range spawned {
		w := &workerState{index: i, done: make(chan struct{})}
		spawned[i] = w
		go func(w *workerState) {
			defer close(w.done)
			p.workerLoop(w)
		}(w)
	}

	p.mu.Lock()
	p.workers = spawned
	p.state = Running
	p.stateChanged.Broadcast()
	p.mu.Unlock()

	return p, nil
}

// workerLoop is the body run by every worker goroutine: check for a
// targeted exit, mark active, pull and run one task, mark inactive,
// repeat. It returns when either shouldExit is set (by shrink) or the
// queue reports shutdown with nothing left to run (by Destroy).
func (p *Pool) workerLoop(w *workerState) {
	for {
		if w.shouldExit.Load() {
			return
		}

		w.isActive.Store(true)
		executed, err := p.q.PopAndExecute(&p.shutdown)
		w.isActive.Store(false)
		if err != nil || !executed {
			return
		}

		w.tasksCompleted.Add(1)
		if tr := p.tracer.Load(); tr != nil {
			tr.Record(diag.EventDequeue, 0, 1)
		}
	}
}

// Submit hands t to the pool's queue. It fails with ErrNotRunning
// outside the Running state, and with the queue's own error if the
// queue itself has already been torn down.
func (p *Pool) Submit(t *queue.Task) error {
	p.mu.Lock()
	st := p.state
	p.mu.Unlock()

	if st != Running {
		return ErrNotRunning
	}
	if err := p.q.Submit(t); err != nil {
		return err
	}
	if tr := p.tracer.Load(); tr != nil {
		tr.Record(diag.EventSubmit, 0, 1)
	}
	return nil
}

// WaitAll blocks until the pool's queue is quiescent: nothing pending
// and no worker still finishing a task.
func (p *Pool) WaitAll() {
	p.q.WaitEmpty()
}

// Destroy stops every worker and tears down the queue. Workers keep
// running tasks still queued when Destroy runs (Func, then Cleanup) and
// exit once the queue is empty; Destroy returns after they have all
// exited. Destroying an already-stopped pool reports ErrAlreadyStopped.
func (p *Pool) Destroy() error {
	p.mu.Lock()
	if p.state == Stopped {
		p.mu.Unlock()
		return ErrAlreadyStopped
	}
	p.state = Stopping
	workers := p.workers
	p.stateChanged.Broadcast()
	p.mu.Unlock()

	p.shutdown.Store(true)
	p.q.WakeWaiters()

	for _, w := range workers {
		<-w.done
	}

	if err := p.q.Destroy(); err != nil && err != queue.ErrAlreadyDestroyed {
		p.mu.Lock()
		p.state = Stopped
		p.stateChanged.Broadcast()
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	p.state = Stopped
	p.stateChanged.Broadcast()
	p.mu.Unlock()
	return nil
}

// Shutdown is the common drain-then-stop sequence: wait for every
// submitted task to finish, then destroy the pool.
func (p *Pool) Shutdown() error {
	p.WaitAll()
	return p.Destroy()
}

// Resize changes the pool's worker count to n, growing or shrinking as
// needed. It only operates on a Running pool.
func (p *Pool) Resize(n int) error {
	if n <= 0 {
		return ErrInvalidConfig
	}

	p.mu.Lock()
	if p.state != Running {
		p.mu.Unlock()
		return ErrNotRunning
	}
	cur := len(p.workers)
	p.mu.Unlock()

	switch {
	case n == cur:
		return nil
	case n > cur:
		return p.grow(n - cur)
	default:
		return p.shrink(cur - n)
	}
}

// grow spawns delta new workers. If spawnHook reports an error partway
// through the batch, every worker already spawned in this batch is
// signalled to exit and joined before grow returns the wrapped error;
// none of them are ever published into p.workers, so the pool's visible
// worker count is left untouched — an all-or-nothing batch.
func (p *Pool) grow(delta int) error {
	p.mu.Lock()
	if p.state != Running {
		p.mu.Unlock()
		return ErrNotRunning
	}
	start := len(p.workers)
	p.mu.Unlock()

	spawned := make([]*workerState, 0, delta)
	var spawnErr error
	for i := 0; i < delta; i++ {
		if p.spawnHook != nil {
			if err := p.spawnHook(); err != nil {
				spawnErr = err
				break
			}
		}
		w := &workerState{index: start + len(spawned), done: make(chan struct{})}
		spawned = append(spawned, w)
		go func(w *workerState) {
			defer close(w.done)
			p.workerLoop(w)
		}(w)
	}

	if spawnErr != nil {
		for _, w := range spawned {
			w.shouldExit.Store(true)
		}
		p.q.WakeWaiters()
		for _, w := range spawned {
			<-w.done
		}
		return fmt.Errorf("%w: %v", ErrGrowFailed, spawnErr)
	}

	p.mu.Lock()
	p.workers = append(p.workers, spawned...)
	p.stateChanged.Broadcast()
	p.mu.Unlock()
	return nil
}

// shrink marks the k most recently added workers to exit, wakes them so
// they notice without waiting for a task, joins them, then publishes
// the reduced worker slice. The state mutex is never held while waiting
// on the queue's condition variable or on a worker's done channel.
func (p *Pool) shrink(k int) error {
	p.mu.Lock()
	if p.state != Running {
		p.mu.Unlock()
		return ErrNotRunning
	}
	cur := len(p.workers)
	if k > cur {
		p.mu.Unlock()
		return ErrInvalidConfig
	}
	trailing := p.workers[cur-k:]
	for _, w := range trailing {
		w.shouldExit.Store(true)
	}
	p.mu.Unlock()

	p.q.WakeWaiters()

	for _, w := range trailing {
		<-w.done
	}

	p.mu.Lock()
	p.workers = p.workers[:cur-k]
	p.stateChanged.Broadcast()
	p.mu.Unlock()
	return nil
}

// State returns the pool's current lifecycle state.
func (p *Pool) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// NumWorkers returns the pool's current worker count.
func (p *Pool) NumWorkers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// Snapshot returns a point-in-time copy of every worker's info.
func (p *Pool) Snapshot() []WorkerInfo {
	p.mu.Lock()
	workers := make([]*workerState, len(p.workers))
	copy(workers, p.workers)
	p.mu.Unlock()

	out := make([]WorkerInfo, len(workers))
	for i, w := range workers {
		out[i] = WorkerInfo{
			Index:          w.index,
			TasksCompleted: w.tasksCompleted.Load(),
			IsActive:       w.isActive.Load(),
			ShouldExit:     w.shouldExit.Load(),
		}
	}
	return out
}

// QueueStats exposes the underlying queue's cumulative counters.
func (p *Pool) QueueStats() (enqueued, dequeued, processed uint64, active, pending int) {
	return p.q.Stats()
}

// DiagStats extracts a diag.PoolStats snapshot for use with diag.Take.
func (p *Pool) DiagStats() diag.PoolStats {
	enq, deq, proc, active, pending := p.QueueStats()
	return diag.PoolStats{
		State:          p.State().String(),
		Workers:        p.NumWorkers(),
		QueueEnqueued:  enq,
		QueueDequeued:  deq,
		QueueProcessed: proc,
		QueueActive:    active,
		QueuePending:   pending,
	}
}

// Dump writes a human-readable snapshot of pool and worker state to w.
func (p *Pool) Dump(w io.Writer) {
	enq, deq, proc, active, pending := p.QueueStats()
	fmt.Fprintf(w, "pool: state=%s workers=%d\n", p.State(), p.NumWorkers())
	fmt.Fprintf(w, "queue: enqueued=%d dequeued=%d processed=%d active=%d pending=%d\n",
		enq, deq, proc, active, pending)
	for _, info := range p.Snapshot() {
		fmt.Fprintf(w, "  worker[%d]: completed=%d active=%t should_exit=%t\n",
			info.Index, info.TasksCompleted, info.IsActive, info.ShouldExit)
	}
}
