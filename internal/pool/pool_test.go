package pool

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nsavage/paracore/internal/queue"
	"github.com/stretchr/testify/require"
)

var errGrowTest = errors.New("pool test: simulated spawn failure")

// P1: 4 workers, queue_size 100, submit 50 tasks, wait_all, destroy.
func TestFourWorkersFiftyTasks(t *testing.T) {
	p, err := Create(Config{NumWorkers: 4, QueueSize: 100})
	require.NoError(t, err)

	var completed atomic.Int64
	for i := 0; i < 50; i++ {
		require.NoError(t, p.Submit(&queue.Task{Func: func(any) {
			completed.Add(1)
		}}))
	}

	p.WaitAll()
	require.EqualValues(t, 50, completed.Load())

	require.NoError(t, p.Destroy())
	require.Equal(t, Stopped, p.State())

	var total uint64
	for _, info := range p.Snapshot() {
		total += info.TasksCompleted
	}
	require.EqualValues(t, 50, total)
}

// P2: 2 workers, queue_size 5, submit 7 sleeping tasks, expect backpressure.
func TestTwoWorkersBackpressureOnBoundedQueue(t *testing.T) {
	p, err := Create(Config{NumWorkers: 2, QueueSize: 5})
	require.NoError(t, err)

	release := make(chan struct{})
	var started atomic.Int32
	for i := 0; i < 7; i++ {
		i := i
		require.NoError(t, p.Submit(&queue.Task{Func: func(any) {
			started.Add(1)
			if i < 2 {
				<-release
			}
		}}))
	}

	// The first two tasks occupy both workers and block on release; the
	// remaining five queue up against a capacity-5 bound, so all seven
	// submissions succeed before release fires.
	deadline := time.Now().Add(time.Second)
	for started.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.EqualValues(t, 2, started.Load())

	close(release)
	p.WaitAll()
	require.EqualValues(t, 7, started.Load())
	require.NoError(t, p.Destroy())
}

// P3: resize a 4-worker pool to 2 while 10 long-running tasks are in
// flight.
func TestResizeDownWhileTasksInFlight(t *testing.T) {
	p, err := Create(Config{NumWorkers: 4, QueueSize: 20})
	require.NoError(t, err)

	release := make(chan struct{})
	var running atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(&queue.Task{Func: func(any) {
			running.Add(1)
			<-release
		}}))
	}

	deadline := time.Now().Add(time.Second)
	for running.Load() < 4 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.EqualValues(t, 4, running.Load())

	resizeDone := make(chan error, 1)
	go func() { resizeDone <- p.Resize(2) }()

	select {
	case err := <-resizeDone:
		t.Fatalf("resize returned early with err=%v while workers were still busy", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)

	select {
	case err := <-resizeDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("resize did not complete after tasks released")
	}
	require.Equal(t, 2, p.NumWorkers())

	p.WaitAll()
	require.NoError(t, p.Destroy())
}

// P4: submit 1000 one-millisecond tasks to an 8-worker pool, verify
// queue invariants after wait_all.
func TestThousandShortTasksInvariantsHoldAfterWaitAll(t *testing.T) {
	p, err := Create(Config{NumWorkers: 8, QueueSize: 50})
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		require.NoError(t, p.Submit(&queue.Task{Func: func(any) {
			time.Sleep(time.Millisecond)
		}}))
	}

	p.WaitAll()

	enq, deq, proc, active, pending := p.QueueStats()
	require.EqualValues(t, 1000, enq)
	require.EqualValues(t, 1000, deq)
	require.EqualValues(t, 1000, proc)
	require.Equal(t, 0, active)
	require.Equal(t, 0, pending)

	require.NoError(t, p.Destroy())
}

func TestSubmitAfterDestroyFails(t *testing.T) {
	p, err := Create(Config{NumWorkers: 1, QueueSize: 1})
	require.NoError(t, err)
	require.NoError(t, p.Destroy())

	err = p.Submit(&queue.Task{Func: func(any) {}})
	require.ErrorIs(t, err, ErrNotRunning)
}

func TestDestroyTwiceReportsAlreadyStopped(t *testing.T) {
	p, err := Create(Config{NumWorkers: 1, QueueSize: 1})
	require.NoError(t, err)
	require.NoError(t, p.Destroy())
	require.ErrorIs(t, p.Destroy(), ErrAlreadyStopped)
}

func TestCreateRejectsInvalidConfig(t *testing.T) {
	_, err := Create(Config{NumWorkers: 0, QueueSize: 1})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Create(Config{NumWorkers: 1, QueueSize: -1})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGrowAddsWorkers(t *testing.T) {
	p, err := Create(Config{NumWorkers: 2, QueueSize: 10})
	require.NoError(t, err)

	require.NoError(t, p.Resize(5))
	require.Equal(t, 5, p.NumWorkers())

	var completed atomic.Int64
	for i := 0; i < 20; i++ {
		require.NoError(t, p.Submit(&queue.Task{Func: func(any) { completed.Add(1) }}))
	}
	p.WaitAll()
	require.EqualValues(t, 20, completed.Load())
	require.NoError(t, p.Destroy())
}

func TestGrowRollsBackOnSpawnFailure(t *testing.T) {
	p, err := Create(Config{NumWorkers: 2, QueueSize: 10})
	require.NoError(t, err)

	calls := 0
	p.spawnHook = func() error {
		calls++
		if calls == 2 {
			return errGrowTest
		}
		return nil
	}

	err = p.Resize(5)
	require.ErrorIs(t, err, ErrGrowFailed)
	require.Equal(t, 2, p.NumWorkers())

	require.NoError(t, p.Destroy())
}

func TestDestroyRunsQueuedTasksAndTheirCleanup(t *testing.T) {
	p, err := Create(Config{NumWorkers: 1, QueueSize: 10})
	require.NoError(t, err)

	release := make(chan struct{})
	require.NoError(t, p.Submit(&queue.Task{Func: func(any) { <-release }}))

	var cleanupRan atomic.Bool
	require.NoError(t, p.Submit(&queue.Task{
		Func:    func(any) {},
		Cleanup: func(any) { cleanupRan.Store(true) },
	}))

	destroyDone := make(chan error, 1)
	go func() { destroyDone <- p.Destroy() }()

	close(release)
	select {
	case err := <-destroyDone:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("destroy did not complete")
	}
	require.True(t, cleanupRan.Load())
}
