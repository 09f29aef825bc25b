package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/nsavage/paracore/internal/pool"
	"github.com/nsavage/paracore/internal/queue"
)

var (
	benchWorkers   int
	benchQueueSize int
	benchTasks     int
	benchSleep     time.Duration
)

func init() {
	poolCmd := &cobra.Command{
		Use:   "pool",
		Short: "Commands exercising internal/pool",
	}
	poolCmd.AddCommand(newPoolBenchCmd())
	rootCmd.AddCommand(poolCmd)
}

func newPoolBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Submit synthetic tasks to a pool and report throughput and final counters",
		Long: `bench is the programmatic analogue of a thread-pool benchmark: it spins up
a pool.Pool, submits --tasks synthetic tasks (each sleeping --sleep before
returning), waits for all of them, and reports elapsed time, throughput, and
the pool's final queue counters.`,
		Args: cobra.NoArgs,
		RunE: runPoolBench,
	}
	cmd.Flags().IntVar(&benchWorkers, "workers", 4, "number of pool workers")
	cmd.Flags().IntVar(&benchQueueSize, "queue-size", 100, "bounded queue capacity (0 = unbounded)")
	cmd.Flags().IntVar(&benchTasks, "tasks", 1000, "number of synthetic tasks to submit")
	cmd.Flags().DurationVar(&benchSleep, "sleep", time.Millisecond, "simulated work duration per task")
	return cmd
}

func runPoolBench(cmd *cobra.Command, args []string) error {
	p, err := pool.Create(pool.Config{NumWorkers: benchWorkers, QueueSize: benchQueueSize})
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}

	var completed atomic.Int64
	start := time.Now()
	for i := 0; i < benchTasks; i++ {
		task := &queue.Task{Func: func(any) {
			if benchSleep > 0 {
				time.Sleep(benchSleep)
			}
			completed.Add(1)
		}}
		if err := p.Submit(task); err != nil {
			return fmt.Errorf("submit task %d: %w", i, err)
		}
	}

	p.WaitAll()
	elapsed := time.Since(start)

	if err := p.Destroy(); err != nil {
		return fmt.Errorf("destroy pool: %w", err)
	}

	enq, deq, proc, active, pending := p.QueueStats()
	fmt.Fprintf(os.Stdout, "workers: %d\n", benchWorkers)
	fmt.Fprintf(os.Stdout, "tasks completed: %d/%d\n", completed.Load(), benchTasks)
	fmt.Fprintf(os.Stdout, "elapsed: %s\n", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(os.Stdout, "throughput: %.1f tasks/sec\n", float64(benchTasks)/elapsed.Seconds())
	}
	fmt.Fprintf(os.Stdout, "queue: enqueued=%d dequeued=%d processed=%d active=%d pending=%d\n",
		enq, deq, proc, active, pending)
	return nil
}
