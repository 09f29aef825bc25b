package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPoolBenchCompletesAllTasks(t *testing.T) {
	benchWorkers = 4
	benchQueueSize = 20
	benchTasks = 50
	benchSleep = time.Microsecond

	cmd := newPoolBenchCmd()
	require.NoError(t, runPoolBench(cmd, nil))
}
