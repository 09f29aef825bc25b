package pool

import "errors"

var (
	// ErrInvalidConfig indicates a Config field is out of range (zero or
	// negative worker count, negative queue size, negative stack size).
	ErrInvalidConfig = errors.New("pool: invalid config")

	// ErrNotRunning indicates Submit or Resize was called while the pool
	// is not in the Running state.
	ErrNotRunning = errors.New("pool: not running")

	// ErrAlreadyStopped indicates Destroy was called more than once.
	ErrAlreadyStopped = errors.New("pool: already stopped")

	// ErrGrowFailed wraps a grow-time spawn failure; any workers already
	// spawned in the failed batch are torn down before it is returned.
	ErrGrowFailed = errors.New("pool: grow failed")
)
