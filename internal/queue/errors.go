package queue

import "errors"

var (
	// ErrQueueClosed indicates Submit was called after Destroy.
	ErrQueueClosed = errors.New("queue: closed")

	// ErrAlreadyDestroyed indicates Destroy was called more than once.
	ErrAlreadyDestroyed = errors.New("queue: already destroyed")
)
