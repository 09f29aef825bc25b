package vm

import "errors"

var (
	// ErrNotPageAligned indicates a requested length is zero or not a
	// multiple of the system page size.
	ErrNotPageAligned = errors.New("vm: length must be a non-zero multiple of the page size")

	// ErrReserveFailed indicates the operating system refused to map the
	// requested range (typically address-space exhaustion).
	ErrReserveFailed = errors.New("vm: reservation failed")

	// ErrNoSuchReservation indicates Release was called with an
	// (addr, length) pair that does not exactly match a recorded
	// reservation.
	ErrNoSuchReservation = errors.New("vm: no matching reservation")

	// ErrReleaseFailed indicates the operating system rejected the
	// unmap of a recorded reservation.
	ErrReleaseFailed = errors.New("vm: release failed")
)
