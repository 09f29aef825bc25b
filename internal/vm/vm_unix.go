//go:build unix

package vm

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// reserveRange requests a new anonymous, private, read/write mapping from
// the kernel. The kernel is free to place it anywhere in the address
// space; callers must not assume any relationship between successive
// reservations' addresses.
func reserveRange(length uintptr) (uintptr, error) {
	data, err := unix.Mmap(-1, 0, int(length),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return 0, err
	}
	addr := uintptr(unsafe.Pointer(&data[0]))
	registerMapping(addr, data)
	return addr, nil
}

// releaseRange unmaps a range previously returned by reserveRange.
func releaseRange(addr, length uintptr) error {
	data, ok := takeMapping(addr)
	if !ok || uintptr(len(data)) != length {
		return unix.EINVAL
	}
	return unix.Munmap(data)
}
