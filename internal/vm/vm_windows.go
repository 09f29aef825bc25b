//go:build windows

package vm

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// reserveRange requests a new committed, read/write region via
// VirtualAlloc. Windows has no anonymous-mmap equivalent of MAP_PRIVATE;
// VirtualAlloc(MEM_COMMIT|MEM_RESERVE) is the direct analogue.
func reserveRange(length uintptr) (uintptr, error) {
	addr, err := windows.VirtualAlloc(0, length,
		windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return 0, err
	}
	registerMapping(addr, unsafe.Slice((*byte)(unsafe.Pointer(addr)), length))
	return addr, nil
}

// releaseRange frees a region previously returned by reserveRange.
func releaseRange(addr, length uintptr) error {
	data, ok := takeMapping(addr)
	if !ok || uintptr(len(data)) != length {
		return windows.ERROR_INVALID_ADDRESS
	}
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
