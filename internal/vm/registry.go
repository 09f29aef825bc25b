package vm

import "sync"

// mappingRegistry records the []byte backing each outstanding OS mapping,
// keyed by its starting address. The platform-specific unmap calls
// (unix.Munmap, windows.VirtualFree) need the original slice or handle,
// not just an address and a length, so every reserveRange implementation
// registers what it created here and every releaseRange implementation
// looks it back up.
var mappingRegistry = struct {
	mu   sync.Mutex
	data map[uintptr][]byte
}{data: make(map[uintptr][]byte)}

func registerMapping(addr uintptr, data []byte) {
	mappingRegistry.mu.Lock()
	mappingRegistry.data[addr] = data
	mappingRegistry.mu.Unlock()
}

func takeMapping(addr uintptr) ([]byte, bool) {
	mappingRegistry.mu.Lock()
	defer mappingRegistry.mu.Unlock()
	data, ok := mappingRegistry.data[addr]
	if ok {
		delete(mappingRegistry.data, addr)
	}
	return data, ok
}
