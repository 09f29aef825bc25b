package allocator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nsavage/paracore/internal/heap"
)

func TestNewFacadeAllocFree(t *testing.T) {
	f, err := New(heap.FirstFit)
	require.NoError(t, err)

	p := f.Alloc(1024)
	require.NotZero(t, p)

	allocated, _, _ := f.Stats()
	require.Equal(t, uintptr(1024), allocated)

	require.NoError(t, f.Free(p))
	allocated, _, _ = f.Stats()
	require.Zero(t, allocated)
	require.NoError(t, f.Verify())
	require.NoError(t, f.Cleanup())
}

func TestAllocZeroReturnsNull(t *testing.T) {
	f, err := New(heap.FirstFit)
	require.NoError(t, err)
	require.Zero(t, f.Alloc(0))
}

func TestFreeNullIsNoOp(t *testing.T) {
	f, err := New(heap.FirstFit)
	require.NoError(t, err)
	require.NoError(t, f.Free(0))
	require.NoError(t, f.Free(0))
}

func TestGlobalLazyInitAndCleanupReinitializes(t *testing.T) {
	defer Cleanup()

	p := Alloc(256)
	require.NotZero(t, p)
	require.NoError(t, Free(p))

	require.NoError(t, Cleanup())

	// Operating again after Cleanup re-initializes lazily.
	p2 := Alloc(128)
	require.NotZero(t, p2)
	require.NoError(t, Free(p2))
}

func TestInitIsIdempotent(t *testing.T) {
	defer Cleanup()

	require.NoError(t, Init(true))
	require.NoError(t, Init(true))

	p := Alloc(64)
	require.NotZero(t, p)
}

func TestGlobalConcurrentAllocFree(t *testing.T) {
	defer Cleanup()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := Alloc(128)
			require.NotZero(t, p)
			require.NoError(t, Free(p))
		}()
	}
	wg.Wait()

	allocated, _, _, err := Stats()
	require.NoError(t, err)
	require.Zero(t, allocated)
}
