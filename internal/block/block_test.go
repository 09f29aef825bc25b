package block

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateRejectsZeroSize(t *testing.T) {
	a := NewArena()
	_, err := a.Create(0, 0, Free)
	require.ErrorIs(t, err, ErrZeroSize)
}

func TestCreateRejectsMisalignedStart(t *testing.T) {
	a := NewArena()
	_, err := a.Create(1, 16, Free)
	require.ErrorIs(t, err, ErrMisaligned)
}

func TestCreateOrdersByAddress(t *testing.T) {
	a := NewArena()
	_, err := a.Create(0x1000, 64, Free)
	require.NoError(t, err)
	_, err = a.Create(0x0, 64, Free)
	require.NoError(t, err)
	_, err = a.Create(0x2000, 64, Free)
	require.NoError(t, err)

	head, ok := a.HeadIndex()
	require.True(t, ok)
	require.Equal(t, uintptr(0x0), a.Get(head).StartAddr)

	var addrs []uintptr
	for i := head; i != none; i = a.Get(i).Next {
		addrs = append(addrs, a.Get(i).StartAddr)
	}
	require.Equal(t, []uintptr{0x0, 0x1000, 0x2000}, addrs)
}

func TestSplitPreservesOrderAndSizes(t *testing.T) {
	a := NewArena()
	i, err := a.Create(0x1000, 256, Free)
	require.NoError(t, err)

	right, err := a.Split(i, 64)
	require.NoError(t, err)

	left := a.Get(i)
	require.Equal(t, uintptr(64), left.Size)
	require.Equal(t, right, left.Next)

	r := a.Get(right)
	require.Equal(t, uintptr(0x1000+64), r.StartAddr)
	require.Equal(t, uintptr(256-64), r.Size)
	require.Equal(t, Free, r.State)
	require.Equal(t, i, r.Prev)
}

func TestSplitRejectsNonFreeOrBadOffset(t *testing.T) {
	a := NewArena()
	i, err := a.Create(0x1000, 256, Allocated)
	require.NoError(t, err)
	_, err = a.Split(i, 64)
	require.ErrorIs(t, err, ErrInvalidSplit)

	j, err := a.Create(0x2000, 256, Free)
	require.NoError(t, err)
	_, err = a.Split(j, 0)
	require.ErrorIs(t, err, ErrInvalidSplit)
	_, err = a.Split(j, 256)
	require.ErrorIs(t, err, ErrInvalidSplit)
	_, err = a.Split(j, 5)
	require.ErrorIs(t, err, ErrInvalidSplit)
}

func TestMergeUndoesSplit(t *testing.T) {
	a := NewArena()
	i, err := a.Create(0x1000, 256, Free)
	require.NoError(t, err)
	right, err := a.Split(i, 64)
	require.NoError(t, err)

	merged, err := a.Merge(i, right)
	require.NoError(t, err)
	require.Equal(t, i, merged)

	b := a.Get(merged)
	require.Equal(t, uintptr(256), b.Size)
	require.Equal(t, none, b.Next)
	require.Equal(t, 1, a.Len())
}

func TestMergeRejectsNonAdjacent(t *testing.T) {
	a := NewArena()
	i, err := a.Create(0x1000, 64, Free)
	require.NoError(t, err)
	j, err := a.Create(0x2000, 64, Free)
	require.NoError(t, err)

	_, err = a.Merge(i, j)
	require.ErrorIs(t, err, ErrNotAdjacent)
}

func TestDestroyReusesSlot(t *testing.T) {
	a := NewArena()
	i, err := a.Create(0x1000, 64, Free)
	require.NoError(t, err)
	a.Destroy(i)
	require.Equal(t, 0, a.Len())

	j, err := a.Create(0x2000, 128, Free)
	require.NoError(t, err)
	require.Equal(t, i, j, "destroyed slot should be recycled")
}

func TestVerifyCatchesCorruption(t *testing.T) {
	a := NewArena()
	i, err := a.Create(0x1000, 64, Free)
	require.NoError(t, err)
	require.NoError(t, a.Verify())

	a.slots[i].block.StartAddr = 0x1001
	require.ErrorIs(t, a.Verify(), ErrMisaligned)
}

func TestContainsAndCanSatisfy(t *testing.T) {
	b := Block{StartAddr: 0x1000, Size: 256, State: Free}
	require.True(t, b.Contains(0x1000))
	require.True(t, b.Contains(0x10ff))
	require.False(t, b.Contains(0x1100))
	require.True(t, b.CanSatisfy(200))
	require.False(t, b.CanSatisfy(257))
}

func TestIsAdjacent(t *testing.T) {
	a := Block{StartAddr: 0x1000, Size: 64}
	b := Block{StartAddr: 0x1040, Size: 64}
	require.True(t, IsAdjacent(a, b))
	require.False(t, IsAdjacent(b, a))
}
