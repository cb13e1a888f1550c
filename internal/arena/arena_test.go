package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func testAlloc(n int) []byte { return make([]byte, n) }
func testFree(_ []byte)      {}

func TestAcquireReleaseRoundTrip(t *testing.T) {
	a, err := New(4, 4, testAlloc, testFree)
	require.NoError(t, err)

	s1, err := a.Acquire()
	require.NoError(t, err)
	require.Len(t, s1, 4)

	copy(s1, []byte{1, 2, 3, 4})
	require.NoError(t, a.Release(s1))

	// A freed slot reports the free sentinel (nil), no error.
	ref, err := a.GetBackRef(s1)
	require.NoError(t, err)
	require.Nil(t, ref)
}

func TestAcquireExhaustion(t *testing.T) {
	a, err := New(2, 4, testAlloc, testFree)
	require.NoError(t, err)

	_, err = a.Acquire()
	require.NoError(t, err)
	_, err = a.Acquire()
	require.NoError(t, err)

	_, err = a.Acquire()
	require.ErrorIs(t, err, ErrArenaEmpty)
}

func TestBackRefRoundTrip(t *testing.T) {
	a, err := New(2, 4, testAlloc, testFree)
	require.NoError(t, err)

	s, err := a.Acquire()
	require.NoError(t, err)

	var sentinel int = 42
	ref := unsafe.Pointer(&sentinel)
	require.NoError(t, a.SetBackRef(s, ref))

	got, err := a.GetBackRef(s)
	require.NoError(t, err)
	require.Equal(t, ref, got)

	idx, err := a.IndexOf(s)
	require.NoError(t, err)
	require.Less(t, idx, uint32(2))
}

func TestNotOwnedPointer(t *testing.T) {
	a, err := New(2, 4, testAlloc, testFree)
	require.NoError(t, err)

	foreign := make([]byte, 4)
	_, err = a.IndexOf(foreign)
	require.ErrorIs(t, err, ErrNotOwned)

	err = a.Release(foreign)
	require.ErrorIs(t, err, ErrNotOwned)
}

func TestStrideRoundedUpTo4Bytes(t *testing.T) {
	// entrySize=5 should round the stride to 8, but the returned payload
	// slice must still be exactly 5 bytes.
	a, err := New(3, 5, testAlloc, testFree)
	require.NoError(t, err)
	require.Equal(t, 8, a.stride)

	s, err := a.Acquire()
	require.NoError(t, err)
	require.Len(t, s, 5)
}

func TestAcquireIsDeterministicallyOrdered(t *testing.T) {
	a, err := New(3, 4, testAlloc, testFree)
	require.NoError(t, err)

	s0, _ := a.Acquire()
	s1, _ := a.Acquire()

	i0, err := a.IndexOf(s0)
	require.NoError(t, err)
	i1, err := a.IndexOf(s1)
	require.NoError(t, err)
	require.Equal(t, uint32(0), i0)
	require.Equal(t, uint32(1), i1)
}
