package typed

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/buttception/RagdollEngine-sub001/pool/alloc"
	"github.com/buttception/RagdollEngine-sub001/pool/verify"
)

func TestVec_Sources(t *testing.T) {
	sources := map[string]func(t *testing.T) Source[int64]{
		"heap": func(*testing.T) Source[int64] { return &HeapSource[int64]{} },
		"pool": func(t *testing.T) Source[int64] { return MustFor[int64](newAllocator(t, 64, 64)) },
	}

	for name, mk := range sources {
		t.Run(name, func(t *testing.T) {
			v := NewVec(mk(t))
			require.Zero(t, v.Len())
			require.Zero(t, v.Cap())

			for i := range 100 {
				require.NoError(t, v.Push(int64(i*i)))
			}
			require.Equal(t, 100, v.Len())
			require.GreaterOrEqual(t, v.Cap(), 100)

			for i := range 100 {
				require.Equal(t, int64(i*i), v.At(i))
			}
			v.Set(7, -7)
			require.Equal(t, int64(-7), v.Slice()[7])

			require.NoError(t, v.Release())
			require.Zero(t, v.Len())
			require.Zero(t, v.Cap())
		})
	}
}

func TestVec_GrowthReleasesOldStorage(t *testing.T) {
	a := newAllocator(t, 64, 64)
	v := NewVec[int64](MustFor[int64](a))

	for i := range 20 {
		require.NoError(t, v.Push(int64(i)))
		require.Equal(t, 1, a.Stats().LiveRuns, "only the current storage is live")
		require.NoError(t, verify.AllInvariants(a.Pool()))
	}

	require.NoError(t, v.Release())
	require.Equal(t, 64, a.Pool().FreeBlocks())
}

func TestVec_Reserve(t *testing.T) {
	h := &HeapSource[uint16]{}
	v := NewVec[uint16](h)

	require.NoError(t, v.Reserve(10))
	require.Equal(t, 10, v.Cap())
	require.NoError(t, v.Reserve(5), "shrinking is a no-op")
	require.Equal(t, 10, v.Cap())
	require.Equal(t, 1, h.Live())

	require.NoError(t, v.Push(3))
	require.NoError(t, v.Reserve(40))
	require.Equal(t, uint16(3), v.At(0))
	require.Equal(t, 1, h.Live())

	require.NoError(t, v.Release())
	require.Zero(t, h.Live())
}

func TestVec_PoolExhaustion(t *testing.T) {
	a := newAllocator(t, 64, 2)
	v := NewVec[int64](MustFor[int64](a))

	// Two blocks carry at most 15 int64 values behind the header.
	err := v.Reserve(16)
	require.True(t, errors.Is(err, alloc.ErrNoSpace), "got %v", err)
	require.Zero(t, v.Cap())
	require.NoError(t, v.Reserve(15))
}

func TestVec_OutOfRangePanics(t *testing.T) {
	v := NewVec[int](&HeapSource[int]{})
	require.NoError(t, v.Push(1))
	require.Panics(t, func() { v.At(1) })
	require.Panics(t, func() { v.Set(-1, 0) })
}
