package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/buttception/RagdollEngine-sub001/pool"
	"github.com/buttception/RagdollEngine-sub001/pool/verify"
)

// newTestPool creates a heap-backed pool closed at test cleanup.
func newTestPool(t testing.TB, blockSize, blockCount int) *pool.Pool {
	t.Helper()
	p, err := pool.New(pool.Config{BlockSize: blockSize, BlockCount: blockCount, Backing: pool.BackingHeap})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

// allocSingles fills n blocks with one-block allocations, in address order on a fresh pool.
func allocSingles(t testing.TB, a *RunAllocator, n int) []pool.Ref {
	t.Helper()
	refs := make([]pool.Ref, n)
	for i := range refs {
		ref, err := a.Allocate(8, 1)
		require.NoError(t, err)
		require.Equal(t, a.Pool().RefOf(i), ref)
		refs[i] = ref
	}
	return refs
}

// requireInvariants fails the test when the free list and live runs do not partition the arena.
func requireInvariants(t testing.TB, p *pool.Pool) {
	t.Helper()
	require.NoError(t, verify.AllInvariants(p))
}
