package pool

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T, blockSize, blockCount int, backing Backing) *Pool {
	t.Helper()
	p, err := New(Config{BlockSize: blockSize, BlockCount: blockCount, Backing: backing})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestNew_ThreadsFreeListInAddressOrder(t *testing.T) {
	for _, backing := range []Backing{BackingMmap, BackingHeap} {
		t.Run(backing.String(), func(t *testing.T) {
			p := newTestPool(t, 64, 4, backing)

			require.Equal(t, 64*4, p.Len())
			require.Equal(t, 4, p.FreeBlocks())
			require.Equal(t, int32(0), p.Head())

			var chain []int32
			for i := p.Head(); i != NilIndex; i = p.Next(int(i)) {
				chain = append(chain, i)
			}
			require.Equal(t, []int32{0, 1, 2, 3}, chain)

			for i := range p.BlockCount() {
				require.Equal(t, StateFree, p.State(i))
			}
		})
	}
}

func TestNew_SingleBlock(t *testing.T) {
	p := newTestPool(t, 16, 1, BackingHeap)
	require.Equal(t, int32(0), p.Head())
	require.Equal(t, NilIndex, p.Next(0))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"block too small", Config{BlockSize: 8, BlockCount: 4}},
		{"block misaligned", Config{BlockSize: 60, BlockCount: 4}},
		{"zero blocks", Config{BlockSize: 64, BlockCount: 0}},
		{"negative blocks", Config{BlockSize: 64, BlockCount: -1}},
		{"unknown backing", Config{BlockSize: 64, BlockCount: 4, Backing: Backing(9)}},
		{"overflow", Config{BlockSize: math.MaxInt &^ 7, BlockCount: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrConfig), "got %v", err)
		})
	}

	require.NoError(t, DefaultConfig().Validate())

	err := Config{BlockSize: 60, BlockCount: 4}.Validate()
	require.ErrorContains(t, err, "next aligned size is 64")
}

func TestNew_ArenaFailure(t *testing.T) {
	if math.MaxInt == math.MaxInt32 {
		t.Skip("needs a 64-bit address space")
	}
	// Valid geometry that no address space can hold.
	cfg := Config{BlockSize: (math.MaxInt / 4) &^ 7, BlockCount: 3, Backing: BackingHeap}
	_, err := New(cfg)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrArena), "got %v", err)

	cfg.Backing = BackingMmap
	_, err = New(cfg)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrArena), "got %v", err)

	require.Panics(t, func() { MustNew(cfg) })
}

func TestIsValidRef(t *testing.T) {
	p := newTestPool(t, 64, 4, BackingHeap)

	for i := range 4 {
		require.True(t, p.IsValidRef(p.RefOf(i)), "block %d payload", i)
	}

	tests := []struct {
		name string
		ref  Ref
	}{
		{"null", NilRef},
		{"before arena", Ref(-MetadataSize)},
		{"far before arena", Ref(-4096)},
		{"block start", Ref(64)},
		{"mid block", p.RefOf(1) + 1},
		{"misaligned by header", p.RefOf(2) - 4},
		{"last byte", Ref(p.Len() - 1)},
		{"after arena", Ref(p.Len() + MetadataSize)},
		{"one block past the end", p.RefOf(4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, p.IsValidRef(tt.ref))
		})
	}
}

func TestIndexOf_RoundTrip(t *testing.T) {
	p := newTestPool(t, 32, 8, BackingHeap)
	for i := range 8 {
		idx, ok := p.IndexOf(p.RefOf(i))
		require.True(t, ok)
		require.Equal(t, i, idx)
	}
}

func TestRefFor(t *testing.T) {
	p := newTestPool(t, 64, 4, BackingHeap)

	payload := p.Payload(2, 1)
	addr := uintptr(addrOf(payload))
	require.Equal(t, p.RefOf(2), p.RefFor(addr))

	require.Equal(t, NilRef, p.RefFor(0))

	other := make([]byte, 64)
	require.False(t, p.IsValidRef(p.RefFor(uintptr(addrOf(other)))))
}

func TestRunFits(t *testing.T) {
	p := newTestPool(t, 32, 8, BackingHeap)
	tests := []struct {
		i, n int
		want bool
	}{
		{0, 1, true},
		{0, 8, true},
		{7, 1, true},
		{7, 2, false},
		{3, 0, false},
		{3, -1, false},
		{2, math.MaxInt, false},
		{-1, 1, false},
		{8, 1, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, p.RunFits(tt.i, tt.n), "RunFits(%d, %d)", tt.i, tt.n)
	}
}

func TestRunLengthStoredInArena(t *testing.T) {
	p := newTestPool(t, 64, 4, BackingHeap)

	p.SetRunLength(1, 3)
	require.Equal(t, 3, p.RunLength(1))
	require.Equal(t, byte(3), p.Bytes()[64], "header sits at the start of block 1")

	payload := p.Payload(1, 3)
	require.Len(t, payload, 3*64-MetadataSize)
	payload[0] = 0xAA
	require.Equal(t, byte(0xAA), p.Bytes()[64+MetadataSize])
	require.Equal(t, 3, p.RunLength(1), "payload writes must not touch the header")
}

func TestSetState_TracksFreeCount(t *testing.T) {
	p := newTestPool(t, 64, 4, BackingHeap)

	p.SetState(0, StateHead)
	p.SetState(1, StateContinuation)
	require.Equal(t, 2, p.FreeBlocks())

	p.SetState(1, StateContinuation)
	require.Equal(t, 2, p.FreeBlocks(), "no-op transition")

	p.SetState(0, StateFree)
	p.SetState(1, StateFree)
	require.Equal(t, 4, p.FreeBlocks())
}

func TestClose(t *testing.T) {
	p, err := New(Config{BlockSize: 64, BlockCount: 4})
	require.NoError(t, err)
	ref := p.RefOf(0)

	require.NoError(t, p.Close())
	require.True(t, p.Closed())
	require.False(t, p.IsValidRef(ref), "refs die with the arena")
	require.Equal(t, NilIndex, p.Head())
	require.Zero(t, p.Len())

	require.NoError(t, p.Close(), "double close is a no-op")
}

func TestStateString(t *testing.T) {
	require.Equal(t, "free", StateFree.String())
	require.Equal(t, "head", StateHead.String())
	require.Equal(t, "continuation", StateContinuation.String())
	require.Equal(t, "invalid", State(42).String())
	require.Equal(t, "unknown", Backing(42).String())
}
