package pool

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/buttception/RagdollEngine-sub001/internal/buf"
	"github.com/buttception/RagdollEngine-sub001/internal/logger"
	"github.com/buttception/RagdollEngine-sub001/internal/mmap"
)

// Pool is an arena of equal-sized blocks plus the free list threaded through them.
//
// Free-list links live in a parallel index array rather than inside the freed
// storage, and each block's role is tracked explicitly in a state array. The
// run length of a live run is stored in the first MetadataSize bytes of its
// head block, inside the arena itself.
type Pool struct {
	data      []byte
	release   mmap.Release
	backing   Backing
	blockSize int
	count     int

	next  []int32 // next free block per block, NilIndex terminates
	state []State
	head  int32
	free  int

	closed bool
}

// New reserves the arena and threads every block into the free list in
// address order (block i -> block i+1), with the head at block 0.
func New(cfg Config) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	size, _ := cfg.ArenaSize()

	reserve := mmap.Anon
	if cfg.Backing == BackingHeap {
		reserve = mmap.Heap
	}
	data, release, err := reserve(size)
	if err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "pool: reserve %d blocks of %d bytes (%s)", cfg.BlockCount, cfg.BlockSize, cfg.Backing),
			ErrArena,
		)
	}

	p := &Pool{
		data:      data,
		release:   release,
		backing:   cfg.Backing,
		blockSize: cfg.BlockSize,
		count:     cfg.BlockCount,
		next:      make([]int32, cfg.BlockCount),
		state:     make([]State, cfg.BlockCount),
		head:      0,
		free:      cfg.BlockCount,
	}
	for i := range p.next {
		p.next[i] = int32(i + 1)
	}
	p.next[p.count-1] = NilIndex

	logger.Debug("pool: arena reserved",
		"block_size", p.blockSize, "block_count", p.count, "bytes", size, "backing", cfg.Backing.String())
	return p, nil
}

// MustNew is like New but panics if the pool cannot be constructed.
func MustNew(cfg Config) *Pool {
	p, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// Close releases the whole arena in one operation. It is safe to call twice.
func (p *Pool) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	err := p.release()
	p.data = nil
	p.next = nil
	p.state = nil
	p.head = NilIndex
	p.free = 0
	if err != nil {
		return errors.Wrap(err, "pool: release arena")
	}
	return nil
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool { return p.closed }

// BlockSize returns the size of every block in bytes.
func (p *Pool) BlockSize() int { return p.blockSize }

// BlockCount returns the number of blocks in the arena.
func (p *Pool) BlockCount() int { return p.count }

// Len returns the arena length in bytes.
func (p *Pool) Len() int { return len(p.data) }

// Backing returns where the arena came from.
func (p *Pool) Backing() Backing { return p.backing }

// FreeBlocks returns the number of blocks currently in StateFree.
func (p *Pool) FreeBlocks() int { return p.free }

// Bytes exposes the raw arena. Intended for tests and diagnostics.
func (p *Pool) Bytes() []byte { return p.data }

// IsValidRef reports whether ref is exactly MetadataSize bytes past the start
// of a block inside the arena, i.e. a payload handle this pool could have issued.
func (p *Pool) IsValidRef(ref Ref) bool {
	_, ok := p.IndexOf(ref)
	return ok
}

// IndexOf maps a payload ref to its block index. ok is false for NilRef,
// refs before or after the arena, refs that are not block-start + MetadataSize,
// and for any ref once the pool is closed.
func (p *Pool) IndexOf(ref Ref) (int, bool) {
	if p.closed || ref == NilRef {
		return 0, false
	}
	off := int64(ref) - MetadataSize
	if off < 0 || off >= int64(len(p.data)) {
		return 0, false
	}
	if off%int64(p.blockSize) != 0 {
		return 0, false
	}
	return int(off / int64(p.blockSize)), true
}

// RefOf returns the payload ref of block i.
func (p *Pool) RefOf(i int) Ref {
	return Ref(i*p.blockSize + MetadataSize)
}

// RefFor converts the address of a payload byte inside the arena into a Ref.
// Addresses outside the arena map to refs IsValidRef rejects.
func (p *Pool) RefFor(addr uintptr) Ref {
	if addr == 0 || len(p.data) == 0 {
		return NilRef
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(p.data)))
	return Ref(int64(addr) - int64(base))
}

// Head returns the first block of the free list, or NilIndex when it is empty.
func (p *Pool) Head() int32 { return p.head }

// SetHead replaces the free-list head.
func (p *Pool) SetHead(i int32) { p.head = i }

// Next returns the free-list successor recorded for block i.
func (p *Pool) Next(i int) int32 { return p.next[i] }

// SetNext records the free-list successor of block i.
func (p *Pool) SetNext(i int, n int32) { p.next[i] = n }

// State returns the role of block i.
func (p *Pool) State(i int) State { return p.state[i] }

// SetState changes the role of block i and keeps the free-block count in step.
func (p *Pool) SetState(i int, s State) {
	old := p.state[i]
	if old == s {
		return
	}
	if old == StateFree {
		p.free--
	}
	if s == StateFree {
		p.free++
	}
	p.state[i] = s
}

// Block returns the full storage of block i, header included.
func (p *Pool) Block(i int) []byte {
	b, _ := buf.Slice(p.data, i*p.blockSize, p.blockSize)
	return b
}

// RunLength reads the run length stored in the header of block i.
func (p *Pool) RunLength(i int) int {
	return int(buf.U64LE(p.Block(i)))
}

// RunFits reports whether a run of n blocks starting at block i lies inside
// the arena. The comparison is arranged so a corrupt length cannot overflow.
func (p *Pool) RunFits(i, n int) bool {
	return i >= 0 && i < p.count && n >= 1 && n <= p.count-i
}

// SetRunLength writes n into the header of block i.
func (p *Pool) SetRunLength(i, n int) {
	buf.PutU64LE(p.Block(i), uint64(n))
}

// Payload returns the caller-visible bytes of a run of blocks starting at block i:
// everything after the header of block i through the end of block i+blocks-1.
func (p *Pool) Payload(i, blocks int) []byte {
	b, _ := buf.Slice(p.data, i*p.blockSize+MetadataSize, blocks*p.blockSize-MetadataSize)
	return b
}
