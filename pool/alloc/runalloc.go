package alloc

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/buttception/RagdollEngine-sub001/internal/buf"
	"github.com/buttception/RagdollEngine-sub001/internal/format"
	"github.com/buttception/RagdollEngine-sub001/internal/logger"
	"github.com/buttception/RagdollEngine-sub001/pool"
)

// RunAllocator satisfies requests with runs of physically contiguous blocks
// taken from a pool's free list.
//
// A run is only found when its blocks are adjacent in the arena and also
// consecutive in the free-list traversal. There is no coalescing or
// compaction: a fragmented free list can refuse a request even when enough
// blocks are free in total.
type RunAllocator struct {
	p    *pool.Pool
	log  *slog.Logger
	zero bool

	live  int
	stats allocatorStats
}

// allocatorStats holds internal allocator counters.
type allocatorStats struct {
	AllocCalls     int
	FreeCalls      int
	FailedAllocs   int
	PeakUsedBlocks int
	SearchSteps    int64 // free-list nodes visited by run searches
}

var _ Allocator = (*RunAllocator)(nil)

// New creates an allocator over p. The pool must not be shared with another allocator.
func New(p *pool.Pool, opts ...Option) *RunAllocator {
	a := &RunAllocator{p: p}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Pool returns the block pool this allocator manages.
func (a *RunAllocator) Pool() *pool.Pool { return a.p }

func (a *RunAllocator) logger() *slog.Logger {
	if a.log != nil {
		return a.log
	}
	return logger.L
}

// BlocksNeeded returns ceil((count*elemSize + MetadataSize) / BlockSize).
func (a *RunAllocator) BlocksNeeded(elemSize, count int) (int, error) {
	total, err := buf.RequestBytes(elemSize, count, pool.MetadataSize)
	if err != nil {
		return 0, errors.Mark(errors.Wrap(err, "alloc: size request"), ErrBadSize)
	}
	return buf.CeilDiv(total, a.p.BlockSize()), nil
}

// MaxPayload returns the largest payload a single allocation can ever hold:
// the whole arena minus one run header.
func (a *RunAllocator) MaxPayload() int {
	return format.PayloadCapacity(a.p.BlockSize(), a.p.BlockCount())
}

// Allocate reserves a run of blocks for count elements of elemSize bytes.
func (a *RunAllocator) Allocate(elemSize, count int) (pool.Ref, error) {
	if a.p.Closed() {
		return pool.NilRef, pool.ErrClosed
	}
	a.stats.AllocCalls++

	need, err := a.BlocksNeeded(elemSize, count)
	if err != nil {
		a.stats.FailedAllocs++
		return pool.NilRef, err
	}
	if need > a.p.BlockCount() {
		a.stats.FailedAllocs++
		return pool.NilRef, errors.Wrapf(ErrNoSpace,
			"request of %d blocks exceeds pool of %d", need, a.p.BlockCount())
	}

	start, ok := a.takeRun(need)
	if !ok {
		a.stats.FailedAllocs++
		a.logger().Warn("alloc: pool exhausted",
			"blocks", need, "free_blocks", a.p.FreeBlocks(), "elem_size", elemSize, "count", count)
		return pool.NilRef, errors.Wrapf(ErrNoSpace,
			"need %d contiguous blocks, %d free", need, a.p.FreeBlocks())
	}

	a.p.SetRunLength(start, need)
	a.p.SetState(start, pool.StateHead)
	a.p.SetNext(start, pool.NilIndex)
	for k := start + 1; k < start+need; k++ {
		a.p.SetState(k, pool.StateContinuation)
		a.p.SetNext(k, pool.NilIndex)
	}
	if a.zero {
		clear(a.p.Payload(start, need))
	}

	a.live++
	if used := a.p.BlockCount() - a.p.FreeBlocks(); used > a.stats.PeakUsedBlocks {
		a.stats.PeakUsedBlocks = used
	}

	ref := a.p.RefOf(start)
	a.logger().Debug("alloc: allocate",
		"elem_size", elemSize, "count", count, "blocks", need, "start", start, "ref", int64(ref))
	return ref, nil
}

// takeRun walks the free list from its head looking for need blocks that are
// physically adjacent and consecutive in the list. The counter starts at 1 on
// the head, so a non-empty list always satisfies a one-block request. When the
// next list node is not the physically next block, the candidate restarts at
// that node with the counter back at 1.
//
// On a match the whole run is unlinked in one step by linking the node before
// the candidate (or the head) past the run's last block. Blocks inside the run
// are not unlinked one by one.
func (a *RunAllocator) takeRun(need int) (int, bool) {
	head := a.p.Head()
	if head == pool.NilIndex {
		return 0, false
	}

	prev := pool.NilIndex
	start, cur := head, head
	run := 1
	for run < need {
		nxt := a.p.Next(int(cur))
		a.stats.SearchSteps++
		if nxt == pool.NilIndex {
			return 0, false
		}
		if nxt == cur+1 {
			run++
		} else {
			prev, start, run = cur, nxt, 1
		}
		cur = nxt
	}

	after := a.p.Next(int(cur))
	if prev == pool.NilIndex {
		a.p.SetHead(after)
	} else {
		a.p.SetNext(int(prev), after)
	}
	return int(start), true
}

// Deallocate validates ref, reads its run length, and prepends the whole run
// to the free list as one chain: first -> ... -> last -> previous head.
func (a *RunAllocator) Deallocate(ref pool.Ref) error {
	if a.p.Closed() {
		return pool.ErrClosed
	}
	a.stats.FreeCalls++

	start, n, err := a.lookup(ref)
	if err != nil {
		return err
	}

	// Thread the run from its last block back to its first.
	succ := a.p.Head()
	for k := start + n - 1; k >= start; k-- {
		a.p.SetNext(k, succ)
		a.p.SetState(k, pool.StateFree)
		succ = int32(k)
	}
	a.p.SetRunLength(start, 0)
	a.p.SetHead(int32(start))
	a.live--

	a.logger().Debug("alloc: deallocate", "ref", int64(ref), "start", start, "blocks", n)
	return nil
}

// lookup resolves ref to its head block and recorded run length.
func (a *RunAllocator) lookup(ref pool.Ref) (start, blocks int, err error) {
	i, ok := a.p.IndexOf(ref)
	if !ok {
		return 0, 0, errors.Wrapf(ErrBadRef, "ref %d", int64(ref))
	}
	if st := a.p.State(i); st != pool.StateHead {
		return 0, 0, errors.Wrapf(ErrNotAllocated, "block %d is %s", i, st)
	}
	n := a.p.RunLength(i)
	if !a.p.RunFits(i, n) {
		return 0, 0, errors.Wrapf(ErrCorrupt, "block %d records run length %d", i, n)
	}
	return i, n, nil
}

// Bytes returns the payload of the live run headed by ref.
func (a *RunAllocator) Bytes(ref pool.Ref) ([]byte, error) {
	if a.p.Closed() {
		return nil, pool.ErrClosed
	}
	start, n, err := a.lookup(ref)
	if err != nil {
		return nil, err
	}
	return a.p.Payload(start, n), nil
}

// RunLength returns the number of blocks reserved for the allocation at ref.
func (a *RunAllocator) RunLength(ref pool.Ref) (int, error) {
	if a.p.Closed() {
		return 0, pool.ErrClosed
	}
	_, n, err := a.lookup(ref)
	return n, err
}

// Runs lists live allocations in address order.
func (a *RunAllocator) Runs() []Run {
	if a.p.Closed() {
		return nil
	}
	runs := make([]Run, 0, a.live)
	for i := 0; i < a.p.BlockCount(); i++ {
		if a.p.State(i) != pool.StateHead {
			continue
		}
		n := a.p.RunLength(i)
		runs = append(runs, Run{Ref: a.p.RefOf(i), Start: i, Blocks: n})
		if n > 1 && a.p.RunFits(i, n) {
			i += n - 1
		}
	}
	return runs
}
