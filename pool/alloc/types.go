package alloc

import (
	"log/slog"

	"github.com/buttception/RagdollEngine-sub001/pool"
)

// Allocator defines the block-run allocation contract.
//
// Implementations:
//   - RunAllocator: single-threaded contiguous-run allocator
//   - SyncAllocator: mutex-guarded wrapper around RunAllocator
type Allocator interface {
	// Allocate reserves enough whole blocks for count elements of elemSize bytes
	// plus the run header, and returns the payload ref of the run's head block.
	Allocate(elemSize, count int) (pool.Ref, error)

	// Deallocate returns the whole run headed by ref to the free list.
	Deallocate(ref pool.Ref) error

	// Bytes returns the payload of the live run headed by ref.
	Bytes(ref pool.Ref) ([]byte, error)

	// Stats returns a snapshot of allocator statistics.
	Stats() Stats

	// Pool returns the block pool this allocator manages.
	Pool() *pool.Pool
}

// Run describes one live allocation.
type Run struct {
	Ref    pool.Ref // payload handle
	Start  int      // index of the head block
	Blocks int      // recorded run length
}

// Option configures a RunAllocator.
type Option func(*RunAllocator)

// WithLogger routes allocator logging to l instead of the package-global logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *RunAllocator) { a.log = l }
}

// WithZeroing clears every payload before Allocate returns it.
func WithZeroing(on bool) Option {
	return func(a *RunAllocator) { a.zero = on }
}

// Must panics if err is non-nil and otherwise returns ref. It gives callers the
// terminate-on-failure behaviour for allocation errors.
func Must(ref pool.Ref, err error) pool.Ref {
	if err != nil {
		panic(err)
	}
	return ref
}
