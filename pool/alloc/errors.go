package alloc

import "github.com/cockroachdb/errors"

// Every error below indicates a usage or configuration bug rather than a
// transient condition. Retrying without first releasing memory cannot succeed.
var (
	// ErrNoSpace indicates that no run of contiguous free blocks was long enough.
	ErrNoSpace = errors.New("alloc: no contiguous run of free blocks large enough")

	// ErrBadRef indicates a ref that is not a payload handle this pool could have issued.
	ErrBadRef = errors.New("alloc: bad payload reference")

	// ErrNotAllocated indicates a well-formed ref whose block is not a live run head
	// (double free, or a ref into the middle of a run).
	ErrNotAllocated = errors.New("alloc: reference is not a live allocation")

	// ErrBadSize indicates a negative size or count, or a request whose byte size overflows.
	ErrBadSize = errors.New("alloc: invalid allocation size")

	// ErrCorrupt indicates a run header whose length does not fit the arena.
	ErrCorrupt = errors.New("alloc: corrupt run metadata")
)
