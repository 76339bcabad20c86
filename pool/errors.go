package pool

import "github.com/cockroachdb/errors"

var (
	// ErrArena indicates the arena backing the pool could not be reserved.
	// Construction cannot be retried meaningfully; treat it as fatal.
	ErrArena = errors.New("pool: arena allocation failed")

	// ErrConfig indicates an unusable block size or block count.
	ErrConfig = errors.New("pool: invalid configuration")

	// ErrClosed indicates use of a pool after Close released its arena.
	ErrClosed = errors.New("pool: closed")
)
