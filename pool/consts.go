package pool

import "github.com/buttception/RagdollEngine-sub001/internal/format"

const (
	// DefaultBlockSize is the block size used by DefaultConfig and the global pool.
	DefaultBlockSize = 64

	// DefaultBlockCount is the block count used by DefaultConfig and the global pool.
	DefaultBlockCount = 1024

	// MetadataSize is the run-length header at the front of every run-head block.
	MetadataSize = format.MetadataSize

	// NilIndex terminates the free list.
	NilIndex = format.NilIndex
)

// Ref is a payload handle: the byte offset of a payload within the arena.
// A valid Ref is always MetadataSize bytes past the start of some block.
type Ref int64

// NilRef is the null payload handle. It can never be valid because block 0's
// payload starts at MetadataSize.
const NilRef Ref = 0

// State is the role a block currently plays.
type State uint8

const (
	// StateFree marks a block reachable from the free list.
	StateFree State = iota
	// StateHead marks the first block of a live run; it stores the run length.
	StateHead
	// StateContinuation marks a block after the head inside a live run.
	StateContinuation
)

func (s State) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateHead:
		return "head"
	case StateContinuation:
		return "continuation"
	default:
		return "invalid"
	}
}
