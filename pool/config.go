package pool

import (
	"github.com/cockroachdb/errors"

	"github.com/buttception/RagdollEngine-sub001/internal/buf"
	"github.com/buttception/RagdollEngine-sub001/internal/format"
)

// Backing selects where the arena memory comes from.
type Backing uint8

const (
	// BackingMmap reserves the arena with an anonymous mapping outside the Go heap.
	BackingMmap Backing = iota
	// BackingHeap allocates the arena as a Go byte slice.
	BackingHeap
)

func (b Backing) String() string {
	switch b {
	case BackingMmap:
		return "mmap"
	case BackingHeap:
		return "heap"
	default:
		return "unknown"
	}
}

// Config controls pool construction.
type Config struct {
	// BlockSize is the size of every block in bytes, including the run-length
	// header carried by run-head blocks. Must be a multiple of 8 and at least 16.
	// Default: DefaultBlockSize
	BlockSize int

	// BlockCount is the number of blocks in the arena.
	// Default: DefaultBlockCount
	BlockCount int

	// Backing selects the arena source.
	// Default: BackingMmap
	Backing Backing
}

// DefaultConfig returns the build-time pool geometry.
func DefaultConfig() Config {
	return Config{
		BlockSize:  DefaultBlockSize,
		BlockCount: DefaultBlockCount,
		Backing:    BackingMmap,
	}
}

// ArenaSize returns BlockSize * BlockCount, or an error if it overflows.
func (c Config) ArenaSize() (int, error) {
	size, ok := buf.MulOverflowSafe(c.BlockSize, c.BlockCount)
	if !ok {
		return 0, errors.Wrapf(ErrConfig, "arena size overflows: %d blocks of %d bytes", c.BlockCount, c.BlockSize)
	}
	return size, nil
}

// Validate checks the geometry without reserving memory.
func (c Config) Validate() error {
	if c.BlockSize < format.MinBlockSize {
		return errors.Wrapf(ErrConfig, "block size %d below minimum %d", c.BlockSize, format.MinBlockSize)
	}
	if !format.IsBlockAligned(c.BlockSize) {
		return errors.Wrapf(ErrConfig, "block size %d not a multiple of %d (next aligned size is %d)",
			c.BlockSize, format.BlockAlignment, format.AlignBlock(c.BlockSize))
	}
	if c.BlockCount < 1 || c.BlockCount > format.MaxBlockCount {
		return errors.Wrapf(ErrConfig, "block count %d outside [1, %d]", c.BlockCount, format.MaxBlockCount)
	}
	if c.Backing != BackingMmap && c.Backing != BackingHeap {
		return errors.Wrapf(ErrConfig, "unknown backing %d", c.Backing)
	}
	_, err := c.ArenaSize()
	return err
}
