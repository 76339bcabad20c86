// Package format defines the byte layout of arena blocks: the size of the
// run-length header carried by every run-head block and the alignment that
// block sizes must honour so payloads stay word aligned.
package format

const (
	// MetadataSize is the number of bytes at the start of a run-head block
	// reserved for the run-length count. These bytes are never exposed to the
	// caller; a payload ref always points MetadataSize bytes past a block start.
	MetadataSize = 8

	// BlockAlignment is the required alignment of block sizes. With an
	// 8-byte header and an 8-aligned arena base, every payload is 8-aligned.
	BlockAlignment = 8

	// BlockAlignmentMask is BlockAlignment - 1.
	BlockAlignmentMask = BlockAlignment - 1

	// MinBlockSize is the smallest usable block: the header plus one aligned word.
	MinBlockSize = MetadataSize + BlockAlignment

	// MaxBlockCount bounds the arena to what int32 free-list links can address.
	MaxBlockCount = 1<<31 - 1

	// NilIndex terminates the free list.
	NilIndex int32 = -1
)
