// Package pool provides the fixed-block arena that backs the run allocator.
//
// # Overview
//
// A Pool owns one contiguous arena of BlockCount blocks, each BlockSize bytes.
// Blocks are either free, in which case they are linked into a singly linked
// free list, or part of a live run allocated by package alloc. The arena is
// reserved once at construction and released once by Close; it never grows,
// shrinks, or compacts.
//
// # Block Layout
//
// Every run starts with a head block whose first MetadataSize bytes hold the
// run length as a little-endian uint64:
//
//	+----------------+------------------------------+
//	| run length (8) | payload (BlockSize - 8)      |   head block
//	+----------------+------------------------------+
//	| payload (BlockSize)                           |   continuation blocks
//	+-----------------------------------------------+
//
// The header is never exposed to callers. A payload Ref is the arena offset of
// the first payload byte, so every valid Ref satisfies
//
//	ref == i*BlockSize + MetadataSize   for some block i
//
// # Free List
//
// Free-list links are kept in an index array parallel to the arena, with
// NilIndex as the terminator. Construction threads block i to block i+1 and
// sets the head to block 0. After that the order reflects release history:
// freed runs are prepended as one chain.
//
// # Backing
//
// BackingMmap reserves the arena with an anonymous mapping (golang.org/x/sys)
// so the Go collector never scans it. BackingHeap uses a byte slice. Either way
// the arena must not hold Go pointers.
//
// # Thread Safety
//
// Pool instances are not thread-safe. Callers must synchronize access
// externally or use alloc.SyncAllocator.
//
// # Related Packages
//
//   - github.com/buttception/RagdollEngine-sub001/pool/alloc: Run search and release
//   - github.com/buttception/RagdollEngine-sub001/pool/typed: Typed slices and containers over a pool
//   - github.com/buttception/RagdollEngine-sub001/pool/global: Process-wide allocator lifecycle
//   - github.com/buttception/RagdollEngine-sub001/pool/verify: Partition invariants
//   - github.com/buttception/RagdollEngine-sub001/pool/printer: Block maps and statistics
package pool
